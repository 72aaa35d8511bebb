package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Login exchanges admin credentials for a token and keeps it in the token store.
func (c *Client) Login(ctx context.Context, username, password string) (time.Time, error) {
	var out struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/admin/login",
		body:   map[string]string{"username": username, "password": password},
	}, &out)
	if err != nil {
		return time.Time{}, err
	}

	if err := c.tokens.Save(out.Token, out.ExpiresAt); err != nil {
		return time.Time{}, fmt.Errorf("save token: %w", err)
	}

	return out.ExpiresAt, nil
}

func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Verify returns the username of the stored token.
func (c *Client) Verify(ctx context.Context) (string, error) {
	var out struct {
		Valid    bool   `json:"valid"`
		Username string `json:"username"`
	}
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/admin/verify", admin: true}, &out)
	return out.Username, err
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out Stats
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/admin/stats", admin: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// admin helpers for the uniform CRUD resources

func (c *Client) adminGet(ctx context.Context, path string, q url.Values, out interface{}) (int, error) {
	h, err := c.do(ctx, request{method: http.MethodGet, path: path, query: q, admin: true}, out)
	if err != nil {
		return 0, err
	}
	return totalCount(h), nil
}

func (c *Client) adminSend(ctx context.Context, method, path string, body, out interface{}) error {
	_, err := c.do(ctx, request{method: method, path: path, body: body, admin: true}, out)
	return err
}

func (c *Client) AdminArticles(ctx context.Context, p AdminArticlesParams) ([]Article, int, error) {
	var out []Article
	total, err := c.adminGet(ctx, "/api/admin/articles", url.Values(p.query()), &out)
	return out, total, err
}

func (c *Client) AdminArticle(ctx context.Context, id int) (*Article, error) {
	var out Article
	if _, err := c.adminGet(ctx, idPath("/api/admin/articles/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (*Article, error) {
	var out Article
	if err := c.adminSend(ctx, http.MethodPost, "/api/admin/articles", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id int, patch ArticlePatch) (*Article, error) {
	var out Article
	if err := c.adminSend(ctx, http.MethodPatch, idPath("/api/admin/articles/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/articles/%d", id), nil, nil)
}

func (c *Client) AdminCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	_, err := c.adminGet(ctx, "/api/admin/categories", nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var out Category
	if err := c.adminSend(ctx, http.MethodPost, "/api/admin/categories", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int, patch CategoryPatch) (*Category, error) {
	var out Category
	if err := c.adminSend(ctx, http.MethodPatch, idPath("/api/admin/categories/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/categories/%d", id), nil, nil)
}

func (c *Client) AdminAuthors(ctx context.Context) ([]Author, error) {
	var out []Author
	_, err := c.adminGet(ctx, "/api/admin/authors", nil, &out)
	return out, err
}

func (c *Client) CreateAuthor(ctx context.Context, in AuthorInput) (*Author, error) {
	var out Author
	if err := c.adminSend(ctx, http.MethodPost, "/api/admin/authors", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAuthor(ctx context.Context, id int, patch AuthorPatch) (*Author, error) {
	var out Author
	if err := c.adminSend(ctx, http.MethodPatch, idPath("/api/admin/authors/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAuthor(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/authors/%d", id), nil, nil)
}

// AdminComments lists comments of every article. A nil approved lists all of them.
func (c *Client) AdminComments(ctx context.Context, approved *bool, limit, page int) ([]Comment, int, error) {
	var out []Comment
	q := query{}.optBool("approved", approved).int("limit", limit).int("page", page)
	total, err := c.adminGet(ctx, "/api/admin/comments", url.Values(q), &out)
	return out, total, err
}

func (c *Client) ApproveComment(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodPatch, idPath("/api/admin/comments/%d/approve", id), nil, nil)
}

func (c *Client) DeleteComment(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/comments/%d", id), nil, nil)
}

func (c *Client) AdminSubscribers(ctx context.Context, activeOnly bool, email string, limit, page int) ([]Subscriber, int, error) {
	var out []Subscriber
	q := query{}.flag("active", activeOnly).str("email", email).int("limit", limit).int("page", page)
	total, err := c.adminGet(ctx, "/api/admin/subscribers", url.Values(q), &out)
	return out, total, err
}

func (c *Client) DeleteSubscriber(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/subscribers/%d", id), nil, nil)
}

func (c *Client) AdminPolls(ctx context.Context) ([]Poll, error) {
	var out []Poll
	_, err := c.adminGet(ctx, "/api/admin/polls", nil, &out)
	return out, err
}

func (c *Client) AdminPoll(ctx context.Context, id int) (*Poll, error) {
	var out Poll
	if _, err := c.adminGet(ctx, idPath("/api/admin/polls/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePoll(ctx context.Context, in PollInput) (*Poll, error) {
	var out Poll
	if err := c.adminSend(ctx, http.MethodPost, "/api/admin/polls", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePoll(ctx context.Context, id int, patch PollPatch) (*Poll, error) {
	var out Poll
	if err := c.adminSend(ctx, http.MethodPut, idPath("/api/admin/polls/%d", id), patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePoll(ctx context.Context, id int) error {
	return c.adminSend(ctx, http.MethodDelete, idPath("/api/admin/polls/%d", id), nil, nil)
}

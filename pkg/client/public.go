package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/categories"}, &out)
	return out, err
}

func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var out Category
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/categories/slug/" + url.PathEscape(slug)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Authors(ctx context.Context) ([]Author, error) {
	var out []Author
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/authors"}, &out)
	return out, err
}

func (c *Client) Author(ctx context.Context, id int) (*Author, error) {
	var out Author
	if _, err := c.do(ctx, request{method: http.MethodGet, path: idPath("/api/authors/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Articles returns one page of published articles and the total number of matches.
func (c *Client) Articles(ctx context.Context, p ArticlesParams) ([]Article, int, error) {
	var out []Article
	h, err := c.do(ctx, request{method: http.MethodGet, path: "/api/articles", query: url.Values(p.query())}, &out)
	if err != nil {
		return nil, 0, err
	}
	return out, totalCount(h), nil
}

func (c *Client) BreakingArticles(ctx context.Context, limit int) ([]Article, error) {
	var out []Article
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/articles/breaking",
		query:  url.Values(query{}.int("limit", limit)),
	}, &out)
	return out, err
}

func (c *Client) RelatedArticles(ctx context.Context, categoryID, excludeID, limit int) ([]Article, error) {
	var out []Article
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/articles/related",
		query:  url.Values(query{}.int("category_id", categoryID).int("exclude_id", excludeID).int("limit", limit)),
	}, &out)
	return out, err
}

// ArticleBySlug returns the full article. A missing or unpublished slug is a 404 *APIError.
func (c *Client) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	var out Article
	if _, err := c.do(ctx, request{method: http.MethodGet, path: "/api/articles/slug/" + url.PathEscape(slug)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// IncrementViews counts one view and returns the new total.
func (c *Client) IncrementViews(ctx context.Context, articleID int) (int, error) {
	var out struct {
		Views int `json:"views"`
	}
	_, err := c.do(ctx, request{method: http.MethodPost, path: idPath("/api/articles/%d/views", articleID)}, &out)
	return out.Views, err
}

func (c *Client) Comments(ctx context.Context, articleID int) ([]Comment, error) {
	var out []Comment
	_, err := c.do(ctx, request{method: http.MethodGet, path: idPath("/api/articles/%d/comments", articleID)}, &out)
	return out, err
}

func (c *Client) AddComment(ctx context.Context, articleID int, email, content string) (*Comment, error) {
	var out Comment
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   idPath("/api/articles/%d/comments", articleID),
		body:   map[string]string{"email": email, "content": content},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Likes returns the like count, and whether email liked the article when email is set.
func (c *Client) Likes(ctx context.Context, articleID int, email string) (LikeStatus, error) {
	var out LikeStatus
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   idPath("/api/articles/%d/likes", articleID),
		query:  url.Values(query{}.str("email", email)),
	}, &out)
	return out, err
}

func (c *Client) ToggleLike(ctx context.Context, articleID int, email string) (LikeStatus, error) {
	var out LikeStatus
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   idPath("/api/articles/%d/like", articleID),
		body:   map[string]string{"email": email},
	}, &out)
	return out, err
}

// Subscribe returns the server message, "Subscribed!" or "Re-subscribed!".
func (c *Client) Subscribe(ctx context.Context, email string, name *string) (string, error) {
	body := struct {
		Email string  `json:"email"`
		Name  *string `json:"name,omitempty"`
	}{Email: email, Name: name}

	var out message
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/api/subscribe", body: body}, &out)
	return out.Message, err
}

func (c *Client) Unsubscribe(ctx context.Context, email string) error {
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/api/unsubscribe", body: map[string]string{"email": email}}, nil)
	return err
}

func (c *Client) CheckSubscription(ctx context.Context, email string) (bool, error) {
	var out struct {
		Subscribed bool `json:"subscribed"`
	}
	_, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/api/subscribe/check",
		query:  url.Values{"email": {email}},
	}, &out)
	return out.Subscribed, err
}

func (c *Client) Search(ctx context.Context, q string) ([]Article, error) {
	var out []Article
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/search", query: url.Values{"q": {q}}}, &out)
	return out, err
}

func (c *Client) Contact(ctx context.Context, msg ContactMessage) (string, error) {
	var out message
	_, err := c.do(ctx, request{method: http.MethodPost, path: "/api/contact", body: msg}, &out)
	return out.Message, err
}

func (c *Client) Polls(ctx context.Context) ([]Poll, error) {
	var out []Poll
	_, err := c.do(ctx, request{method: http.MethodGet, path: "/api/polls"}, &out)
	return out, err
}

func (c *Client) Poll(ctx context.Context, id int) (*Poll, error) {
	var out Poll
	if _, err := c.do(ctx, request{method: http.MethodGet, path: idPath("/api/polls/%d", id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Vote(ctx context.Context, pollID, optionID int, phone string) (*Poll, error) {
	body := struct {
		OptionID int    `json:"option_id"`
		Phone    string `json:"phone"`
	}{OptionID: optionID, Phone: phone}

	var out Poll
	if _, err := c.do(ctx, request{method: http.MethodPost, path: idPath("/api/polls/%d/vote", pollID), body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadImage sends base64 data, or a data URL, to the image host. Requires login.
func (c *Client) UploadImage(ctx context.Context, filename, data string) (*UploadResult, error) {
	var out UploadResult
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/upload",
		body:   map[string]string{"file": data, "filename": filename},
		admin:  true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}


package rest

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-publisher/internal/auth"
	"github.com/daniilsolovey/news-publisher/internal/db"
	"github.com/daniilsolovey/news-publisher/internal/upload"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = db.SetupTestDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to prepare test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func TestHandler_Articles_Integration(t *testing.T) {
	env := withTx(t)

	t.Run("PublishedOnly", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/articles", nil, "")
		requireStatus(t, rec, http.StatusOK)

		list := decode[[]Article](t, rec)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, articleIDs(list))
		assert.Equal(t, "5", rec.Header().Get(headerTotalCount))
		for _, a := range list {
			assert.Empty(t, a.Content, "list items carry no content")
			assert.NotNil(t, a.Category)
			assert.NotNil(t, a.Author)
		}
	})

	tests := []struct {
		name string
		path string
		want []int
	}{
		{name: "Featured", path: "/api/articles?featured=true", want: []int{1, 5}},
		{name: "BareFlag", path: "/api/articles?featured", want: []int{1, 5}},
		{name: "Trending", path: "/api/articles?trending=true&limit=2", want: []int{2, 1}},
		{name: "CategoryID", path: "/api/articles?category_id=2", want: []int{3, 4}},
		{name: "CategorySlug", path: "/api/articles?category=sports", want: []int{3, 4}},
		{name: "Author", path: "/api/articles?author_id=1", want: []int{1, 3, 5}},
		{name: "SecondPage", path: "/api/articles?limit=2&page=2", want: []int{3, 4}},
		{name: "Breaking", path: "/api/articles/breaking", want: []int{3, 4}},
		{name: "BreakingLimit", path: "/api/articles/breaking?limit=1", want: []int{3}},
		{name: "Related", path: "/api/articles/related?category_id=1&exclude_id=1", want: []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, tt.path, nil, "")
			requireStatus(t, rec, http.StatusOK)
			assert.Equal(t, tt.want, articleIDs(decode[[]Article](t, rec)))
		})
	}

	t.Run("InvalidFilter", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/articles?category_id=abc", nil, "")
		requireStatus(t, rec, http.StatusBadRequest)
		assert.NotEmpty(t, errorMessage(t, rec))
	})

	t.Run("RelatedWithoutCategoryIsEmpty", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/articles/related", nil, "")
		requireStatus(t, rec, http.StatusOK)
		assert.JSONEq(t, `[]`, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/api/articles/related?category_id=0&exclude_id=1", nil, "")
		requireStatus(t, rec, http.StatusOK)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("BySlug", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/articles/slug/ai-breakthrough", nil, "")
		requireStatus(t, rec, http.StatusOK)

		a := decode[Article](t, rec)
		assert.Equal(t, "AI Breakthrough in Machine Learning", a.Title)
		assert.NotEmpty(t, a.Content)
		require.NotNil(t, a.Category)
		assert.Equal(t, "tech", a.Category.Slug)
		require.NotNil(t, a.Author)
		assert.Equal(t, "John Doe", a.Author.Name)
		assert.Equal(t, 120, a.Views, "reading does not count a view")
	})

	t.Run("SlugNotFound", func(t *testing.T) {
		for _, slug := range []string{"missing", "scheduled-interview"} {
			rec := env.do(t, http.MethodGet, "/api/articles/slug/"+slug, nil, "")
			requireStatus(t, rec, http.StatusNotFound)
			assert.Equal(t, "Article not found", errorMessage(t, rec))
		}
	})
}

func TestHandler_Taxonomy_Integration(t *testing.T) {
	env := withTx(t)

	rec := env.do(t, http.MethodGet, "/api/categories", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Category](t, rec), 3)

	rec = env.do(t, http.MethodGet, "/api/categories/slug/sports", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Sports", decode[Category](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/api/categories/slug/missing", nil, "")
	requireStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodGet, "/api/authors", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Author](t, rec), 2)

	rec = env.do(t, http.MethodGet, "/api/authors/2", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Jane Smith", decode[Author](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/api/authors/99", nil, "")
	requireStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodGet, "/api/authors/abc", nil, "")
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestHandler_Search_Integration(t *testing.T) {
	env := withTx(t)

	rec := env.do(t, http.MethodGet, "/api/search?q=missingterm", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/search", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/search?q=QUANTUM", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, []int{2}, articleIDs(decode[[]Article](t, rec)))
}

func TestHandler_ConcurrentViews_Integration(t *testing.T) {
	const (
		articleID = 3
		n         = 25
	)

	env := newTestEnv(testDB, Options{})
	ctx := context.Background()

	var before int
	_, err := testDB.QueryOneContext(ctx, pg.Scan(&before), `SELECT "views" FROM "articles" WHERE "id" = ?`, articleID)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, err := testDB.ExecContext(ctx, `UPDATE "articles" SET "views" = ? WHERE "id" = ?`, before, articleID)
		assert.NoError(t, err)
	})

	var wg sync.WaitGroup
	codes := make(chan int, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/articles/%d/views", articleID), nil, "")
			codes <- rec.Code
		}()
	}
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/articles/%d/views", articleID), nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, before+n+1, decode[ViewsResponse](t, rec).Views)

	rec = env.do(t, http.MethodPost, "/api/articles/999/views", nil, "")
	requireStatus(t, rec, http.StatusNotFound)
}

func TestHandler_Likes_Integration(t *testing.T) {
	env := withTx(t)
	body := EmailRequest{Email: "reader@example.com"}

	rec := env.do(t, http.MethodPost, "/api/articles/2/like", body, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, LikeStatus{Count: 1, Liked: true}, decode[LikeStatus](t, rec))

	rec = env.do(t, http.MethodGet, "/api/articles/2/likes?email=reader@example.com", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, LikeStatus{Count: 1, Liked: true}, decode[LikeStatus](t, rec))

	rec = env.do(t, http.MethodPost, "/api/articles/2/like", body, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, LikeStatus{Count: 0, Liked: false}, decode[LikeStatus](t, rec))

	rec = env.do(t, http.MethodGet, "/api/articles/2/likes", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, LikeStatus{Count: 0, Liked: false}, decode[LikeStatus](t, rec))

	t.Run("RequiresSubscription", func(t *testing.T) {
		for _, email := range []string{"stranger@example.com", "former@example.com"} {
			rec := env.do(t, http.MethodPost, "/api/articles/2/like", EmailRequest{Email: email}, "")
			requireStatus(t, rec, http.StatusForbidden)
		}
	})

	t.Run("UnknownArticle", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/articles/999/like", body, "")
		requireStatus(t, rec, http.StatusNotFound)
	})
}

func TestHandler_CommentRequiresSubscription_Integration(t *testing.T) {
	env := withTx(t)
	comment := CommentRequest{Email: "newcomer@example.com", Content: "First!"}

	rec := env.do(t, http.MethodPost, "/api/articles/2/comments", comment, "")
	requireStatus(t, rec, http.StatusForbidden)
	assert.Equal(t, "Active subscription required", errorMessage(t, rec))

	rec = env.do(t, http.MethodPost, "/api/subscribe", SubscribeRequest{Email: "newcomer@example.com"}, "")
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodPost, "/api/articles/2/comments", comment, "")
	requireStatus(t, rec, http.StatusOK)
	created := decode[Comment](t, rec)
	assert.Positive(t, created.ID)
	assert.Equal(t, "First!", created.Content)
	assert.Equal(t, "newcomer", created.SubscriberName)
	assert.Empty(t, created.SubscriberEmail)

	rec = env.do(t, http.MethodGet, "/api/articles/2/comments", nil, "")
	requireStatus(t, rec, http.StatusOK)
	list := decode[[]Comment](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	t.Run("Validation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/articles/2/comments", CommentRequest{Email: "newcomer@example.com"}, "")
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "content is required", errorMessage(t, rec))

		rec = env.do(t, http.MethodPost, "/api/articles/2/comments", CommentRequest{Email: "newcomer@example.com", Content: "<b></b>"}, "")
		requireStatus(t, rec, http.StatusBadRequest)
	})
}

func TestHandler_Subscriptions_Integration(t *testing.T) {
	env := withTx(t)

	rec := env.do(t, http.MethodPost, "/api/subscribe", SubscribeRequest{Email: "former@example.com"}, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Re-subscribed!", decode[MessageResponse](t, rec).Message)

	rec = env.do(t, http.MethodGet, "/api/subscribe/check?email=former@example.com", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.True(t, decode[SubscriptionStatus](t, rec).Subscribed)

	rec = env.do(t, http.MethodPost, "/api/subscribe", SubscribeRequest{Email: "Reader@Example.com"}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "Already subscribed", errorMessage(t, rec))

	rec = env.do(t, http.MethodPost, "/api/subscribe", SubscribeRequest{Email: "not-an-email"}, "")
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "email must be a valid email address", errorMessage(t, rec))

	rec = env.do(t, http.MethodPost, "/api/unsubscribe", EmailRequest{Email: "nobody@example.com"}, "")
	requireStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodPost, "/api/unsubscribe", EmailRequest{Email: "reader@example.com"}, "")
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/subscribe/check?email=reader@example.com", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.False(t, decode[SubscriptionStatus](t, rec).Subscribed)

	rec = env.do(t, http.MethodGet, "/api/subscribe/check", nil, "")
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestHandler_Polls_Integration(t *testing.T) {
	env := withTx(t)

	rec := env.do(t, http.MethodGet, "/api/polls", nil, "")
	requireStatus(t, rec, http.StatusOK)
	polls := decode[[]Poll](t, rec)
	require.Len(t, polls, 2, "drafts are not public")
	for _, p := range polls {
		switch p.ID {
		case 1:
			assert.True(t, p.ResultsHidden)
			assert.Zero(t, p.TotalVotes)
		case 2:
			assert.False(t, p.ResultsHidden)
			assert.Equal(t, 10, p.TotalVotes)
		default:
			t.Errorf("unexpected poll %d", p.ID)
		}
	}

	rec = env.do(t, http.MethodGet, "/api/polls/3", nil, "")
	requireStatus(t, rec, http.StatusNotFound)

	vote := VoteRequest{OptionID: 1, Phone: "+1 (555) 123-4567"}
	rec = env.do(t, http.MethodPost, "/api/polls/1/vote", vote, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, 1, decode[Poll](t, rec).ID)

	rec = env.do(t, http.MethodPost, "/api/polls/1/vote", VoteRequest{OptionID: 2, Phone: "+15551234567"}, "")
	requireStatus(t, rec, http.StatusConflict)

	rec = env.do(t, http.MethodPost, "/api/polls/1/vote", VoteRequest{OptionID: 3, Phone: "+15550000000"}, "")
	requireStatus(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodPost, "/api/polls/2/vote", VoteRequest{OptionID: 3, Phone: "+15550000000"}, "")
	requireStatus(t, rec, http.StatusForbidden)

	rec = env.do(t, http.MethodPost, "/api/polls/1/vote", VoteRequest{OptionID: 1, Phone: "12"}, "")
	requireStatus(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodGet, "/api/admin/polls/1", nil, env.token(t))
	requireStatus(t, rec, http.StatusOK)
	admin := decode[Poll](t, rec)
	assert.False(t, admin.ResultsHidden)
	assert.Equal(t, 1, admin.TotalVotes)
}

func TestHandler_AdminAuth_Integration(t *testing.T) {
	env := withTx(t)

	other := auth.New(auth.Config{Secret: "other-secret", Username: testAdmin, Password: testPassword, TTL: 8 * time.Hour})
	foreign, _, err := other.Login(testAdmin, testPassword)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Username: testAdmin,
		Role:     auth.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "news-publisher",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-9 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/admin/verify"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/articles"},
		{http.MethodPost, "/api/admin/articles"},
		{http.MethodDelete, "/api/admin/categories/1"},
		{http.MethodGet, "/api/admin/unknown"},
		{http.MethodPost, "/api/upload"},
	}
	tokens := map[string]string{"NoToken": "", "ForeignSecret": foreign, "Expired": expired, "Garbage": "abc.def.ghi"}

	for name, token := range tokens {
		for _, p := range paths {
			t.Run(name+p.method+p.path, func(t *testing.T) {
				rec := env.do(t, p.method, p.path, nil, token)
				requireStatus(t, rec, http.StatusUnauthorized)
				assert.NotEmpty(t, errorMessage(t, rec))
			})
		}
	}

	t.Run("Login", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: testAdmin, Password: "wrong"}, "")
		requireStatus(t, rec, http.StatusUnauthorized)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rec))

		rec = env.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: testAdmin}, "")
		requireStatus(t, rec, http.StatusBadRequest)

		rec = env.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Username: testAdmin, Password: testPassword}, "")
		requireStatus(t, rec, http.StatusOK)
		login := decode[LoginResponse](t, rec)
		assert.WithinDuration(t, time.Now().Add(8*time.Hour), login.ExpiresAt, time.Minute)

		rec = env.do(t, http.MethodGet, "/api/admin/verify", nil, login.Token)
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, VerifyResponse{Valid: true, Username: testAdmin}, decode[VerifyResponse](t, rec))
	})
}

func TestHandler_AdminArticleRoundTrip_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	excerpt := "Short summary"
	req := ArticleRequest{
		Title:      "Edge Computing Explained",
		Excerpt:    &excerpt,
		Content:    "<p>Edge computing moves work closer to users.</p>",
		CategoryID: intPtr(1),
		AuthorID:   intPtr(2),
		IsFeatured: true,
	}

	rec := env.do(t, http.MethodPost, "/api/admin/articles", req, token)
	requireStatus(t, rec, http.StatusCreated)
	created := decode[Article](t, rec)
	assert.Equal(t, "edge-computing-explained", created.Slug)
	assert.Equal(t, 1, created.ReadingTime)

	rec = env.do(t, http.MethodGet, "/api/articles/slug/"+created.Slug, nil, "")
	requireStatus(t, rec, http.StatusOK)
	got := decode[Article](t, rec)
	assert.Equal(t, req.Title, got.Title)
	assert.Equal(t, req.Excerpt, got.Excerpt)
	assert.Equal(t, req.Content, got.Content)
	assert.Equal(t, req.CategoryID, got.CategoryID)
	assert.Equal(t, req.AuthorID, got.AuthorID)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Technology", got.Category.Name)
	require.NotNil(t, got.Author)
	assert.Equal(t, "Jane Smith", got.Author.Name)

	t.Run("PartialUpdate", func(t *testing.T) {
		newExcerpt := "Updated summary"
		rec := env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/articles/%d", created.ID), ArticlePatchRequest{Excerpt: &newExcerpt}, token)
		requireStatus(t, rec, http.StatusOK)
		updated := decode[Article](t, rec)
		assert.Equal(t, &newExcerpt, updated.Excerpt)
		assert.Equal(t, req.Title, updated.Title)
		assert.Equal(t, req.Content, updated.Content)
		assert.True(t, updated.IsFeatured)
	})

	t.Run("MarkupIsStoredAsSent", func(t *testing.T) {
		content := `<p>It's "great"</p>` +
			`<p><a href="https://example.com">source</a></p>` +
			`<iframe src="https://www.youtube.com/embed/abc123" allowfullscreen></iframe>`
		rec := env.do(t, http.MethodPut, fmt.Sprintf("/api/admin/articles/%d", created.ID), ArticlePatchRequest{Content: &content}, token)
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, content, decode[Article](t, rec).Content)

		rec = env.do(t, http.MethodGet, "/api/articles/slug/"+created.Slug, nil, "")
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, content, decode[Article](t, rec).Content)
	})

	t.Run("Validation", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/articles", ArticleRequest{}, token)
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "title is required", errorMessage(t, rec))
	})

	t.Run("NotFound", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/articles/999", nil, token)
		requireStatus(t, rec, http.StatusNotFound)

		title := "x"
		rec = env.do(t, http.MethodPatch, "/api/admin/articles/999", ArticlePatchRequest{Title: &title}, token)
		requireStatus(t, rec, http.StatusNotFound)
	})

	t.Run("AdminListIncludesScheduled", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/admin/articles?limit=100", nil, token)
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, "7", rec.Header().Get(headerTotalCount))
		assert.Contains(t, articleIDs(decode[[]Article](t, rec)), 6)
	})

	t.Run("Delete", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/articles/%d", created.ID), nil, token)
		requireStatus(t, rec, http.StatusOK)

		rec = env.do(t, http.MethodGet, "/api/articles/slug/"+created.Slug, nil, "")
		requireStatus(t, rec, http.StatusNotFound)
	})

	// A failed statement aborts the transaction, so this runs last.
	t.Run("DuplicateSlug", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/admin/articles", ArticleRequest{Title: "Copy", Slug: "ai-breakthrough"}, token)
		requireStatus(t, rec, http.StatusConflict)
		assert.Equal(t, "Slug already exists", errorMessage(t, rec))
	})
}

func TestHandler_CategoryDeleteScenario_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/admin/categories", CategoryRequest{Name: "Gadgets", Slug: "gadgets"}, token)
	requireStatus(t, rec, http.StatusCreated)
	category := decode[Category](t, rec)

	rec = env.do(t, http.MethodPost, "/api/admin/articles", ArticleRequest{
		Title:      "Pocket Gadgets",
		Content:    "<p>Small and useful.</p>",
		CategoryID: &category.ID,
	}, token)
	requireStatus(t, rec, http.StatusCreated)
	article := decode[Article](t, rec)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/articles?category_id=%d", category.ID), nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, []int{article.ID}, articleIDs(decode[[]Article](t, rec)))

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", category.ID), nil, token)
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/articles/%d", article.ID), nil, token)
	requireStatus(t, rec, http.StatusOK)
	kept := decode[Article](t, rec)
	assert.Equal(t, "Pocket Gadgets", kept.Title)
	assert.Nil(t, kept.CategoryID)
	assert.Nil(t, kept.Category)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", category.ID), nil, token)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestHandler_AdminTaxonomy_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/admin/authors", AuthorRequest{Name: "Ann Lee"}, token)
	requireStatus(t, rec, http.StatusCreated)
	author := decode[Author](t, rec)

	bio := "Columnist"
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/admin/authors/%d", author.ID), AuthorPatchRequest{Bio: &bio}, token)
	requireStatus(t, rec, http.StatusOK)
	updated := decode[Author](t, rec)
	assert.Equal(t, "Ann Lee", updated.Name)
	assert.Equal(t, &bio, updated.Bio)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/authors/%d", author.ID), nil, token)
	requireStatus(t, rec, http.StatusOK)

	name := "Tech & Science"
	rec = env.do(t, http.MethodPatch, "/api/admin/categories/1", CategoryPatchRequest{Name: &name}, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "tech", decode[Category](t, rec).Slug)

	rec = env.do(t, http.MethodGet, "/api/admin/categories/1", nil, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, name, decode[Category](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/api/admin/categories", nil, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Category](t, rec), 3)
}

func TestHandler_AdminModeration_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	rec := env.do(t, http.MethodGet, "/api/admin/comments?approved=false", nil, token)
	requireStatus(t, rec, http.StatusOK)
	pending := decode[[]Comment](t, rec)
	require.Len(t, pending, 1)
	assert.Equal(t, "reader@example.com", pending[0].SubscriberEmail)
	assert.Equal(t, "ai-breakthrough", pending[0].ArticleSlug)
	assert.Equal(t, "1", rec.Header().Get(headerTotalCount))

	rec = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/comments/%d/approve", pending[0].ID), nil, token)
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/articles/1/comments", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Comment](t, rec), 2)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/comments/%d", pending[0].ID), nil, token)
	requireStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/comments/%d", pending[0].ID), nil, token)
	requireStatus(t, rec, http.StatusNotFound)

	rec = env.do(t, http.MethodGet, "/api/admin/subscribers?active=true", nil, token)
	requireStatus(t, rec, http.StatusOK)
	active := decode[[]Subscriber](t, rec)
	require.Len(t, active, 1)
	assert.True(t, active[0].Active)

	rec = env.do(t, http.MethodGet, "/api/admin/subscribers", nil, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Subscriber](t, rec), 2)

	rec = env.do(t, http.MethodDelete, "/api/admin/subscribers/2", nil, token)
	requireStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/admin/stats", nil, token)
	requireStatus(t, rec, http.StatusOK)
	stats := decode[Stats](t, rec)
	assert.Equal(t, 6, stats.Articles)
	assert.Equal(t, 1, stats.Subscribers)
	assert.Equal(t, 1, stats.Comments)
	assert.Equal(t, 560, stats.Views)
	require.NotEmpty(t, stats.TopArticles)
	assert.Equal(t, 2, stats.TopArticles[0].ID)
}

func TestHandler_AdminPolls_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	rec := env.do(t, http.MethodPost, "/api/admin/polls", PollRequest{
		Title:   "Favourite season",
		Status:  "active",
		Options: []PollOptionRequest{{Title: "Summer"}, {Title: "Winter"}},
	}, token)
	requireStatus(t, rec, http.StatusCreated)
	poll := decode[Poll](t, rec)
	assert.Equal(t, "voting", poll.Type)
	require.Len(t, poll.Options, 2)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/admin/polls/%d", poll.ID), PollPatchRequest{
		Options: []PollOptionRequest{{ID: poll.Options[1].ID, Title: "Winter"}, {Title: "Spring"}},
	}, token)
	requireStatus(t, rec, http.StatusOK)
	updated := decode[Poll](t, rec)
	require.Len(t, updated.Options, 2)
	assert.Equal(t, "Winter", updated.Options[0].Title)
	assert.Equal(t, "Spring", updated.Options[1].Title)

	rec = env.do(t, http.MethodPost, "/api/admin/polls", PollRequest{Title: "Empty"}, token)
	requireStatus(t, rec, http.StatusBadRequest)

	rec = env.do(t, http.MethodPost, "/api/admin/polls", PollRequest{
		Title: "Bad type", Type: "ranking", Options: []PollOptionRequest{{Title: "A"}},
	}, token)
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "type must be one of: voting nomination", errorMessage(t, rec))

	rec = env.do(t, http.MethodGet, "/api/admin/polls", nil, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]Poll](t, rec), 4)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/polls/%d", poll.ID), nil, token)
	requireStatus(t, rec, http.StatusOK)
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/polls/%d", poll.ID), nil, token)
	requireStatus(t, rec, http.StatusNotFound)
}

func TestHandler_Contact_Integration(t *testing.T) {
	env := withTx(t)
	msg := ContactRequest{Name: "Alice", Email: "alice@example.com", Subject: "Tip", Message: "Hello editors"}

	rec := env.do(t, http.MethodPost, "/api/contact", msg, "")
	requireStatus(t, rec, http.StatusOK)
	require.Len(t, env.mailer.sent, 1)
	assert.Equal(t, "Hello editors", env.mailer.sent[0].Body)

	rec = env.do(t, http.MethodPost, "/api/contact", ContactRequest{Email: "alice@example.com"}, "")
	requireStatus(t, rec, http.StatusBadRequest)

	env.mailer.err = errors.New("535 authentication failed")
	rec = env.do(t, http.MethodPost, "/api/contact", msg, "")
	requireStatus(t, rec, http.StatusInternalServerError)
	assert.Contains(t, errorMessage(t, rec), "535 authentication failed")

	env.mailer.enabled = false
	rec = env.do(t, http.MethodPost, "/api/contact", msg, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Message received", decode[MessageResponse](t, rec).Message)
}

func TestHandler_Upload_Integration(t *testing.T) {
	env := withTx(t)
	token := env.token(t)

	body := UploadRequest{File: "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes")), Filename: "My Photo.png"}

	rec := env.do(t, http.MethodPost, "/api/upload", body, token)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "https://cdn.example.com/0-my-photo.png", decode[UploadResponse](t, rec).URL)
	assert.Equal(t, []byte("png-bytes"), env.uploader.data)

	rec = env.do(t, http.MethodPost, "/api/upload", UploadRequest{File: "%%%"}, token)
	requireStatus(t, rec, http.StatusBadRequest)

	env.uploader.err = &upload.ProviderError{Status: http.StatusForbidden, Message: "Your account cannot be authenticated."}
	rec = env.do(t, http.MethodPost, "/api/upload", body, token)
	requireStatus(t, rec, http.StatusInternalServerError)
	assert.Equal(t, "Your account cannot be authenticated.", errorMessage(t, rec))

	env.uploader.err = upload.ErrNotConfigured
	rec = env.do(t, http.MethodPost, "/api/upload", body, token)
	requireStatus(t, rec, http.StatusInternalServerError)
	assert.Equal(t, "Image upload is not configured", errorMessage(t, rec))
}

func TestHandler_Service_Integration(t *testing.T) {
	env := withTx(t)

	rec := env.do(t, http.MethodGet, "/health", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil)
	req.Header.Set(echo.HeaderOrigin, "https://news.example.com")
	rec = httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	requireStatus(t, rec, http.StatusNotFound)
	assert.NotEmpty(t, errorMessage(t, rec))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = env.do(t, http.MethodGet, "/metrics", nil, "")
	requireStatus(t, rec, http.StatusOK)
	assert.Contains(t, rec.Body.String(), "newsportal_http_requests_total")
}

func intPtr(i int) *int { return &i }

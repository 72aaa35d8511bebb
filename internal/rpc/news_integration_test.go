package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-publisher/internal/db"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
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
	_ = testDB.Close()
	os.Exit(code)
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func call(t *testing.T, h http.Handler, method string, params interface{}) rpcResponse {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/rpc", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	var resp rpcResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

func result[T any](t *testing.T, resp rpcResponse) T {
	t.Helper()
	require.Nil(t, resp.Error)
	var v T
	require.NoError(t, json.Unmarshal(resp.Result, &v))
	return v
}

func summaryIDs(list ArticleSummaries) []int {
	ids := make([]int, len(list))
	for i := range list {
		ids[i] = list[i].ArticleID
	}
	return ids
}

func TestNewsService_Integration(t *testing.T) {
	manager := newsportal.NewManager(db.New(testDB), newsportal.Options{})
	srv := New(slog.New(slog.NewTextHandler(io.Discard, nil)), manager)

	t.Run("Articles", func(t *testing.T) {
		list := result[ArticleSummaries](t, call(t, srv, "news.articles", map[string]interface{}{
			"filter": map[string]interface{}{"categoryId": 2},
		}))
		assert.Equal(t, []int{3, 4}, summaryIDs(list))
		require.NotNil(t, list[0].Category)
		assert.Equal(t, "sports", list[0].Category.Slug)
	})

	t.Run("PositionalParams", func(t *testing.T) {
		list := result[ArticleSummaries](t, call(t, srv, "news.articles", []interface{}{
			map[string]interface{}{"trending": true, "pageSize": 1},
		}))
		assert.Equal(t, []int{2}, summaryIDs(list))
	})

	t.Run("Count", func(t *testing.T) {
		count := result[int](t, call(t, srv, "news.count", map[string]interface{}{
			"filter": map[string]interface{}{"featured": true},
		}))
		assert.Equal(t, 2, count)
	})

	t.Run("ArticleBySlug", func(t *testing.T) {
		article := result[Article](t, call(t, srv, "news.articleBySlug", map[string]interface{}{"slug": "quantum-computers"}))
		assert.Equal(t, 2, article.ArticleID)
		assert.NotEmpty(t, article.Content)
		require.NotNil(t, article.Author)
		assert.Equal(t, "Jane Smith", article.Author.Name)
	})

	t.Run("ArticleBySlugNotFound", func(t *testing.T) {
		for slug, code := range map[string]int{"scheduled-interview": 404, "missing": 404, " ": 400} {
			resp := call(t, srv, "news.articleBySlug", map[string]interface{}{"slug": slug})
			require.NotNil(t, resp.Error, slug)
			assert.Equal(t, code, resp.Error.Code, slug)
		}
	})

	t.Run("Breaking", func(t *testing.T) {
		list := result[ArticleSummaries](t, call(t, srv, "news.breaking", nil))
		assert.Equal(t, []int{3, 4}, summaryIDs(list))
	})

	t.Run("Taxonomy", func(t *testing.T) {
		categories := result[Categories](t, call(t, srv, "news.categories", nil))
		assert.Len(t, categories, 3)

		authors := result[Authors](t, call(t, srv, "news.authors", nil))
		assert.Len(t, authors, 2)
	})

	t.Run("Search", func(t *testing.T) {
		resp := call(t, srv, "news.search", map[string]interface{}{"q": "missingterm"})
		require.Nil(t, resp.Error)
		assert.JSONEq(t, "[]", string(resp.Result))

		list := result[ArticleSummaries](t, call(t, srv, "news.search", []interface{}{"olympic"}))
		assert.Equal(t, []int{4}, summaryIDs(list))
	})

	t.Run("UnknownMethod", func(t *testing.T) {
		resp := call(t, srv, "news.delete", nil)
		require.NotNil(t, resp.Error)
		assert.Equal(t, -32601, resp.Error.Code)
	})
}

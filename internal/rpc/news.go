package rpc

import (
	"context"
	"strings"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

//go:generate zenrpc

// NewsService is a read-only JSON-RPC mirror of the public article API.
type NewsService struct {
	zenrpc.Service
	manager *newsportal.Manager
}

func NewNewsService(manager *newsportal.Manager) *NewsService {
	return &NewsService{manager: manager}
}

// Articles returns published articles, newest first or by views when trending.
// Content is not included.
//
//zenrpc:filter article filter
//zenrpc:return list of article summaries
//zenrpc:500 internal server error
func (s *NewsService) Articles(ctx context.Context, filter ArticleFilter) (ArticleSummaries, error) {
	articles, err := s.manager.Articles(ctx, filter.ToModel())
	if err != nil {
		return nil, err
	}

	return NewArticleSummaries(articles), nil
}

// Count returns the number of published articles matching the filter.
//
//zenrpc:filter article filter, paging fields are ignored
//zenrpc:return count of articles
//zenrpc:500 internal server error
func (s *NewsService) Count(ctx context.Context, filter ArticleFilter) (int, error) {
	return s.manager.ArticlesCount(ctx, filter.ToModel())
}

// ArticleBySlug returns a published article with content, category and author.
//
//zenrpc:slug article slug
//zenrpc:return article with full content
//zenrpc:400 slug is required
//zenrpc:404 article not found
//zenrpc:500 internal server error
func (s *NewsService) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, zenrpc.NewStringError(400, "slug is required")
	}

	article, err := s.manager.ArticleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	} else if article == nil {
		return nil, zenrpc.NewStringError(404, "article not found")
	}

	a := NewArticle(*article)
	return &a, nil
}

// Breaking returns the latest breaking articles.
//
//zenrpc:limit=5 max number of articles
//zenrpc:return list of article summaries
//zenrpc:500 internal server error
func (s *NewsService) Breaking(ctx context.Context, limit *int) (ArticleSummaries, error) {
	articles, err := s.manager.BreakingArticles(ctx, deref(limit))
	if err != nil {
		return nil, err
	}

	return NewArticleSummaries(articles), nil
}

// Categories returns all categories ordered by name.
//
//zenrpc:return list of categories
//zenrpc:500 internal server error
func (s *NewsService) Categories(ctx context.Context) (Categories, error) {
	categories, err := s.manager.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return NewCategories(categories), nil
}

// Authors returns all authors.
//
//zenrpc:return list of authors
//zenrpc:500 internal server error
func (s *NewsService) Authors(ctx context.Context) (Authors, error) {
	authors, err := s.manager.Authors(ctx)
	if err != nil {
		return nil, err
	}

	return NewAuthors(authors), nil
}

// Search matches the query against article titles and excerpts.
//
//zenrpc:q search query
//zenrpc:return list of article summaries, empty for an empty query
//zenrpc:500 internal server error
func (s *NewsService) Search(ctx context.Context, q string) (ArticleSummaries, error) {
	articles, err := s.manager.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	return NewArticleSummaries(articles), nil
}

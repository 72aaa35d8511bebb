package newsportal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

const (
	DefaultBreakingLimit = 5
	DefaultRelatedLimit  = 3
)

// Articles returns published articles, newest first or by views when trending.
// Content is not loaded for list items.
func (m *Manager) Articles(ctx context.Context, q ArticleQuery) (Articles, error) {
	list, err := m.db.Articles(ctx, q.filter(), pager(q.Limit, q.Page))
	if err != nil {
		return nil, fmt.Errorf("db get articles: %w", err)
	}

	return NewArticles(list), nil
}

func (m *Manager) ArticlesCount(ctx context.Context, q ArticleQuery) (int, error) {
	count, err := m.db.ArticlesCount(ctx, q.filter())
	if err != nil {
		return 0, fmt.Errorf("db get articles count: %w", err)
	}

	return count, nil
}

func (m *Manager) BreakingArticles(ctx context.Context, limit int) (Articles, error) {
	if limit <= 0 {
		limit = DefaultBreakingLimit
	}

	return m.Articles(ctx, ArticleQuery{Breaking: true, Limit: limit})
}

// RelatedArticles returns other articles of the same category.
func (m *Manager) RelatedArticles(ctx context.Context, categoryID, excludeID, limit int) (Articles, error) {
	if categoryID <= 0 {
		return Articles{}, nil
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	f := db.ArticleFilter{CategoryID: categoryID, ExcludeID: excludeID, Published: true}
	list, err := m.db.Articles(ctx, f, pager(limit, 1))
	if err != nil {
		return nil, fmt.Errorf("db get related articles: %w", err)
	}

	return NewArticles(list), nil
}

// ArticleBySlug returns a published article with its category and author, or nil.
// Views are not counted here.
func (m *Manager) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	article, err := m.db.ArticleBySlug(ctx, slug, true)
	if err != nil {
		return nil, fmt.Errorf("db get article by slug: %w", err)
	}

	return NewArticle(article), nil
}

// IncrementViews counts one view and returns the new total.
func (m *Manager) IncrementViews(ctx context.Context, articleID int) (int, error) {
	views, found, err := m.db.IncrementArticleViews(ctx, articleID)
	if err != nil {
		return 0, fmt.Errorf("db increment views: %w", err)
	} else if !found {
		return 0, ErrNotFound
	}

	return views, nil
}

// Search matches the query against titles and excerpts. An empty query yields an empty list.
func (m *Manager) Search(ctx context.Context, query string) (Articles, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Articles{}, nil
	}

	list, err := m.db.SearchArticles(ctx, query, true)
	if err != nil {
		return nil, fmt.Errorf("db search articles: %w", err)
	}

	return NewArticles(list), nil
}

func (m *Manager) Categories(ctx context.Context) (Categories, error) {
	list, err := m.db.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get categories: %w", err)
	}

	return NewCategories(list), nil
}

func (m *Manager) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	category, err := m.db.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("db get category by slug: %w", err)
	}

	return NewCategory(category), nil
}

func (m *Manager) Authors(ctx context.Context) (Authors, error) {
	list, err := m.db.Authors(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get authors: %w", err)
	}

	return NewAuthors(list), nil
}

func (m *Manager) AuthorByID(ctx context.Context, id int) (*Author, error) {
	author, err := m.db.AuthorByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get author: %w", err)
	}

	return NewAuthor(author), nil
}

package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// Articles returns articles matching the filter with joined category and author.
// Content is excluded from list results.
func (r *Repository) Articles(ctx context.Context, f ArticleFilter, p Pager) ([]Article, error) {
	articles := []Article{}
	err := r.db.ModelContext(ctx, &articles).
		ExcludeColumn(Columns.Article.Content).
		Relation(Columns.Article.Category).
		Relation(Columns.Article.Author).
		Apply(f.Apply).
		Apply(f.Order).
		Apply(func(q *orm.Query) (*orm.Query, error) { return p.apply(q), nil }).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	return articles, nil
}

func (r *Repository) ArticlesCount(ctx context.Context, f ArticleFilter) (int, error) {
	count, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Apply(f.Apply).
		Count()

	if err != nil {
		return 0, fmt.Errorf("failed to get articles count: %w", err)
	}

	return count, nil
}

// SearchArticles matches the query against title and excerpt. It never returns a nil slice.
func (r *Repository) SearchArticles(ctx context.Context, query string, published bool) ([]Article, error) {
	return r.Articles(ctx, ArticleFilter{Query: query, Published: published}, Pager{Limit: MaxSearchResults})
}

func (r *Repository) ArticleByID(ctx context.Context, id int) (*Article, error) {
	return r.oneArticle(ctx, ArticleFilter{}, `"t"."id" = ?`, id)
}

// ArticleBySlug returns the article with its category and author, or nil.
func (r *Repository) ArticleBySlug(ctx context.Context, slug string, published bool) (*Article, error) {
	return r.oneArticle(ctx, ArticleFilter{Published: published}, `"t"."slug" = ?`, slug)
}

func (r *Repository) oneArticle(ctx context.Context, f ArticleFilter, where string, param interface{}) (*Article, error) {
	article := &Article{}
	err := r.db.ModelContext(ctx, article).
		Relation(Columns.Article.Category).
		Relation(Columns.Article.Author).
		Apply(f.Apply).
		Where(where, param).
		Select()

	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return article, nil
}

func (r *Repository) AddArticle(ctx context.Context, article *Article) (*Article, error) {
	_, err := r.db.ModelContext(ctx, article).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	return article, nil
}

// UpdateArticle applies a partial update and reports whether the article exists.
func (r *Repository) UpdateArticle(ctx context.Context, id int, patch ArticlePatch) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Apply(patch.Apply).
		Where(`"t"."id" = ?`, id).
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update article: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteArticle(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete article: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// IncrementArticleViews bumps the counter in one statement and returns the new value.
func (r *Repository) IncrementArticleViews(ctx context.Context, id int) (int, bool, error) {
	var views int
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&views), `
		UPDATE "articles" SET "views" = "views" + 1
		WHERE "id" = ?
		RETURNING "views"`, id)

	if notFound(err) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("failed to increment article views: %w", err)
	}

	return views, true, nil
}

func (r *Repository) ArticleExists(ctx context.Context, id int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*Article)(nil)).
		Where(`"t"."id" = ?`, id).
		Exists()

	if err != nil {
		return false, fmt.Errorf("failed to check article: %w", err)
	}

	return exists, nil
}

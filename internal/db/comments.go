package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// Comments returns comments with their subscriber and article, newest first.
func (r *Repository) Comments(ctx context.Context, f CommentFilter, p Pager) ([]Comment, error) {
	comments := []Comment{}
	err := r.db.ModelContext(ctx, &comments).
		Relation(Columns.Comment.Subscriber).
		Relation(Columns.Comment.Article+"."+Columns.Article.ID).
		Relation(Columns.Comment.Article+"."+Columns.Article.Title).
		Relation(Columns.Comment.Article+"."+Columns.Article.Slug).
		Apply(f.Apply).
		OrderExpr(`"t"."createdAt" DESC, "t"."id" DESC`).
		Limit(p.limit()).
		Offset(p.Offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return comments, nil
}

func (r *Repository) CommentsCount(ctx context.Context, f CommentFilter) (int, error) {
	count, err := r.db.ModelContext(ctx, (*Comment)(nil)).Apply(f.Apply).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get comments count: %w", err)
	}

	return count, nil
}

func (r *Repository) AddComment(ctx context.Context, comment *Comment) (*Comment, error) {
	_, err := r.db.ModelContext(ctx, comment).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return comment, nil
}

func (r *Repository) SetCommentApproved(ctx context.Context, id int, approved bool) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Set(`"isApproved" = ?`, approved).
		Where(`"t"."id" = ?`, id).
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to update comment: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteComment(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Comment)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) ArticleLikesCount(ctx context.Context, articleID int) (int, error) {
	count, err := r.db.ModelContext(ctx, (*ArticleLike)(nil)).
		Where(`"t"."articleId" = ?`, articleID).
		Count()

	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

func (r *Repository) HasLiked(ctx context.Context, articleID, subscriberID int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*ArticleLike)(nil)).
		Where(`"t"."articleId" = ?`, articleID).
		Where(`"t"."subscriberId" = ?`, subscriberID).
		Exists()

	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// ToggleArticleLike removes the like when present, otherwise inserts it, in one statement,
// and reports whether the pair ends up liked. The unique (articleId, subscriberId)
// constraint resolves concurrent inserts: an insert skipped by ON CONFLICT means another
// request stored the same like.
func (r *Repository) ToggleArticleLike(ctx context.Context, articleID, subscriberID int) (bool, error) {
	var liked bool
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&liked), `
		WITH "deleted" AS (
			DELETE FROM "articleLikes"
			WHERE "articleId" = ?0 AND "subscriberId" = ?1
			RETURNING "id"
		), "inserted" AS (
			INSERT INTO "articleLikes" ("articleId", "subscriberId")
			SELECT ?0, ?1
			WHERE NOT EXISTS (SELECT 1 FROM "deleted")
			ON CONFLICT ("articleId", "subscriberId") DO NOTHING
			RETURNING "id"
		)
		SELECT EXISTS (SELECT 1 FROM "inserted") OR NOT EXISTS (SELECT 1 FROM "deleted")`, articleID, subscriberID)

	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	return liked, nil
}

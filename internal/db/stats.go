package db

import (
	"context"
	"fmt"
)

// Stats are the dashboard counters.
type Stats struct {
	Articles          int `pg:"articles"`
	Categories        int `pg:"categories"`
	Authors           int `pg:"authors"`
	Subscribers       int `pg:"subscribers"`
	ActiveSubscribers int `pg:"activeSubscribers"`
	Comments          int `pg:"comments"`
	PendingComments   int `pg:"pendingComments"`
	Likes             int `pg:"likes"`
	Views             int `pg:"views"`
	Polls             int `pg:"polls"`
	Votes             int `pg:"votes"`
}

func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	_, err := r.db.QueryOneContext(ctx, stats, `
		SELECT
			(SELECT COUNT(*) FROM "articles") AS "articles",
			(SELECT COUNT(*) FROM "categories") AS "categories",
			(SELECT COUNT(*) FROM "authors") AS "authors",
			(SELECT COUNT(*) FROM "subscribers") AS "subscribers",
			(SELECT COUNT(*) FROM "subscribers" WHERE "unsubscribedAt" IS NULL) AS "activeSubscribers",
			(SELECT COUNT(*) FROM "comments") AS "comments",
			(SELECT COUNT(*) FROM "comments" WHERE NOT "isApproved") AS "pendingComments",
			(SELECT COUNT(*) FROM "articleLikes") AS "likes",
			(SELECT COALESCE(SUM("views"), 0) FROM "articles") AS "views",
			(SELECT COUNT(*) FROM "polls") AS "polls",
			(SELECT COUNT(*) FROM "pollVotes") AS "votes"`)

	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

package db

import (
	"context"
	"testing"

	"github.com/go-pg/pg/v10"
)

func withTx(t *testing.T) (*pg.Tx, context.Context, *Repository) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := New(tx)
	return tx, ctx, repo
}

func assertSortedByPublishedAt(t *testing.T, articles []Article) {
	t.Helper()
	for i := 1; i < len(articles); i++ {
		if articles[i].PublishedAt.After(articles[i-1].PublishedAt) {
			t.Errorf("articles not sorted by publishedAt DESC at %d: %v after %v",
				i, articles[i].PublishedAt, articles[i-1].PublishedAt)
		}
	}
}

func articleIDs(articles []Article) []int {
	ids := make([]int, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
	}
	return ids
}

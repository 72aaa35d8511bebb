package db

import (
	"context"
	"fmt"
)

// SubscriberByEmail returns the subscriber regardless of its subscription state, or nil.
func (r *Repository) SubscriberByEmail(ctx context.Context, email string) (*Subscriber, error) {
	subscriber := &Subscriber{}
	err := r.db.ModelContext(ctx, subscriber).
		Where(`LOWER("t"."email") = LOWER(?)`, email).
		Select()

	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get subscriber by email: %w", err)
	}

	return subscriber, nil
}

func (r *Repository) Subscribers(ctx context.Context, f SubscriberFilter, p Pager) ([]Subscriber, error) {
	subscribers := []Subscriber{}
	err := r.db.ModelContext(ctx, &subscribers).
		Apply(f.Apply).
		OrderExpr(`"t"."subscribedAt" DESC, "t"."id" DESC`).
		Limit(p.limit()).
		Offset(p.Offset).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}

	return subscribers, nil
}

func (r *Repository) SubscribersCount(ctx context.Context, f SubscriberFilter) (int, error) {
	count, err := r.db.ModelContext(ctx, (*Subscriber)(nil)).Apply(f.Apply).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get subscribers count: %w", err)
	}

	return count, nil
}

func (r *Repository) AddSubscriber(ctx context.Context, subscriber *Subscriber) (*Subscriber, error) {
	_, err := r.db.ModelContext(ctx, subscriber).Returning("*").Insert()
	if err != nil {
		return nil, fmt.Errorf("failed to insert subscriber: %w", err)
	}

	return subscriber, nil
}

// Resubscribe clears the unsubscribe marker. The name is replaced only when given.
func (r *Repository) Resubscribe(ctx context.Context, id int, name *string) error {
	q := r.db.ModelContext(ctx, (*Subscriber)(nil)).
		Set(`"unsubscribedAt" = NULL`).
		Set(`"subscribedAt" = NOW()`)

	if name != nil {
		q = q.Set(`"name" = ?`, *name)
	}

	_, err := q.Where(`"t"."id" = ?`, id).Update()
	if err != nil {
		return fmt.Errorf("failed to resubscribe: %w", err)
	}

	return nil
}

// Unsubscribe soft-deletes an active subscriber and reports whether a row changed.
func (r *Repository) Unsubscribe(ctx context.Context, email string) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Subscriber)(nil)).
		Set(`"unsubscribedAt" = NOW()`).
		Where(`LOWER("t"."email") = LOWER(?)`, email).
		Where(`"t"."unsubscribedAt" IS NULL`).
		Update()

	if err != nil {
		return false, fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

func (r *Repository) DeleteSubscriber(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Subscriber)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete subscriber: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

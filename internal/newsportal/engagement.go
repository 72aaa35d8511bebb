package newsportal

import (
	"context"
	"fmt"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

const maxCommentsPerArticle = 100

// Subscribe adds the email to the newsletter or reactivates an unsubscribed one.
func (m *Manager) Subscribe(ctx context.Context, email string, name *string) (SubscribeResult, error) {
	email = normalizeEmail(email)

	existing, err := m.db.SubscriberByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("db get subscriber: %w", err)
	}

	switch {
	case existing == nil:
		_, err = m.db.AddSubscriber(ctx, &db.Subscriber{Email: email, Name: name})
		if db.IsUniqueViolation(err) {
			return "", ErrAlreadySubscribed
		} else if err != nil {
			return "", fmt.Errorf("db add subscriber: %w", err)
		}
		return Subscribed, nil
	case existing.UnsubscribedAt != nil:
		if err := m.db.Resubscribe(ctx, existing.ID, name); err != nil {
			return "", fmt.Errorf("db resubscribe: %w", err)
		}
		return Resubscribed, nil
	}

	return "", ErrAlreadySubscribed
}

// Unsubscribe marks the subscriber inactive. Repeating it is not an error.
func (m *Manager) Unsubscribe(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	changed, err := m.db.Unsubscribe(ctx, email)
	if err != nil {
		return fmt.Errorf("db unsubscribe: %w", err)
	} else if changed {
		return nil
	}

	existing, err := m.db.SubscriberByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("db get subscriber: %w", err)
	} else if existing == nil {
		return ErrNotFound
	}

	return nil
}

// IsSubscribed reports whether the email has an active subscription.
func (m *Manager) IsSubscribed(ctx context.Context, email string) (bool, error) {
	subscriber, err := m.db.SubscriberByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, fmt.Errorf("db get subscriber: %w", err)
	}

	return subscriber != nil && subscriber.UnsubscribedAt == nil, nil
}

func (m *Manager) activeSubscriber(ctx context.Context, email string) (*db.Subscriber, error) {
	subscriber, err := m.db.SubscriberByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("db get subscriber: %w", err)
	} else if subscriber == nil || subscriber.UnsubscribedAt != nil {
		return nil, ErrNotSubscribed
	}

	return subscriber, nil
}

func (m *Manager) ensureArticle(ctx context.Context, articleID int) error {
	exists, err := m.db.ArticleExists(ctx, articleID)
	if err != nil {
		return fmt.Errorf("db check article: %w", err)
	} else if !exists {
		return ErrNotFound
	}
	return nil
}

// Comments returns approved comments of the article, newest first.
func (m *Manager) Comments(ctx context.Context, articleID int) (Comments, error) {
	approved := true
	list, err := m.db.Comments(ctx, db.CommentFilter{ArticleID: articleID, Approved: &approved}, db.Pager{Limit: maxCommentsPerArticle})
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	return NewComments(list), nil
}

// AddComment stores a plain text comment from an active subscriber.
func (m *Manager) AddComment(ctx context.Context, articleID int, email, content string) (*Comment, error) {
	content = m.sanitizer.PlainText(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment is empty", ErrInvalidInput)
	}

	if err := m.ensureArticle(ctx, articleID); err != nil {
		return nil, err
	}

	subscriber, err := m.activeSubscriber(ctx, email)
	if err != nil {
		return nil, err
	}

	comment, err := m.db.AddComment(ctx, &db.Comment{
		ArticleID:    articleID,
		SubscriberID: subscriber.ID,
		Content:      content,
		IsApproved:   m.opts.AutoApproveComments,
	})
	if db.IsForeignKeyViolation(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("db add comment: %w", err)
	}

	comment.Subscriber = subscriber
	return NewComment(comment), nil
}

// LikeStatus returns the like count and, when email is given, whether that subscriber liked it.
func (m *Manager) LikeStatus(ctx context.Context, articleID int, email string) (LikeStatus, error) {
	var status LikeStatus

	count, err := m.db.ArticleLikesCount(ctx, articleID)
	if err != nil {
		return status, fmt.Errorf("db count likes: %w", err)
	}
	status.Count = count

	if email == "" {
		return status, nil
	}

	subscriber, err := m.db.SubscriberByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return status, fmt.Errorf("db get subscriber: %w", err)
	} else if subscriber == nil {
		return status, nil
	}

	status.Liked, err = m.db.HasLiked(ctx, articleID, subscriber.ID)
	if err != nil {
		return status, fmt.Errorf("db check like: %w", err)
	}

	return status, nil
}

// ToggleLike likes the article or takes the like back.
func (m *Manager) ToggleLike(ctx context.Context, articleID int, email string) (LikeStatus, error) {
	var status LikeStatus

	if err := m.ensureArticle(ctx, articleID); err != nil {
		return status, err
	}

	subscriber, err := m.activeSubscriber(ctx, email)
	if err != nil {
		return status, err
	}

	status.Liked, err = m.db.ToggleArticleLike(ctx, articleID, subscriber.ID)
	if db.IsForeignKeyViolation(err) {
		return status, ErrNotFound
	} else if err != nil {
		return status, fmt.Errorf("db toggle like: %w", err)
	}

	status.Count, err = m.db.ArticleLikesCount(ctx, articleID)
	if err != nil {
		return status, fmt.Errorf("db count likes: %w", err)
	}

	return status, nil
}

package db

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	PollStatusActive = "active"
	PollStatusClosed = "closed"
	PollStatusDraft  = "draft"

	PollTypeVoting     = "voting"
	PollTypeNomination = "nomination"
)

func orderedOptions(q *orm.Query) (*orm.Query, error) {
	return q.OrderExpr(`"t"."orderNumber" ASC, "t"."id" ASC`), nil
}

// Polls returns polls with their options, newest first.
func (r *Repository) Polls(ctx context.Context, f PollFilter) ([]Poll, error) {
	polls := []Poll{}
	err := r.db.ModelContext(ctx, &polls).
		Relation(Columns.Poll.Options, orderedOptions).
		Apply(f.Apply).
		OrderExpr(`"t"."createdAt" DESC, "t"."id" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query polls: %w", err)
	}

	return polls, nil
}

func (r *Repository) PollByID(ctx context.Context, id int) (*Poll, error) {
	poll := &Poll{}
	err := r.db.ModelContext(ctx, poll).
		Relation(Columns.Poll.Options, orderedOptions).
		Where(`"t"."id" = ?`, id).
		Select()

	if notFound(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}

	return poll, nil
}

// AddPoll inserts the poll and its options.
func (r *Repository) AddPoll(ctx context.Context, poll *Poll) (*Poll, error) {
	err := r.InTransaction(ctx, func(tx *Repository) error {
		options := poll.Options
		if _, err := tx.db.ModelContext(ctx, poll).Returning("*").Insert(); err != nil {
			return fmt.Errorf("failed to insert poll: %w", err)
		}

		poll.Options = options
		for i := range poll.Options {
			poll.Options[i].PollID = poll.ID
			poll.Options[i].VotesCount = 0
		}

		if len(poll.Options) == 0 {
			return nil
		}

		if _, err := tx.db.ModelContext(ctx, &poll.Options).Returning("*").Insert(); err != nil {
			return fmt.Errorf("failed to insert poll options: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return poll, nil
}

// UpdatePoll applies the patch and, when options is not nil, syncs the option set:
// options with an id are updated, options without one are added, missing ones are removed
// together with their votes.
func (r *Repository) UpdatePoll(ctx context.Context, id int, patch PollPatch, options []PollOption) (bool, error) {
	found := false
	err := r.InTransaction(ctx, func(tx *Repository) error {
		exists, err := tx.db.ModelContext(ctx, (*Poll)(nil)).Where(`"t"."id" = ?`, id).Exists()
		if err != nil {
			return fmt.Errorf("failed to check poll: %w", err)
		} else if !exists {
			return nil
		}
		found = true

		if !patch.IsEmpty() {
			_, err = tx.db.ModelContext(ctx, (*Poll)(nil)).
				Apply(patch.Apply).
				Where(`"t"."id" = ?`, id).
				Update()
			if err != nil {
				return fmt.Errorf("failed to update poll: %w", err)
			}
		}

		if options == nil {
			return nil
		}

		return tx.syncPollOptions(ctx, id, options)
	})

	return found, err
}

func (r *Repository) syncPollOptions(ctx context.Context, pollID int, options []PollOption) error {
	keep := []int{}
	for _, o := range options {
		if o.ID > 0 {
			keep = append(keep, o.ID)
		}
	}

	q := r.db.ModelContext(ctx, (*PollOption)(nil)).Where(`"t"."pollId" = ?`, pollID)
	if len(keep) > 0 {
		q = q.Where(`"t"."id" NOT IN (?)`, pg.In(keep))
	}
	if _, err := q.Delete(); err != nil {
		return fmt.Errorf("failed to delete poll options: %w", err)
	}

	for i := range options {
		o := options[i]
		o.PollID = pollID
		if o.ID == 0 {
			if _, err := r.db.ModelContext(ctx, &o).Insert(); err != nil {
				return fmt.Errorf("failed to insert poll option: %w", err)
			}
			continue
		}

		_, err := r.db.ModelContext(ctx, &o).
			Column(Columns.PollOption.Title, Columns.PollOption.Description, Columns.PollOption.ImageURL, Columns.PollOption.OrderNumber).
			Where(`"t"."id" = ?`, o.ID).
			Where(`"t"."pollId" = ?`, pollID).
			Update()
		if err != nil {
			return fmt.Errorf("failed to update poll option: %w", err)
		}
	}

	return nil
}

func (r *Repository) DeletePoll(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ModelContext(ctx, (*Poll)(nil)).
		Where(`"t"."id" = ?`, id).
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete poll: %w", err)
	}

	return res.RowsAffected() > 0, nil
}

// AddPollVote records a vote and increments the option counter in one statement.
// It returns false when the phone already voted in this poll.
func (r *Repository) AddPollVote(ctx context.Context, pollID, optionID int, phone string) (int, bool, error) {
	var votes int
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&votes), `
		WITH "vote" AS (
			INSERT INTO "pollVotes" ("pollId", "optionId", "phone")
			VALUES (?, ?, ?)
			ON CONFLICT ("pollId", "phone") DO NOTHING
			RETURNING "optionId"
		)
		UPDATE "pollOptions" SET "votesCount" = "votesCount" + 1
		FROM "vote"
		WHERE "pollOptions"."id" = "vote"."optionId"
		RETURNING "pollOptions"."votesCount"`, pollID, optionID, phone)

	if notFound(err) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("failed to add poll vote: %w", err)
	}

	return votes, true, nil
}

func (r *Repository) HasVoted(ctx context.Context, pollID int, phone string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*PollVote)(nil)).
		Where(`"t"."pollId" = ?`, pollID).
		Where(`"t"."phone" = ?`, phone).
		Exists()

	if err != nil {
		return false, fmt.Errorf("failed to check poll vote: %w", err)
	}

	return exists, nil
}

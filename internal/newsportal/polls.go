package newsportal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

var publicPollStatuses = []string{db.PollStatusActive, db.PollStatusClosed}

// Polls returns active and closed polls. Vote counts are hidden unless published.
func (m *Manager) Polls(ctx context.Context) (Polls, error) {
	list, err := m.db.Polls(ctx, db.PollFilter{Statuses: publicPollStatuses})
	if err != nil {
		return nil, fmt.Errorf("db get polls: %w", err)
	}

	polls := NewPolls(list)
	for i := range polls {
		polls[i].hideResults()
	}

	return polls, nil
}

// PollByID returns a non-draft poll with its options, or nil.
func (m *Manager) PollByID(ctx context.Context, id int) (*Poll, error) {
	p, err := m.db.PollByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get poll: %w", err)
	} else if p == nil || p.Status == db.PollStatusDraft {
		return nil, nil
	}

	poll := NewPoll(p)
	poll.hideResults()
	return poll, nil
}

// Vote records one vote per phone number for an open poll.
func (m *Manager) Vote(ctx context.Context, pollID, optionID int, phone string) (*Poll, error) {
	phone, err := normalizePhone(phone)
	if err != nil {
		return nil, err
	}

	p, err := m.db.PollByID(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("db get poll: %w", err)
	} else if p == nil || p.Status == db.PollStatusDraft {
		return nil, ErrNotFound
	}

	if p.Status != db.PollStatusActive || (p.EndDate != nil && m.now().After(*p.EndDate)) {
		return nil, ErrPollClosed
	}

	if !hasOption(p, optionID) {
		return nil, ErrInvalidOption
	}

	_, ok, err := m.db.AddPollVote(ctx, pollID, optionID, phone)
	if err != nil {
		return nil, fmt.Errorf("db add vote: %w", err)
	} else if !ok {
		return nil, ErrAlreadyVoted
	}

	return m.PollByID(ctx, pollID)
}

func hasOption(p *db.Poll, optionID int) bool {
	for _, o := range p.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// AdminPolls returns every poll with real vote counts.
func (m *Manager) AdminPolls(ctx context.Context) (Polls, error) {
	list, err := m.db.Polls(ctx, db.PollFilter{})
	if err != nil {
		return nil, fmt.Errorf("db get polls: %w", err)
	}

	return NewPolls(list), nil
}

func (m *Manager) AdminPollByID(ctx context.Context, id int) (*Poll, error) {
	p, err := m.db.PollByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get poll: %w", err)
	}

	return NewPoll(p), nil
}

func (m *Manager) CreatePoll(ctx context.Context, in PollInput) (*Poll, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Type == "" {
		in.Type = db.PollTypeVoting
	}
	if in.Status == "" {
		in.Status = db.PollStatusDraft
	}

	if err := validatePoll(in.Title, in.Type, in.Status); err != nil {
		return nil, err
	}
	if len(in.Options) == 0 {
		return nil, fmt.Errorf("%w: poll needs at least one option", ErrInvalidInput)
	}
	if err := validateOptions(in.Options); err != nil {
		return nil, err
	}

	p, err := m.db.AddPoll(ctx, &db.Poll{
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Status:      in.Status,
		ShowResults: in.ShowResults,
		EndDate:     in.EndDate,
		Options:     newPollOptions(in.Options),
	})
	if err != nil {
		return nil, fmt.Errorf("db add poll: %w", err)
	}

	return NewPoll(p), nil
}

func (m *Manager) UpdatePoll(ctx context.Context, id int, in PollUpdate) (*Poll, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		in.Title = &title
	}
	if in.Type != nil && !validPollType(*in.Type) {
		return nil, fmt.Errorf("%w: unknown poll type %q", ErrInvalidInput, *in.Type)
	}
	if in.Status != nil && !validPollStatus(*in.Status) {
		return nil, fmt.Errorf("%w: unknown poll status %q", ErrInvalidInput, *in.Status)
	}
	if err := validateOptions(in.Options); err != nil {
		return nil, err
	}

	found, err := m.db.UpdatePoll(ctx, id, in.patch(), newPollOptions(in.Options))
	if err != nil {
		return nil, fmt.Errorf("db update poll: %w", err)
	} else if !found {
		return nil, ErrNotFound
	}

	return m.AdminPollByID(ctx, id)
}

func (m *Manager) DeletePoll(ctx context.Context, id int) error {
	found, err := m.db.DeletePoll(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete poll: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

func validatePoll(title, kind, status string) error {
	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case !validPollType(kind):
		return fmt.Errorf("%w: unknown poll type %q", ErrInvalidInput, kind)
	case !validPollStatus(status):
		return fmt.Errorf("%w: unknown poll status %q", ErrInvalidInput, status)
	}
	return nil
}

func validPollType(kind string) bool {
	return kind == db.PollTypeVoting || kind == db.PollTypeNomination
}

func validPollStatus(status string) bool {
	switch status {
	case db.PollStatusActive, db.PollStatusClosed, db.PollStatusDraft:
		return true
	}
	return false
}

func validateOptions(options []PollOptionInput) error {
	for i, o := range options {
		if strings.TrimSpace(o.Title) == "" {
			return fmt.Errorf("%w: option %d has no title", ErrInvalidInput, i+1)
		}
	}
	return nil
}

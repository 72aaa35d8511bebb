package newsportal

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("active subscription required")
	ErrSlugTaken         = errors.New("slug already exists")
	ErrInvalidReference  = errors.New("referenced category or author does not exist")
	ErrPollClosed        = errors.New("poll is not accepting votes")
	ErrAlreadyVoted      = errors.New("this phone number has already voted")
	ErrInvalidOption     = errors.New("option does not belong to poll")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidInput      = errors.New("invalid input")
)

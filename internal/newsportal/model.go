package newsportal

import (
	"time"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

type Category struct {
	db.Category
}

type Author struct {
	db.Author
}

type Article struct {
	db.Article
	Category *Category
	Author   *Author
}

type Subscriber struct {
	db.Subscriber
}

// Active reports whether the subscriber has not unsubscribed.
func (s Subscriber) Active() bool {
	return s.UnsubscribedAt == nil
}

type Comment struct {
	db.Comment
	SubscriberName string
	ArticleTitle   string
	ArticleSlug    string
}

type LikeStatus struct {
	Count int
	Liked bool
}

type PollOption struct {
	db.PollOption
}

type Poll struct {
	db.Poll
	Options    []PollOption
	TotalVotes int
	// ResultsHidden is set when vote counts were zeroed for public display.
	ResultsHidden bool
}

type Stats struct {
	db.Stats
	TopArticles []Article
}

// SubscribeResult is the outcome of a subscribe request.
type SubscribeResult string

const (
	Subscribed   SubscribeResult = "Subscribed!"
	Resubscribed SubscribeResult = "Re-subscribed!"
)

// ArticleInput is an article draft. Slug and ReadingTime are derived when empty.
type ArticleInput struct {
	Title         string
	Slug          string
	Excerpt       *string
	Content       string
	FeaturedImage *string
	CategoryID    *int
	AuthorID      *int
	PublishedAt   *time.Time
	ReadingTime   int
	IsFeatured    bool
	IsBreaking    bool
}

// ArticleUpdate is a partial article update, nil fields are left unchanged.
type ArticleUpdate struct {
	Title         *string
	Slug          *string
	Excerpt       *string
	Content       *string
	FeaturedImage *string
	CategoryID    *int
	AuthorID      *int
	PublishedAt   *time.Time
	ReadingTime   *int
	IsFeatured    *bool
	IsBreaking    *bool
}

type CategoryInput struct {
	Name        string
	Slug        string
	Description *string
}

type CategoryUpdate struct {
	Name        *string
	Slug        *string
	Description *string
}

type AuthorInput struct {
	Name      string
	Bio       *string
	AvatarURL *string
}

type AuthorUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

type PollOptionInput struct {
	ID          int
	Title       string
	Description *string
	ImageURL    *string
}

type PollInput struct {
	Title       string
	Description *string
	Type        string
	Status      string
	ShowResults bool
	EndDate     *time.Time
	Options     []PollOptionInput
}

type PollUpdate struct {
	Title       *string
	Description *string
	Type        *string
	Status      *string
	ShowResults *bool
	EndDate     *time.Time
	// Options replaces the option set when not nil.
	Options []PollOptionInput
}

// ArticleQuery is the public article list request.
type ArticleQuery struct {
	CategoryID   int
	CategorySlug string
	AuthorID     int
	Featured     bool
	Breaking     bool
	Trending     bool
	Limit        int
	Page         int
}

func (q ArticleQuery) filter() db.ArticleFilter {
	return db.ArticleFilter{
		CategoryID:   q.CategoryID,
		CategorySlug: q.CategorySlug,
		AuthorID:     q.AuthorID,
		OnlyFeatured: q.Featured,
		OnlyBreaking: q.Breaking,
		Trending:     q.Trending,
		Published:    true,
	}
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

func pager(limit, page int) db.Pager {
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	p := db.Pager{Limit: limit}
	if page > 1 {
		p.Offset = (page - 1) * limit
	}
	return p
}

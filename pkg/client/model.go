package client

import "time"

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Author struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is a list item or a full article. Content is empty in lists.
type Article struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       string    `json:"content"`
	FeaturedImage *string   `json:"featured_image"`
	CategoryID    *int      `json:"category_id"`
	AuthorID      *int      `json:"author_id"`
	PublishedAt   time.Time `json:"published_at"`
	ReadingTime   int       `json:"reading_time"`
	Views         int       `json:"views"`
	IsFeatured    bool      `json:"is_featured"`
	IsBreaking    bool      `json:"is_breaking"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category"`
	Author        *Author   `json:"author"`
}

type Comment struct {
	ID              int       `json:"id"`
	ArticleID       int       `json:"article_id"`
	Content         string    `json:"content"`
	IsApproved      bool      `json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
	SubscriberName  string    `json:"subscriber_name"`
	SubscriberEmail string    `json:"subscriber_email"`
	ArticleTitle    string    `json:"article_title"`
	ArticleSlug     string    `json:"article_slug"`
}

type Subscriber struct {
	ID             int        `json:"id"`
	Email          string     `json:"email"`
	Name           *string    `json:"name"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	Active         bool       `json:"active"`
}

type PollOption struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	VotesCount  int     `json:"votes_count"`
	OrderNumber int     `json:"order_number"`
}

type Poll struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Description   *string      `json:"description"`
	Type          string       `json:"type"`
	Status        string       `json:"status"`
	ShowResults   bool         `json:"show_results"`
	EndDate       *time.Time   `json:"end_date"`
	CreatedAt     time.Time    `json:"created_at"`
	Options       []PollOption `json:"options"`
	TotalVotes    int          `json:"total_votes"`
	ResultsHidden bool         `json:"results_hidden"`
}

type Stats struct {
	Articles          int       `json:"articles"`
	Categories        int       `json:"categories"`
	Authors           int       `json:"authors"`
	Subscribers       int       `json:"subscribers"`
	ActiveSubscribers int       `json:"active_subscribers"`
	Comments          int       `json:"comments"`
	PendingComments   int       `json:"pending_comments"`
	Likes             int       `json:"likes"`
	Views             int       `json:"views"`
	Polls             int       `json:"polls"`
	Votes             int       `json:"votes"`
	TopArticles       []Article `json:"top_articles"`
}

type LikeStatus struct {
	Count int  `json:"count"`
	Liked bool `json:"liked"`
}

type UploadResult struct {
	URL    string `json:"url"`
	FileID string `json:"file_id"`
	Name   string `json:"name"`
}

type message struct {
	Message string `json:"message"`
}

// ArticlesParams filters the public article list. Zero fields are not sent.
type ArticlesParams struct {
	CategoryID   int
	CategorySlug string
	AuthorID     int
	Featured     bool
	Trending     bool
	Breaking     bool
	Limit        int
	Page         int
}

func (p ArticlesParams) query() query {
	return query{}.
		int("category_id", p.CategoryID).
		str("category", p.CategorySlug).
		int("author_id", p.AuthorID).
		flag("featured", p.Featured).
		flag("trending", p.Trending).
		flag("breaking", p.Breaking).
		int("limit", p.Limit).
		int("page", p.Page)
}

type AdminArticlesParams struct {
	Query      string
	CategoryID int
	AuthorID   int
	Limit      int
	Page       int
}

func (p AdminArticlesParams) query() query {
	return query{}.
		str("q", p.Query).
		int("category_id", p.CategoryID).
		int("author_id", p.AuthorID).
		int("limit", p.Limit).
		int("page", p.Page)
}

type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ArticleInput creates an article. Slug and ReadingTime are derived by the server when empty.
type ArticleInput struct {
	Title         string     `json:"title"`
	Slug          string     `json:"slug,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CategoryID    *int       `json:"category_id,omitempty"`
	AuthorID      *int       `json:"author_id,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ReadingTime   int        `json:"reading_time,omitempty"`
	IsFeatured    bool       `json:"is_featured"`
	IsBreaking    bool       `json:"is_breaking"`
}

// ArticlePatch changes only the non-nil fields.
type ArticlePatch struct {
	Title         *string    `json:"title,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       *string    `json:"content,omitempty"`
	FeaturedImage *string    `json:"featured_image,omitempty"`
	CategoryID    *int       `json:"category_id,omitempty"`
	AuthorID      *int       `json:"author_id,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ReadingTime   *int       `json:"reading_time,omitempty"`
	IsFeatured    *bool      `json:"is_featured,omitempty"`
	IsBreaking    *bool      `json:"is_breaking,omitempty"`
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CategoryPatch struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type AuthorInput struct {
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type AuthorPatch struct {
	Name      *string `json:"name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type PollOptionInput struct {
	ID          int     `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

type PollInput struct {
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Type        string            `json:"type,omitempty"`
	Status      string            `json:"status,omitempty"`
	ShowResults bool              `json:"show_results"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	Options     []PollOptionInput `json:"options"`
}

// PollPatch changes only the non-nil fields. Options, when set, replace the option list.
type PollPatch struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Type        *string           `json:"type,omitempty"`
	Status      *string           `json:"status,omitempty"`
	ShowResults *bool             `json:"show_results,omitempty"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	Options     []PollOptionInput `json:"options,omitempty"`
}

package rest

import (
	"strconv"
	"time"
)

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

type Article struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       *string   `json:"excerpt"`
	Content       string    `json:"content,omitempty"`
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

	Category *Category `json:"category,omitempty"`
	Author   *Author   `json:"author,omitempty"`
}

type Comment struct {
	ID             int       `json:"id"`
	ArticleID      int       `json:"article_id"`
	Content        string    `json:"content"`
	IsApproved     bool      `json:"is_approved"`
	CreatedAt      time.Time `json:"created_at"`
	SubscriberName string    `json:"subscriber_name"`

	SubscriberEmail string `json:"subscriber_email,omitempty"`
	ArticleTitle    string `json:"article_title,omitempty"`
	ArticleSlug     string `json:"article_slug,omitempty"`
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

type ViewsResponse struct {
	Views int `json:"views"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SubscriptionStatus struct {
	Subscribed bool `json:"subscribed"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

type UploadResponse struct {
	URL    string `json:"url"`
	FileID string `json:"file_id,omitempty"`
	Name   string `json:"name,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Requests.

type SubscribeRequest struct {
	Email string  `json:"email" validate:"required,email,max=255"`
	Name  *string `json:"name" validate:"omitempty,max=100"`
}

type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CommentRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Content string `json:"content" validate:"required,max=5000"`
}

type VoteRequest struct {
	OptionID int    `json:"option_id" validate:"required,gt=0"`
	Phone    string `json:"phone" validate:"required,max=32"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ArticleRequest struct {
	Title         string     `json:"title" validate:"required,max=255"`
	Slug          string     `json:"slug" validate:"omitempty,max=255"`
	Excerpt       *string    `json:"excerpt" validate:"omitempty,max=1000"`
	Content       string     `json:"content"`
	FeaturedImage *string    `json:"featured_image" validate:"omitempty,max=1000"`
	CategoryID    *int       `json:"category_id" validate:"omitempty,gt=0"`
	AuthorID      *int       `json:"author_id" validate:"omitempty,gt=0"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadingTime   int        `json:"reading_time" validate:"gte=0"`
	IsFeatured    bool       `json:"is_featured"`
	IsBreaking    bool       `json:"is_breaking"`
}

type ArticlePatchRequest struct {
	Title         *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Slug          *string    `json:"slug" validate:"omitempty,min=1,max=255"`
	Excerpt       *string    `json:"excerpt" validate:"omitempty,max=1000"`
	Content       *string    `json:"content"`
	FeaturedImage *string    `json:"featured_image" validate:"omitempty,max=1000"`
	CategoryID    *int       `json:"category_id" validate:"omitempty,gt=0"`
	AuthorID      *int       `json:"author_id" validate:"omitempty,gt=0"`
	PublishedAt   *time.Time `json:"published_at"`
	ReadingTime   *int       `json:"reading_time" validate:"omitempty,gt=0"`
	IsFeatured    *bool      `json:"is_featured"`
	IsBreaking    *bool      `json:"is_breaking"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type CategoryPatchRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

type AuthorRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=1000"`
}

type AuthorPatchRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=1000"`
}

type PollOptionRequest struct {
	ID          int     `json:"id" validate:"gte=0"`
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=1000"`
}

type PollRequest struct {
	Title       string              `json:"title" validate:"required,max=255"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Type        string              `json:"type" validate:"omitempty,oneof=voting nomination"`
	Status      string              `json:"status" validate:"omitempty,oneof=active closed draft"`
	ShowResults bool                `json:"show_results"`
	EndDate     *time.Time          `json:"end_date"`
	Options     []PollOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type PollPatchRequest struct {
	Title       *string             `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string             `json:"description" validate:"omitempty,max=2000"`
	Type        *string             `json:"type" validate:"omitempty,oneof=voting nomination"`
	Status      *string             `json:"status" validate:"omitempty,oneof=active closed draft"`
	ShowResults *bool               `json:"show_results"`
	EndDate     *time.Time          `json:"end_date"`
	Options     []PollOptionRequest `json:"options" validate:"omitempty,min=1,dive"`
}

type UploadRequest struct {
	File     string `json:"file" validate:"required"`
	Filename string `json:"filename" validate:"max=255"`
}

// Query strings, decoded with urlstruct.

// queryFlag accepts a bare "?featured" as true.
type queryFlag bool

func (f *queryFlag) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*f = true
		return nil
	}

	v, err := strconv.ParseBool(string(b))
	if err != nil {
		return err
	}
	*f = queryFlag(v)
	return nil
}

type ArticlesQuery struct {
	CategoryID int       `urlstruct:"category_id"`
	Category   string    `urlstruct:"category"`
	AuthorID   int       `urlstruct:"author_id"`
	Featured   queryFlag `urlstruct:"featured"`
	Trending   queryFlag `urlstruct:"trending"`
	Breaking   queryFlag `urlstruct:"breaking"`
	Limit      int       `urlstruct:"limit"`
	Page       int       `urlstruct:"page"`
}

type RelatedQuery struct {
	CategoryID int `urlstruct:"category_id"`
	ExcludeID  int `urlstruct:"exclude_id"`
	Limit      int `urlstruct:"limit"`
}

type AdminArticlesQuery struct {
	Query      string `urlstruct:"q"`
	CategoryID int    `urlstruct:"category_id"`
	AuthorID   int    `urlstruct:"author_id"`
	Limit      int    `urlstruct:"limit"`
	Page       int    `urlstruct:"page"`
}

type AdminCommentsQuery struct {
	Approved optionalBool `urlstruct:"approved"`
	Limit    int          `urlstruct:"limit"`
	Page     int          `urlstruct:"page"`
}

type AdminSubscribersQuery struct {
	Active queryFlag `urlstruct:"active"`
	Email  string    `urlstruct:"email"`
	Limit  int       `urlstruct:"limit"`
	Page   int       `urlstruct:"page"`
}

// optionalBool distinguishes a missing filter from false.
type optionalBool struct {
	Value *bool
}

func (o *optionalBool) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		o.Value = nil
		return nil
	}

	v, err := strconv.ParseBool(string(b))
	if err != nil {
		return err
	}
	o.Value = &v
	return nil
}

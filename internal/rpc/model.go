package rpc

import (
	"time"

	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

type ArticleFilter struct {
	//categoryId optional category filter
	CategoryID *int `json:"categoryId,omitempty"`
	//category optional category slug filter
	Category *string `json:"category,omitempty"`
	//authorId optional author filter
	AuthorID *int `json:"authorId,omitempty"`
	//featured only featured articles
	Featured *bool `json:"featured,omitempty"`
	//trending order by views
	Trending *bool `json:"trending,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//pageSize=20 items per page
	PageSize *int `json:"pageSize,omitempty"`
}

func (f ArticleFilter) ToModel() newsportal.ArticleQuery {
	return newsportal.ArticleQuery{
		CategoryID:   deref(f.CategoryID),
		CategorySlug: deref(f.Category),
		AuthorID:     deref(f.AuthorID),
		Featured:     deref(f.Featured),
		Trending:     deref(f.Trending),
		Page:         deref(f.Page),
		Limit:        deref(f.PageSize),
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

type Category struct {
	CategoryID  int     `json:"categoryId"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

type Author struct {
	AuthorID  int     `json:"authorId"`
	Name      string  `json:"name"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

type Article struct {
	ArticleID     int       `json:"articleId"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	Content       string    `json:"content"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
	ReadingTime   int       `json:"readingTime"`
	Views         int       `json:"views"`
	IsFeatured    bool      `json:"isFeatured"`
	IsBreaking    bool      `json:"isBreaking"`
	Category      *Category `json:"category,omitempty"`
	Author        *Author   `json:"author,omitempty"`
}

type ArticleSummary struct {
	ArticleID     int       `json:"articleId"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	PublishedAt   time.Time `json:"publishedAt"`
	ReadingTime   int       `json:"readingTime"`
	Views         int       `json:"views"`
	IsFeatured    bool      `json:"isFeatured"`
	IsBreaking    bool      `json:"isBreaking"`
	Category      *Category `json:"category,omitempty"`
	Author        *Author   `json:"author,omitempty"`
}

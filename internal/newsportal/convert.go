package newsportal

import (
	"github.com/daniilsolovey/news-publisher/internal/db"
)

func NewCategory(c *db.Category) *Category {
	if c == nil {
		return nil
	}
	return &Category{Category: *c}
}

func NewAuthor(a *db.Author) *Author {
	if a == nil {
		return nil
	}
	return &Author{Author: *a}
}

func NewArticle(a *db.Article) *Article {
	if a == nil {
		return nil
	}

	return &Article{
		Article:  *a,
		Category: NewCategory(a.Category),
		Author:   NewAuthor(a.Author),
	}
}

func NewSubscriber(s *db.Subscriber) *Subscriber {
	if s == nil {
		return nil
	}
	return &Subscriber{Subscriber: *s}
}

func NewComment(c *db.Comment) *Comment {
	if c == nil {
		return nil
	}

	comment := &Comment{Comment: *c}
	if c.Subscriber != nil {
		comment.SubscriberName = displayName(c.Subscriber)
	}
	if c.Article != nil {
		comment.ArticleTitle = c.Article.Title
		comment.ArticleSlug = c.Article.Slug
	}

	return comment
}

// displayName falls back to the mailbox part of the address when no name is known.
func displayName(s *db.Subscriber) string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}

	for i := range s.Email {
		if s.Email[i] == '@' {
			return s.Email[:i]
		}
	}
	return s.Email
}

func NewPoll(p *db.Poll) *Poll {
	if p == nil {
		return nil
	}

	poll := &Poll{
		Poll:    *p,
		Options: make([]PollOption, len(p.Options)),
	}
	for i := range p.Options {
		poll.Options[i] = PollOption{PollOption: p.Options[i]}
		poll.TotalVotes += p.Options[i].VotesCount
	}

	return poll
}

// hideResults zeroes vote counts unless the poll publishes them.
func (p *Poll) hideResults() {
	if p.ShowResults || p.Status == db.PollStatusClosed {
		return
	}

	for i := range p.Options {
		p.Options[i].VotesCount = 0
	}
	p.TotalVotes = 0
	p.ResultsHidden = true
}

func (in ArticleInput) model() *db.Article {
	article := &db.Article{
		Title:         in.Title,
		Slug:          in.Slug,
		Excerpt:       in.Excerpt,
		Content:       in.Content,
		FeaturedImage: in.FeaturedImage,
		CategoryID:    in.CategoryID,
		AuthorID:      in.AuthorID,
		ReadingTime:   in.ReadingTime,
		IsFeatured:    in.IsFeatured,
		IsBreaking:    in.IsBreaking,
	}
	if in.PublishedAt != nil {
		article.PublishedAt = *in.PublishedAt
	}
	return article
}

func (u ArticleUpdate) patch() db.ArticlePatch {
	return db.ArticlePatch{
		Title:         u.Title,
		Slug:          u.Slug,
		Excerpt:       u.Excerpt,
		Content:       u.Content,
		FeaturedImage: u.FeaturedImage,
		CategoryID:    u.CategoryID,
		AuthorID:      u.AuthorID,
		PublishedAt:   u.PublishedAt,
		ReadingTime:   u.ReadingTime,
		IsFeatured:    u.IsFeatured,
		IsBreaking:    u.IsBreaking,
	}
}

func (u CategoryUpdate) patch() db.CategoryPatch {
	return db.CategoryPatch{Name: u.Name, Slug: u.Slug, Description: u.Description}
}

func (u AuthorUpdate) patch() db.AuthorPatch {
	return db.AuthorPatch{Name: u.Name, Bio: u.Bio, AvatarURL: u.AvatarURL}
}

func (u PollUpdate) patch() db.PollPatch {
	return db.PollPatch{
		Title:       u.Title,
		Description: u.Description,
		Type:        u.Type,
		Status:      u.Status,
		ShowResults: u.ShowResults,
		EndDate:     u.EndDate,
	}
}

func newPollOptions(in []PollOptionInput) []db.PollOption {
	if in == nil {
		return nil
	}

	options := make([]db.PollOption, len(in))
	for i, o := range in {
		options[i] = db.PollOption{
			ID:          o.ID,
			Title:       o.Title,
			Description: o.Description,
			ImageURL:    o.ImageURL,
			OrderNumber: i + 1,
		}
	}
	return options
}

package rest

import (
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewCategory(c newsportal.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

func NewAuthor(a newsportal.Author) Author {
	return Author{
		ID:        a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
	}
}

func NewArticle(a newsportal.Article) Article {
	article := Article{
		ID:            a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		FeaturedImage: a.FeaturedImage,
		CategoryID:    a.CategoryID,
		AuthorID:      a.AuthorID,
		PublishedAt:   a.PublishedAt,
		ReadingTime:   a.ReadingTime,
		Views:         a.Views,
		IsFeatured:    a.IsFeatured,
		IsBreaking:    a.IsBreaking,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if a.Category != nil {
		c := NewCategory(*a.Category)
		article.Category = &c
	}
	if a.Author != nil {
		au := NewAuthor(*a.Author)
		article.Author = &au
	}

	return article
}

func NewComment(c newsportal.Comment) Comment {
	return Comment{
		ID:             c.ID,
		ArticleID:      c.ArticleID,
		Content:        c.Content,
		IsApproved:     c.IsApproved,
		CreatedAt:      c.CreatedAt,
		SubscriberName: c.SubscriberName,
	}
}

// NewAdminComment adds the moderation context hidden from public readers.
func NewAdminComment(c newsportal.Comment) Comment {
	comment := NewComment(c)
	comment.ArticleTitle = c.ArticleTitle
	comment.ArticleSlug = c.ArticleSlug
	if c.Subscriber != nil {
		comment.SubscriberEmail = c.Subscriber.Email
	}
	return comment
}

func NewSubscriber(s newsportal.Subscriber) Subscriber {
	return Subscriber{
		ID:             s.ID,
		Email:          s.Email,
		Name:           s.Name,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
		Active:         s.Active(),
	}
}

func NewPollOption(o newsportal.PollOption) PollOption {
	return PollOption{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		ImageURL:    o.ImageURL,
		VotesCount:  o.VotesCount,
		OrderNumber: o.OrderNumber,
	}
}

func NewPoll(p newsportal.Poll) Poll {
	return Poll{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Type:          p.Type,
		Status:        p.Status,
		ShowResults:   p.ShowResults,
		EndDate:       p.EndDate,
		CreatedAt:     p.CreatedAt,
		Options:       Map(p.Options, NewPollOption),
		TotalVotes:    p.TotalVotes,
		ResultsHidden: p.ResultsHidden,
	}
}

func NewLikeStatus(s newsportal.LikeStatus) LikeStatus {
	return LikeStatus{Count: s.Count, Liked: s.Liked}
}

func NewStats(s newsportal.Stats) Stats {
	return Stats{
		Articles:          s.Articles,
		Categories:        s.Categories,
		Authors:           s.Authors,
		Subscribers:       s.Subscribers,
		ActiveSubscribers: s.ActiveSubscribers,
		Comments:          s.Comments,
		PendingComments:   s.PendingComments,
		Likes:             s.Likes,
		Views:             s.Views,
		Polls:             s.Polls,
		Votes:             s.Votes,
		TopArticles:       NewArticles(s.TopArticles),
	}
}

func (r ArticleRequest) input() newsportal.ArticleInput {
	return newsportal.ArticleInput{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		CategoryID:    r.CategoryID,
		AuthorID:      r.AuthorID,
		PublishedAt:   r.PublishedAt,
		ReadingTime:   r.ReadingTime,
		IsFeatured:    r.IsFeatured,
		IsBreaking:    r.IsBreaking,
	}
}

func (r ArticlePatchRequest) update() newsportal.ArticleUpdate {
	return newsportal.ArticleUpdate{
		Title:         r.Title,
		Slug:          r.Slug,
		Excerpt:       r.Excerpt,
		Content:       r.Content,
		FeaturedImage: r.FeaturedImage,
		CategoryID:    r.CategoryID,
		AuthorID:      r.AuthorID,
		PublishedAt:   r.PublishedAt,
		ReadingTime:   r.ReadingTime,
		IsFeatured:    r.IsFeatured,
		IsBreaking:    r.IsBreaking,
	}
}

func (r CategoryRequest) input() newsportal.CategoryInput {
	return newsportal.CategoryInput{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

func (r CategoryPatchRequest) update() newsportal.CategoryUpdate {
	return newsportal.CategoryUpdate{Name: r.Name, Slug: r.Slug, Description: r.Description}
}

func (r AuthorRequest) input() newsportal.AuthorInput {
	return newsportal.AuthorInput{Name: r.Name, Bio: r.Bio, AvatarURL: r.AvatarURL}
}

func (r AuthorPatchRequest) update() newsportal.AuthorUpdate {
	return newsportal.AuthorUpdate{Name: r.Name, Bio: r.Bio, AvatarURL: r.AvatarURL}
}

func newPollOptionInput(r PollOptionRequest) newsportal.PollOptionInput {
	return newsportal.PollOptionInput{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
	}
}

func (r PollRequest) input() newsportal.PollInput {
	return newsportal.PollInput{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Status:      r.Status,
		ShowResults: r.ShowResults,
		EndDate:     r.EndDate,
		Options:     Map(r.Options, newPollOptionInput),
	}
}

func (r PollPatchRequest) update() newsportal.PollUpdate {
	u := newsportal.PollUpdate{
		Title:       r.Title,
		Description: r.Description,
		Type:        r.Type,
		Status:      r.Status,
		ShowResults: r.ShowResults,
		EndDate:     r.EndDate,
	}
	if r.Options != nil {
		u.Options = Map(r.Options, newPollOptionInput)
	}
	return u
}

func (q ArticlesQuery) query() newsportal.ArticleQuery {
	return newsportal.ArticleQuery{
		CategoryID:   q.CategoryID,
		CategorySlug: q.Category,
		AuthorID:     q.AuthorID,
		Featured:     bool(q.Featured),
		Breaking:     bool(q.Breaking),
		Trending:     bool(q.Trending),
		Limit:        q.Limit,
		Page:         q.Page,
	}
}

func (q AdminArticlesQuery) query() newsportal.AdminArticleQuery {
	return newsportal.AdminArticleQuery{
		Query:      q.Query,
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
		Limit:      q.Limit,
		Page:       q.Page,
	}
}

package rest

import "github.com/daniilsolovey/news-publisher/internal/newsportal"

// List converters always return a non-nil slice so empty lists encode as [].

func NewArticles(in []newsportal.Article) []Article {
	return Map(in, NewArticle)
}

func NewCategories(in []newsportal.Category) []Category {
	return Map(in, NewCategory)
}

func NewAuthors(in []newsportal.Author) []Author {
	return Map(in, NewAuthor)
}

func NewComments(in []newsportal.Comment) []Comment {
	return Map(in, NewComment)
}

func NewAdminComments(in []newsportal.Comment) []Comment {
	return Map(in, NewAdminComment)
}

func NewSubscribers(in []newsportal.Subscriber) []Subscriber {
	return Map(in, NewSubscriber)
}

func NewPolls(in []newsportal.Poll) []Poll {
	return Map(in, NewPoll)
}

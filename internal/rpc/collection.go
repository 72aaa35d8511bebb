package rpc

import "github.com/daniilsolovey/news-publisher/internal/newsportal"

type (
	ArticleSummaries []ArticleSummary
	Categories       []Category
	Authors          []Author
)

func NewArticleSummaries(in newsportal.Articles) ArticleSummaries {
	out := make(ArticleSummaries, len(in))
	for i := range in {
		out[i] = NewArticleSummary(in[i])
	}
	return out
}

func NewCategories(in newsportal.Categories) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = NewCategory(in[i])
	}
	return out
}

func NewAuthors(in newsportal.Authors) Authors {
	out := make(Authors, len(in))
	for i := range in {
		out[i] = NewAuthor(in[i])
	}
	return out
}

package rpc

import "github.com/daniilsolovey/news-publisher/internal/newsportal"

func NewArticle(a newsportal.Article) Article {
	return Article{
		ArticleID:     a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		FeaturedImage: a.FeaturedImage,
		PublishedAt:   a.PublishedAt,
		ReadingTime:   a.ReadingTime,
		Views:         a.Views,
		IsFeatured:    a.IsFeatured,
		IsBreaking:    a.IsBreaking,
		Category:      newCategoryRef(a.Category),
		Author:        newAuthorRef(a.Author),
	}
}

func NewArticleSummary(a newsportal.Article) ArticleSummary {
	return ArticleSummary{
		ArticleID:     a.ID,
		Title:         a.Title,
		Slug:          a.Slug,
		Excerpt:       a.Excerpt,
		FeaturedImage: a.FeaturedImage,
		PublishedAt:   a.PublishedAt,
		ReadingTime:   a.ReadingTime,
		Views:         a.Views,
		IsFeatured:    a.IsFeatured,
		IsBreaking:    a.IsBreaking,
		Category:      newCategoryRef(a.Category),
		Author:        newAuthorRef(a.Author),
	}
}

func NewCategory(c newsportal.Category) Category {
	return Category{
		CategoryID:  c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func NewAuthor(a newsportal.Author) Author {
	return Author{
		AuthorID:  a.ID,
		Name:      a.Name,
		Bio:       a.Bio,
		AvatarURL: a.AvatarURL,
	}
}

func newCategoryRef(c *newsportal.Category) *Category {
	if c == nil {
		return nil
	}
	category := NewCategory(*c)
	return &category
}

func newAuthorRef(a *newsportal.Author) *Author {
	if a == nil {
		return nil
	}
	author := NewAuthor(*a)
	return &author
}

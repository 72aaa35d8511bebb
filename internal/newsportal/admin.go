package newsportal

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

const topArticlesLimit = 5

// AdminArticleQuery lists articles for the console, scheduled ones included.
type AdminArticleQuery struct {
	Query      string
	CategoryID int
	AuthorID   int
	Limit      int
	Page       int
}

func (q AdminArticleQuery) filter() db.ArticleFilter {
	return db.ArticleFilter{
		Query:      strings.TrimSpace(q.Query),
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
	}
}

func (m *Manager) AdminArticles(ctx context.Context, q AdminArticleQuery) (Articles, int, error) {
	list, err := m.db.Articles(ctx, q.filter(), pager(q.Limit, q.Page))
	if err != nil {
		return nil, 0, fmt.Errorf("db get articles: %w", err)
	}

	count, err := m.db.ArticlesCount(ctx, q.filter())
	if err != nil {
		return nil, 0, fmt.Errorf("db get articles count: %w", err)
	}

	return NewArticles(list), count, nil
}

func (m *Manager) AdminArticleByID(ctx context.Context, id int) (*Article, error) {
	article, err := m.db.ArticleByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get article: %w", err)
	}

	return NewArticle(article), nil
}

// CreateArticle stores a new article. The slug is derived from the title and the
// reading time from the content when they are not given.
func (m *Manager) CreateArticle(ctx context.Context, in ArticleInput) (*Article, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if in.Slug == "" {
		in.Slug = in.Title
	}
	in.Slug = Slugify(in.Slug)
	if in.Slug == "" {
		return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}

	in.Content = m.articleHTML(in.Content)
	if in.ReadingTime <= 0 {
		in.ReadingTime = m.sanitizer.ReadingTime(in.Content)
	}

	article, err := m.db.AddArticle(ctx, in.model())
	if err := articleWriteError(err); err != nil {
		return nil, err
	}

	return m.AdminArticleByID(ctx, article.ID)
}

// UpdateArticle changes only the given fields.
func (m *Manager) UpdateArticle(ctx context.Context, id int, in ArticleUpdate) (*Article, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		in.Title = &title
	}

	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
		}
		in.Slug = &slug
	}

	if in.Content != nil {
		content := m.articleHTML(*in.Content)
		in.Content = &content
		if in.ReadingTime == nil {
			minutes := m.sanitizer.ReadingTime(content)
			in.ReadingTime = &minutes
		}
	}

	found, err := m.db.UpdateArticle(ctx, id, in.patch())
	if err := articleWriteError(err); err != nil {
		return nil, err
	} else if !found {
		return nil, ErrNotFound
	}

	return m.AdminArticleByID(ctx, id)
}

func articleWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return ErrSlugTaken
	case db.IsForeignKeyViolation(err):
		return ErrInvalidReference
	}
	return fmt.Errorf("db write article: %w", err)
}

func (m *Manager) DeleteArticle(ctx context.Context, id int) error {
	found, err := m.db.DeleteArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete article: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) CategoryByID(ctx context.Context, id int) (*Category, error) {
	category, err := m.db.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get category: %w", err)
	}

	return NewCategory(category), nil
}

func (m *Manager) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if in.Slug == "" {
		in.Slug = in.Name
	}
	in.Slug = Slugify(in.Slug)
	if in.Slug == "" {
		return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}

	category, err := m.db.AddCategory(ctx, &db.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if db.IsUniqueViolation(err) {
		return nil, ErrSlugTaken
	} else if err != nil {
		return nil, fmt.Errorf("db add category: %w", err)
	}

	return NewCategory(category), nil
}

func (m *Manager) UpdateCategory(ctx context.Context, id int, in CategoryUpdate) (*Category, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if in.Slug != nil {
		slug := Slugify(*in.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
		}
		in.Slug = &slug
	}

	category, err := m.db.UpdateCategory(ctx, id, in.patch())
	if db.IsUniqueViolation(err) {
		return nil, ErrSlugTaken
	} else if err != nil {
		return nil, fmt.Errorf("db update category: %w", err)
	} else if category == nil {
		return nil, ErrNotFound
	}

	return NewCategory(category), nil
}

// DeleteCategory removes the category. Its articles stay without a category.
func (m *Manager) DeleteCategory(ctx context.Context, id int) error {
	found, err := m.db.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete category: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) CreateAuthor(ctx context.Context, in AuthorInput) (*Author, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	author, err := m.db.AddAuthor(ctx, &db.Author{
		Name:      in.Name,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("db add author: %w", err)
	}

	return NewAuthor(author), nil
}

func (m *Manager) UpdateAuthor(ctx context.Context, id int, in AuthorUpdate) (*Author, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	author, err := m.db.UpdateAuthor(ctx, id, in.patch())
	if err != nil {
		return nil, fmt.Errorf("db update author: %w", err)
	} else if author == nil {
		return nil, ErrNotFound
	}

	return NewAuthor(author), nil
}

// DeleteAuthor removes the author. Their articles stay without an author.
func (m *Manager) DeleteAuthor(ctx context.Context, id int) error {
	found, err := m.db.DeleteAuthor(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete author: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

// AdminComments lists comments of all articles; approved filters by moderation state when set.
func (m *Manager) AdminComments(ctx context.Context, approved *bool, limit, page int) (Comments, int, error) {
	f := db.CommentFilter{Approved: approved}

	list, err := m.db.Comments(ctx, f, pager(limit, page))
	if err != nil {
		return nil, 0, fmt.Errorf("db get comments: %w", err)
	}

	count, err := m.db.CommentsCount(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("db get comments count: %w", err)
	}

	return NewComments(list), count, nil
}

func (m *Manager) ApproveComment(ctx context.Context, id int) error {
	found, err := m.db.SetCommentApproved(ctx, id, true)
	if err != nil {
		return fmt.Errorf("db approve comment: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) DeleteComment(ctx context.Context, id int) error {
	found, err := m.db.DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete comment: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

func (m *Manager) AdminSubscribers(ctx context.Context, activeOnly bool, email string, limit, page int) (Subscribers, int, error) {
	f := db.SubscriberFilter{Active: activeOnly, Email: strings.TrimSpace(email)}

	list, err := m.db.Subscribers(ctx, f, pager(limit, page))
	if err != nil {
		return nil, 0, fmt.Errorf("db get subscribers: %w", err)
	}

	count, err := m.db.SubscribersCount(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("db get subscribers count: %w", err)
	}

	return NewSubscribers(list), count, nil
}

func (m *Manager) DeleteSubscriber(ctx context.Context, id int) error {
	found, err := m.db.DeleteSubscriber(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete subscriber: %w", err)
	} else if !found {
		return ErrNotFound
	}
	return nil
}

// Stats returns dashboard counters and the most viewed articles.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	counters, err := m.db.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get stats: %w", err)
	}

	top, err := m.db.Articles(ctx, db.ArticleFilter{Trending: true}, db.Pager{Limit: topArticlesLimit})
	if err != nil {
		return nil, fmt.Errorf("db get top articles: %w", err)
	}

	return &Stats{Stats: *counters, TopArticles: NewArticles(top)}, nil
}

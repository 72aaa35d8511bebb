package db

import (
	"strings"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

const (
	// MaxSearchResults caps article search output.
	MaxSearchResults = 50

	defaultLimit = 20
	maxLimit     = 100
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Pager is a limit/offset window. Zero Limit means the default.
type Pager struct {
	Limit  int
	Offset int
}

func (p Pager) limit() int {
	switch {
	case p.Limit <= 0:
		return defaultLimit
	case p.Limit > maxLimit:
		return maxLimit
	}
	return p.Limit
}

func (p Pager) apply(q *orm.Query) *orm.Query {
	q = q.Limit(p.limit())
	if p.Offset > 0 {
		q = q.Offset(p.Offset)
	}
	return q
}

// ArticleFilter enumerates the optional article list filters.
// Zero values are ignored.
type ArticleFilter struct {
	CategoryID   int
	CategorySlug string
	AuthorID     int
	ExcludeID    int
	OnlyFeatured bool
	OnlyBreaking bool
	Query        string
	// Trending orders by views instead of publish date.
	Trending bool
	// Published hides articles scheduled in the future.
	Published bool
	// PublishedBefore is compared instead of now() when set.
	PublishedBefore time.Time
}

// Apply adds WHERE clauses for every set field.
func (f ArticleFilter) Apply(q *orm.Query) (*orm.Query, error) {
	if f.CategoryID > 0 {
		q = q.Where(`"t"."categoryId" = ?`, f.CategoryID)
	}

	if f.CategorySlug != "" {
		q = q.Where(`"t"."categoryId" = (SELECT "id" FROM "categories" WHERE "slug" = ?)`, f.CategorySlug)
	}

	if f.AuthorID > 0 {
		q = q.Where(`"t"."authorId" = ?`, f.AuthorID)
	}

	if f.ExcludeID > 0 {
		q = q.Where(`"t"."id" != ?`, f.ExcludeID)
	}

	if f.OnlyFeatured {
		q = q.Where(`"t"."isFeatured" = TRUE`)
	}

	if f.OnlyBreaking {
		q = q.Where(`"t"."isBreaking" = TRUE`)
	}

	if f.Query != "" {
		pattern := containsPattern(f.Query)
		q = q.WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			return q.
				WhereOr(`"t"."title" ILIKE ?`, pattern).
				WhereOr(`"t"."excerpt" ILIKE ?`, pattern), nil
		})
	}

	if !f.PublishedBefore.IsZero() {
		q = q.Where(`"t"."publishedAt" <= ?`, f.PublishedBefore)
	} else if f.Published {
		q = q.Where(`"t"."publishedAt" <= NOW()`)
	}

	return q, nil
}

// Order returns the ordering of a filtered list.
func (f ArticleFilter) Order(q *orm.Query) (*orm.Query, error) {
	if f.Trending {
		return q.OrderExpr(`"t"."views" DESC, "t"."publishedAt" DESC`), nil
	}
	return q.OrderExpr(`"t"."publishedAt" DESC, "t"."id" DESC`), nil
}

// CommentFilter narrows comment lists. Approved is NULL for "any".
type CommentFilter struct {
	ArticleID int
	Approved  *bool
}

func (f CommentFilter) Apply(q *orm.Query) (*orm.Query, error) {
	if f.ArticleID > 0 {
		q = q.Where(`"t"."articleId" = ?`, f.ArticleID)
	}

	if f.Approved != nil {
		q = q.Where(`"t"."isApproved" = ?`, *f.Approved)
	}

	return q, nil
}

type SubscriberFilter struct {
	// Active excludes unsubscribed rows.
	Active bool
	Email  string
}

func (f SubscriberFilter) Apply(q *orm.Query) (*orm.Query, error) {
	if f.Active {
		q = q.Where(`"t"."unsubscribedAt" IS NULL`)
	}

	if f.Email != "" {
		q = q.Where(`"t"."email" ILIKE ?`, containsPattern(f.Email))
	}

	return q, nil
}

type PollFilter struct {
	Statuses []string
	Type     string
}

func (f PollFilter) Apply(q *orm.Query) (*orm.Query, error) {
	if len(f.Statuses) > 0 {
		q = q.WhereIn(`"t"."status" IN (?)`, f.Statuses)
	}

	if f.Type != "" {
		q = q.Where(`"t"."type" = ?`, f.Type)
	}

	return q, nil
}

// ArticlePatch holds the fields of a partial article update. Nil fields stay untouched.
type ArticlePatch struct {
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

// Apply adds one SET entry per present field.
func (p ArticlePatch) Apply(q *orm.Query) (*orm.Query, error) {
	q = setIf(q, Columns.Article.Title, p.Title)
	q = setIf(q, Columns.Article.Slug, p.Slug)
	q = setIf(q, Columns.Article.Excerpt, p.Excerpt)
	q = setIf(q, Columns.Article.Content, p.Content)
	q = setIf(q, Columns.Article.FeaturedImage, p.FeaturedImage)
	q = setIf(q, Columns.Article.CategoryID, p.CategoryID)
	q = setIf(q, Columns.Article.AuthorID, p.AuthorID)
	q = setIf(q, Columns.Article.PublishedAt, p.PublishedAt)
	q = setIf(q, Columns.Article.ReadingTime, p.ReadingTime)
	q = setIf(q, Columns.Article.IsFeatured, p.IsFeatured)
	q = setIf(q, Columns.Article.IsBreaking, p.IsBreaking)
	return q.Set(`"updatedAt" = NOW()`), nil
}

type CategoryPatch struct {
	Name        *string
	Slug        *string
	Description *string
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil
}

func (p CategoryPatch) Apply(q *orm.Query) (*orm.Query, error) {
	q = setIf(q, Columns.Category.Name, p.Name)
	q = setIf(q, Columns.Category.Slug, p.Slug)
	q = setIf(q, Columns.Category.Description, p.Description)
	return q, nil
}

type AuthorPatch struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

func (p AuthorPatch) IsEmpty() bool {
	return p.Name == nil && p.Bio == nil && p.AvatarURL == nil
}

func (p AuthorPatch) Apply(q *orm.Query) (*orm.Query, error) {
	q = setIf(q, Columns.Author.Name, p.Name)
	q = setIf(q, Columns.Author.Bio, p.Bio)
	q = setIf(q, Columns.Author.AvatarURL, p.AvatarURL)
	return q, nil
}

type PollPatch struct {
	Title       *string
	Description *string
	Type        *string
	Status      *string
	ShowResults *bool
	EndDate     *time.Time
}

func (p PollPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Type == nil &&
		p.Status == nil && p.ShowResults == nil && p.EndDate == nil
}

func (p PollPatch) Apply(q *orm.Query) (*orm.Query, error) {
	q = setIf(q, Columns.Poll.Title, p.Title)
	q = setIf(q, Columns.Poll.Description, p.Description)
	q = setIf(q, Columns.Poll.Type, p.Type)
	q = setIf(q, Columns.Poll.Status, p.Status)
	q = setIf(q, Columns.Poll.ShowResults, p.ShowResults)
	q = setIf(q, Columns.Poll.EndDate, p.EndDate)
	return q, nil
}

func setIf[T any](q *orm.Query, column string, value *T) *orm.Query {
	if value == nil {
		return q
	}
	return q.Set("? = ?", pg.Ident(column), *value)
}

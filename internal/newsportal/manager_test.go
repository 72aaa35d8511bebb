package newsportal

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = db.SetupTestDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to prepare test database. Make sure PostgreSQL is running:")
		fmt.Fprintln(os.Stderr, "  docker-compose -f docker-compose.test.yml up -d")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

func withTx(t *testing.T, opts ...Options) (*pg.Tx, context.Context, *Manager) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	o := Options{AutoApproveComments: true}
	if len(opts) > 0 {
		o = opts[0]
	}

	manager := NewManager(db.New(tx), o)
	manager.now = func() time.Time { return db.BaseTime }
	return tx, ctx, manager
}

func TestManager_Articles_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	t.Run("DefaultListIsPublishedNewestFirst", func(t *testing.T) {
		articles, err := manager.Articles(ctx, ArticleQuery{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, articles.IDs())
		require.NotNil(t, articles[0].Category)
		assert.Equal(t, "Technology", articles[0].Category.Name)
		require.NotNil(t, articles[0].Author)
	})

	t.Run("TrendingWithLimit", func(t *testing.T) {
		articles, err := manager.Articles(ctx, ArticleQuery{Trending: true, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, articles.IDs())
	})

	t.Run("SecondPage", func(t *testing.T) {
		articles, err := manager.Articles(ctx, ArticleQuery{Limit: 2, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4}, articles.IDs())
	})

	t.Run("Breaking", func(t *testing.T) {
		articles, err := manager.BreakingArticles(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 4}, articles.IDs())
	})

	t.Run("Related", func(t *testing.T) {
		articles, err := manager.RelatedArticles(ctx, 2, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, []int{4}, articles.IDs())

		articles, err = manager.RelatedArticles(ctx, 0, 3, 0)
		require.NoError(t, err)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})

	t.Run("BySlugUnknownIsNil", func(t *testing.T) {
		article, err := manager.ArticleBySlug(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, article)
	})

	t.Run("IncrementViews", func(t *testing.T) {
		views, err := manager.IncrementViews(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, 51, views)

		_, err = manager.IncrementViews(ctx, 100500)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("SearchEmptyQueryAndMiss", func(t *testing.T) {
		articles, err := manager.Search(ctx, "  ")
		require.NoError(t, err)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)

		articles, err = manager.Search(ctx, "missingterm")
		require.NoError(t, err)
		assert.NotNil(t, articles)
		assert.Empty(t, articles)
	})
}

func TestManager_Subscribe_Integration(t *testing.T) {
	tx, ctx, manager := withTx(t)

	t.Run("NewEmail", func(t *testing.T) {
		result, err := manager.Subscribe(ctx, " New@Example.com ", nil)
		require.NoError(t, err)
		assert.Equal(t, Subscribed, result)

		ok, err := manager.IsSubscribed(ctx, "new@example.com")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("ActiveEmailIsRejected", func(t *testing.T) {
		_, err := manager.Subscribe(ctx, "reader@example.com", nil)
		assert.ErrorIs(t, err, ErrAlreadySubscribed)
	})

	t.Run("UnsubscribedEmailIsReactivated", func(t *testing.T) {
		result, err := manager.Subscribe(ctx, "former@example.com", nil)
		require.NoError(t, err)
		assert.Equal(t, Resubscribed, result)

		subscriber, err := db.New(tx).SubscriberByEmail(ctx, "former@example.com")
		require.NoError(t, err)
		assert.Nil(t, subscriber.UnsubscribedAt)
	})

	t.Run("UnsubscribeThenCheck", func(t *testing.T) {
		require.NoError(t, manager.Unsubscribe(ctx, "reader@example.com"))
		require.NoError(t, manager.Unsubscribe(ctx, "reader@example.com"))

		ok, err := manager.IsSubscribed(ctx, "reader@example.com")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, manager.Unsubscribe(ctx, "nobody@example.com"), ErrNotFound)
	})
}

func TestManager_Comments_Integration(t *testing.T) {
	t.Run("RequiresActiveSubscriber", func(t *testing.T) {
		_, ctx, manager := withTx(t)

		_, err := manager.AddComment(ctx, 2, "stranger@example.com", "Hello")
		assert.ErrorIs(t, err, ErrNotSubscribed)

		_, err = manager.AddComment(ctx, 2, "former@example.com", "Hello")
		assert.ErrorIs(t, err, ErrNotSubscribed)

		_, err = manager.Subscribe(ctx, "stranger@example.com", nil)
		require.NoError(t, err)

		comment, err := manager.AddComment(ctx, 2, "stranger@example.com", "<b>Hello</b> there")
		require.NoError(t, err)
		assert.NotZero(t, comment.ID)
		assert.Equal(t, "Hello there", comment.Content)
		assert.True(t, comment.IsApproved)
		assert.Equal(t, "stranger", comment.SubscriberName)

		comments, err := manager.Comments(ctx, 2)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, comment.ID, comments[0].ID)
	})

	t.Run("ModerationWhenAutoApproveOff", func(t *testing.T) {
		_, ctx, manager := withTx(t, Options{AutoApproveComments: false})

		comment, err := manager.AddComment(ctx, 2, "reader@example.com", "Needs review")
		require.NoError(t, err)
		assert.False(t, comment.IsApproved)

		comments, err := manager.Comments(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, comments)

		require.NoError(t, manager.ApproveComment(ctx, comment.ID))

		comments, err = manager.Comments(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("EmptyAndUnknownArticle", func(t *testing.T) {
		_, ctx, manager := withTx(t)

		_, err := manager.AddComment(ctx, 2, "reader@example.com", "<script>x</script>")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = manager.AddComment(ctx, 100500, "reader@example.com", "Hi")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestManager_Likes_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	status, err := manager.LikeStatus(ctx, 1, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1, Liked: true}, status)

	status, err = manager.ToggleLike(ctx, 1, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 0, Liked: false}, status)

	status, err = manager.ToggleLike(ctx, 1, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1, Liked: true}, status)

	status, err = manager.LikeStatus(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, LikeStatus{Count: 1}, status)

	_, err = manager.ToggleLike(ctx, 1, "former@example.com")
	assert.ErrorIs(t, err, ErrNotSubscribed)

	_, err = manager.ToggleLike(ctx, 100500, "reader@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Polls_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	t.Run("PublicListHidesDraftsAndCounts", func(t *testing.T) {
		polls, err := manager.Polls(ctx)
		require.NoError(t, err)
		require.Len(t, polls, 2)
		for _, p := range polls {
			assert.NotEqual(t, db.PollStatusDraft, p.Status)
			if p.ID == 2 {
				assert.False(t, p.ResultsHidden)
				assert.Equal(t, 10, p.TotalVotes)
			} else {
				assert.True(t, p.ResultsHidden)
			}
		}

		draft, err := manager.PollByID(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, draft)
	})

	t.Run("VoteFlow", func(t *testing.T) {
		poll, err := manager.AdminPollByID(ctx, 1)
		require.NoError(t, err)
		optionID := poll.Options[0].ID

		_, err = manager.Vote(ctx, 1, optionID, "bad")
		assert.ErrorIs(t, err, ErrInvalidPhone)

		_, err = manager.Vote(ctx, 1, 100500, "+15550100001")
		assert.ErrorIs(t, err, ErrInvalidOption)

		_, err = manager.Vote(ctx, 1, optionID, "+1 555 010 0001")
		require.NoError(t, err)

		_, err = manager.Vote(ctx, 1, optionID, "+15550100001")
		assert.ErrorIs(t, err, ErrAlreadyVoted)

		poll, err = manager.AdminPollByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, poll.Options[0].VotesCount)
		assert.Equal(t, 1, poll.TotalVotes)
	})

	t.Run("ClosedAndExpiredPolls", func(t *testing.T) {
		closed, err := manager.AdminPollByID(ctx, 2)
		require.NoError(t, err)
		_, err = manager.Vote(ctx, 2, closed.Options[0].ID, "+15550100002")
		assert.ErrorIs(t, err, ErrPollClosed)

		end := db.BaseTime.Add(-time.Hour)
		created, err := manager.CreatePoll(ctx, PollInput{
			Title:   "Expired",
			Status:  db.PollStatusActive,
			EndDate: &end,
			Options: []PollOptionInput{{Title: "Only"}},
		})
		require.NoError(t, err)
		_, err = manager.Vote(ctx, created.ID, created.Options[0].ID, "+15550100003")
		assert.ErrorIs(t, err, ErrPollClosed)

		_, err = manager.Vote(ctx, 3, 1, "+15550100004")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateValidation", func(t *testing.T) {
		_, err := manager.CreatePoll(ctx, PollInput{Title: "No options"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = manager.CreatePoll(ctx, PollInput{Title: "Bad", Type: "quiz", Options: []PollOptionInput{{Title: "x"}}})
		assert.ErrorIs(t, err, ErrInvalidInput)

		status := "archived"
		_, err = manager.UpdatePoll(ctx, 1, PollUpdate{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)

		title := "Renamed"
		_, err = manager.UpdatePoll(ctx, 100500, PollUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestManager_AdminArticles_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	excerpt := "Round trip excerpt"
	content := `<p>It's "great"</p>` +
		`<p><a href="https://example.com">source</a></p>` +
		`<iframe src="https://www.youtube.com/embed/abc123" allowfullscreen></iframe>`
	created, err := manager.CreateArticle(ctx, ArticleInput{
		Title:      "Round Trip: Go Edition",
		Excerpt:    &excerpt,
		Content:    content,
		CategoryID: intPtr(1),
		AuthorID:   intPtr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "round-trip-go-edition", created.Slug)
	assert.Equal(t, content, created.Content, "editor markup is stored as sent")
	assert.Equal(t, 1, created.ReadingTime)

	t.Run("RoundTripBySlug", func(t *testing.T) {
		article, err := manager.ArticleBySlug(ctx, created.Slug)
		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Equal(t, created.Title, article.Title)
		assert.Equal(t, excerpt, *article.Excerpt)
		assert.Equal(t, created.Content, article.Content)
		assert.Equal(t, "Technology", article.Category.Name)
		assert.Equal(t, "Jane Smith", article.Author.Name)
	})

	t.Run("SanitizedWhenEnabled", func(t *testing.T) {
		tx, err := testDB.Begin()
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		other := NewManager(db.New(tx), Options{SanitizeArticleHTML: true})
		article, err := other.CreateArticle(ctx, ArticleInput{
			Title:   "Sanitized body",
			Content: "<p>Body text</p><script>alert(1)</script>",
		})
		require.NoError(t, err)
		assert.Equal(t, "<p>Body text</p>", article.Content)

		stored := `<p onclick="x()">Hi</p>`
		article, err = other.UpdateArticle(ctx, article.ID, ArticleUpdate{Content: &stored})
		require.NoError(t, err)
		assert.Equal(t, "<p>Hi</p>", article.Content)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		tx, err := testDB.Begin()
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		other := NewManager(db.New(tx), Options{})
		_, err = other.CreateArticle(ctx, ArticleInput{Title: "x", Slug: "ai-breakthrough"})
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("UnknownCategory", func(t *testing.T) {
		tx, err := testDB.Begin()
		require.NoError(t, err)
		defer func() { _ = tx.Rollback() }()

		other := NewManager(db.New(tx), Options{})
		_, err = other.CreateArticle(ctx, ArticleInput{Title: "Orphan", CategoryID: intPtr(100500)})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})

	t.Run("PartialUpdateRecomputesReadingTime", func(t *testing.T) {
		content := "<p>" + repeatWords(450) + "</p>"
		updated, err := manager.UpdateArticle(ctx, created.ID, ArticleUpdate{Content: &content})
		require.NoError(t, err)
		assert.Equal(t, 3, updated.ReadingTime)
		assert.Equal(t, created.Title, updated.Title)
	})

	t.Run("EmptyTitleRejected", func(t *testing.T) {
		blank := "  "
		_, err := manager.UpdateArticle(ctx, created.ID, ArticleUpdate{Title: &blank})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("AdminListIncludesScheduled", func(t *testing.T) {
		articles, total, err := manager.AdminArticles(ctx, AdminArticleQuery{})
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		assert.Contains(t, articles.IDs(), 6)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, manager.DeleteArticle(ctx, created.ID))
		assert.ErrorIs(t, manager.DeleteArticle(ctx, created.ID), ErrNotFound)
	})
}

func TestManager_CategoryDeleteScenario_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	category, err := manager.CreateCategory(ctx, CategoryInput{Name: "Gadgets", Slug: "gadgets"})
	require.NoError(t, err)

	article, err := manager.CreateArticle(ctx, ArticleInput{Title: "Gadget review", CategoryID: &category.ID})
	require.NoError(t, err)

	listed, err := manager.Articles(ctx, ArticleQuery{CategoryID: category.ID})
	require.NoError(t, err)
	assert.Equal(t, []int{article.ID}, listed.IDs())

	require.NoError(t, manager.DeleteCategory(ctx, category.ID))

	reloaded, err := manager.AdminArticleByID(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Nil(t, reloaded.CategoryID)
	assert.Nil(t, reloaded.Category)

	assert.ErrorIs(t, manager.DeleteCategory(ctx, category.ID), ErrNotFound)
}

func TestManager_Taxonomy_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	t.Run("CategorySlugDerivedFromName", func(t *testing.T) {
		category, err := manager.CreateCategory(ctx, CategoryInput{Name: "World News"})
		require.NoError(t, err)
		assert.Equal(t, "world-news", category.Slug)
	})

	t.Run("UpdateCategoryUnknown", func(t *testing.T) {
		name := "x"
		_, err := manager.UpdateCategory(ctx, 100500, CategoryUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("AuthorCRUD", func(t *testing.T) {
		author, err := manager.CreateAuthor(ctx, AuthorInput{Name: "New Writer"})
		require.NoError(t, err)

		bio := "Writes things"
		updated, err := manager.UpdateAuthor(ctx, author.ID, AuthorUpdate{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "New Writer", updated.Name)
		assert.Equal(t, bio, *updated.Bio)

		require.NoError(t, manager.DeleteAuthor(ctx, author.ID))
		found, err := manager.AuthorByID(ctx, author.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("CreateAuthorRequiresName", func(t *testing.T) {
		_, err := manager.CreateAuthor(ctx, AuthorInput{Name: " "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestManager_AdminModeration_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	pending := false
	comments, total, err := manager.AdminComments(ctx, &pending, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, comments, 1)
	assert.Equal(t, "AI Breakthrough in Machine Learning", comments[0].ArticleTitle)
	assert.Equal(t, "Reader", comments[0].SubscriberName)

	require.NoError(t, manager.DeleteComment(ctx, comments[0].ID))
	assert.ErrorIs(t, manager.ApproveComment(ctx, comments[0].ID), ErrNotFound)

	subscribers, total, err := manager.AdminSubscribers(ctx, true, "", 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, subscribers, 1)
	assert.True(t, subscribers[0].Active())

	require.NoError(t, manager.DeleteSubscriber(ctx, subscribers[0].ID))
	assert.ErrorIs(t, manager.DeleteSubscriber(ctx, subscribers[0].ID), ErrNotFound)
}

func TestManager_Stats_Integration(t *testing.T) {
	_, ctx, manager := withTx(t)

	stats, err := manager.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Articles)
	assert.Equal(t, 560, stats.Views)
	assert.Equal(t, []int{2, 1, 4, 3, 5}, stats.TopArticles.IDs())
}

func intPtr(i int) *int { return &i }

func repeatWords(n int) string {
	b := make([]byte, 0, n*5)
	for i := 0; i < n; i++ {
		b = append(b, "word "...)
	}
	return string(b)
}

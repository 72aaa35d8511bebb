package newsportal

import (
	"context"
	"time"

	"github.com/daniilsolovey/news-publisher/internal/db"
)

type Options struct {
	// AutoApproveComments publishes new comments without moderation.
	AutoApproveComments bool
	// SanitizeArticleHTML passes article bodies through the UGC policy before
	// storing them. Editor markup is stored as sent when false.
	SanitizeArticleHTML bool
}

// Manager implements the news portal use cases on top of the repository.
type Manager struct {
	db        *db.Repository
	sanitizer *Sanitizer
	opts      Options
	now       func() time.Time
}

func NewManager(repo *db.Repository, opts Options) *Manager {
	return &Manager{
		db:        repo,
		sanitizer: NewSanitizer(),
		opts:      opts,
		now:       time.Now,
	}
}

// articleHTML returns the article body to store.
func (m *Manager) articleHTML(content string) string {
	if !m.opts.SanitizeArticleHTML {
		return content
	}
	return m.sanitizer.HTML(content)
}

func (m *Manager) Ping(ctx context.Context) error {
	return m.db.Ping(ctx)
}

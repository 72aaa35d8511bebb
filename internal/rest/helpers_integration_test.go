package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/news-publisher/internal/auth"
	"github.com/daniilsolovey/news-publisher/internal/db"
	"github.com/daniilsolovey/news-publisher/internal/mail"
	"github.com/daniilsolovey/news-publisher/internal/newsportal"
	"github.com/daniilsolovey/news-publisher/internal/upload"
)

const (
	testSecret   = "test-secret"
	testAdmin    = "admin"
	testPassword = "pass"
)

type fakeMailer struct {
	mu      sync.Mutex
	enabled bool
	err     error
	sent    []mail.Message
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeUploader struct {
	filename string
	data     []byte
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, filename string, data []byte) (*upload.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.filename, f.data = filename, data
	return &upload.Result{URL: "https://cdn.example.com/" + upload.ObjectName(time.UnixMilli(0), filename), FileID: "file-1"}, nil
}

type testEnv struct {
	e        *echo.Echo
	auth     *auth.Service
	mailer   *fakeMailer
	uploader *fakeUploader
}

func newTestEnv(database pg.DBI, opts Options) *testEnv {
	env := &testEnv{
		auth:     auth.New(auth.Config{Secret: testSecret, Username: testAdmin, Password: testPassword, TTL: 8 * time.Hour}),
		mailer:   &fakeMailer{enabled: true},
		uploader: &fakeUploader{},
	}

	manager := newsportal.NewManager(db.New(database), newsportal.Options{AutoApproveComments: true})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(manager, env.auth, env.mailer, env.uploader, logger, opts)
	env.e = h.RegisterRoutes()

	return env
}

// withTx returns an environment whose database work is rolled back after the test.
func withTx(t *testing.T) *testEnv {
	t.Helper()

	tx, err := testDB.Begin()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, pg.ErrTxDone) {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	return newTestEnv(tx, Options{})
}

func (env *testEnv) token(t *testing.T) string {
	t.Helper()
	token, _, err := env.auth.Login(testAdmin, testPassword)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorResponse](t, rec).Error
}

func articleIDs(list []Article) []int {
	ids := make([]int, len(list))
	for i := range list {
		ids[i] = list[i].ID
	}
	return ids
}

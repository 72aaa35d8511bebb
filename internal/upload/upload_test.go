package upload

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.UnixMilli(1705233600000)

func TestObjectName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Holiday Photo.JPG", "1705233600000-holiday-photo.jpg"},
		{"../../etc/passwd.png", "1705233600000-passwd.png"},
		{`C:\Users\me\My Pic.png`, "1705233600000-my-pic.png"},
		{"", "1705233600000-image"},
		{".png", "1705233600000-image.png"},
		{"a.png?x=<y>", "1705233600000-a.pngxy"},
		{"photo.J P\"G", "1705233600000-photo.jpg"},
		{"shell.<script>", "1705233600000-shell.script"},
		{"dots.!!", "1705233600000-dots"},
		{"name.фото", "1705233600000-name"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectName(fixedNow, tt.filename), tt.filename)
	}
}

func TestDecodeBase64(t *testing.T) {
	raw := []byte("\x89PNG fake image")
	enc := base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeBase64(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBase64("data:image/png;base64," + enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = DecodeBase64(base64.RawStdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = DecodeBase64("data:image/png;base64")
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = DecodeBase64("%%%")
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestClient_Upload(t *testing.T) {
	var (
		gotUser   string
		gotName   string
		gotFolder string
		gotData   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("fileName")
		gotFolder = r.FormValue("folder")

		if f, _, err := r.FormFile("file"); assert.NoError(t, err) {
			gotData, _ = io.ReadAll(f)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"https://cdn.example.com/news/` + gotName + `","fileId":"f1","name":"` + gotName + `"}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL, PrivateKey: "private_key", Folder: "/news", MaxSize: 1024}, srv.Client())
	c.now = func() time.Time { return fixedNow }

	res, err := c.Upload(context.Background(), "Cover Image.png", []byte("image-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "private_key", gotUser)
	assert.Equal(t, "1705233600000-cover-image.png", gotName)
	assert.Equal(t, "/news", gotFolder)
	assert.Equal(t, []byte("image-bytes"), gotData)
	assert.Equal(t, "https://cdn.example.com/news/1705233600000-cover-image.png", res.URL)
	assert.Equal(t, "f1", res.FileID)
}

func TestClient_UploadErrors(t *testing.T) {
	t.Run("NotConfigured", func(t *testing.T) {
		c := New(Config{Endpoint: "http://localhost"}, nil)
		_, err := c.Upload(context.Background(), "a.png", []byte("x"))
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("Empty", func(t *testing.T) {
		c := New(Config{Endpoint: "http://localhost", PrivateKey: "k"}, nil)
		_, err := c.Upload(context.Background(), "a.png", nil)
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("TooLarge", func(t *testing.T) {
		c := New(Config{Endpoint: "http://localhost", PrivateKey: "k", MaxSize: 2}, nil)
		_, err := c.Upload(context.Background(), "a.png", []byte("xyz"))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("ProviderMessage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Your account cannot be authenticated."}`))
		}))
		defer srv.Close()

		c := New(Config{Endpoint: srv.URL, PrivateKey: "bad"}, srv.Client())
		_, err := c.Upload(context.Background(), "a.png", []byte("x"))

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusForbidden, perr.Status)
		assert.Equal(t, "Your account cannot be authenticated.", perr.Message)
	})

	t.Run("PlainTextFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad gateway", http.StatusBadGateway)
		}))
		defer srv.Close()

		c := New(Config{Endpoint: srv.URL, PrivateKey: "k"}, srv.Client())
		_, err := c.Upload(context.Background(), "a.png", []byte("x"))

		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "bad gateway", perr.Message)
	})
}

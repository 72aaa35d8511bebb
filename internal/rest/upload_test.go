package rest

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartUpload(t *testing.T, token, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestHandler_UploadLimits(t *testing.T) {
	const limit = 64

	env := newTestEnv(testDB, Options{MaxUploadSize: limit})
	token := env.token(t)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		env.e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("MultipartWithinLimit", func(t *testing.T) {
		rec := serve(multipartUpload(t, token, "logo.png", bytes.Repeat([]byte("x"), limit)))
		requireStatus(t, rec, http.StatusOK)
		assert.Equal(t, "logo.png", env.uploader.filename)
		assert.Len(t, env.uploader.data, limit)
	})

	t.Run("MultipartFileOverLimit", func(t *testing.T) {
		rec := serve(multipartUpload(t, token, "big.png", bytes.Repeat([]byte("x"), limit+1)))
		requireStatus(t, rec, http.StatusRequestEntityTooLarge)
		assert.Equal(t, "File is too large", errorMessage(t, rec))
	})

	t.Run("MultipartBodyCutOff", func(t *testing.T) {
		rec := serve(multipartUpload(t, token, "huge.png", bytes.Repeat([]byte("x"), 2*multipartOverhead)))
		requireStatus(t, rec, http.StatusRequestEntityTooLarge)
		assert.Equal(t, "File is too large", errorMessage(t, rec))
	})

	t.Run("MultipartWithoutFile", func(t *testing.T) {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("note", "no file here"))
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		rec := serve(req)
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "file is required", errorMessage(t, rec))
	})

	t.Run("JSONFileOverLimit", func(t *testing.T) {
		file := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), limit+1))
		rec := env.do(t, http.MethodPost, "/api/upload", UploadRequest{File: file, Filename: "big.png"}, token)
		requireStatus(t, rec, http.StatusRequestEntityTooLarge)
		assert.Equal(t, "File is too large", errorMessage(t, rec))
	})

	t.Run("JSONBodyCutOff", func(t *testing.T) {
		file := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("x"), 16<<10))
		rec := env.do(t, http.MethodPost, "/api/upload", UploadRequest{File: file, Filename: "huge.png"}, token)
		requireStatus(t, rec, http.StatusRequestEntityTooLarge)
		assert.Equal(t, "File is too large", errorMessage(t, rec))
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString(`{"file":`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)

		rec := serve(req)
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "invalid request body", errorMessage(t, rec))
	})
}

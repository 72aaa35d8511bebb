// Package upload forwards images to the external image host.
package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

var (
	ErrNotConfigured = errors.New("image upload is not configured")
	ErrEmptyFile     = errors.New("file is empty")
	ErrTooLarge      = errors.New("file is too large")
	ErrInvalidData   = errors.New("file is not valid base64 data")
)

// ProviderError is a non-2xx answer of the image host.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("image host: %s (status %d)", e.Message, e.Status)
}

type Config struct {
	Endpoint   string
	PrivateKey string
	Folder     string
	MaxSize    int64
}

type Result struct {
	URL    string `json:"url"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
}

func New(cfg Config, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: hc, now: time.Now}
}

func (c *Client) Configured() bool {
	return c.cfg.Endpoint != "" && c.cfg.PrivateKey != ""
}

// Upload sends data under a unique object name derived from filename.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*Result, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if c.cfg.MaxSize > 0 && int64(len(data)) > c.cfg.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), c.cfg.MaxSize)
	}

	name := ObjectName(c.now(), filename)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return nil, err
	}
	if _, err = part.Write(data); err != nil {
		return nil, err
	}
	if err = w.WriteField("fileName", name); err != nil {
		return nil, err
	}
	if err = w.WriteField("useUniqueFileName", "false"); err != nil {
		return nil, err
	}
	if c.cfg.Folder != "" {
		if err = w.WriteField("folder", c.cfg.Folder); err != nil {
			return nil, err
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.cfg.PrivateKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, providerError(resp.StatusCode, raw)
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if res.URL == "" {
		return nil, &ProviderError{Status: resp.StatusCode, Message: "response has no url"}
	}

	return &res, nil
}

func providerError(status int, raw []byte) error {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := http.StatusText(status)
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			msg = body.Message
		} else if body.Error != "" {
			msg = body.Error
		}
	} else if s := strings.TrimSpace(string(raw)); s != "" {
		msg = s
	}
	return &ProviderError{Status: status, Message: msg}
}

// ObjectName returns "<unix millis>-<slug of base name><ext>".
func ObjectName(now time.Time, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	ext := objectExt(path.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, path.Ext(base)))
	if stem == "" {
		stem = "image"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + stem + ext
}

// objectExt keeps only lowercase letters and digits of the extension.
func objectExt(ext string) string {
	ext = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, strings.ToLower(ext))
	if ext == "" {
		return ""
	}
	return "." + ext
}

// DecodeBase64 accepts raw base64 or a data URL such as "data:image/png;base64,...".
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		_, payload, ok := strings.Cut(s, ",")
		if !ok {
			return nil, ErrInvalidData
		}
		s = payload
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}
	return data, nil
}

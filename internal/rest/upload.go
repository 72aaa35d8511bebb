package rest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-publisher/internal/upload"
)

const (
	defaultMaxUpload = 10 << 20
	// multipartOverhead covers boundaries and part headers around the file.
	multipartOverhead = 64 << 10
)

// Upload handles POST /api/upload
// @Summary Upload an image
// @Description Accepts JSON {file: base64 or data URL, filename} or a multipart "file" field and forwards it to the image host.
// @Tags admin
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body rest.UploadRequest false "Base64 encoded file"
// @Success 200 {object} rest.UploadResponse
// @Failure 400,401,413,500 {object} rest.ErrorResponse
// @Router /api/upload [post]
func (h *Handler) Upload(c echo.Context) error {
	limit := h.opts.MaxUploadSize
	if limit <= 0 {
		limit = defaultMaxUpload
	}

	var (
		filename string
		data     []byte
		err      error
	)

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		filename, data, err = readMultipartFile(c, limit)
	} else {
		// base64 inflates by a third
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, limit*4/3+4096)
		var req UploadRequest
		if err = bindBody(c, &req); err != nil {
			return uploadTooLarge(err)
		}
		filename = req.Filename
		data, err = upload.DecodeBase64(req.File)
	}
	if err != nil {
		return err
	}
	if int64(len(data)) > limit {
		return upload.ErrTooLarge
	}

	res, err := h.uploader.Upload(c.Request().Context(), filename, data)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, UploadResponse{URL: res.URL, FileID: res.FileID, Name: res.Name})
}

func readMultipartFile(c echo.Context, limit int64) (string, []byte, error) {
	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, limit+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		if err = uploadTooLarge(err); errors.Is(err, upload.ErrTooLarge) {
			return "", nil, err
		}
		return "", nil, badRequest("file is required")
	}
	if fh.Size > limit {
		return "", nil, upload.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", nil, err
	}

	return fh.Filename, data, nil
}

// uploadTooLarge reports a body cut off by http.MaxBytesReader as upload.ErrTooLarge.
func uploadTooLarge(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: body over %d bytes", upload.ErrTooLarge, mbe.Limit)
	}
	return err
}

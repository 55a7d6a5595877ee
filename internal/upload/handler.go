package upload

import (
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"go.uber.org/zap"
)

const (
	// MaxFileSize is the largest accepted image.
	MaxFileSize   = 5 << 20
	DefaultFolder = "arix/products"
)

var folderPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_\-/]*$`)

type Handler struct {
	storage Storage
	log     *zap.Logger
}

// NewHandler accepts a nil storage; uploads then fail with 500.
func NewHandler(storage Storage, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{storage: storage, log: log}
}

func (h *Handler) RegisterProtectedRoutes(app fiber.Router, guard fiber.Handler) {
	app.Post("/api/uploads", guard, h.upload)
}

func cleanFolder(raw string) (string, bool) {
	f := strings.Trim(strings.TrimSpace(raw), "/")
	if f == "" {
		return DefaultFolder, true
	}
	if !folderPattern.MatchString(f) || strings.Contains(f, "..") || path.Clean(f) != f {
		return "", false
	}
	return f, true
}

func (h *Handler) upload(c *fiber.Ctx) error {
	if h.storage == nil {
		return httperr.Internal("Image storage is not configured (set S3_BUCKET)", ErrNotConfigured)
	}
	folder, ok := cleanFolder(c.Query("folder"))
	if !ok {
		return httperr.Validation(map[string]string{"folder": "folder may only contain letters, digits, '-', '_' and '/'"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return httperr.Validation(map[string]string{"file": "file is required"})
	}
	if fh.Size > MaxFileSize {
		return httperr.Validation(map[string]string{"file": "file must be 5MB or smaller"})
	}

	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(mt.String(), "image/") {
		return httperr.Validation(map[string]string{"file": "only image files are allowed"})
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	key := folder + "/" + uuid.NewString() + mt.Extension()
	url, err := h.storage.Put(c.UserContext(), key, mt.String(), f, fh.Size)
	if err != nil {
		h.log.Error("image upload failed", zap.String("key", key), zap.Error(err))
		return httperr.Upstream("Image storage rejected the upload", err)
	}
	h.log.Info("image uploaded", zap.String("key", key), zap.Int64("size", fh.Size))
	return c.JSON(fiber.Map{
		"url":         url,
		"key":         key,
		"contentType": mt.String(),
		"size":        fh.Size,
	})
}

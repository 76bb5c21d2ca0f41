// Package uploadapi accepts image uploads from the admin dashboard.
//
// Endpoint (mounted at /api/upload):
//   - POST /api/upload - multipart form, field "image" -> {url, filename}
//
// Files land in the configured storage backend (local disk or S3) under
// a per-conference prefix with a uuid-prefixed name, so two uploads of
// "logo.png" never collide.
package uploadapi

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
)

// MaxUploadSize caps image uploads at 10 MB.
const MaxUploadSize = 10 << 20

// allowedImageTypes lists the content types the dashboard may upload.
var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// Handler handles image upload requests.
type Handler struct {
	storage storage.Store
	logger  *zap.Logger
}

// NewHandler creates a new uploadapi handler.
func NewHandler(store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{storage: store, logger: logger}
}

// UploadHandler handles POST /api/upload.
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		jsonutil.BadRequest(w, "file too large or malformed multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonutil.BadRequest(w, "missing image field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		jsonutil.BadRequest(w, fmt.Sprintf("unsupported image type %q", contentType))
		return
	}

	filename := sanitizeFilename(header.Filename)
	storagePath := path.Join(conference, uuid.NewString()+"_"+filename)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.storage.Put(r.Context(), storagePath, file, opts); err != nil {
		h.logger.Error("failed to store upload",
			zap.String("conference", conference),
			zap.String("path", storagePath),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to store upload")
		return
	}

	h.logger.Info("image uploaded",
		zap.String("conference", conference),
		zap.String("path", storagePath),
		zap.Int64("size", header.Size))

	jsonutil.OK(w, map[string]string{
		"url":      h.storage.URL(storagePath),
		"filename": filename,
	})
}

// sanitizeFilename strips directories and whitespace from a client
// supplied filename. The uuid prefix carries the uniqueness; this just
// keeps the name readable and safe to embed in a path.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	return name
}

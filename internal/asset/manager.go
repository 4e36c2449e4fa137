package asset

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	apperrors "showcase/internal/errors"
	"showcase/internal/metrics"
	"showcase/internal/model"
)

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes int64 = 5 << 20

// Reasons passed to Remove, recorded on the cleanup counter.
const (
	ReasonReplaced       = "replaced"
	ReasonProjectDeleted = "project_deleted"
	ReasonOrphaned       = "orphaned"
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// imageExtensions is the closed set of extensions a stored file may carry.
var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

// ContentType returns the image type implied by a stored file name, or
// application/octet-stream for anything outside the allow-list.
func ContentType(name string) string {
	if ct, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Uploader validates, stores and removes uploaded project images.
type Uploader interface {
	Validate(fh *multipart.FileHeader) error
	Store(ctx context.Context, field string, fh *multipart.FileHeader) (string, error)
	Remove(ctx context.Context, reference, reason string)
}

// Manager ties uploaded files to public /uploads/ references.
type Manager struct {
	storage  Storage
	maxBytes int64
	log      zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

var _ Uploader = (*Manager)(nil)

// NewManager creates a manager over storage. m may be nil.
func NewManager(storage Storage, maxBytes int64, log zerolog.Logger, m *metrics.Metrics) *Manager {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Manager{
		storage:  storage,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "assets").Logger(),
		metrics:  m,
		now:      time.Now,
	}
}

// Validate checks the size limit and sniffs the file content against the image allow-list.
func (m *Manager) Validate(fh *multipart.FileHeader) error {
	_, err := m.detect(fh)
	return err
}

func (m *Manager) detect(fh *multipart.FileHeader) (*mimetype.MIME, error) {
	if fh == nil {
		return nil, apperrors.NewValidationError("projectImage", "an image file is required")
	}
	if fh.Size > m.maxBytes {
		return nil, apperrors.ErrPayloadTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect upload type: %w", err)
	}
	if !allowedTypes[mt.String()] {
		return nil, apperrors.ErrUnsupportedMediaType
	}
	return mt, nil
}

// Store validates fh and writes it under a fresh name built from the form
// field, a nanosecond timestamp and an image extension. The original
// extension is kept only when it agrees with the sniffed type. It returns
// the public reference of the stored file.
func (m *Manager) Store(ctx context.Context, field string, fh *multipart.FileHeader) (string, error) {
	mt, err := m.detect(fh)
	if err != nil {
		return "", err
	}

	name := m.fileName(field, fh.Filename, mt)

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	if err := m.storage.Save(ctx, name, mt.String(), f, fh.Size); err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}
	if m.metrics != nil {
		m.metrics.AssetsStored.Inc()
	}

	ref := model.UploadsPrefix + name
	m.log.Debug().Str("reference", ref).Int64("size", fh.Size).Msg("asset stored")
	return ref, nil
}

// Remove deletes the asset behind reference. It never fails: errors are logged
// and counted. The placeholder and anything outside /uploads/ are left alone.
func (m *Manager) Remove(ctx context.Context, reference, reason string) {
	name, ok := NameFromReference(reference)
	if !ok {
		return
	}

	if err := m.storage.Delete(ctx, name); err != nil {
		m.log.Warn().Err(err).Str("reference", reference).Str("reason", reason).Msg("failed to remove asset")
		m.count("failed", reason)
		return
	}
	m.log.Info().Str("reference", reference).Str("reason", reason).Msg("asset removed")
	m.count("removed", reason)
}

// Open returns the stored asset by file name.
func (m *Manager) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return m.storage.Open(ctx, name)
}

func (m *Manager) count(result, reason string) {
	if m.metrics != nil {
		m.metrics.AssetCleanup.WithLabelValues(result, reason).Inc()
	}
}

func (m *Manager) fileName(field, original string, mt *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(original))
	if imageExtensions[ext] != mt.String() {
		ext = mt.Extension()
	}
	if !ValidName(field) || field == "" {
		field = "upload"
	}
	return fmt.Sprintf("%s-%d%s", field, m.now().UnixNano(), ext)
}

// NameFromReference extracts the stored file name from a public reference.
// It returns false for the placeholder image and for foreign URLs.
func NameFromReference(reference string) (string, bool) {
	if reference == "" || reference == model.PlaceholderImageURL {
		return "", false
	}
	if !strings.HasPrefix(reference, model.UploadsPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(reference, model.UploadsPrefix)
	if !ValidName(name) {
		return "", false
	}
	return name, true
}

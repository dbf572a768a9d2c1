package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/miy4x/shigezane-admin/internal/client/export"
	"github.com/miy4x/shigezane-admin/internal/client/filters"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/filex"
	"github.com/miy4x/shigezane-admin/internal/logging"
)

var ErrNothingToExport = errors.New("no records to export")

type ExportService interface {
	// Export writes the filtered listing of kind to a new CSV file in dir
	// and returns its path and row count.
	Export(ctx context.Context, kind models.Kind, c filters.Criteria, dir string) (string, int, error)
}

type exportService struct {
	registry *Registry
	logger   logging.Logger
	now      func() time.Time
}

func NewExportService(r *Registry, logger logging.Logger) ExportService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &exportService{registry: r, logger: logger, now: time.Now}
}

func (s *exportService) Export(ctx context.Context, kind models.Kind, c filters.Criteria, dir string) (string, int, error) {
	e, err := s.registry.Entity(kind)
	if err != nil {
		return "", 0, err
	}
	l, err := e.Listing(ctx, c)
	if err != nil {
		return "", 0, err
	}
	if l.Shown == 0 {
		return "", 0, ErrNothingToExport
	}

	dir, err = filex.EnsureDir(dir)
	if err != nil {
		return "", 0, err
	}
	path := filepath.Join(dir, export.FileName(kind, s.now()))
	err = filex.WriteFile(path, func(w io.Writer) error {
		return export.Write(w, kind, l.Records)
	})
	if err != nil {
		return "", 0, fmt.Errorf("export %s: %w", kind, err)
	}
	s.logger.Info(ctx, "exported", "kind", string(kind), "rows", l.Shown, "path", path)
	return path, l.Shown, nil
}

package contacts

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BearBump/ParcelDesk/internal/apperr"
	"github.com/BearBump/ParcelDesk/internal/models"
	"github.com/pkg/errors"
)

type Repository interface {
	InsertContacts(ctx context.Context, rows []models.ContactRow) (int, error)
	ListContacts(ctx context.Context) ([]*models.Contact, error)
}

type Config struct {
	UploadDir      string
	MaxUploadBytes int64
	MaxRows        int
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type Service struct {
	repo Repository
	cfg  Config
}

func New(repo Repository, cfg Config) *Service {
	if cfg.UploadDir == "" {
		cfg.UploadDir = os.TempDir()
	}
	return &Service{repo: repo, cfg: cfg}
}

func (s *Service) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	return s.repo.ListContacts(ctx)
}

// Import runs the whole pipeline for one uploaded file: spool to a temp file,
// parse, normalize headers, drop rows without name and number, and insert the
// rest in one transaction. The temp file is removed on every path.
func (s *Service) Import(ctx context.Context, filename string, body io.Reader) (ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		return ImportResult{}, apperr.Validation("only .csv and .xlsx files are supported")
	}

	tmp, cleanup, err := s.spool(body, ext)
	if err != nil {
		return ImportResult{}, err
	}
	defer cleanup()

	var records [][]string
	if ext == ".xlsx" {
		records, err = readXLSX(tmp)
	} else {
		records, err = readCSV(tmp)
	}
	if err != nil {
		slog.Warn("contacts import parse failed", "file", filename, "error", err.Error())
		return ImportResult{}, err
	}

	seen, rows := toContactRows(records)
	if seen == 0 {
		if ext == ".xlsx" {
			return ImportResult{}, apperr.Validation("spreadsheet is empty")
		}
		return ImportResult{}, apperr.Validation("CSV file is empty")
	}
	if s.cfg.MaxRows > 0 && seen > s.cfg.MaxRows {
		return ImportResult{}, apperr.Validationf("too many rows (max %d)", s.cfg.MaxRows)
	}
	if len(rows) == 0 {
		return ImportResult{Imported: 0}, nil
	}

	n, err := s.repo.InsertContacts(ctx, rows)
	if err != nil {
		slog.Error("contacts import failed", "file", filename, "rows", len(rows), "error", err.Error())
		return ImportResult{}, apperr.Storage(err, "failed to import contacts")
	}

	slog.Info("contacts imported", "file", filename, "rows", n, "skipped", seen-len(rows))
	return ImportResult{Imported: n}, nil
}

// ImportFile imports a file from local disk.
func (s *Service) ImportFile(ctx context.Context, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, errors.Wrap(err, "open import file")
	}
	defer func() { _ = f.Close() }()
	return s.Import(ctx, filepath.Base(path), f)
}

// spool copies body into a fresh temp file and rewinds it. The returned
// cleanup closes and deletes the file; it is safe to call once on any path.
func (s *Service) spool(body io.Reader, ext string) (*os.File, func(), error) {
	f, err := os.CreateTemp(s.cfg.UploadDir, "contacts-*"+ext)
	if err != nil {
		return nil, nil, errors.Wrap(err, "create upload temp file")
	}
	cleanup := func() {
		_ = f.Close()
		if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
			slog.Warn("remove upload temp file", "path", f.Name(), "error", err.Error())
		}
	}

	src := body
	if s.cfg.MaxUploadBytes > 0 {
		src = io.LimitReader(body, s.cfg.MaxUploadBytes+1)
	}
	n, err := io.Copy(f, src)
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "write upload temp file")
	}
	if s.cfg.MaxUploadBytes > 0 && n > s.cfg.MaxUploadBytes {
		cleanup()
		return nil, nil, apperr.Validationf("file is larger than %d bytes", s.cfg.MaxUploadBytes)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "rewind upload temp file")
	}
	return f, cleanup, nil
}

package buttons

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	seekerrors "github.com/tessro/trackseek/internal/errors"
)

// Store reads and writes the button document on disk.
type Store struct {
	path   string
	logger *slog.Logger
}

// LoadResult is the outcome of Store.Load.
type LoadResult struct {
	Buttons []Button

	// Fallback is true when the built-in default list was used. Err holds
	// the reason.
	Fallback bool
	Err      error

	ModTime time.Time
	Size    int64
}

// NewStore creates a store for the document at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{path: path, logger: logger}
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the document file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Raw returns the stored document, or the default document if none exists.
func (s *Store) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []byte(DefaultDocument), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read buttons: %w", err)
	}
	return data, nil
}

// Load reads the stored buttons. A missing or invalid document never fails:
// the default list is returned and the cause is recorded in the result.
func (s *Store) Load() *LoadResult {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("buttons file not found, using defaults", "path", s.path)
		return &LoadResult{
			Buttons:  Default(),
			Fallback: true,
			Err:      fmt.Errorf("%w: %s", seekerrors.ErrConfigNotFound, s.path),
		}
	}

	var data []byte
	if err == nil {
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		s.logger.Warn("cannot read buttons file, using defaults", "path", s.path, "error", err)
		return &LoadResult{Buttons: Default(), Fallback: true, Err: err}
	}

	list, err := Parse(data)
	if err != nil {
		s.logger.Warn("invalid buttons file, using defaults", "path", s.path, "error", err)
		return &LoadResult{
			Buttons:  Default(),
			Fallback: true,
			Err:      err,
			ModTime:  info.ModTime(),
			Size:     info.Size(),
		}
	}

	for _, b := range list {
		if len(b.Ignored) > 0 {
			s.logger.Debug("button fields ignored", "button", b.Text, "mode", b.Mode(), "fields", b.Ignored)
		}
	}

	return &LoadResult{Buttons: list, ModTime: info.ModTime(), Size: info.Size()}
}

// Save validates raw and replaces the stored document. On a validation
// error the existing file is left untouched.
func (s *Store) Save(raw []byte) error {
	if err := Validate(raw); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".buttons-*.json")
	if err != nil {
		return fmt.Errorf("failed to write buttons: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write buttons: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write buttons: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write buttons: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write buttons: %w", err)
	}

	s.logger.Info("buttons saved", "path", s.path)
	return nil
}

// Init writes the default document. It fails if a document already exists.
func (s *Store) Init() error {
	if s.Exists() {
		return fmt.Errorf("buttons file already exists at %s", s.path)
	}
	return s.Save([]byte(DefaultDocument))
}

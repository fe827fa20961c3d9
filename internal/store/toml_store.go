package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-toomanyconfigs/internal/logger"
	"github.com/MKhiriev/go-toomanyconfigs/models"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

type tomlStore struct {
	fs     afero.Fs
	logger *logger.Logger
}

// NewTOMLStore constructs a [DocumentStore] keeping TOML files on fsys.
// A nil fsys means the operating system filesystem.
func NewTOMLStore(fsys afero.Fs, log *logger.Logger) DocumentStore {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &tomlStore{fs: fsys, logger: log}
}

func (s *tomlStore) Exists(path string) (bool, error) {
	ok, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return ok, nil
}

func (s *tomlStore) Touch(path string) error {
	if err := s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}

	f, err := s.fs.OpenFile(path, os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("touch %s: %w", path, err)
	}
	return f.Close()
}

func (s *tomlStore) Load(path string) (models.Document, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	raw := map[string]any{}
	if err = toml.Unmarshal(data, &raw); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("%w: %s:%d:%d: %s", ErrMalformedDocument, path, row, col, decodeErr.Error())
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, path, err)
	}

	s.logger.Debug().Str("path", path).Int("keys", len(raw)).Msg("loaded document")
	return models.Document(raw), nil
}

func (s *tomlStore) Save(path string, src models.Serializable) error {
	doc := src.AsDocument()

	blob, err := toml.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncodingDocument, path, err)
	}

	if err = s.fs.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	if err = afero.WriteFile(s.fs, path, blob, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	s.logger.Debug().Str("path", path).Int("bytes", len(blob)).Msg("wrote document")
	return nil
}

// IsNotExist reports whether err means the file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

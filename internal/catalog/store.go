package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"stationcat/internal/fileutil"
	"stationcat/internal/logging"
)

// ErrInvalidTitle is returned for titles that cannot name a device file.
var ErrInvalidTitle = errors.New("invalid wiki title")

// ErrNotFound is returned when a title is not in the catalog.
var ErrNotFound = errors.New("device not found")

// Store reads and writes a catalog directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// NewStore returns a Store rooted at root. The directory is created lazily
// on the first write.
func NewStore(root string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		root:   root,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Root returns the catalog directory.
func (s *Store) Root() string {
	return s.root
}

// IndexPath returns the path of index.json.
func (s *Store) IndexPath() string {
	return filepath.Join(s.root, indexFileName)
}

// DevicePath returns the absolute path of a title's device record.
func (s *Store) DevicePath(title string) string {
	return filepath.Join(s.root, filepath.FromSlash(DeviceFile(title)))
}

func checkTitle(title string) error {
	switch {
	case strings.TrimSpace(title) == "":
		return fmt.Errorf("%w: empty", ErrInvalidTitle)
	case title == "." || title == "..":
		return fmt.Errorf("%w: %q", ErrInvalidTitle, title)
	case strings.ContainsAny(title, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTitle, title)
	}
	return nil
}

// WriteDevice replaces the record for the device's title and returns its
// index-relative file name.
func (s *Store) WriteDevice(d *Device) (string, error) {
	if d == nil {
		return "", errors.New("device is nil")
	}
	if err := checkTitle(d.Title()); err != nil {
		return "", err
	}
	d.normalize()
	path := s.DevicePath(d.Title())
	if err := fileutil.WriteJSONAtomic(path, d); err != nil {
		return "", fmt.Errorf("write device %q: %w", d.Title(), err)
	}
	s.logger.Debug("device record written",
		logging.String(logging.FieldWikiTitle, d.Title()),
		logging.String("path", path))
	return DeviceFile(d.Title()), nil
}

// LoadIndex reads index.json, returning an empty index when it does not
// exist yet.
func (s *Store) LoadIndex() (*Index, error) {
	data, err := os.ReadFile(s.IndexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIndex(), nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}
	idx := NewIndex()
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("parse index %s: %w", s.IndexPath(), err)
	}
	if idx.Devices == nil {
		idx.Devices = []IndexEntry{}
	}
	return idx, nil
}

// SaveIndex rewrites index.json from idx.
func (s *Store) SaveIndex(idx *Index) error {
	if idx == nil {
		return errors.New("index is nil")
	}
	if idx.Version == 0 {
		idx.Version = IndexVersion
	}
	if idx.Devices == nil {
		idx.Devices = []IndexEntry{}
	}
	idx.sort()
	if err := fileutil.WriteJSONAtomic(s.IndexPath(), idx); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Put writes the device record and upserts its index entry. An unreadable
// index fails the call before any file is written.
func (s *Store) Put(d *Device) (IndexEntry, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return IndexEntry{}, err
	}
	if _, err := s.WriteDevice(d); err != nil {
		return IndexEntry{}, err
	}
	entry := NewIndexEntry(d)
	idx.Upsert(entry)
	if err := s.SaveIndex(idx); err != nil {
		return IndexEntry{}, err
	}
	s.logger.Info("catalog updated",
		logging.String(logging.FieldWikiTitle, entry.WikiTitle),
		logging.String("file", entry.File),
		logging.Int("devices", len(idx.Devices)))
	return entry, nil
}

// ReadDevice returns the raw record for an indexed title.
func (s *Store) ReadDevice(title string) ([]byte, error) {
	idx, err := s.LoadIndex()
	if err != nil {
		return nil, err
	}
	entry, ok := idx.Find(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, title)
	}
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(entry.File)))
	if err != nil {
		return nil, fmt.Errorf("read device %q: %w", title, err)
	}
	return data, nil
}

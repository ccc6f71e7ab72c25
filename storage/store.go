// Package storage reads and writes whole JSON documents: the catalog and one
// record file per table.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v6"
	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"

	"github.com/ridoystarlord/primitivedb/schema"
)

const (
	DefaultCatalogFile = "db_meta.json"
	DefaultDataDir     = "data"
)

type Options struct {
	CatalogFile string
	DataDir     string
}

func (o Options) withDefaults() Options {
	if o.CatalogFile == "" {
		o.CatalogFile = DefaultCatalogFile
	}
	if o.DataDir == "" {
		o.DataDir = DefaultDataDir
	}
	return o
}

// Store is the persistence layer. Paths are relative to the root of fs.
type Store struct {
	fs   billy.Filesystem
	opts Options
}

func New(fs billy.Filesystem, opts Options) *Store {
	return &Store{fs: fs, opts: opts.withDefaults()}
}

// Open returns a store rooted at dir on the local disk, creating dir if needed.
func Open(dir string, opts Options) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating root directory %s: %v", dir, err)
	}
	return New(osfs.New(dir), opts), nil
}

// NewMemory returns a store backed by an in-memory filesystem.
func NewMemory(opts Options) *Store {
	return New(memfs.New(), opts)
}

func (s *Store) Filesystem() billy.Filesystem { return s.fs }

func (s *Store) CatalogPath() string { return s.opts.CatalogFile }

func (s *Store) RecordsPath(table string) string {
	return path.Join(s.opts.DataDir, table+".json")
}

// LoadDocument parses the JSON document at p into v. A missing file is not an
// error and leaves v untouched; content that fails to parse is reported as a
// *schema.DeserializationError.
func (s *Store) LoadDocument(p string, v any) error {
	f, err := s.fs.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("opening %s: %w", p, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", p, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &schema.DeserializationError{Path: p, Err: err}
	}
	return nil
}

// SaveDocument writes v as indented JSON. The document is written to a
// sibling temp file first and renamed over p, creating parent directories.
func (s *Store) SaveDocument(p string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", p, err)
	}

	if dir := path.Dir(p); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	tmp := p + ".tmp"
	f, err := s.fs.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		s.fs.Remove(tmp)
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		s.fs.Remove(tmp)
		return fmt.Errorf("closing %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		s.fs.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	return nil
}

// RemoveDocument deletes p. Removing a file that does not exist succeeds.
func (s *Store) RemoveDocument(p string) error {
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", p, err)
	}
	return nil
}

func (s *Store) Exists(p string) (bool, error) {
	_, err := s.fs.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Store) LoadCatalog() (schema.Catalog, error) {
	var cat schema.Catalog
	if err := s.LoadDocument(s.CatalogPath(), &cat); err != nil {
		return schema.Catalog{}, err
	}
	return cat, nil
}

func (s *Store) SaveCatalog(cat schema.Catalog) error {
	return s.SaveDocument(s.CatalogPath(), cat)
}

// LoadRecords returns the record set of a table; an absent file is an empty set.
func (s *Store) LoadRecords(table string) ([]schema.Record, error) {
	records := []schema.Record{}
	if err := s.LoadDocument(s.RecordsPath(table), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) SaveRecords(table string, records []schema.Record) error {
	if records == nil {
		records = []schema.Record{}
	}
	return s.SaveDocument(s.RecordsPath(table), records)
}

// RecordFiles lists the table names that have a record file in the data
// directory, sorted. A missing data directory yields no names.
func (s *Store) RecordFiles() ([]string, error) {
	entries, err := s.fs.ReadDir(s.opts.DataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %s: %w", s.opts.DataDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) RemoveRecords(table string) error {
	return s.RemoveDocument(s.RecordsPath(table))
}

// Package table loads, merges and persists field-mapping tables. Tables are
// JSON documents; later sources override earlier ones on key collision, and
// exactly one source (custom.json) accepts learned entries back.
package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// CustomFileName is the writable mapping source inside a mappings
// directory. It always merges last so learned entries win.
const CustomFileName = "custom.json"

// BuiltinSource is the provenance label for entries from the compiled-in
// exact table.
const BuiltinSource = "builtin"

// LearnRecord is one append-only learn_history entry in the custom table.
type LearnRecord struct {
	SourceName    string    `json:"source_name"`
	CanonicalName string    `json:"canonical_name"`
	Group         string    `json:"group"`
	DType         string    `json:"dtype"`
	LearnedAt     time.Time `json:"learned_at"`
}

// Source is one loaded mapping table, in load order.
type Source struct {
	Path         string
	Domain       string
	Description  string
	Entries      map[string]core.MappingEntry
	LearnHistory []LearnRecord
	Writable     bool
}

// tableFile is the on-disk JSON shape of a mapping table.
type tableFile struct {
	Domain       string                       `json:"domain"`
	Description  string                       `json:"description"`
	Mappings     map[string]core.MappingEntry `json:"mappings"`
	LearnHistory []LearnRecord                `json:"learn_history,omitempty"`
}

// Store is the merged view over the built-in exact table and any number of
// JSON sources. Not safe for concurrent use.
type Store struct {
	builtin map[string]core.MappingEntry
	sources []*Source

	merged     map[string]core.MappingEntry
	provenance map[string]string

	now func() time.Time
}

// NewStore builds a store seeded with the built-in exact entries as the
// lowest-precedence source. builtin may be nil for a table-only store.
func NewStore(builtin map[string]core.MappingEntry) *Store {
	s := &Store{
		builtin: builtin,
		now:     time.Now,
	}
	s.remerge()
	return s
}

// Load reads mapping tables in the given order. Any unreadable or invalid
// file fails the whole load with a ConfigLoadError and leaves the store
// unchanged.
func (s *Store) Load(paths ...string) error {
	loaded := make([]*Source, 0, len(paths))
	for _, p := range paths {
		src, err := readSource(p)
		if err != nil {
			return err
		}
		loaded = append(loaded, src)
	}
	s.sources = append(s.sources, loaded...)
	s.remerge()
	return nil
}

// LoadDir loads every *.json table in dir in lexical order, with
// custom.json forced last and marked writable. A missing custom.json is
// registered anyway so Learn has somewhere to write; a missing directory
// loads nothing.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.registerCustom(filepath.Join(dir, CustomFileName))
			return nil
		}
		return &core.ConfigLoadError{Path: dir, Err: err}
	}

	var names []string
	hasCustom := false
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if e.Name() == CustomFileName {
			hasCustom = true
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names)+1)
	for _, n := range names {
		paths = append(paths, filepath.Join(dir, n))
	}
	customPath := filepath.Join(dir, CustomFileName)
	if hasCustom {
		paths = append(paths, customPath)
	}

	if err := s.Load(paths...); err != nil {
		return err
	}
	if hasCustom {
		s.sources[len(s.sources)-1].Writable = true
	} else {
		s.registerCustom(customPath)
	}
	return nil
}

func (s *Store) registerCustom(path string) {
	s.sources = append(s.sources, &Source{
		Path:     path,
		Domain:   "custom",
		Entries:  make(map[string]core.MappingEntry),
		Writable: true,
	})
}

// Get returns the merged entry for a source field name.
func (s *Store) Get(sourceName string) (core.MappingEntry, bool) {
	e, ok := s.merged[sourceName]
	return e, ok
}

// Provenance reports which source supplied the merged entry for a name:
// a file path, or "builtin" for the compiled-in table.
func (s *Store) Provenance(sourceName string) (string, bool) {
	p, ok := s.provenance[sourceName]
	return p, ok
}

// Entries returns a copy of the merged view.
func (s *Store) Entries() map[string]core.MappingEntry {
	out := make(map[string]core.MappingEntry, len(s.merged))
	for k, v := range s.merged {
		out[k] = v
	}
	return out
}

// Sources returns the loaded sources in merge order.
func (s *Store) Sources() []*Source { return s.sources }

// Len returns the merged entry count.
func (s *Store) Len() int { return len(s.merged) }

// Learn appends a mapping to the writable custom source, records it in
// learn_history, rewrites the file atomically and refreshes the merged
// view.
func (s *Store) Learn(sourceName string, entry core.MappingEntry) error {
	custom := s.writableSource()
	if custom == nil {
		return fmt.Errorf("no writable mapping source loaded")
	}

	custom.Entries[sourceName] = entry
	custom.LearnHistory = append(custom.LearnHistory, LearnRecord{
		SourceName:    sourceName,
		CanonicalName: entry.EnName,
		Group:         string(entry.Group),
		DType:         string(entry.DType),
		LearnedAt:     s.now().UTC(),
	})

	if err := writeSource(custom); err != nil {
		return err
	}
	s.remerge()
	return nil
}

func (s *Store) writableSource() *Source {
	for i := len(s.sources) - 1; i >= 0; i-- {
		if s.sources[i].Writable {
			return s.sources[i]
		}
	}
	return nil
}

func (s *Store) remerge() {
	merged := make(map[string]core.MappingEntry, len(s.builtin))
	prov := make(map[string]string, len(s.builtin))
	for k, v := range s.builtin {
		merged[k] = v
		prov[k] = BuiltinSource
	}
	for _, src := range s.sources {
		for k, v := range src.Entries {
			merged[k] = v
			prov[k] = src.Path
		}
	}
	s.merged = merged
	s.provenance = prov
}

func readSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.ConfigLoadError{Path: path, Err: err}
	}

	// Distinguish "mappings key absent" from "mappings empty".
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &core.ConfigLoadError{Path: path, Err: err}
	}
	if _, ok := probe["mappings"]; !ok {
		return nil, &core.ConfigLoadError{Path: path, Err: errors.New(`missing "mappings" key`)}
	}
	if _, ok := probe["domain"]; !ok {
		return nil, &core.ConfigLoadError{Path: path, Err: errors.New(`missing "domain" key`)}
	}

	var f tableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &core.ConfigLoadError{Path: path, Err: err}
	}
	if f.Mappings == nil {
		f.Mappings = make(map[string]core.MappingEntry)
	}
	if err := validateEntries(f.Mappings); err != nil {
		return nil, &core.ConfigLoadError{Path: path, Err: err}
	}
	return &Source{
		Path:         path,
		Domain:       f.Domain,
		Description:  f.Description,
		Entries:      f.Mappings,
		LearnHistory: f.LearnHistory,
	}, nil
}

// validateEntries enforces the closed group and dtype enums on file
// entries. One bad entry rejects the whole file; keys are checked in sorted
// order so the reported entry is deterministic.
func validateEntries(entries map[string]core.MappingEntry) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := entries[name]
		if strings.TrimSpace(e.EnName) == "" {
			return fmt.Errorf("entry %q: empty en_name", name)
		}
		if !e.Group.Valid() {
			return fmt.Errorf("entry %q: unknown group %q", name, e.Group)
		}
		if !e.DType.Valid() {
			return fmt.Errorf("entry %q: unknown dtype %q", name, e.DType)
		}
	}
	return nil
}

func writeSource(src *Source) error {
	f := tableFile{
		Domain:       src.Domain,
		Description:  src.Description,
		Mappings:     src.Entries,
		LearnHistory: src.LearnHistory,
	}
	if f.Domain == "" {
		f.Domain = "custom"
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(src.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mappings dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".custom-*.json")
	if err != nil {
		return fmt.Errorf("write mapping table: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write mapping table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write mapping table: %w", err)
	}
	if err := os.Rename(tmpPath, src.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write mapping table: %w", err)
	}
	return nil
}

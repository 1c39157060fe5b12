// Package state owns the persisted view configuration. It is the only writer
// of ViewState; every mutation arrives as a partial patch and is persisted
// synchronously.
package state

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"backend/internal/models"
	"backend/internal/platform/logger"
)

// Store binds the current view state to a single file, the analog of one
// named key in a browser's local storage.
type Store struct {
	mu      sync.Mutex
	path    string
	catalog []string
	current models.ViewState
	loaded  bool
	log     *logger.Logger
}

// NewStore builds a store persisting to path, with catalog as the full column
// set used for defaults and fallbacks.
func NewStore(path string, catalog []string, log *logger.Logger) *Store {
	return &Store{path: path, catalog: catalog, log: log}
}

// Load reads the persisted state, falling back to defaults where the file is
// absent or damaged. Recovery is per field: a field that fails to decode
// drops to its default without discarding fields that parsed. Load never
// fails. A corrupt file must not take down session startup.
func (s *Store) Load() models.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.DefaultState(s.catalog)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("state file unreadable, using defaults", "path", s.path, "err", err)
		}
		s.current, s.loaded = st, true
		return st.Clone()
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		s.log.Warn("state file malformed, using defaults", "path", s.path, "err", err)
		s.current, s.loaded = st, true
		return st.Clone()
	}

	decodeField(fields, "filters", &st.Filters)
	decodeField(fields, "sortField", &st.SortField)
	decodeField(fields, "sortOrder", &st.SortOrder)
	decodeField(fields, "globalFilter", &st.GlobalFilter)
	decodeField(fields, "visibleColumns", &st.VisibleColumns)
	decodeField(fields, "size", &st.Size)
	decodeField(fields, "rows", &st.Rows)
	decodeField(fields, "columnOrder", &st.ColumnOrder)

	s.repair(&st)
	s.current, s.loaded = st, true
	return st.Clone()
}

// Current returns the state, loading it on first use.
func (s *Store) Current() models.ViewState {
	s.mu.Lock()
	if s.loaded {
		st := s.current.Clone()
		s.mu.Unlock()
		return st
	}
	s.mu.Unlock()
	return s.Load()
}

// Merge shallow-merges the patch into the current state (each set patch
// field replaces the matching state field wholesale) and then persists the
// result synchronously. Returns the new state.
func (s *Store) Merge(patch models.StatePatch) models.ViewState {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		s.Load()
		s.mu.Lock()
	}

	st := s.current.Clone()
	if patch.Filters != nil {
		st.Filters = patch.Filters
	}
	if patch.Sort != nil {
		if patch.Sort.Field == "" {
			st.SortField, st.SortOrder = nil, nil
		} else {
			f, o := patch.Sort.Field, patch.Sort.Order
			st.SortField, st.SortOrder = &f, &o
		}
	}
	if patch.GlobalFilter != nil {
		st.GlobalFilter = *patch.GlobalFilter
	}
	if patch.VisibleColumns != nil {
		st.VisibleColumns = patch.VisibleColumns
	}
	if patch.Size != nil {
		st.Size = *patch.Size
	}
	if patch.Rows != nil {
		st.Rows = *patch.Rows
	}
	if patch.ColumnOrder != nil {
		st.ColumnOrder = patch.ColumnOrder
	}

	s.current = st
	out := st.Clone()
	s.mu.Unlock()

	if err := s.Persist(out); err != nil {
		// Last-write-wins session data; losing one write is not fatal.
		s.log.Error("persist view state failed", "path", s.path, "err", err)
	}
	return out
}

// Persist serializes the full state, overwriting any prior value.
func (s *Store) Persist(st models.ViewState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

// repair restores invariants on a freshly loaded state.
func (s *Store) repair(st *models.ViewState) {
	if st.Filters == nil {
		st.Filters = map[string]models.FilterMeta{}
	}
	// Sort is either fully set or fully unset.
	if st.SortField == nil || st.SortOrder == nil {
		st.SortField, st.SortOrder = nil, nil
	}
	// An empty visibleColumns would render a headerless table.
	if len(st.VisibleColumns) == 0 {
		st.VisibleColumns = append([]string(nil), s.catalog...)
	}
	if len(st.ColumnOrder) == 0 {
		st.ColumnOrder = append([]string(nil), s.catalog...)
	}
	if !models.ValidSize(st.Size) {
		st.Size = models.SizeNormal
	}
	if st.Rows <= 0 {
		st.Rows = models.DefaultState(nil).Rows
	}
}

// decodeField unmarshals one schema field, leaving dst untouched on error.
func decodeField[T any](fields map[string]json.RawMessage, key string, dst *T) {
	raw, ok := fields[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return
	}
	*dst = v
}

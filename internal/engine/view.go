package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"backend/internal/models"
	"backend/internal/platform/logger"
	"backend/internal/state"
)

var (
	// ErrUnknownField rejects intents naming a field outside the catalog.
	ErrUnknownField = errors.New("unknown column")
	// ErrLastVisibleColumn guards against hiding every column.
	ErrLastVisibleColumn = errors.New("cannot hide the last visible column")
	// ErrInvalidSize rejects display densities outside the enum.
	ErrInvalidSize = errors.New("invalid table size")
	// ErrInvalidRowCount rejects non-positive page sizes.
	ErrInvalidRowCount = errors.New("rows per page must be positive")
)

// View is the derived display payload handed to the rendering side: the rows
// that survived filtering and sorting, plus the rows pinned above them.
type View struct {
	Rows    []models.Product `json:"rows"`
	Frozen  []models.Product `json:"frozen"`
	Total   int              `json:"total"`
	Matched int              `json:"matched"`
}

// Coordinator composes the state store, the filter evaluator and the
// append-only dataset. All user intents land here; the coordinator owns the
// deep-merge of the filters map that the store's shallow merge does not do.
//
// Each transition is synchronous, but the HTTP boundary is concurrent, so the
// dataset and frozen set sit behind a RWMutex.
type Coordinator struct {
	mu      sync.RWMutex
	store   *state.Store
	dataset []models.Product
	frozen  []models.Product // rows pinned via row selection
	pinned  *models.Product  // snapshot taken by the freeze-first-row toggle
	log     *logger.Logger
}

// NewCoordinator builds a coordinator over the given store. The persisted
// state is loaded eagerly so the first derivation sees the session's saved
// preferences.
func NewCoordinator(store *state.Store, log *logger.Logger) *Coordinator {
	store.Load()
	return &Coordinator{store: store, log: log}
}

// State returns the current view state.
func (c *Coordinator) State() models.ViewState {
	return c.store.Current()
}

// Append grows the dataset by one whole batch. Storage order is append-only;
// sorting and filtering derive views without touching it.
func (c *Coordinator) Append(batch []models.Product) {
	c.mu.Lock()
	c.dataset = append(c.dataset, batch...)
	c.mu.Unlock()
}

// Len returns the dataset size.
func (c *Coordinator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.dataset)
}

// Dataset returns a copy of the full dataset in storage order, for consumers
// like export that want everything regardless of the active view.
func (c *Coordinator) Dataset() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.dataset...)
}

// SetSort toggles the sort on field through ascending → descending → unset.
// Sorting a different field replaces the prior sort and starts ascending.
func (c *Coordinator) SetSort(field string) (models.ViewState, error) {
	if !models.KnownColumn(field) {
		return models.ViewState{}, fmt.Errorf("sort %q: %w", field, ErrUnknownField)
	}
	cur := c.store.Current()
	next := &models.Sort{Field: field, Order: models.SortAscending}
	if cur.Sorted() && *cur.SortField == field {
		switch *cur.SortOrder {
		case models.SortAscending:
			next.Order = models.SortDescending
		default:
			next = &models.Sort{} // third press clears the sort
		}
	}
	return c.store.Merge(models.StatePatch{Sort: next}), nil
}

// SetFilter upserts one entry in the filters map, preserving all others. An
// empty value clears the entry entirely: cleared filters are removed, never
// left as nulls.
func (c *Coordinator) SetFilter(field string, value any, mode string) (models.ViewState, error) {
	if !models.KnownColumn(field) {
		return models.ViewState{}, fmt.Errorf("filter %q: %w", field, ErrUnknownField)
	}
	if mode == "" {
		mode = ModeContains
	}
	cur := c.store.Current()
	filters := make(map[string]models.FilterMeta, len(cur.Filters)+1)
	for k, v := range cur.Filters {
		filters[k] = v
	}
	if activeFilterValue(value) {
		filters[field] = models.FilterMeta{Value: value, MatchMode: mode}
	} else {
		delete(filters, field)
	}
	return c.store.Merge(models.StatePatch{Filters: filters}), nil
}

// SetGlobalFilter sets the free-text filter applied across all fields.
func (c *Coordinator) SetGlobalFilter(q string) models.ViewState {
	return c.store.Merge(models.StatePatch{GlobalFilter: &q})
}

// ClearFilters empties the filter map and the global filter in one merge.
func (c *Coordinator) ClearFilters() models.ViewState {
	empty := ""
	return c.store.Merge(models.StatePatch{
		Filters:      map[string]models.FilterMeta{},
		GlobalFilter: &empty,
	})
}

// ToggleColumn shows or hides one column. Hiding the last visible column is
// refused (a table with zero columns has no header left to recover from).
func (c *Coordinator) ToggleColumn(field string) (models.ViewState, error) {
	if !models.KnownColumn(field) {
		return models.ViewState{}, fmt.Errorf("toggle %q: %w", field, ErrUnknownField)
	}
	cur := c.store.Current()
	visible := make([]string, 0, len(cur.VisibleColumns)+1)
	removed := false
	for _, col := range cur.VisibleColumns {
		if col == field {
			removed = true
			continue
		}
		visible = append(visible, col)
	}
	if removed {
		if len(visible) == 0 {
			return models.ViewState{}, ErrLastVisibleColumn
		}
	} else {
		visible = append(visible, field)
	}
	return c.store.Merge(models.StatePatch{VisibleColumns: visible}), nil
}

// SetColumnOrder records a user-driven reordering. Only catalog columns are
// accepted.
func (c *Coordinator) SetColumnOrder(order []string) (models.ViewState, error) {
	for _, col := range order {
		if !models.KnownColumn(col) {
			return models.ViewState{}, fmt.Errorf("order %q: %w", col, ErrUnknownField)
		}
	}
	return c.store.Merge(models.StatePatch{ColumnOrder: order}), nil
}

// SetSize sets the display density.
func (c *Coordinator) SetSize(size string) (models.ViewState, error) {
	if !models.ValidSize(size) {
		return models.ViewState{}, fmt.Errorf("size %q: %w", size, ErrInvalidSize)
	}
	return c.store.Merge(models.StatePatch{Size: &size}), nil
}

// SetRows sets the page size.
func (c *Coordinator) SetRows(n int) (models.ViewState, error) {
	if n <= 0 {
		return models.ViewState{}, fmt.Errorf("rows %d: %w", n, ErrInvalidRowCount)
	}
	return c.store.Merge(models.StatePatch{Rows: &n}), nil
}

// ToggleFreeze flips the freeze-first-row flag. Enabling snapshots the
// current first dataset row; disabling drops that snapshot. Rows frozen via
// row selection are unaffected. Returns whether the flag is now on.
func (c *Coordinator) ToggleFreeze() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned != nil {
		c.pinned = nil
		return false
	}
	if len(c.dataset) == 0 {
		return false
	}
	first := c.dataset[0]
	c.pinned = &first
	return true
}

// FreezeFirstRow reports whether the freeze-first-row toggle is on.
func (c *Coordinator) FreezeFirstRow() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pinned != nil
}

// FreezeRow pins the record with the given id. No-op when the id is already
// frozen or unknown; reports whether anything changed.
func (c *Coordinator) FreezeRow(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pinned != nil && c.pinned.ID == id {
		return false
	}
	for _, row := range c.frozen {
		if row.ID == id {
			return false
		}
	}
	for _, row := range c.dataset {
		if row.ID == id {
			c.frozen = append(c.frozen, row)
			return true
		}
	}
	return false
}

// UnfreezeRow removes the record with the given id from the frozen set.
func (c *Coordinator) UnfreezeRow(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, row := range c.frozen {
		if row.ID == id {
			c.frozen = append(c.frozen[:i], c.frozen[i+1:]...)
			return true
		}
	}
	return false
}

// Derive recomputes the visible rows: filter the full dataset, then apply the
// single active sort. The sort is stable, so equal keys keep their dataset
// append order; an unset sort preserves append order outright.
func (c *Coordinator) Derive() View {
	st := c.store.Current()

	c.mu.RLock()
	total := len(c.dataset)
	rows := make([]models.Product, 0, total)
	for _, p := range c.dataset {
		if Matches(p, st.Filters, st.GlobalFilter) {
			rows = append(rows, p)
		}
	}
	frozen := make([]models.Product, 0, len(c.frozen)+1)
	if c.pinned != nil {
		frozen = append(frozen, *c.pinned)
	}
	frozen = append(frozen, c.frozen...)
	c.mu.RUnlock()

	if st.Sorted() {
		field, order := *st.SortField, *st.SortOrder
		sort.SliceStable(rows, func(i, j int) bool {
			return compareField(rows[i], rows[j], field)*order < 0
		})
	}

	return View{Rows: rows, Frozen: frozen, Total: total, Matched: len(rows)}
}

// compareField orders two records by one column: numerically when the column
// is numeric, lexicographically on the string form otherwise.
func compareField(a, b models.Product, field string) int {
	av, ok := a.Value(field)
	if !ok {
		return 0
	}
	bv, _ := b.Value(field)
	if af, numeric := numericValue(av); numeric {
		bf, _ := numericValue(bv)
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	return strings.Compare(a.StringValue(field), b.StringValue(field))
}

package models

// Display densities.
const (
	SizeSmall  = "small"
	SizeNormal = "normal"
	SizeLarge  = "large"
)

// Sort orders. A sort is either fully set (field + order) or fully unset.
const (
	SortAscending  = 1
	SortDescending = -1
)

// FilterMeta is one active column filter: the value to match and the match
// mode to apply. Cleared filters are removed from the map, never set to nil.
type FilterMeta struct {
	Value     any    `json:"value"`
	MatchMode string `json:"matchMode"`
}

// ViewState is the single source of session truth for how the table is
// displayed. It is owned by the state store; all writes arrive as patches.
type ViewState struct {
	Filters        map[string]FilterMeta `json:"filters"`
	SortField      *string               `json:"sortField"`
	SortOrder      *int                  `json:"sortOrder"`
	GlobalFilter   string                `json:"globalFilter"`
	VisibleColumns []string              `json:"visibleColumns"`
	Size           string                `json:"size"`
	Rows           int                   `json:"rows"`
	ColumnOrder    []string              `json:"columnOrder"`
}

// Sort pairs a sort field with its order. The two always change together, so
// patches carry them as one unit.
type Sort struct {
	Field string
	Order int
}

// StatePatch is a partial view-state update. A nil field leaves the current
// value untouched; a set field replaces the current value wholesale (no deep
// merge; callers updating one filter pass the whole pre-merged map).
type StatePatch struct {
	Filters        map[string]FilterMeta
	Sort           *Sort // Field == "" clears the sort
	GlobalFilter   *string
	VisibleColumns []string
	Size           *string
	Rows           *int
	ColumnOrder    []string
}

// DefaultState builds the fallback view state for the given column catalog:
// no filters, no sort, every column visible in catalog order.
func DefaultState(catalog []string) ViewState {
	visible := make([]string, len(catalog))
	copy(visible, catalog)
	order := make([]string, len(catalog))
	copy(order, catalog)
	return ViewState{
		Filters:        map[string]FilterMeta{},
		GlobalFilter:   "",
		VisibleColumns: visible,
		Size:           SizeNormal,
		Rows:           5,
		ColumnOrder:    order,
	}
}

// ValidSize reports whether s is one of the display density values.
func ValidSize(s string) bool {
	return s == SizeSmall || s == SizeNormal || s == SizeLarge
}

// Clone returns a deep copy so callers can hand out state without aliasing
// the store's maps and slices.
func (s ViewState) Clone() ViewState {
	out := s
	out.Filters = make(map[string]FilterMeta, len(s.Filters))
	for k, v := range s.Filters {
		out.Filters[k] = v
	}
	if s.SortField != nil {
		f := *s.SortField
		out.SortField = &f
	}
	if s.SortOrder != nil {
		o := *s.SortOrder
		out.SortOrder = &o
	}
	out.VisibleColumns = append([]string(nil), s.VisibleColumns...)
	out.ColumnOrder = append([]string(nil), s.ColumnOrder...)
	return out
}

// Sorted reports whether a sort is active.
func (s ViewState) Sorted() bool {
	return s.SortField != nil && s.SortOrder != nil
}

// HasActiveFilters reports whether any column filter or the global filter is set.
func (s ViewState) HasActiveFilters() bool {
	return len(s.Filters) > 0 || s.GlobalFilter != ""
}

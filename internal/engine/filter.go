package engine

import (
	"strconv"
	"strings"

	"backend/internal/models"
)

// Match modes a column filter can carry.
const (
	ModeContains   = "contains"
	ModeEquals     = "equals"
	ModeStartsWith = "startsWith"
	ModeEndsWith   = "endsWith"
	ModeGreater    = "gt"
	ModeLess       = "lt"
	ModeBetween    = "between"
)

// Matches decides whether a record is visible under the given filter map and
// global free-text filter. A record passes iff it passes every filter entry
// AND, when the global filter is non-empty, at least one field's string form
// contains it case-insensitively.
//
// Evaluation never panics: empty filter values, unknown fields, unknown modes
// and type mismatches are all non-restrictive: a malformed filter must not
// silently hide the whole dataset.
func Matches(p models.Product, filters map[string]models.FilterMeta, global string) bool {
	for field, meta := range filters {
		if !matchField(p, field, meta) {
			return false
		}
	}
	if global == "" {
		return true
	}
	needle := strings.ToLower(global)
	for _, field := range models.Columns() {
		if strings.Contains(strings.ToLower(p.StringValue(field)), needle) {
			return true
		}
	}
	return false
}

func matchField(p models.Product, field string, meta models.FilterMeta) bool {
	val, ok := p.Value(field)
	if !ok {
		return true
	}
	if !activeFilterValue(meta.Value) {
		return true
	}

	switch meta.MatchMode {
	case ModeContains, "":
		return strings.Contains(
			strings.ToLower(p.StringValue(field)),
			strings.ToLower(filterString(meta.Value)),
		)
	case ModeEquals:
		if fv, numeric := numericValue(val); numeric {
			qv, ok := numericValue(meta.Value)
			if !ok {
				return true
			}
			return fv == qv
		}
		return p.StringValue(field) == filterString(meta.Value)
	case ModeStartsWith:
		return strings.HasPrefix(
			strings.ToLower(p.StringValue(field)),
			strings.ToLower(filterString(meta.Value)),
		)
	case ModeEndsWith:
		return strings.HasSuffix(
			strings.ToLower(p.StringValue(field)),
			strings.ToLower(filterString(meta.Value)),
		)
	case ModeGreater:
		fv, ok1 := numericValue(val)
		qv, ok2 := numericValue(meta.Value)
		if !ok1 || !ok2 {
			return true
		}
		return fv > qv
	case ModeLess:
		fv, ok1 := numericValue(val)
		qv, ok2 := numericValue(meta.Value)
		if !ok1 || !ok2 {
			return true
		}
		return fv < qv
	case ModeBetween:
		lo, hi, ok1 := rangeValue(meta.Value)
		fv, ok2 := numericValue(val)
		if !ok1 || !ok2 {
			return true
		}
		return fv >= lo && fv <= hi
	}
	// Unknown mode: pass through rather than hide data.
	return true
}

// activeFilterValue reports whether a filter value actually constrains
// anything. nil, empty strings and empty ranges are inactive.
func activeFilterValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case []float64:
		return len(t) > 0
	}
	return true
}

// numericValue coerces record or filter values into a float64 for the
// numeric modes. Strings parse if they look like numbers.
func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

// rangeValue extracts the inclusive [low, high] pair of a between filter.
func rangeValue(v any) (lo, hi float64, ok bool) {
	switch t := v.(type) {
	case []any:
		if len(t) != 2 {
			return 0, 0, false
		}
		lo, ok1 := numericValue(t[0])
		hi, ok2 := numericValue(t[1])
		return lo, hi, ok1 && ok2
	case []float64:
		if len(t) != 2 {
			return 0, 0, false
		}
		return t[0], t[1], true
	}
	return 0, 0, false
}

// filterString renders a filter value for the textual modes.
func filterString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

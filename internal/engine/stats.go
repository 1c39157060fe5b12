package engine

import "backend/internal/models"

// Availability counts the dataset per inventory status.
type Availability struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// PriceRange is the dataset's min/max price.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Stats summarizes the full dataset for the controls around the table (row
// counters, filter hints). Derived from storage order, independent of the
// active view.
type Stats struct {
	Rows         int          `json:"rows"`
	Availability Availability `json:"availability"`
	PriceRange   PriceRange   `json:"priceRange"`
	LastID       int64        `json:"lastId"`
}

// Stats runs one pass over the dataset. Cheap enough to recompute on demand;
// nothing is cached.
func (c *Coordinator) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Rows: len(c.dataset)}
	for i, p := range c.dataset {
		switch p.InventoryStatus {
		case models.StatusInStock:
			s.Availability.InStock++
		case models.StatusLowStock:
			s.Availability.LowStock++
		case models.StatusOutOfStock:
			s.Availability.OutOfStock++
		}
		if i == 0 || p.Price < s.PriceRange.Min {
			s.PriceRange.Min = p.Price
		}
		if p.Price > s.PriceRange.Max {
			s.PriceRange.Max = p.Price
		}
		if p.ID > s.LastID {
			s.LastID = p.ID
		}
	}
	return s
}

package engine

import (
	"fmt"
	"path/filepath"
	"testing"

	"backend/internal/models"
	"backend/internal/platform/logger"
	"backend/internal/state"
)

func noplog() *logger.Logger {
	return logger.NewNop()
}

// fixture builds a small hand-written dataset with known field values.
func fixture() []models.Product {
	base := models.DefaultTemplate()

	mk := func(id int64, name string, price float64, status string, rating int) models.Product {
		p := base
		p.ID = id
		p.Name = name
		p.Price = price
		p.InventoryStatus = status
		p.Rating = rating
		// Neutralize template text that would leak into global-filter matches.
		p.SKU = fmt.Sprintf("SKU%03d", id)
		p.Description = "Everyday accessory"
		p.Manufacturer = "Acme Goods"
		return p
	}

	return []models.Product{
		mk(1, "Bamboo Watch", 65, models.StatusInStock, 5),
		mk(2, "Black Watch", 72, models.StatusLowStock, 4),
		mk(3, "Blue Band", 79, models.StatusLowStock, 3),
		mk(4, "Blue T-Shirt", 29, models.StatusOutOfStock, 5),
		mk(5, "Bracelet", 15, models.StatusInStock, 4),
		mk(6, "Brown Purse", 29, models.StatusInStock, 2),
	}
}

// newTestCoordinator wires a coordinator over a store persisting into the
// test's temp dir, preloaded with the fixture dataset.
func newTestCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table_state.json")
	store := state.NewStore(path, models.Columns(), noplog())
	c := NewCoordinator(store, noplog())
	c.Append(fixture())
	return c
}

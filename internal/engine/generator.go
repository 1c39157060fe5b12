package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"backend/internal/models"
)

// statuses a generated product can land in, picked uniformly.
var statuses = []string{
	models.StatusInStock,
	models.StatusLowStock,
	models.StatusOutOfStock,
}

// Generate builds one product from the template and its identity. Every field
// is copied verbatim except the ones recomputed below. The result depends
// only on (template, id, rng); nothing is read back from earlier records, so
// records in a batch can be generated in any order.
func Generate(template models.Product, id int64, rng *rand.Rand) models.Product {
	p := template
	p.Certifications = append([]string(nil), template.Certifications...)

	// Deterministic fields: reproducible for a given identity.
	p.ID = id
	p.Code = fmt.Sprintf("%s-%d", template.Code, id)
	p.Name = fmt.Sprintf("%s %d", template.Name, id)

	// Randomized fields, all with bounded draws.
	p.Price = scaled(template.Price, rng)
	p.UnitCost = scaled(template.UnitCost, rng)
	p.Quantity = rng.Intn(100)
	p.Rating = clampRating(rng.Intn(6))
	p.InventoryStatus = statuses[rng.Intn(len(statuses))]
	p.DateAdded = time.Now().AddDate(0, 0, -rng.Intn(90)).Format("2006-01-02")
	p.SustainabilityScore = round1(rng.Float64()*5 + 5)
	p.ReturnRate = math.Round(rng.Float64()*100) / 10
	p.MinStockLevel = rng.Intn(20) + 5
	p.MaxStockLevel = rng.Intn(150) + 50
	p.Weight = round2(template.Weight * multiplier(rng))

	return p
}

// multiplier draws uniformly from [0.5, 2.5).
func multiplier(rng *rand.Rand) float64 {
	return rng.Float64()*2 + 0.5
}

// scaled applies a [0.5, 2.5) multiplier and rounds to the nearest whole
// amount. Non-negative for any non-negative base.
func scaled(base float64, rng *rand.Rand) float64 {
	return math.Round(base * multiplier(rng))
}

func clampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

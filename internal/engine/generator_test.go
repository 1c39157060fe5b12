package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/models"
)

func TestGenerateDeterministicFields(t *testing.T) {
	template := models.DefaultTemplate()

	// Two independent random sources: the identity-derived fields must agree
	// regardless of what the randomized fields do.
	a := Generate(template, 7, rand.New(rand.NewSource(1)))
	b := Generate(template, 7, rand.New(rand.NewSource(99)))

	assert.Equal(t, int64(7), a.ID)
	assert.Equal(t, "f230fh0g3-7", a.Code)
	assert.Equal(t, "Bamboo Watch 7", a.Name)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Code, b.Code)
	assert.Equal(t, a.Name, b.Name)

	// Fields not in the recompute list copy through verbatim.
	assert.Equal(t, template.Description, a.Description)
	assert.Equal(t, template.Brand, a.Brand)
	assert.Equal(t, template.Certifications, a.Certifications)
	assert.Equal(t, template.TaxRate, a.TaxRate)
}

func TestGenerateRandomizedBounds(t *testing.T) {
	template := models.DefaultTemplate()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		p := Generate(template, int64(i+1), rng)

		// price/unitCost: round(base * U), U in [0.5, 2.5)
		assert.GreaterOrEqual(t, p.Price, 33.0)
		assert.LessOrEqual(t, p.Price, 162.0)
		assert.GreaterOrEqual(t, p.UnitCost, 16.0)
		assert.LessOrEqual(t, p.UnitCost, 81.0)

		assert.GreaterOrEqual(t, p.Quantity, 0)
		assert.Less(t, p.Quantity, 100)
		assert.GreaterOrEqual(t, p.Rating, 1)
		assert.LessOrEqual(t, p.Rating, 5)
		assert.Contains(t, statuses, p.InventoryStatus)

		// round-to-1-decimal can lift draws in [9.95, 10) to exactly 10.0
		assert.GreaterOrEqual(t, p.SustainabilityScore, 5.0)
		assert.LessOrEqual(t, p.SustainabilityScore, 10.0)
		assert.GreaterOrEqual(t, p.ReturnRate, 0.0)
		assert.LessOrEqual(t, p.ReturnRate, 10.0)

		assert.GreaterOrEqual(t, p.MinStockLevel, 5)
		assert.Less(t, p.MinStockLevel, 25)
		assert.GreaterOrEqual(t, p.MaxStockLevel, 50)
		assert.Less(t, p.MaxStockLevel, 200)

		assert.GreaterOrEqual(t, p.Weight, 0.1)
		assert.LessOrEqual(t, p.Weight, 0.5)
	}
}

func TestGenerateDateAdded(t *testing.T) {
	template := models.DefaultTemplate()
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 100; i++ {
		p := Generate(template, int64(i+1), rng)
		added, err := time.Parse("2006-01-02", p.DateAdded)
		require.NoError(t, err, "dateAdded must be an ISO calendar date")

		age := time.Since(added)
		assert.GreaterOrEqual(t, age, -24*time.Hour) // same calendar day truncates to midnight
		assert.Less(t, age, 91*24*time.Hour)
	}
}

func TestGenerateDoesNotAliasTemplate(t *testing.T) {
	template := models.DefaultTemplate()
	p := Generate(template, 1, rand.New(rand.NewSource(1)))

	require.NotEmpty(t, p.Certifications)
	p.Certifications[0] = "mutated"
	assert.Equal(t, "FSC", template.Certifications[0])
}

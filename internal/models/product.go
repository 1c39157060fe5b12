package models

import (
	"strconv"
	"strings"
)

// Inventory status values a product can carry.
const (
	StatusInStock    = "INSTOCK"
	StatusLowStock   = "LOWSTOCK"
	StatusOutOfStock = "OUTOFSTOCK"
)

// Product is one row of the table. Instances are immutable once generated:
// regeneration always builds a new value, never edits one in place.
type Product struct {
	ID                   int64    `json:"id"`
	Code                 string   `json:"code"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	Category             string   `json:"category"`
	Quantity             int      `json:"quantity"`
	InventoryStatus      string   `json:"inventoryStatus"`
	Rating               int      `json:"rating"`
	SKU                  string   `json:"sku"`
	Brand                string   `json:"brand"`
	Manufacturer         string   `json:"manufacturer"`
	Color                string   `json:"color"`
	Size                 string   `json:"size"`
	Weight               float64  `json:"weight"`
	Dimensions           string   `json:"dimensions"`
	Material             string   `json:"material"`
	DateAdded            string   `json:"dateAdded"`
	LastModified         string   `json:"lastModified"`
	SupplierName         string   `json:"supplierName"`
	SupplierContact      string   `json:"supplierContact"`
	MinStockLevel        int      `json:"minStockLevel"`
	MaxStockLevel        int      `json:"maxStockLevel"`
	ReorderPoint         int      `json:"reorderPoint"`
	LeadTime             int      `json:"leadTime"`
	UnitCost             float64  `json:"unitCost"`
	ProfitMargin         float64  `json:"profitMargin"`
	DiscountAvailable    bool     `json:"discountAvailable"`
	TaxRate              float64  `json:"taxRate"`
	ShelfLocation        string   `json:"shelfLocation"`
	Barcode              string   `json:"barcode"`
	WarrantyPeriod       string   `json:"warrantyPeriod"`
	Certifications       []string `json:"certifications"`
	CountryOfOrigin      string   `json:"countryOfOrigin"`
	CustomsTariffNumber  string   `json:"customsTariffNumber"`
	PackageType          string   `json:"packageType"`
	UnitsPerPackage      int      `json:"unitsPerPackage"`
	ShippingWeight       float64  `json:"shippingWeight"`
	ShippingClass        string   `json:"shippingClass"`
	HandlingInstructions string   `json:"handlingInstructions"`
	SafetyStock          int      `json:"safetyStock"`
	Seasonality          string   `json:"seasonality"`
	ProductLifecycle     string   `json:"productLifecycle"`
	SustainabilityScore  float64  `json:"sustainabilityScore"`
	ReturnRate           float64  `json:"returnRate"`
}

// DefaultTemplate returns a fresh copy of the canonical baseline record used to
// seed generation. Callers own the returned value; the template itself is never
// shared or mutated.
func DefaultTemplate() Product {
	return Product{
		ID:                   1,
		Code:                 "f230fh0g3",
		Name:                 "Bamboo Watch",
		Description:          "Eco-friendly bamboo watch with leather strap",
		Price:                65,
		Category:             "Accessories",
		Quantity:             24,
		InventoryStatus:      StatusInStock,
		Rating:               5,
		SKU:                  "WATCH001",
		Brand:                "EcoTime",
		Manufacturer:         "GreenWatch Co.",
		Color:                "Brown",
		Size:                 "One Size",
		Weight:               0.2,
		Dimensions:           "4x4x2",
		Material:             "Bamboo, Leather",
		DateAdded:            "2024-01-15",
		LastModified:         "2024-03-10",
		SupplierName:         "EcoSupplies Ltd",
		SupplierContact:      "contact@ecosupplies.com",
		MinStockLevel:        10,
		MaxStockLevel:        100,
		ReorderPoint:         15,
		LeadTime:             14,
		UnitCost:             32.50,
		ProfitMargin:         100,
		DiscountAvailable:    true,
		TaxRate:              20,
		ShelfLocation:        "A1-B2",
		Barcode:              "123456789",
		WarrantyPeriod:       "2 years",
		Certifications:       []string{"FSC", "Fair Trade"},
		CountryOfOrigin:      "Vietnam",
		CustomsTariffNumber:  "9102.12.80",
		PackageType:          "Box",
		UnitsPerPackage:      1,
		ShippingWeight:       0.3,
		ShippingClass:        "Standard",
		HandlingInstructions: "Handle with care",
		SafetyStock:          20,
		Seasonality:          "All Year",
		ProductLifecycle:     "Growth",
		SustainabilityScore:  9.5,
		ReturnRate:           2.5,
	}
}

// columnCatalog lists every column in display order. Kept as a package-level
// slice so Columns can hand out copies without rebuilding it.
var columnCatalog = []string{
	"id", "code", "name", "description", "price", "category", "quantity",
	"inventoryStatus", "rating", "sku", "brand", "manufacturer", "color",
	"size", "weight", "dimensions", "material", "dateAdded", "lastModified",
	"supplierName", "supplierContact", "minStockLevel", "maxStockLevel",
	"reorderPoint", "leadTime", "unitCost", "profitMargin",
	"discountAvailable", "taxRate", "shelfLocation", "barcode",
	"warrantyPeriod", "certifications", "countryOfOrigin",
	"customsTariffNumber", "packageType", "unitsPerPackage", "shippingWeight",
	"shippingClass", "handlingInstructions", "safetyStock", "seasonality",
	"productLifecycle", "sustainabilityScore", "returnRate",
}

// Columns returns the full ordered column catalog.
func Columns() []string {
	out := make([]string, len(columnCatalog))
	copy(out, columnCatalog)
	return out
}

// KnownColumn reports whether field names a column in the catalog.
func KnownColumn(field string) bool {
	for _, c := range columnCatalog {
		if c == field {
			return true
		}
	}
	return false
}

// Value returns the typed value of the named column, or false for a field
// outside the catalog.
func (p Product) Value(field string) (any, bool) {
	switch field {
	case "id":
		return p.ID, true
	case "code":
		return p.Code, true
	case "name":
		return p.Name, true
	case "description":
		return p.Description, true
	case "price":
		return p.Price, true
	case "category":
		return p.Category, true
	case "quantity":
		return p.Quantity, true
	case "inventoryStatus":
		return p.InventoryStatus, true
	case "rating":
		return p.Rating, true
	case "sku":
		return p.SKU, true
	case "brand":
		return p.Brand, true
	case "manufacturer":
		return p.Manufacturer, true
	case "color":
		return p.Color, true
	case "size":
		return p.Size, true
	case "weight":
		return p.Weight, true
	case "dimensions":
		return p.Dimensions, true
	case "material":
		return p.Material, true
	case "dateAdded":
		return p.DateAdded, true
	case "lastModified":
		return p.LastModified, true
	case "supplierName":
		return p.SupplierName, true
	case "supplierContact":
		return p.SupplierContact, true
	case "minStockLevel":
		return p.MinStockLevel, true
	case "maxStockLevel":
		return p.MaxStockLevel, true
	case "reorderPoint":
		return p.ReorderPoint, true
	case "leadTime":
		return p.LeadTime, true
	case "unitCost":
		return p.UnitCost, true
	case "profitMargin":
		return p.ProfitMargin, true
	case "discountAvailable":
		return p.DiscountAvailable, true
	case "taxRate":
		return p.TaxRate, true
	case "shelfLocation":
		return p.ShelfLocation, true
	case "barcode":
		return p.Barcode, true
	case "warrantyPeriod":
		return p.WarrantyPeriod, true
	case "certifications":
		return p.Certifications, true
	case "countryOfOrigin":
		return p.CountryOfOrigin, true
	case "customsTariffNumber":
		return p.CustomsTariffNumber, true
	case "packageType":
		return p.PackageType, true
	case "unitsPerPackage":
		return p.UnitsPerPackage, true
	case "shippingWeight":
		return p.ShippingWeight, true
	case "shippingClass":
		return p.ShippingClass, true
	case "handlingInstructions":
		return p.HandlingInstructions, true
	case "safetyStock":
		return p.SafetyStock, true
	case "seasonality":
		return p.Seasonality, true
	case "productLifecycle":
		return p.ProductLifecycle, true
	case "sustainabilityScore":
		return p.SustainabilityScore, true
	case "returnRate":
		return p.ReturnRate, true
	}
	return nil, false
}

// StringValue returns the display string form of the named column ("" for an
// unknown field).
func (p Product) StringValue(field string) string {
	v, ok := p.Value(field)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ", ")
	}
	return ""
}

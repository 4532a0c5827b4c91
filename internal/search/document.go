// Package search provides full-text product search using an in-memory Bleve
// index, with exact activity and category filters and fuzzy name matching.
package search

import "github.com/ttpu/sports-equipment-portal-zplay800/internal/domain"

// ProductDocument is the indexed form of a product.
// The product name doubles as the document ID.
type ProductDocument struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Key      string `json:"key"` // Unanalyzed name for sorting
	Slug     string `json:"slug"`
	Activity string `json:"activity"`
	Category string `json:"category"`
}

// NewProductDocument builds the search document for p.
func NewProductDocument(p *domain.Product) *ProductDocument {
	return &ProductDocument{
		ID:       p.Name,
		Name:     p.Name,
		Key:      p.Name,
		Slug:     p.Slug,
		Activity: p.Activity,
		Category: p.Category,
	}
}

// ToMap converts the document to the field map Bleve indexes.
// Field names must match buildIndexMapping.
func (d *ProductDocument) ToMap() map[string]any {
	return map[string]any{
		"id":       d.ID,
		"name":     d.Name,
		"key":      d.Key,
		"slug":     d.Slug,
		"activity": d.Activity,
		"category": d.Category,
	}
}

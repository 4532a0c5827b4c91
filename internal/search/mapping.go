package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for product documents.
//
// The name is analyzed with English stemming for free-text search. Activity
// and category use the keyword analyzer so filters match whole names exactly,
// case included.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Name - primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Slug - lets "trail-running-shorts" style queries hit too
	slugFieldMapping := bleve.NewTextFieldMapping()
	slugFieldMapping.Analyzer = en.AnalyzerName
	slugFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("slug", slugFieldMapping)

	// --- Keyword fields (exact match) ---

	keyFieldMapping := bleve.NewTextFieldMapping()
	keyFieldMapping.Analyzer = keyword.Name
	keyFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("key", keyFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	activityFieldMapping := bleve.NewTextFieldMapping()
	activityFieldMapping.Analyzer = keyword.Name
	activityFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("activity", activityFieldMapping)

	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

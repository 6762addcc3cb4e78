package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for catalog documents.
// Title and description get English stemming; author keeps stemming for
// forgiving name search; genres use the keyword analyzer for exact term
// matching.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	authorField := bleve.NewTextFieldMapping()
	authorField.Analyzer = en.AnalyzerName
	authorField.Store = true
	docMapping.AddFieldMappingsAt("author", authorField)

	// Searchable but not stored; descriptions can be long.
	descField := bleve.NewTextFieldMapping()
	descField.Analyzer = en.AnalyzerName
	descField.Store = false
	docMapping.AddFieldMappingsAt("description", descField)

	genresField := bleve.NewTextFieldMapping()
	genresField.Analyzer = keyword.Name
	genresField.Store = true
	docMapping.AddFieldMappingsAt("genres", genresField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	idField.Store = true
	idField.Index = false
	docMapping.AddFieldMappingsAt("id", idField)

	indexMapping.DefaultMapping = docMapping

	return indexMapping
}

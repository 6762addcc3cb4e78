// Package search provides full-text search over the catalog using Bleve.
// The index covers title, author, description, and genre tags and is used
// both for the search endpoint and for restricting catalog browsing to a
// text-match set.
package search

import "github.com/bookdenapp/bookden-server/internal/domain"

// Document is the Bleve document structure for a catalog book.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// NewDocument builds a search document from a catalog book.
func NewDocument(book *domain.Book) *Document {
	return &Document{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Description: book.Description,
		Genres:      book.Genres,
	}
}

// ToMap converts the document to a map so field names match the index
// mapping exactly.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":     d.ID,
		"title":  d.Title,
		"author": d.Author,
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	return m
}

// Package domain contains the core business entities for the BookDen catalog.
package domain

import "time"

// BookStatus describes whether a book is available in the catalog.
type BookStatus string

// Book status values. Only active books are browsable or recommendable.
const (
	BookStatusActive       BookStatus = "active"
	BookStatusInactive     BookStatus = "inactive"
	BookStatusDiscontinued BookStatus = "discontinued"
)

// PriceFormat identifies an edition of a book.
type PriceFormat string

// Known price formats. A book may carry any subset of these.
const (
	FormatPaperback PriceFormat = "paperback"
	FormatHardcover PriceFormat = "hardcover"
	FormatEbook     PriceFormat = "ebook"
	FormatAudiobook PriceFormat = "audiobook"
)

// Book represents a single title in the catalog.
type Book struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description,omitempty"`
	Genres      []string  `json:"genres,omitempty"`
	Status      BookStatus `json:"status"`

	// RatingAverage is only meaningful when RatingCount > 0. A book with no
	// ratings carries an average of 0, never null, so scoring stays total.
	RatingAverage float64 `json:"rating_average"`
	RatingCount   int     `json:"rating_count"`

	// Prices maps edition format to price. Formats without a configured
	// price are simply absent.
	Prices map[PriceFormat]float64 `json:"prices,omitempty"`
}

// IsActive reports whether the book is eligible for browsing and recommendation.
func (b *Book) IsActive() bool {
	return b.Status == BookStatusActive
}

// HasGenre reports whether the book carries the given genre tag.
func (b *Book) HasGenre(genre string) bool {
	for _, g := range b.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Price returns the price for a format and whether one is configured.
func (b *Book) Price(format PriceFormat) (float64, bool) {
	p, ok := b.Prices[format]
	return p, ok
}

// InitTimestamps sets CreatedAt and UpdatedAt for a new book.
func (b *Book) InitTimestamps() {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

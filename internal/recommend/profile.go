package recommend

import (
	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/normalize"
)

// Profile is a user's derived taste, rebuilt from their stored history on
// every request. It is never cached or persisted, so it is always consistent
// with the latest history read.
type Profile struct {
	excluded map[string]struct{}

	// genreOccurrences is a multiset: a genre consumed through many books
	// counts once per occurrence, so it dominates the denominator.
	genreOccurrences map[string]int
	totalOccurrences int

	// authorKeys holds normalized author names from consumed books.
	authorKeys map[string]struct{}
}

// BuildProfile derives a Profile from the user's history.
//
// consumedIDs and wishlistIDs are the raw stored sets; both are excluded from
// recommendation. consumedBooks are the catalog records for the consumed set
// (books since removed from the catalog simply contribute nothing).
func BuildProfile(consumedIDs, wishlistIDs []string, consumedBooks []*domain.Book) Profile {
	p := Profile{
		excluded:         make(map[string]struct{}, len(consumedIDs)+len(wishlistIDs)),
		genreOccurrences: make(map[string]int),
		authorKeys:       make(map[string]struct{}),
	}

	for _, bookID := range consumedIDs {
		p.excluded[bookID] = struct{}{}
	}
	for _, bookID := range wishlistIDs {
		p.excluded[bookID] = struct{}{}
	}

	for _, book := range consumedBooks {
		for _, genre := range book.Genres {
			p.genreOccurrences[genre]++
			p.totalOccurrences++
		}
		if book.Author != "" {
			p.authorKeys[normalize.Key(book.Author)] = struct{}{}
		}
	}

	return p
}

// Excludes reports whether the book ID is in the user's consumed or wishlist sets.
func (p Profile) Excludes(bookID string) bool {
	_, ok := p.excluded[bookID]
	return ok
}

// ExcludedIDs returns the consumed and wishlist book IDs as a slice.
func (p Profile) ExcludedIDs() []string {
	ids := make([]string, 0, len(p.excluded))
	for bookID := range p.excluded {
		ids = append(ids, bookID)
	}
	return ids
}

// PreferredGenres returns the distinct genres from the user's consumed books.
func (p Profile) PreferredGenres() []string {
	genres := make([]string, 0, len(p.genreOccurrences))
	for genre := range p.genreOccurrences {
		genres = append(genres, genre)
	}
	return genres
}

// PreferredAuthorKeys returns the normalized author keys from consumed books.
func (p Profile) PreferredAuthorKeys() []string {
	keys := make([]string, 0, len(p.authorKeys))
	for key := range p.authorKeys {
		keys = append(keys, key)
	}
	return keys
}

// HasGenre reports whether the genre appears anywhere in the preferred multiset.
func (p Profile) HasGenre(genre string) bool {
	return p.genreOccurrences[genre] > 0
}

// HasAuthor reports whether the author (by normalized key) was consumed before.
func (p Profile) HasAuthor(author string) bool {
	_, ok := p.authorKeys[normalize.Key(author)]
	return ok
}

// TotalGenreOccurrences is the multiset size: the sum of genre occurrences
// across all consumed books.
func (p Profile) TotalGenreOccurrences() int {
	return p.totalOccurrences
}

// Empty reports whether the user has no consumption-derived signals
// (the cold-start case).
func (p Profile) Empty() bool {
	return p.totalOccurrences == 0 && len(p.authorKeys) == 0
}

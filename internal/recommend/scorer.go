// Package recommend implements BookDen's content-based recommendation scorer.
//
// The scorer is a pure function of (user history snapshot, candidate pool,
// limit): it keeps no state between calls and performs no I/O, so concurrent
// invocations are fully independent. The pipeline is filter (done by the
// caller via the candidate query) -> sort + truncate -> score -> sort.
package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/bookdenapp/bookden-server/internal/domain"
)

// Score component weights. They sum to 100, the maximum attainable score.
const (
	GenreWeight      = 40.0
	AuthorWeight     = 20.0
	RatingWeight     = 30.0
	PopularityWeight = 10.0
)

// Thresholds used by candidate selection and reason generation.
const (
	// RatingScale is the maximum of the rating average range.
	RatingScale = 5.0
	// CandidateRatingFloor lets a book with no genre or author overlap
	// qualify for the candidate pool purely on rating. This is what gives
	// cold-start users popularity-driven recommendations.
	CandidateRatingFloor = 4.0
	// HighlyRatedThreshold triggers the "highly rated" reason.
	HighlyRatedThreshold = 4.5
	// PopularCountThreshold triggers the "popular" reason.
	PopularCountThreshold = 50
	// PopularitySaturation is the rating count at which the popularity
	// component maxes out.
	PopularitySaturation = 100.0
)

// DefaultLimit is the number of recommendations returned when the caller
// does not specify one.
const DefaultLimit = 10

// Rank orders the candidate pool for a user and returns at most limit
// scored recommendations.
//
// Candidates are first sorted by rating average descending (rating count
// descending as tie-break) and truncated to limit BEFORE scoring. Scoring
// never reconsiders books cut at that stage, so the top result is the best
// of the top-limit slice by rating/popularity, not necessarily of the whole
// pool. That two-stage shape is part of the contract; see the regression
// test before "fixing" it.
func Rank(profile Profile, pool []*domain.Book, limit int) []domain.Recommendation {
	if limit <= 0 {
		limit = DefaultLimit
	}

	candidates := make([]*domain.Book, len(pool))
	copy(candidates, pool)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].RatingAverage != candidates[j].RatingAverage {
			return candidates[i].RatingAverage > candidates[j].RatingAverage
		}
		return candidates[i].RatingCount > candidates[j].RatingCount
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	recs := make([]domain.Recommendation, 0, len(candidates))
	for _, book := range candidates {
		score, reasons := Score(profile, book)
		recs = append(recs, domain.Recommendation{
			Book:    book,
			Score:   score,
			Reasons: reasons,
		})
	}

	// Stable sort: ties keep their rating/popularity order from above.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	return recs
}

// Score computes the weighted similarity of one candidate to the profile,
// returning the rounded 0..100 score and the ordered reason list.
func Score(profile Profile, book *domain.Book) (int, []string) {
	// Each candidate genre counts once if it appears anywhere in the
	// preferred multiset; multiset frequency only affects the denominator.
	matchedGenres := 0
	for _, genre := range book.Genres {
		if profile.HasGenre(genre) {
			matchedGenres++
		}
	}
	denominator := profile.TotalGenreOccurrences()
	if denominator < 1 {
		denominator = 1
	}
	genreComponent := float64(matchedGenres) / float64(denominator) * GenreWeight

	authorMatch := profile.HasAuthor(book.Author)
	authorComponent := 0.0
	if authorMatch {
		authorComponent = AuthorWeight
	}

	ratingComponent := book.RatingAverage / RatingScale * RatingWeight
	popularityComponent := math.Min(float64(book.RatingCount)/PopularitySaturation, 1) * PopularityWeight

	total := genreComponent + authorComponent + ratingComponent + popularityComponent

	// Round half up. All components are non-negative, so floor(x+0.5) is
	// exactly the round-half-up contract.
	score := int(math.Floor(total + 0.5))

	reasons := make([]string, 0, 4)
	if matchedGenres > 0 {
		reasons = append(reasons, fmt.Sprintf("Matches %d of your favorite genres", matchedGenres))
	}
	if authorMatch {
		reasons = append(reasons, "You've enjoyed other books by this author")
	}
	if book.RatingAverage >= HighlyRatedThreshold {
		reasons = append(reasons, "Highly rated by readers")
	}
	if book.RatingCount > PopularCountThreshold {
		reasons = append(reasons, "Popular with readers")
	}

	return score, reasons
}

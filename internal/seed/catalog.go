package seed

import "github.com/bookdenapp/bookden-server/internal/domain"

// Catalog returns the built-in starter catalog. Titles and ratings are
// invented; prices are in whole currency units.
func Catalog() []*domain.Book {
	return []*domain.Book{
		{
			Title:         "The Clockwork Harbor",
			Author:        "Elena Marsh",
			Description:   "A dockside engineer uncovers a conspiracy hidden in the tide tables.",
			Genres:        []string{"Mystery", "Steampunk"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.4,
			RatingCount:   182,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatPaperback: 14.99,
				domain.FormatEbook:     6.99,
			},
		},
		{
			Title:         "Orbital Drift",
			Author:        "Kenji Ward",
			Description:   "Salvage crews race to claim a derelict station before its orbit decays.",
			Genres:        []string{"Science Fiction"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.7,
			RatingCount:   421,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatPaperback: 16.99,
				domain.FormatEbook:     8.99,
				domain.FormatHardcover: 27.99,
			},
		},
		{
			Title:         "The Last Cartographer",
			Author:        "Elena Marsh",
			Description:   "Mapping an archipelago that refuses to stay still.",
			Genres:        []string{"Fantasy", "Adventure"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.2,
			RatingCount:   97,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatPaperback: 13.99,
			},
		},
		{
			Title:         "Midnight at the Lending Library",
			Author:        "Priya Chandran",
			Description:   "A librarian who lends out memories instead of books.",
			Genres:        []string{"Fantasy", "Literary"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.8,
			RatingCount:   640,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatEbook:     9.99,
				domain.FormatHardcover: 24.99,
			},
		},
		{
			Title:         "Static",
			Author:        "Marcus Oduya",
			Description:   "A radio operator hears a broadcast from a town that burned down decades ago.",
			Genres:        []string{"Mystery", "Horror"},
			Status:        domain.BookStatusActive,
			RatingAverage: 3.9,
			RatingCount:   55,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatEbook: 4.99,
			},
		},
		{
			Title:         "Gardens of the Deep",
			Author:        "Sofia Lindqvist",
			Description:   "Marine botanists discover a reef that remembers.",
			Genres:        []string{"Science Fiction", "Literary"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.5,
			RatingCount:   203,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatPaperback: 12.99,
				domain.FormatAudiobook: 19.99,
			},
		},
		{
			Title:         "The Vanished Edition",
			Author:        "Marcus Oduya",
			Description:   "Every copy of a bestselling novel disappears overnight.",
			Genres:        []string{"Mystery"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.1,
			RatingCount:   310,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatPaperback: 11.99,
				domain.FormatEbook:     5.99,
			},
		},
		{
			Title:         "Ashes of the Summer Court",
			Author:        "Rowan Teller",
			Description:   "A deposed fae noble bargains with the season itself.",
			Genres:        []string{"Fantasy"},
			Status:        domain.BookStatusActive,
			RatingAverage: 4.6,
			RatingCount:   529,
			Prices: map[domain.PriceFormat]float64{
				domain.FormatHardcover: 26.99,
				domain.FormatEbook:     10.99,
			},
		},
		{
			// Kept for catalog history; never surfaces in listings.
			Title:         "Beta Reader",
			Author:        "Anonymous",
			Description:   "Early draft, withdrawn from sale.",
			Genres:        []string{"Literary"},
			Status:        domain.BookStatusDiscontinued,
			RatingAverage: 2.1,
			RatingCount:   8,
		},
	}
}

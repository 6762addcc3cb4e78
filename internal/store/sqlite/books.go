package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/normalize"
	"github.com/bookdenapp/bookden-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, created_at, updated_at, title, author, description,
	status, rating_average, rating_count`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
// Genres and prices live in side tables and are attached separately.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var createdAt, updatedAt, status string

	err := scanner.Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
		&b.Title,
		&b.Author,
		&b.Description,
		&status,
		&b.RatingAverage,
		&b.RatingCount,
	)
	if err != nil {
		return nil, err
	}

	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	b.Status = domain.BookStatus(status)

	return &b, nil
}

// CreateBook inserts a book with its genres and prices.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if book.Status == "" {
		book.Status = domain.BookStatusActive
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO books (id, created_at, updated_at, title, author, author_key,
			description, status, rating_average, rating_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		normalize.Key(book.Author),
		book.Description,
		string(book.Status),
		book.RatingAverage,
		book.RatingCount,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrBookAlreadyExists
		}
		return fmt.Errorf("insert book: %w", err)
	}

	for _, genre := range book.Genres {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO book_genres (book_id, genre) VALUES (?, ?)`,
			book.ID, genre,
		); err != nil {
			return fmt.Errorf("insert genre: %w", err)
		}
	}

	for format, price := range book.Prices {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO book_prices (book_id, format, price) VALUES (?, ?, ?)`,
			book.ID, string(format), price,
		); err != nil {
			return fmt.Errorf("insert price: %w", err)
		}
	}

	return tx.Commit()
}

// GetBook retrieves a single book by ID, including genres and prices.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if err := s.attachBookDetails(ctx, []*domain.Book{book}); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBooks retrieves multiple books by ID. Missing IDs are silently skipped;
// the result preserves no particular order.
func (s *Store) GetBooks(ctx context.Context, ids []string) ([]*domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id IN (` + placeholders(len(ids)) + `)`
	rows, err := s.db.QueryContext(ctx, query, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("get books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachBookDetails(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

// sortColumns maps catalog sort fields to ORDER BY expressions. Unknown
// fields fall back to title: the API contract is permissive about sort
// names, but column names cannot be interpolated from caller input.
var sortColumns = map[string]string{
	store.SortByTitle:      "title COLLATE NOCASE",
	store.SortByAuthor:     "author COLLATE NOCASE",
	store.SortByRating:     "rating_average",
	store.SortByPopularity: "rating_count",
	store.SortByDate:       "created_at",
}

// ListBooks returns a page of active books matching the catalog query,
// plus the total match count.
func (s *Store) ListBooks(ctx context.Context, query store.CatalogQuery) (*store.Page[*domain.Book], error) {
	query.Normalize()

	where, args := buildCatalogFilter(query)

	// An empty (non-nil) text-match set matches nothing; skip the queries.
	if query.MatchIDs != nil && len(query.MatchIDs) == 0 {
		return store.NewPage([]*domain.Book{}, query.Page, query.PageSize, 0), nil
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM books ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	orderCol, ok := sortColumns[query.SortField]
	if !ok {
		orderCol = sortColumns[store.SortByTitle]
	}
	direction := "ASC"
	if query.SortDirection == store.SortDesc {
		direction = "DESC"
	}

	// Secondary sort on id keeps page boundaries stable, so concatenated
	// pages contain every match exactly once.
	listQuery := fmt.Sprintf(`SELECT %s FROM books %s ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`,
		bookColumns, where, orderCol, direction)
	listArgs := append(append([]any{}, args...), query.PageSize, query.Offset())

	rows, err := s.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachBookDetails(ctx, books); err != nil {
		return nil, err
	}

	return store.NewPage(books, query.Page, query.PageSize, total), nil
}

// buildCatalogFilter translates a catalog query into a WHERE clause.
func buildCatalogFilter(query store.CatalogQuery) (string, []any) {
	clauses := []string{`status = ?`}
	args := []any{string(domain.BookStatusActive)}

	if len(query.MatchIDs) > 0 {
		clauses = append(clauses, `id IN (`+placeholders(len(query.MatchIDs))+`)`)
		args = append(args, stringArgs(query.MatchIDs)...)
	}

	if query.Genre != "" {
		clauses = append(clauses,
			`EXISTS (SELECT 1 FROM book_genres g WHERE g.book_id = books.id AND g.genre = ?)`)
		args = append(args, query.Genre)
	}

	if query.Author != "" {
		clauses = append(clauses, `instr(author_key, ?) > 0`)
		args = append(args, normalize.Key(query.Author))
	}

	if query.MinRating != nil {
		clauses = append(clauses, `rating_average >= ?`)
		args = append(args, *query.MinRating)
	}

	// Only paperback and ebook prices participate in the max-price filter.
	if query.MaxPrice != nil {
		clauses = append(clauses, `EXISTS (
			SELECT 1 FROM book_prices p
			WHERE p.book_id = books.id
			  AND p.format IN (?, ?)
			  AND p.price <= ?)`)
		args = append(args, string(domain.FormatPaperback), string(domain.FormatEbook), *query.MaxPrice)
	}

	return `WHERE ` + strings.Join(clauses, ` AND `), args
}

// ListAllActiveBooks returns every active book. Used for search reindexing.
func (s *Store) ListAllActiveBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE status = ?`,
		string(domain.BookStatusActive))
	if err != nil {
		return nil, fmt.Errorf("list active books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachBookDetails(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

// ListActiveBooksExcluding returns active books outside the excluded ID set
// that satisfy at least one arm of the candidate OR-filter: genre overlap,
// author overlap, or rating at or above match.MinRating.
func (s *Store) ListActiveBooksExcluding(ctx context.Context, exclude []string, match store.CandidateMatch) ([]*domain.Book, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + bookColumns + ` FROM books WHERE status = ?`)
	args := []any{string(domain.BookStatusActive)}

	if len(exclude) > 0 {
		sb.WriteString(` AND id NOT IN (` + placeholders(len(exclude)) + `)`)
		args = append(args, stringArgs(exclude)...)
	}

	orClauses := []string{`rating_average >= ?`}
	orArgs := []any{match.MinRating}

	if len(match.Genres) > 0 {
		orClauses = append(orClauses,
			`EXISTS (SELECT 1 FROM book_genres g WHERE g.book_id = books.id AND g.genre IN (`+placeholders(len(match.Genres))+`))`)
		orArgs = append(orArgs, stringArgs(match.Genres)...)
	}

	if len(match.AuthorKeys) > 0 {
		orClauses = append(orClauses, `author_key IN (`+placeholders(len(match.AuthorKeys))+`)`)
		orArgs = append(orArgs, stringArgs(match.AuthorKeys)...)
	}

	sb.WriteString(` AND (` + strings.Join(orClauses, ` OR `) + `)`)
	args = append(args, orArgs...)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list candidate books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	if err := s.attachBookDetails(ctx, books); err != nil {
		return nil, err
	}

	return books, nil
}

// collectBooks drains rows into a book slice.
func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	books := []*domain.Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// attachBookDetails loads genres and prices for the given books in two
// batched queries.
func (s *Store) attachBookDetails(ctx context.Context, books []*domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Book, len(books))
	ids := make([]string, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	genreRows, err := s.db.QueryContext(ctx,
		`SELECT book_id, genre FROM book_genres WHERE book_id IN (`+placeholders(len(ids))+`) ORDER BY genre`,
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("load genres: %w", err)
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var bookID, genre string
		if err := genreRows.Scan(&bookID, &genre); err != nil {
			return fmt.Errorf("scan genre: %w", err)
		}
		if b := byID[bookID]; b != nil {
			b.Genres = append(b.Genres, genre)
		}
	}
	if err := genreRows.Err(); err != nil {
		return fmt.Errorf("iterate genres: %w", err)
	}

	priceRows, err := s.db.QueryContext(ctx,
		`SELECT book_id, format, price FROM book_prices WHERE book_id IN (`+placeholders(len(ids))+`)`,
		stringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("load prices: %w", err)
	}
	defer priceRows.Close()

	for priceRows.Next() {
		var bookID, format string
		var price float64
		if err := priceRows.Scan(&bookID, &format, &price); err != nil {
			return fmt.Errorf("scan price: %w", err)
		}
		if b := byID[bookID]; b != nil {
			if b.Prices == nil {
				b.Prices = make(map[domain.PriceFormat]float64)
			}
			b.Prices[domain.PriceFormat(format)] = price
		}
	}
	if err := priceRows.Err(); err != nil {
		return fmt.Errorf("iterate prices: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Package main provides a tool to seed the database with a starter catalog
// and demo readers.
//
// Usage:
//
//	go run ./cmd/seed -data ~/BookDen/data
//	go run ./cmd/seed -data ~/BookDen/data -books books.json -users
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bookdenapp/bookden-server/internal/search"
	"github.com/bookdenapp/bookden-server/internal/seed"
	"github.com/bookdenapp/bookden-server/internal/store/sqlite"
)

func main() {
	dataPath := flag.String("data", "", "BookDen data directory (default: ~/BookDen/data)")
	booksFile := flag.String("books", "", "JSON file with books to seed (default: built-in catalog)")
	createUsers := flag.Bool("users", false, "Also create demo readers with reading history")
	flag.Parse()

	if *dataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve home directory: %v\n", err)
			os.Exit(1)
		}
		*dataPath = filepath.Join(home, "BookDen", "data")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	st, err := sqlite.Open(filepath.Join(*dataPath, "bookden.db"), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	idx, err := search.New(search.Options{
		DataPath: filepath.Join(*dataPath, "search"),
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open search index: %v\n", err)
		os.Exit(1)
	}
	defer idx.Close()

	result, err := seed.Run(context.Background(), st, idx, seed.Options{
		BooksFile:   *booksFile,
		CreateUsers: *createUsers,
	}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d books and %d users into %s\n", result.Books, result.Users, *dataPath)
}

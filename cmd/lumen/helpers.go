// Package main contains the lumen CLI commands.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/solsticehq/lumen/internal/config"
	"github.com/solsticehq/lumen/internal/extraction"
	"github.com/solsticehq/lumen/internal/storage"
	"github.com/solsticehq/lumen/internal/synthesis"
	"github.com/spf13/viper"
)

const defaultDBPath = "$HOME/.local/share/lumen/lumen.db"

// openStorage opens the configured database and applies migrations.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// newSynthesizer builds a synthesizer over the given storage with the
// configured tier table and atomic mode.
func newSynthesizer(db *storage.SQLiteStorage) (*synthesis.Synthesizer, error) {
	tiers, err := config.TierTable()
	if err != nil {
		return nil, err
	}

	return synthesis.New(synthesis.Config{
		Storage:   db,
		Extractor: extraction.New(),
		Tiers:     tiers,
		Atomic:    viper.GetBool("synthesis.atomic"),
	})
}

// readText resolves the input text: a --text flag value, a --file path, or
// stdin when neither is given.
func readText(text, file string) (string, error) {
	if text != "" {
		return text, nil
	}
	if file != "" {
		data, err := os.ReadFile(file) // #nosec G304 -- user-supplied input path
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no input text: pass --text, --file, or pipe to stdin")
	}
	return string(data), nil
}

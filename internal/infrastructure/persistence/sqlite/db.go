package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ecommerce_dataset/internal/domain/dataset"
)

// Open connects to the database file at path with foreign keys enforced.
// A read-only handle requires the file to exist.
func Open(path string, readOnly bool) (*sql.DB, error) {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %v", dataset.ErrStorageUnavailable, err)
		}
		params.Set("mode", "ro")
	}

	db, err := sql.Open("sqlite3", dsn(path, params))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", dataset.ErrStorageUnavailable, path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: open %s: %v", dataset.ErrStorageUnavailable, path, err)
	}
	return db, nil
}

// dsn builds a file: URI. The path is percent-encoded so '?' and '#' in a
// file name are not taken as the start of the query or fragment.
func dsn(path string, params url.Values) string {
	return "file:" + (&url.URL{Path: path}).EscapedPath() + "?" + params.Encode()
}

// Package testutil builds product catalog databases for tests.
package testutil

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// Schema mirrors the table written by the catalog updater.
const Schema = `
CREATE TABLE IF NOT EXISTS products (
	productId TEXT PRIMARY KEY,
	productNumber TEXT,
	productNumberShort TEXT,
	productNameBold TEXT,
	productNameThin TEXT,
	producerName TEXT,
	supplierName TEXT,
	categoryLevel1 TEXT,
	categoryLevel2 TEXT,
	categoryLevel3 TEXT,
	country TEXT,
	productLaunchDate TEXT,
	isTemporaryOutOfStock BOOLEAN,
	isCompletelyOutOfStock BOOLEAN,
	price REAL,
	originalPrice REAL,
	newPrice REAL,
	lastUpdated TEXT,
	volume REAL,
	alcoholPercentage REAL,
	apk REAL
)`

// Row is one product keyed by column name. Missing columns are stored as NULL.
type Row map[string]any

// CatalogDB writes rows into a fresh catalog file and returns its path.
func CatalogDB(t *testing.T, rows ...Row) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.db")
	Exec(t, path, Schema)
	for i, r := range rows {
		Insert(t, path, i, r)
	}
	return path
}

// Exec runs statements against the database at path with write access.
func Exec(t *testing.T, path string, stmts ...string) {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer conn.Close()
	for _, s := range stmts {
		if _, err := conn.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}
}

// Insert adds r under a generated productId unless r sets one.
func Insert(t *testing.T, path string, seq int, r Row) {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer conn.Close()

	cols := []string{"productId"}
	args := []any{r["productId"]}
	if args[0] == nil {
		args[0] = fmt.Sprintf("id-%d", seq)
	}
	for k, v := range r {
		if k == "productId" {
			continue
		}
		cols = append(cols, k)
		args = append(args, v)
	}
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := "INSERT INTO products (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
	if _, err := conn.Exec(q, args...); err != nil {
		t.Fatalf("insert %v: %v", r, err)
	}
}

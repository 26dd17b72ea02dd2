package db

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.db")
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()
	for _, s := range stmts {
		_, err := conn.Exec(s)
		require.NoError(t, err)
	}
	return path
}

func TestOpenReadOnly(t *testing.T) {
	path := createDB(t, `CREATE TABLE products (productNumber TEXT)`, `INSERT INTO products VALUES ('1234')`)

	conn, err := OpenReadOnly(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	var number string
	require.NoError(t, conn.QueryRow(`SELECT productNumber FROM products`).Scan(&number))
	assert.Equal(t, "1234", number)

	_, err = conn.Exec(`INSERT INTO products VALUES ('5678')`)
	require.Error(t, err, "connection must not accept writes")
}

func TestOpenReadOnlyMissingFile(t *testing.T) {
	_, err := OpenReadOnly(context.Background(), filepath.Join(t.TempDir(), "nope.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, IsUnavailable(err))
}

func TestOpenReadOnlyDirectory(t *testing.T) {
	_, err := OpenReadOnly(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestOpenReadOnlyReservedCharactersInPath(t *testing.T) {
	for _, dir := range []string{"data#2025", "what?", "a%20b", "with space", "50%"} {
		t.Run(dir, func(t *testing.T) {
			src := createDB(t, `CREATE TABLE products (productNumber TEXT)`, `INSERT INTO products VALUES ('1234')`)
			root := t.TempDir()
			require.NoError(t, os.Mkdir(filepath.Join(root, dir), 0o755))
			path := filepath.Join(root, dir, "products.db")
			require.NoError(t, os.Rename(src, path))

			conn, err := OpenReadOnly(context.Background(), path)
			require.NoError(t, err)

			var number string
			require.NoError(t, conn.QueryRow(`SELECT productNumber FROM products`).Scan(&number))
			assert.Equal(t, "1234", number)
			_, err = conn.Exec(`INSERT INTO products VALUES ('5678')`)
			require.Error(t, err, "connection must not accept writes")
			require.NoError(t, conn.Close())

			entries, err := os.ReadDir(root)
			require.NoError(t, err)
			require.Len(t, entries, 1, "no stray database created next to the catalog")
			assert.Equal(t, dir, entries[0].Name())

			entries, err = os.ReadDir(filepath.Join(root, dir))
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "products.db", entries[0].Name())
		})
	}
}

func TestReadOnlyDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"products.db", "file:products.db?mode=ro"},
		{"/srv/data/products.db", "file:/srv/data/products.db?mode=ro"},
		{"/srv/data#2025/products.db", "file:/srv/data%232025/products.db?mode=ro"},
		{"/srv/what?/products.db", "file:/srv/what%3F/products.db?mode=ro"},
		{"/srv/a%20b/products.db", "file:/srv/a%2520b/products.db?mode=ro"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, readOnlyDSN(tt.path), tt.path)
	}
}

func TestIsUnavailableNotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("this is not an sqlite file\n"), 400), 0o644))

	conn, err := OpenReadOnly(context.Background(), path)
	if err != nil {
		assert.True(t, IsUnavailable(err))
		return
	}
	defer conn.Close()

	_, err = conn.Query(`SELECT * FROM products`)
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}

func TestIsUnavailableSchemaErrors(t *testing.T) {
	path := createDB(t, `CREATE TABLE other (id INTEGER)`)
	conn, err := OpenReadOnly(context.Background(), path)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Query(`SELECT productNumber FROM products`)
	require.Error(t, err)
	assert.False(t, IsUnavailable(err))

	_, err = conn.Query(`SELECT missingColumn FROM other`)
	require.Error(t, err)
	assert.False(t, IsUnavailable(err))
}

func TestIsUnavailablePlainError(t *testing.T) {
	assert.False(t, IsUnavailable(assert.AnError))
	assert.False(t, IsUnavailable(nil))
}

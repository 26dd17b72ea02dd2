package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrUnavailable marks failures of the data file itself: missing,
// unreadable, not a database or corrupt.
var ErrUnavailable = errors.New("database unavailable")

// OpenReadOnly opens the SQLite file at path without write access and checks
// that it can be reached. The caller owns the returned handle.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}

	conn, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// One request, one scan.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return conn, nil
}

// readOnlyDSN builds the SQLite URI for path. The path is percent-escaped
// so '#', '?' and '%' in directory or file names reach the VFS unchanged.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", OmitHost: true, Path: path, RawQuery: "mode=ro"}
	return u.String()
}

// IsUnavailable reports whether err is a storage-level SQLite failure as
// opposed to a problem with the statement or schema.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrUnavailable) {
		return true
	}
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() & 0xff {
	case sqlite3.SQLITE_CANTOPEN,
		sqlite3.SQLITE_NOTADB,
		sqlite3.SQLITE_CORRUPT,
		sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_PERM,
		sqlite3.SQLITE_AUTH,
		sqlite3.SQLITE_NOTFOUND,
		sqlite3.SQLITE_FULL:
		return true
	}
	return false
}

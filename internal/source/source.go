// Package source reads foreground-usage events from the Screen Time database.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/screenwatch/screenwatch/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Seconds between the Unix epoch and the Cocoa reference date (2001-01-01),
// which knowledgeC timestamps are relative to.
const cocoaEpochOffset = 978307200

// Sentinel errors for a database that cannot be opened at all.
var (
	ErrNotFound   = errors.New("usage database not found")
	ErrUnreadable = errors.New("usage database not readable")
)

// sentinelTime replaces timestamps that could not be read from a row.
var sentinelTime = time.Unix(0, 0).UTC()

// Source wraps SQLite access to the knowledgeC usage stream.
type Source struct {
	db   *sql.DB
	path string
}

// Open validates the database path and opens it. A missing path yields
// ErrNotFound, an unreadable one ErrUnreadable; both are detected before
// any query runs.
func Open(path string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	return &Source{db: db, path: path}, nil
}

// Close closes the underlying database.
func (s *Source) Close() error {
	return s.db.Close()
}

// Events returns the recorded app-usage events, newest first, along with
// the number of rows whose timestamps were unreadable and replaced by the
// Unix-epoch sentinel. Any other malformed row aborts the fetch.
func (s *Source) Events(ctx context.Context) ([]model.UsageEvent, int, error) {
	query := fmt.Sprintf(`SELECT
			ZOBJECT.ZVALUESTRING AS app,
			(ZOBJECT.ZENDDATE - ZOBJECT.ZSTARTDATE) AS usage,
			(ZOBJECT.ZSTARTDATE + %d) AS start_time,
			(ZOBJECT.ZENDDATE + %d) AS end_time
		FROM ZOBJECT
		WHERE ZSTREAMNAME = '/app/usage'
		ORDER BY ZSTARTDATE DESC`, cocoaEpochOffset, cocoaEpochOffset)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query usage events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var events []model.UsageEvent
	malformed := 0
	for rows.Next() {
		var (
			app        string
			usage      sql.NullFloat64
			start, end sql.NullFloat64
		)
		if err := rows.Scan(&app, &usage, &start, &end); err != nil {
			return nil, 0, fmt.Errorf("failed to scan usage row: %w", err)
		}
		ev := model.UsageEvent{
			App:       app,
			StartTime: sentinelTime,
			EndTime:   sentinelTime,
		}
		if usage.Valid {
			ev.Usage = time.Duration(usage.Float64 * float64(time.Second))
		}
		ok := true
		if start.Valid {
			ev.StartTime = time.Unix(int64(start.Float64), 0).UTC()
		} else {
			ok = false
		}
		if end.Valid {
			ev.EndTime = time.Unix(int64(end.Float64), 0).UTC()
		} else {
			ok = false
		}
		if !ok {
			malformed++
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read usage rows: %w", err)
	}
	return events, malformed, nil
}

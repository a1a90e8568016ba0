package tripdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotImported indicates the store holds no trips for a city.
var ErrNotImported = errors.New("city not imported")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS datasets (
	city           TEXT PRIMARY KEY,
	import_id      TEXT NOT NULL,
	source         TEXT NOT NULL,
	has_gender     INTEGER NOT NULL,
	has_birth_year INTEGER NOT NULL,
	imported_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS trips (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	city          TEXT NOT NULL,
	start_time    TEXT NOT NULL,
	end_time      TEXT,
	duration      REAL NOT NULL,
	start_station TEXT NOT NULL,
	end_station   TEXT NOT NULL,
	user_type     TEXT NOT NULL,
	gender        TEXT NOT NULL DEFAULT '',
	birth_year    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_trips_city ON trips(city);
`

// Store keeps imported trip logs in a SQLite database.
type Store struct {
	db *sql.DB
}

// Dataset describes one imported city.
type Dataset struct {
	City       string
	ImportID   string
	Source     string
	Schema     Schema
	ImportedAt time.Time
	Trips      int
}

// OpenStore opens (creating if needed) the SQLite trip store at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open trip store: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate trip store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Import replaces the stored trips for city with set and returns the import id.
func (s *Store) Import(ctx context.Context, city string, set *Set) (string, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	id := uuid.NewString()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM trips WHERE city = ?", city); err != nil {
		return "", fmt.Errorf("clear trips: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO trips
		(city, start_time, end_time, duration, start_station, end_station, user_type, gender, birth_year)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, t := range set.Trips {
		var end any
		if !t.EndTime.IsZero() {
			end = t.EndTime.Format(time.RFC3339)
		}
		if _, err := stmt.ExecContext(ctx, city, t.StartTime.Format(time.RFC3339), end, t.Duration,
			t.StartStation, t.EndStation, t.UserType, t.Gender, t.BirthYear); err != nil {
			return "", fmt.Errorf("insert trip %d: %w", i+1, err)
		}
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO datasets (city, import_id, source, has_gender, has_birth_year, imported_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(city) DO UPDATE SET import_id = excluded.import_id, source = excluded.source,
			has_gender = excluded.has_gender, has_birth_year = excluded.has_birth_year,
			imported_at = excluded.imported_at`,
		city, id, set.Source, set.Schema.HasGender, set.Schema.HasBirthYear, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("record dataset: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}
	return id, nil
}

// Datasets lists the imported cities.
func (s *Store) Datasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT d.city, d.import_id, d.source, d.has_gender, d.has_birth_year, d.imported_at,
		(SELECT COUNT(*) FROM trips t WHERE t.city = d.city)
		FROM datasets d ORDER BY d.city`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()
	var out []Dataset
	for rows.Next() {
		var d Dataset
		var at string
		if err := rows.Scan(&d.City, &d.ImportID, &d.Source, &d.Schema.HasGender, &d.Schema.HasBirthYear, &at, &d.Trips); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		if d.ImportedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("parse import time for %s: %w", d.City, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Load reads every stored trip for city.
func (s *Store) Load(ctx context.Context, city string) (*Set, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	set := &Set{City: city}
	err := s.db.QueryRowContext(ctx, "SELECT source, has_gender, has_birth_year FROM datasets WHERE city = ?", city).
		Scan(&set.Source, &set.Schema.HasGender, &set.Schema.HasBirthYear)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", city, ErrNotImported)
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT start_time, end_time, duration, start_station, end_station, user_type, gender, birth_year
		FROM trips WHERE city = ? ORDER BY id`, city)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t Trip
		var start string
		var end sql.NullString
		if err := rows.Scan(&start, &end, &t.Duration, &t.StartStation, &t.EndStation, &t.UserType, &t.Gender, &t.BirthYear); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		if t.StartTime, err = time.Parse(time.RFC3339, start); err != nil {
			return nil, fmt.Errorf("parse start time: %w", err)
		}
		if end.Valid {
			if t.EndTime, err = time.Parse(time.RFC3339, end.String); err != nil {
				return nil, fmt.Errorf("parse end time: %w", err)
			}
		}
		set.Trips = append(set.Trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return set, nil
}

type sqliteLoader struct{}

func (sqliteLoader) CanLoad(path string) bool {
	name := strings.ToLower(path)
	return strings.HasSuffix(name, ".db") || strings.HasSuffix(name, ".sqlite") || strings.HasSuffix(name, ".sqlite3")
}

func (sqliteLoader) Load(ctx context.Context, city, path string) (*Set, error) {
	st, err := OpenStore(ctx, path)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.Load(ctx, city)
}

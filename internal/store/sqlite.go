// SQLite backend: all three collections consolidated into one transactional
// store (library.db), keyed by entity kind. Save rewrites everything inside
// a single transaction, so the three collections can never diverge on disk
// the way three independent files can.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"librarium/pkg/types"
)

// dbFileName is the single store file inside the data directory.
const dbFileName = "library.db"

// SQLiteStore persists the collections to one SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (or creates) the database under dataDir and ensures
// the schema exists.
func OpenSQLiteStore(dataDir string) (*SQLiteStore, error) {
	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", types.ErrPersistence, dbPath, err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: initializing schema: %w", types.ErrPersistence, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads all rows in insertion order. Rows whose JSON columns fail to
// parse are skipped, mirroring the JSON backend's tolerance for malformed
// stored data.
func (s *SQLiteStore) Load() (Snapshot, error) {
	var snap Snapshot

	if err := s.loadBooks(&snap); err != nil {
		return Snapshot{}, err
	}
	if err := s.loadUsers(&snap); err != nil {
		return Snapshot{}, err
	}
	if err := s.loadLoans(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *SQLiteStore) loadBooks(snap *Snapshot) error {
	rows, err := s.db.Query(
		"SELECT isbn, title, author, year, genres, available FROM books ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("%w: reading books: %w", types.ErrPersistence, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b types.Book
		var genres string
		var available int
		if err := rows.Scan(&b.ISBN, &b.Title, &b.Author, &b.Year, &genres, &available); err != nil {
			return fmt.Errorf("%w: scanning book: %w", types.ErrPersistence, err)
		}
		if err := json.Unmarshal([]byte(genres), &b.Genres); err != nil {
			continue
		}
		b.Available = available != 0
		snap.Books = append(snap.Books, b)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadUsers(snap *Snapshot) error {
	rows, err := s.db.Query(
		"SELECT card_number, first_name, last_name FROM users ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("%w: reading users: %w", types.ErrPersistence, err)
	}
	defer rows.Close()

	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.CardNumber, &u.FirstName, &u.LastName); err != nil {
			return fmt.Errorf("%w: scanning user: %w", types.ErrPersistence, err)
		}
		snap.Users = append(snap.Users, u)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadLoans(snap *Snapshot) error {
	rows, err := s.db.Query(
		"SELECT loan_id, book, user, borrowed_at, returned_at, history FROM loans ORDER BY rowid")
	if err != nil {
		return fmt.Errorf("%w: reading loans: %w", types.ErrPersistence, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l types.Loan
		var book, user, history string
		var borrowedAt string
		var returnedAt sql.NullString
		if err := rows.Scan(&l.LoanID, &book, &user, &borrowedAt, &returnedAt, &history); err != nil {
			return fmt.Errorf("%w: scanning loan: %w", types.ErrPersistence, err)
		}
		if err := json.Unmarshal([]byte(book), &l.Book); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(user), &l.User); err != nil {
			continue
		}
		if err := json.Unmarshal([]byte(history), &l.History); err != nil {
			continue
		}
		borrowed, err := time.Parse(time.RFC3339Nano, borrowedAt)
		if err != nil {
			continue
		}
		l.BorrowedAt = borrowed
		if returnedAt.Valid {
			returned, err := time.Parse(time.RFC3339Nano, returnedAt.String)
			if err != nil {
				continue
			}
			l.ReturnedAt = &returned
		}
		snap.Loans = append(snap.Loans, l)
	}
	return rows.Err()
}

// Save rewrites all three tables from the snapshot in one transaction.
func (s *SQLiteStore) Save(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning save transaction: %w", types.ErrPersistence, err)
	}
	defer tx.Rollback()

	for _, table := range []string{"books", "users", "loans"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("%w: clearing %s: %w", types.ErrPersistence, table, err)
		}
	}

	for _, b := range snap.Books {
		genres, err := json.Marshal(orEmpty(b.Genres))
		if err != nil {
			return fmt.Errorf("%w: serializing genres: %w", types.ErrPersistence, err)
		}
		available := 0
		if b.Available {
			available = 1
		}
		_, err = tx.Exec(
			"INSERT INTO books (isbn, title, author, year, genres, available) VALUES (?, ?, ?, ?, ?, ?)",
			b.ISBN, b.Title, b.Author, b.Year, string(genres), available)
		if err != nil {
			return fmt.Errorf("%w: inserting book %s: %w", types.ErrPersistence, b.ISBN, err)
		}
	}

	for _, u := range snap.Users {
		_, err := tx.Exec(
			"INSERT INTO users (card_number, first_name, last_name) VALUES (?, ?, ?)",
			u.CardNumber, u.FirstName, u.LastName)
		if err != nil {
			return fmt.Errorf("%w: inserting user %s: %w", types.ErrPersistence, u.CardNumber, err)
		}
	}

	for _, l := range snap.Loans {
		book, err := json.Marshal(l.Book)
		if err != nil {
			return fmt.Errorf("%w: serializing loan book snapshot: %w", types.ErrPersistence, err)
		}
		user, err := json.Marshal(l.User)
		if err != nil {
			return fmt.Errorf("%w: serializing loan user snapshot: %w", types.ErrPersistence, err)
		}
		history, err := json.Marshal(orEmpty(l.History))
		if err != nil {
			return fmt.Errorf("%w: serializing loan history: %w", types.ErrPersistence, err)
		}
		var returnedAt any
		if l.ReturnedAt != nil {
			returnedAt = l.ReturnedAt.Format(time.RFC3339Nano)
		}
		_, err = tx.Exec(
			"INSERT INTO loans (loan_id, book, user, borrowed_at, returned_at, history) VALUES (?, ?, ?, ?, ?, ?)",
			l.LoanID, string(book), string(user),
			l.BorrowedAt.Format(time.RFC3339Nano), returnedAt, string(history))
		if err != nil {
			return fmt.Errorf("%w: inserting loan %s: %w", types.ErrPersistence, l.LoanID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing save: %w", types.ErrPersistence, err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

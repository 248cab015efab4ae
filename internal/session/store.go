package session

import (
	"database/sql"
	"encoding/json"

	"campus-borrow/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DefaultEmail is shown when no email has ever been cached. It is a
// display placeholder only and never participates in identity matching.
const DefaultEmail = "msanico@ssct.edu.ph"

const (
	keyToken      = "token"
	keyEmail      = "email"
	keyUser       = "user"
	keyBorrowerID = "borrower_id"
)

// Store is the persisted key-value session cache. A missing token means
// the session is unauthenticated; cached email/user/borrower_id are
// display and matching hints, never proof of authentication.
type Store struct {
	conn *sql.DB
}

// Open opens the cache database and runs migrations.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

// Close closes the cache database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// SaveSession persists the credentials from a successful login. Each field
// is written independently: a failing write does not stop the others, and
// the first failure is reported. Empty email and nil user leave any
// previously cached values in place.
func (s *Store) SaveSession(token, email string, user []byte) error {
	err := s.put(keyToken, token)
	if email != "" {
		if e := s.put(keyEmail, email); err == nil {
			err = e
		}
	}
	if user != nil {
		if e := s.put(keyUser, string(user)); err == nil {
			err = e
		}
	}
	return err
}

// Token returns the cached bearer token, or false when absent.
func (s *Store) Token() (string, bool) {
	return s.get(keyToken)
}

// Email returns the raw cached email, or false when absent. Identity
// matching must use this, not DisplayEmail.
func (s *Store) Email() (string, bool) {
	return s.get(keyEmail)
}

// DisplayEmail returns the cached email, falling back to the placeholder
// institutional address for first-render display.
func (s *Store) DisplayEmail() string {
	if email, ok := s.get(keyEmail); ok {
		return email
	}
	return DefaultEmail
}

// User returns the cached profile. A missing or corrupt record is
// reported as absent, never as an error.
func (s *Store) User() (*models.User, bool) {
	raw, ok := s.get(keyUser)
	if !ok {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

// BorrowerID returns the cached ID number from the last submitted form.
func (s *Store) BorrowerID() (string, bool) {
	return s.get(keyBorrowerID)
}

// SetBorrowerID caches the ID number after a successful submission.
func (s *Store) SetBorrowerID(id string) error {
	return s.put(keyBorrowerID, id)
}

// ClearToken removes only the token. Email, user and borrower_id survive
// logout so the next session can prefill display fields.
func (s *Store) ClearToken() error {
	_, err := s.conn.Exec("DELETE FROM cache WHERE key = ?", keyToken)
	return err
}

func (s *Store) put(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT INTO cache (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *Store) get(key string) (string, bool) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM cache WHERE key = ?", key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

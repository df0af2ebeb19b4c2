package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	"multiblog/internal/blog"
	"multiblog/internal/logging"
)

// authorColumns is the exact CSV header of autores.csv. The column names
// are shared with earlier versions of the tool and must not change.
var authorColumns = []string{"id_autor", "nombre_autor", "email"}

// AuthorStore persists authors to a CSV file. All operations take an
// exclusive lock and read the full file, so each call observes the latest
// on-disk state even when another process rewrote the file in between.
type AuthorStore struct {
	mu   sync.Mutex
	path string
}

// NewAuthorStore returns a store backed by the CSV file at path.
func NewAuthorStore(path string) *AuthorStore {
	return &AuthorStore{path: path}
}

// Path returns the backing file path.
func (s *AuthorStore) Path() string { return s.path }

// Bootstrap creates the CSV with a header row if it does not exist yet.
func (s *AuthorStore) Bootstrap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	logging.Boot("creating authors file %s", s.path)
	return s.save(nil)
}

// load reads all authors from disk. A missing or unparseable file yields an
// empty slice: the manager must start even when the data was damaged, and
// the next successful write restores a well-formed file.
func (s *AuthorStore) load() ([]blog.Author, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []blog.Author{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		logging.Get(logging.CategoryStore).Warn("authors CSV unreadable, treating as empty: %v", err)
		return []blog.Author{}, nil
	}
	if len(records) == 0 {
		return []blog.Author{}, nil
	}

	// Map columns by header name so column order does not matter.
	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	authors := make([]blog.Author, 0, len(records)-1)
	for _, row := range records[1:] {
		a := blog.Author{
			ID:    field(row, "id_autor"),
			Name:  field(row, "nombre_autor"),
			Email: field(row, "email"),
		}
		if a.ID == "" {
			continue
		}
		authors = append(authors, a)
	}
	return authors, nil
}

// save rewrites the full CSV atomically, header included.
func (s *AuthorStore) save(authors []blog.Author) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(authorColumns); err != nil {
		return fmt.Errorf("failed to encode CSV header: %w", err)
	}
	for _, a := range authors {
		if err := w.Write([]string{a.ID, a.Name, a.Email}); err != nil {
			return fmt.Errorf("failed to encode author %s: %w", a.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode authors CSV: %w", err)
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

// Create adds a new author with the next free id. The email must be unique
// (case-insensitively); callers are expected to have validated and
// normalized inputs already.
func (s *AuthorStore) Create(name, email string) (blog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := logging.StartTimer(logging.CategoryStore, "authors.create")
	defer t.Stop()

	authors, err := s.load()
	if err != nil {
		return blog.Author{}, err
	}

	email = blog.NormalizeEmail(email)
	for _, a := range authors {
		if blog.NormalizeEmail(a.Email) == email {
			return blog.Author{}, blog.ErrDuplicateEmail
		}
	}

	ids := make([]string, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	author := blog.Author{ID: nextID(ids), Name: name, Email: email}
	authors = append(authors, author)

	if err := s.save(authors); err != nil {
		return blog.Author{}, err
	}
	logging.Store("author created: id=%s email=%s", author.ID, author.Email)
	return author, nil
}

// FindByEmail looks an author up by email, case-insensitively.
func (s *AuthorStore) FindByEmail(email string) (blog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors, err := s.load()
	if err != nil {
		return blog.Author{}, err
	}
	email = blog.NormalizeEmail(email)
	for _, a := range authors {
		if blog.NormalizeEmail(a.Email) == email {
			return a, nil
		}
	}
	return blog.Author{}, blog.ErrAuthorNotFound
}

// FindByID looks an author up by id.
func (s *AuthorStore) FindByID(id string) (blog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors, err := s.load()
	if err != nil {
		return blog.Author{}, err
	}
	for _, a := range authors {
		if a.ID == id {
			return a, nil
		}
	}
	return blog.Author{}, blog.ErrAuthorNotFound
}

// Update applies a partial change to an author. Changing the email re-checks
// uniqueness against every other author.
func (s *AuthorStore) Update(id string, changes blog.AuthorChanges) (blog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors, err := s.load()
	if err != nil {
		return blog.Author{}, err
	}

	idx := -1
	for i, a := range authors {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return blog.Author{}, blog.ErrAuthorNotFound
	}

	if changes.Email != nil {
		email := blog.NormalizeEmail(*changes.Email)
		for i, a := range authors {
			if i != idx && blog.NormalizeEmail(a.Email) == email {
				return blog.Author{}, blog.ErrDuplicateEmail
			}
		}
		authors[idx].Email = email
	}
	if changes.Name != nil {
		authors[idx].Name = *changes.Name
	}

	if err := s.save(authors); err != nil {
		return blog.Author{}, err
	}
	logging.Store("author updated: id=%s", id)
	return authors[idx], nil
}

// Delete removes an author by id. Returns false when the id was not present.
func (s *AuthorStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authors, err := s.load()
	if err != nil {
		return false, err
	}

	kept := authors[:0]
	found := false
	for _, a := range authors {
		if a.ID == id {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, err
	}
	logging.Store("author deleted: id=%s", id)
	return true, nil
}

// ListAll returns every author in file order.
func (s *AuthorStore) ListAll() ([]blog.Author, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

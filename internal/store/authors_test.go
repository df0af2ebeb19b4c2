package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiblog/internal/blog"
)

func newAuthorStore(t *testing.T) *AuthorStore {
	t.Helper()
	s := NewAuthorStore(filepath.Join(t.TempDir(), "data", "autores.csv"))
	require.NoError(t, s.Bootstrap())
	return s
}

func TestAuthorStoreBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "autores.csv")
	s := NewAuthorStore(path)
	require.NoError(t, s.Bootstrap())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id_autor,nombre_autor,email\n", string(data))

	authors, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, authors)

	// Second bootstrap must not touch existing data.
	_, err = s.Create("Ana", "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, s.Bootstrap())
	authors, err = s.ListAll()
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestAuthorStoreCreate(t *testing.T) {
	s := newAuthorStore(t)

	a, err := s.Create("Ana", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", a.ID)
	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, "ana@example.com", a.Email)

	b, err := s.Create("Beto", "beto@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2", b.ID)

	t.Run("duplicate email rejected case-insensitively", func(t *testing.T) {
		before, err := os.ReadFile(s.Path())
		require.NoError(t, err)

		_, err = s.Create("Otra Ana", "ANA@Example.COM")
		assert.ErrorIs(t, err, blog.ErrDuplicateEmail)

		after, err := os.ReadFile(s.Path())
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after), "failed create must not modify the file")
	})

	t.Run("email stored lowercase", func(t *testing.T) {
		c, err := s.Create("Carla", "Carla@Example.Com")
		require.NoError(t, err)
		assert.Equal(t, "carla@example.com", c.Email)
	})
}

func TestAuthorStoreFind(t *testing.T) {
	s := newAuthorStore(t)
	a, err := s.Create("Ana", "ana@example.com")
	require.NoError(t, err)

	t.Run("by email case-insensitive", func(t *testing.T) {
		got, err := s.FindByEmail("ANA@EXAMPLE.COM")
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := s.FindByID(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("misses", func(t *testing.T) {
		_, err := s.FindByEmail("nadie@example.com")
		assert.ErrorIs(t, err, blog.ErrAuthorNotFound)
		_, err = s.FindByID("99")
		assert.ErrorIs(t, err, blog.ErrAuthorNotFound)
	})
}

func TestAuthorStoreUpdate(t *testing.T) {
	s := newAuthorStore(t)
	a, err := s.Create("Ana", "ana@example.com")
	require.NoError(t, err)
	_, err = s.Create("Beto", "beto@example.com")
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		name := "Ana María"
		got, err := s.Update(a.ID, blog.AuthorChanges{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Ana María", got.Name)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("re-email checks uniqueness against others", func(t *testing.T) {
		email := "Beto@Example.com"
		_, err := s.Update(a.ID, blog.AuthorChanges{Email: &email})
		assert.ErrorIs(t, err, blog.ErrDuplicateEmail)
	})

	t.Run("re-email to own address allowed", func(t *testing.T) {
		email := "ANA@example.com"
		got, err := s.Update(a.ID, blog.AuthorChanges{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		name := "x"
		_, err := s.Update("99", blog.AuthorChanges{Name: &name})
		assert.ErrorIs(t, err, blog.ErrAuthorNotFound)
	})
}

func TestAuthorStoreDelete(t *testing.T) {
	s := newAuthorStore(t)
	a, err := s.Create("Ana", "ana@example.com")
	require.NoError(t, err)

	ok, err := s.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.FindByID(a.ID)
	assert.ErrorIs(t, err, blog.ErrAuthorNotFound)
}

func TestAuthorStoreRoundTrip(t *testing.T) {
	s := newAuthorStore(t)

	want := make([]blog.Author, 0, 5)
	for _, a := range []struct{ name, email string }{
		{"Ana", "ana@example.com"},
		{"Beto", "beto@example.com"},
		{"Carla", "carla@example.com"},
		{"Dani", "dani@example.com"},
		{"Elena", "elena@example.com"},
	} {
		created, err := s.Create(a.name, a.email)
		require.NoError(t, err)
		want = append(want, created)
	}

	// A fresh store over the same file must read back the same authors in
	// the same order.
	got, err := NewAuthorStore(s.Path()).ListAll()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthorStoreDamagedFiles(t *testing.T) {
	t.Run("missing file lists empty", func(t *testing.T) {
		s := NewAuthorStore(filepath.Join(t.TempDir(), "absent.csv"))
		authors, err := s.ListAll()
		require.NoError(t, err)
		assert.Empty(t, authors)
	})

	t.Run("garbage loads empty and recovers on write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "autores.csv")
		require.NoError(t, os.WriteFile(path, []byte("\"unterminated\nid_autor"), 0644))

		s := NewAuthorStore(path)
		authors, err := s.ListAll()
		require.NoError(t, err)
		assert.Empty(t, authors)

		a, err := s.Create("Ana", "ana@example.com")
		require.NoError(t, err)
		got, err := s.FindByID(a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	})

	t.Run("unknown columns dropped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "autores.csv")
		content := "id_autor,nombre_autor,email,password_hash\n1,Ana,ana@example.com,abc123\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		s := NewAuthorStore(path)
		authors, err := s.ListAll()
		require.NoError(t, err)
		require.Len(t, authors, 1)
		assert.Equal(t, blog.Author{ID: "1", Name: "Ana", Email: "ana@example.com"}, authors[0])
	})
}

func TestAuthorStoreNextIDAfterDelete(t *testing.T) {
	s := newAuthorStore(t)

	a, err := s.Create("Ana", "ana@example.com")
	require.NoError(t, err)
	b, err := s.Create("Beto", "beto@example.com")
	require.NoError(t, err)

	ok, err := s.Delete(b.ID)
	require.NoError(t, err)
	require.True(t, ok)

	c, err := s.Create("Carla", "carla@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, "2", c.ID, "max existing + 1 after deleting the max id")
}

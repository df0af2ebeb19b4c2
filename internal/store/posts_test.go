package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiblog/internal/blog"
)

func newPostStore(t *testing.T) *PostStore {
	t.Helper()
	s := NewPostStore(filepath.Join(t.TempDir(), "data", "posts.json"))
	require.NoError(t, s.Bootstrap())
	return s
}

func TestPostStoreBootstrap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "posts.json")
	s := NewPostStore(path)
	require.NoError(t, s.Bootstrap())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))

	posts, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostStoreCreate(t *testing.T) {
	s := newPostStore(t)

	p, err := s.Create("1", "Hola", "Primer post", []string{" Go ", "go", "Tutorial"})
	require.NoError(t, err)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, "1", p.AuthorID)
	assert.Equal(t, []string{"go", "tutorial"}, p.Tags, "tags normalized and deduplicated")
	assert.NotNil(t, p.Comments)
	assert.Empty(t, p.Comments)

	_, err = time.Parse(blog.TimeLayout, p.Published)
	assert.NoError(t, err, "publication date uses the shared timestamp layout")

	q, err := s.Create("2", "Segundo", "Otro post", nil)
	require.NoError(t, err)
	assert.Equal(t, "2", q.ID)
	assert.Equal(t, []string{}, q.Tags, "nil tags serialize as empty array")
}

func TestPostStoreFileFormat(t *testing.T) {
	s := newPostStore(t)
	_, err := s.Create("1", "Hola <mundo>", "contenido & más", []string{"go"})
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, "[\n    {"), "4-space indented array")
	for _, key := range []string{"id_post", "id_autor", "titulo", "contenido", "fecha_publicacion", "tags", "comentarios"} {
		assert.Contains(t, text, `"`+key+`"`)
	}
	assert.Contains(t, text, "Hola <mundo>", "HTML escaping disabled")
	assert.Contains(t, text, "contenido & más")
}

func TestPostStoreListing(t *testing.T) {
	s := newPostStore(t)
	p1, err := s.Create("1", "A", "a", []string{"go"})
	require.NoError(t, err)
	p2, err := s.Create("2", "B", "b", []string{"go", "web"})
	require.NoError(t, err)
	p3, err := s.Create("1", "C", "c", nil)
	require.NoError(t, err)

	t.Run("all in file order", func(t *testing.T) {
		got, err := s.ListAll()
		require.NoError(t, err)
		if diff := cmp.Diff([]blog.Post{p1, p2, p3}, got); diff != "" {
			t.Errorf("ListAll mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("by author", func(t *testing.T) {
		got, err := s.ListByAuthor("1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, p1.ID, got[0].ID)
		assert.Equal(t, p3.ID, got[1].ID)

		none, err := s.ListByAuthor("99")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("by tag, case-insensitive", func(t *testing.T) {
		got, err := s.SearchByTag("GO")
		require.NoError(t, err)
		require.Len(t, got, 2)

		web, err := s.SearchByTag("web")
		require.NoError(t, err)
		require.Len(t, web, 1)
		assert.Equal(t, p2.ID, web[0].ID)
	})

	t.Run("find by id", func(t *testing.T) {
		got, err := s.FindByID(p2.ID)
		require.NoError(t, err)
		assert.Equal(t, p2, got)

		_, err = s.FindByID("99")
		assert.ErrorIs(t, err, blog.ErrPostNotFound)
	})
}

func TestPostStoreUpdate(t *testing.T) {
	s := newPostStore(t)
	p, err := s.Create("1", "Original", "cuerpo", []string{"go"})
	require.NoError(t, err)

	title := "Editado"
	tags := []string{"Go", "News"}
	got, err := s.Update(p.ID, blog.PostChanges{Title: &title, Tags: tags})
	require.NoError(t, err)
	assert.Equal(t, "Editado", got.Title)
	assert.Equal(t, "cuerpo", got.Content)
	assert.Equal(t, []string{"go", "news"}, got.Tags)
	assert.Equal(t, p.Published, got.Published, "publication date never changes")
	assert.Equal(t, p.AuthorID, got.AuthorID)

	_, err = s.Update("99", blog.PostChanges{Title: &title})
	assert.ErrorIs(t, err, blog.ErrPostNotFound)
}

func TestPostStoreDelete(t *testing.T) {
	s := newPostStore(t)
	p, err := s.Create("1", "A", "a", nil)
	require.NoError(t, err)

	ok, err := s.Delete(p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostStoreComments(t *testing.T) {
	s := newPostStore(t)
	p, err := s.Create("1", "A", "a", nil)
	require.NoError(t, err)

	c1, err := s.AddComment(p.ID, blog.Comment{Author: "Beto", Content: "hola", AuthorID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "1", c1.ID)
	assert.NotEmpty(t, c1.Date)

	c2, err := s.AddComment(p.ID, blog.Comment{Author: "Anónimo", Content: "yo también"})
	require.NoError(t, err)
	assert.Equal(t, "2", c2.ID)
	assert.Empty(t, c2.AuthorID)

	t.Run("missing post", func(t *testing.T) {
		_, err := s.AddComment("99", blog.Comment{Author: "x", Content: "y"})
		assert.ErrorIs(t, err, blog.ErrPostNotFound)
	})

	t.Run("update", func(t *testing.T) {
		got, err := s.UpdateComment(p.ID, c1.ID, "hola de nuevo")
		require.NoError(t, err)
		assert.Equal(t, "hola de nuevo", got.Content)
		assert.Equal(t, c1.Author, got.Author)

		_, err = s.UpdateComment(p.ID, "99", "x")
		assert.ErrorIs(t, err, blog.ErrCommentNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		ok, err := s.DeleteComment(p.ID, c2.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = s.DeleteComment(p.ID, c2.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		post, err := s.FindByID(p.ID)
		require.NoError(t, err)
		require.Len(t, post.Comments, 1)
		assert.Equal(t, c1.ID, post.Comments[0].ID)
	})
}

func TestPostStoreDamagedFiles(t *testing.T) {
	t.Run("missing file lists empty", func(t *testing.T) {
		s := NewPostStore(filepath.Join(t.TempDir(), "absent.json"))
		posts, err := s.ListAll()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("corrupt JSON loads empty and recovers on write", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		s := NewPostStore(path)
		posts, err := s.ListAll()
		require.NoError(t, err)
		assert.Empty(t, posts)

		_, err = s.Create("1", "A", "a", nil)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var out []blog.Post
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Len(t, out, 1)
	})

	t.Run("non-array JSON loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "posts.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id_post":"1"}`), 0644))

		posts, err := NewPostStore(path).ListAll()
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestPostStoreRoundTrip(t *testing.T) {
	s := newPostStore(t)
	p, err := s.Create("1", "Título con ñ", "línea 1\nlínea 2", []string{"go", "unicode"})
	require.NoError(t, err)
	_, err = s.AddComment(p.ID, blog.Comment{Author: "Beto", Content: "¡bien!", AuthorID: "2"})
	require.NoError(t, err)

	want, err := s.ListAll()
	require.NoError(t, err)

	got, err := NewPostStore(s.Path()).ListAll()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

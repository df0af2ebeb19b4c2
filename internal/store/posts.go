package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"multiblog/internal/blog"
	"multiblog/internal/logging"
)

// PostStore persists posts (with embedded comments) to a JSON array file.
// Locking and read-rewrite semantics mirror AuthorStore.
type PostStore struct {
	mu   sync.Mutex
	path string
}

// NewPostStore returns a store backed by the JSON file at path.
func NewPostStore(path string) *PostStore {
	return &PostStore{path: path}
}

// Path returns the backing file path.
func (s *PostStore) Path() string { return s.path }

// Bootstrap creates the JSON file as an empty array if it does not exist.
func (s *PostStore) Bootstrap() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}

	logging.Boot("creating posts file %s", s.path)
	return s.save(nil)
}

// load reads all posts from disk. Missing or unparseable files yield an
// empty slice, same policy as the author store.
func (s *PostStore) load() ([]blog.Post, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []blog.Post{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var posts []blog.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		logging.Get(logging.CategoryStore).Warn("posts JSON unreadable, treating as empty: %v", err)
		return []blog.Post{}, nil
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

// save rewrites the full JSON file atomically. Output is a 4-space indented
// array with HTML escaping off, so post bodies stay readable on disk.
func (s *PostStore) save(posts []blog.Post) error {
	if posts == nil {
		posts = []blog.Post{}
	}
	for i := range posts {
		posts[i].Normalize()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("failed to encode posts JSON: %w", err)
	}
	return writeFileAtomic(s.path, buf.Bytes())
}

// Create adds a new post with the next free id and the current timestamp.
// The author reference is the caller's responsibility to have verified.
func (s *PostStore) Create(authorID, title, content string, tags []string) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := logging.StartTimer(logging.CategoryStore, "posts.create")
	defer t.Stop()

	posts, err := s.load()
	if err != nil {
		return blog.Post{}, err
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	post := blog.Post{
		ID:        nextID(ids),
		AuthorID:  authorID,
		Title:     title,
		Content:   content,
		Published: blog.Now(),
		Tags:      blog.NormalizeTags(tags),
		Comments:  []blog.Comment{},
	}
	posts = append(posts, post)

	if err := s.save(posts); err != nil {
		return blog.Post{}, err
	}
	logging.Store("post created: id=%s author=%s", post.ID, authorID)
	return post, nil
}

// FindByID looks a post up by id.
func (s *PostStore) FindByID(id string) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return blog.Post{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return blog.Post{}, blog.ErrPostNotFound
}

// ListAll returns every post in file order.
func (s *PostStore) ListAll() ([]blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// ListByAuthor returns the posts written by the given author.
func (s *PostStore) ListByAuthor(authorID string) ([]blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	out := []blog.Post{}
	for _, p := range posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchByTag returns the posts carrying the given tag, matched after
// normalization.
func (s *PostStore) SearchByTag(tag string) ([]blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return nil, err
	}
	tag = blog.NormalizeTag(tag)
	out := []blog.Post{}
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update applies a partial change to a post. Tags replace the existing set
// when non-nil. Author and publication date never change.
func (s *PostStore) Update(id string, changes blog.PostChanges) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return blog.Post{}, err
	}

	idx := -1
	for i, p := range posts {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return blog.Post{}, blog.ErrPostNotFound
	}

	if changes.Title != nil {
		posts[idx].Title = *changes.Title
	}
	if changes.Content != nil {
		posts[idx].Content = *changes.Content
	}
	if changes.Tags != nil {
		posts[idx].Tags = blog.NormalizeTags(changes.Tags)
	}

	if err := s.save(posts); err != nil {
		return blog.Post{}, err
	}
	logging.Store("post updated: id=%s", id)
	return posts[idx], nil
}

// Delete removes a post (and its comments) by id. Returns false when the
// id was not present.
func (s *PostStore) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return false, err
	}

	kept := posts[:0]
	found := false
	for _, p := range posts {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, err
	}
	logging.Store("post deleted: id=%s", id)
	return true, nil
}

// AddComment appends a comment to a post. The comment id auto-increments
// within the post; date is set to now when empty.
func (s *PostStore) AddComment(postID string, c blog.Comment) (blog.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return blog.Comment{}, err
	}

	idx := -1
	for i, p := range posts {
		if p.ID == postID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return blog.Comment{}, blog.ErrPostNotFound
	}

	ids := make([]string, len(posts[idx].Comments))
	for i, cc := range posts[idx].Comments {
		ids[i] = cc.ID
	}
	c.ID = nextID(ids)
	if c.Date == "" {
		c.Date = blog.Now()
	}
	posts[idx].Comments = append(posts[idx].Comments, c)

	if err := s.save(posts); err != nil {
		return blog.Comment{}, err
	}
	logging.Store("comment added: post=%s comment=%s", postID, c.ID)
	return c, nil
}

// UpdateComment replaces a comment's content.
func (s *PostStore) UpdateComment(postID, commentID, content string) (blog.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return blog.Comment{}, err
	}

	pi := -1
	for i, p := range posts {
		if p.ID == postID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return blog.Comment{}, blog.ErrPostNotFound
	}

	for ci, c := range posts[pi].Comments {
		if c.ID == commentID {
			posts[pi].Comments[ci].Content = content
			if err := s.save(posts); err != nil {
				return blog.Comment{}, err
			}
			logging.Store("comment updated: post=%s comment=%s", postID, commentID)
			return posts[pi].Comments[ci], nil
		}
	}
	return blog.Comment{}, blog.ErrCommentNotFound
}

// DeleteComment removes a comment from a post. Returns false when the
// comment was not present; a missing post is an error.
func (s *PostStore) DeleteComment(postID, commentID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.load()
	if err != nil {
		return false, err
	}

	pi := -1
	for i, p := range posts {
		if p.ID == postID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return false, blog.ErrPostNotFound
	}

	comments := posts[pi].Comments
	kept := comments[:0]
	found := false
	for _, c := range comments {
		if c.ID == commentID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return false, nil
	}
	posts[pi].Comments = kept

	if err := s.save(posts); err != nil {
		return false, err
	}
	logging.Store("comment deleted: post=%s comment=%s", postID, commentID)
	return true, nil
}

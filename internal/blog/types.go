// Package blog holds the domain model and use-case layer for the
// multi-user blog manager. Authors live in a CSV file, posts (with their
// embedded comments) in a JSON array; both are managed through the
// repositories in internal/store and orchestrated by Service.
package blog

import "time"

// TimeLayout is the timestamp format used for post and comment dates.
const TimeLayout = "2006-01-02 15:04:05"

// Author is a registered user identified uniquely by email.
// Field tags match the on-disk column/key names so data files written by
// earlier versions of the tool stay readable.
type Author struct {
	ID    string `json:"id_autor"`
	Name  string `json:"nombre_autor"`
	Email string `json:"email"`
}

// Post is a titled piece of content owned by exactly one author.
type Post struct {
	ID        string    `json:"id_post"`
	AuthorID  string    `json:"id_autor"`
	Title     string    `json:"titulo"`
	Content   string    `json:"contenido"`
	Published string    `json:"fecha_publicacion"`
	Tags      []string  `json:"tags"`
	Comments  []Comment `json:"comentarios"`
}

// Comment is attached to a post. AuthorID is empty for anonymous comments.
type Comment struct {
	ID       string `json:"id_comentario"`
	Author   string `json:"autor"`
	Content  string `json:"contenido"`
	Date     string `json:"fecha"`
	AuthorID string `json:"id_autor"`
}

// Normalize ensures slice fields round-trip as empty arrays, never null.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// HasTag reports whether the post carries the given tag (case-insensitive).
func (p *Post) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range p.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// Now returns the current time formatted with TimeLayout.
func Now() string {
	return time.Now().Format(TimeLayout)
}

// Package store implements the flat-file repositories behind the blog
// manager: authors in a CSV file, posts in a JSON array. Every operation
// is a full-file read (and rewrite, for mutations); writes are atomic via
// temp-file-then-rename so a crash can never leave a half-written file.
//
// The stores hold no business rules beyond their own uniqueness and id
// invariants. Referential checks (post author must exist) and input
// validation live in the blog.Service layer.
package store

import (
	"strconv"

	"multiblog/internal/blog"
)

var (
	_ blog.AuthorRepository = (*AuthorStore)(nil)
	_ blog.PostRepository   = (*PostStore)(nil)
)

// nextID returns the next auto-increment id for a set of int-as-string ids.
// Unparseable ids count as zero; an empty set yields "1".
func nextID(ids []string) string {
	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

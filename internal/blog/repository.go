package blog

// AuthorRepository is the contract for author persistence. The file-backed
// implementation lives in the store package.
type AuthorRepository interface {
	Create(name, email string) (Author, error)
	FindByEmail(email string) (Author, error)
	FindByID(id string) (Author, error)
	Update(id string, changes AuthorChanges) (Author, error)
	Delete(id string) (bool, error)
	ListAll() ([]Author, error)
}

// PostRepository is the contract for post (and embedded comment) persistence.
type PostRepository interface {
	Create(authorID, title, content string, tags []string) (Post, error)
	FindByID(id string) (Post, error)
	ListAll() ([]Post, error)
	ListByAuthor(authorID string) ([]Post, error)
	SearchByTag(tag string) ([]Post, error)
	Update(id string, changes PostChanges) (Post, error)
	Delete(id string) (bool, error)

	AddComment(postID string, c Comment) (Comment, error)
	UpdateComment(postID, commentID, content string) (Comment, error)
	DeleteComment(postID, commentID string) (bool, error)
}

// AuthorChanges describes a partial author update. Nil fields are left as is.
type AuthorChanges struct {
	Name  *string
	Email *string
}

// PostChanges describes a partial post update. Nil fields are left as is;
// a non-nil Tags replaces the whole tag set.
type PostChanges struct {
	Title   *string
	Content *string
	Tags    []string
}

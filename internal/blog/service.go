package blog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"multiblog/internal/logging"
)

// System account backing the welcome post. Created on demand and treated
// like any other author.
const (
	SystemAuthorName  = "Sistema"
	SystemAuthorEmail = "sistema@blog.local"

	WelcomeTag   = "bienvenida"
	welcomeTitle = "¡Bienvenido al Blog Multi-Usuario!"
	welcomeBody  = "Este es el primer post del blog.\n\n" +
		"Desde el menú puedes **crear posts**, etiquetarlos y comentar los " +
		"posts de otros autores. Tu email es tu identidad: inicia sesión con " +
		"él y tus publicaciones quedarán asociadas a tu cuenta.\n\n" +
		"¡Feliz escritura!"
)

// Service is the use-case layer: it owns validation, referential checks and
// ownership rules, and delegates persistence to the repositories.
type Service struct {
	authors AuthorRepository
	posts   PostRepository
}

// NewService builds a Service over the given repositories.
func NewService(authors AuthorRepository, posts PostRepository) *Service {
	return &Service{authors: authors, posts: posts}
}

// Login resolves an author by email. There is no password: possession of
// the email is the identity model, kept as is on purpose.
func (s *Service) Login(email string) (Author, error) {
	if err := ValidateEmail(email); err != nil {
		return Author{}, err
	}
	a, err := s.authors.FindByEmail(email)
	if err != nil {
		return Author{}, err
	}
	logging.Session("login: id=%s email=%s", a.ID, a.Email)
	return a, nil
}

// Register creates a new author after validating name and email.
func (s *Service) Register(name, email string) (Author, error) {
	if err := RequireNonEmpty("name", name); err != nil {
		return Author{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return Author{}, err
	}
	a, err := s.authors.Create(name, NormalizeEmail(email))
	if err != nil {
		return Author{}, err
	}
	logging.Session("registered: id=%s email=%s", a.ID, a.Email)
	return a, nil
}

// LoginOrRegister logs in by email, registering a new author with the given
// name when the email is unknown. The bool reports whether a registration
// happened.
func (s *Service) LoginOrRegister(name, email string) (Author, bool, error) {
	a, err := s.Login(email)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, ErrAuthorNotFound) {
		return Author{}, false, err
	}
	a, err = s.Register(name, email)
	if err != nil {
		return Author{}, false, err
	}
	return a, true, nil
}

// GetAuthor resolves an author by id.
func (s *Service) GetAuthor(id string) (Author, error) {
	return s.authors.FindByID(id)
}

// ListAuthors returns every registered author.
func (s *Service) ListAuthors() ([]Author, error) {
	return s.authors.ListAll()
}

// UpdateAuthor applies a profile change, validating any supplied fields.
func (s *Service) UpdateAuthor(id string, changes AuthorChanges) (Author, error) {
	if changes.Name != nil {
		if err := RequireNonEmpty("name", *changes.Name); err != nil {
			return Author{}, err
		}
	}
	if changes.Email != nil {
		if err := ValidateEmail(*changes.Email); err != nil {
			return Author{}, err
		}
	}
	return s.authors.Update(id, changes)
}

// DeleteAuthor removes an author. Their posts are left in place: references
// are only checked when writing new posts.
func (s *Service) DeleteAuthor(id string) error {
	ok, err := s.authors.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAuthorNotFound
	}
	logging.Session("author removed: id=%s", id)
	return nil
}

// CreatePost validates inputs, checks the author exists, then persists.
// The author check happens at write time only; nothing re-validates old
// posts against the current author set.
func (s *Service) CreatePost(authorID, title, content string, tags []string) (Post, error) {
	if err := RequireNonEmpty("title", title); err != nil {
		return Post{}, err
	}
	if err := RequireNonEmpty("content", content); err != nil {
		return Post{}, err
	}
	if _, err := s.authors.FindByID(authorID); err != nil {
		return Post{}, fmt.Errorf("cannot create post: %w", err)
	}
	return s.posts.Create(authorID, title, content, tags)
}

// CreatePostByEmail resolves the author by email before creating the post.
func (s *Service) CreatePostByEmail(email, title, content string, tags []string) (Post, error) {
	a, err := s.authors.FindByEmail(NormalizeEmail(email))
	if err != nil {
		return Post{}, fmt.Errorf("cannot create post: %w", err)
	}
	return s.CreatePost(a.ID, title, content, tags)
}

// GetPost resolves a post by id.
func (s *Service) GetPost(id string) (Post, error) {
	return s.posts.FindByID(id)
}

// ListPosts returns every post in file order.
func (s *Service) ListPosts() ([]Post, error) {
	return s.posts.ListAll()
}

// ListPostsByAuthor returns the posts of one author.
func (s *Service) ListPostsByAuthor(authorID string) ([]Post, error) {
	return s.posts.ListByAuthor(authorID)
}

// SearchPostsByTag returns the posts carrying the given tag.
func (s *Service) SearchPostsByTag(tag string) ([]Post, error) {
	return s.posts.SearchByTag(tag)
}

// EditPost applies changes to a post owned by actorID. Non-owners get
// ErrNotOwner and the post is left untouched.
func (s *Service) EditPost(actorID, postID string, changes PostChanges) (Post, error) {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return Post{}, err
	}
	if p.AuthorID != actorID {
		return Post{}, ErrNotOwner
	}
	if changes.Title != nil {
		if err := RequireNonEmpty("title", *changes.Title); err != nil {
			return Post{}, err
		}
	}
	if changes.Content != nil {
		if err := RequireNonEmpty("content", *changes.Content); err != nil {
			return Post{}, err
		}
	}
	return s.posts.Update(postID, changes)
}

// DeletePost removes a post owned by actorID.
func (s *Service) DeletePost(actorID, postID string) error {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	if p.AuthorID != actorID {
		return ErrNotOwner
	}
	ok, err := s.posts.Delete(postID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}

// AddComment attaches a comment to a post. authorID may be empty for an
// anonymous comment; authorName is the display name either way.
func (s *Service) AddComment(postID, authorName, content, authorID string) (Comment, error) {
	if err := RequireNonEmpty("author", authorName); err != nil {
		return Comment{}, err
	}
	if err := RequireNonEmpty("content", content); err != nil {
		return Comment{}, err
	}
	return s.posts.AddComment(postID, Comment{
		Author:   authorName,
		Content:  content,
		AuthorID: authorID,
	})
}

// ListComments returns the comments of a post.
func (s *Service) ListComments(postID string) ([]Comment, error) {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// canTouchComment: a comment belongs to the author who wrote it; anonymous
// comments are moderated by the post owner.
func canTouchComment(actorID string, post Post, c Comment) bool {
	if c.AuthorID != "" {
		return c.AuthorID == actorID
	}
	return post.AuthorID == actorID
}

// EditComment replaces a comment's content, subject to the ownership rule.
func (s *Service) EditComment(actorID, postID, commentID, content string) (Comment, error) {
	if err := RequireNonEmpty("content", content); err != nil {
		return Comment{}, err
	}
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return Comment{}, err
	}
	for _, c := range p.Comments {
		if c.ID == commentID {
			if !canTouchComment(actorID, p, c) {
				return Comment{}, ErrNotOwner
			}
			return s.posts.UpdateComment(postID, commentID, content)
		}
	}
	return Comment{}, ErrCommentNotFound
}

// DeleteComment removes a comment, subject to the ownership rule.
func (s *Service) DeleteComment(actorID, postID, commentID string) error {
	p, err := s.posts.FindByID(postID)
	if err != nil {
		return err
	}
	for _, c := range p.Comments {
		if c.ID == commentID {
			if !canTouchComment(actorID, p, c) {
				return ErrNotOwner
			}
			ok, err := s.posts.DeleteComment(postID, commentID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCommentNotFound
			}
			return nil
		}
	}
	return ErrCommentNotFound
}

// EnsureWelcome idempotently creates the system author and the welcome
// post. The bool reports whether the post was created by this call.
func (s *Service) EnsureWelcome() (Post, bool, error) {
	sys, err := s.authors.FindByEmail(SystemAuthorEmail)
	if errors.Is(err, ErrAuthorNotFound) {
		sys, err = s.authors.Create(SystemAuthorName, SystemAuthorEmail)
	}
	if err != nil {
		return Post{}, false, fmt.Errorf("failed to ensure system author: %w", err)
	}

	existing, err := s.posts.ListByAuthor(sys.ID)
	if err != nil {
		return Post{}, false, err
	}
	for _, p := range existing {
		if p.HasTag(WelcomeTag) {
			return p, false, nil
		}
	}

	p, err := s.posts.Create(sys.ID, welcomeTitle, welcomeBody, []string{WelcomeTag})
	if err != nil {
		return Post{}, false, err
	}
	logging.Boot("welcome post created: id=%s", p.ID)
	return p, true, nil
}

// Stats summarizes the data set for the status command.
type Stats struct {
	Authors  int
	Posts    int
	Comments int
}

// Stats loads both stores concurrently and returns the counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var (
		st      Stats
		authors []Author
		posts   []Post
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		authors, err = s.authors.ListAll()
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.posts.ListAll()
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	st.Authors = len(authors)
	st.Posts = len(posts)
	for _, p := range posts {
		st.Comments += len(p.Comments)
	}
	return st, nil
}

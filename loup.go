package loup

import (
	"context"
	"time"
)

// Categories is the fixed set of labels an article can carry.
var Categories = []string{
	"Crypto-Tracteur",
	"Immobilier Rural",
	"Forex-Fermier",
	"NFT-Vache",
}

// ValidCategory reports whether category is one of the known labels.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Article is a rumor published on the site. Author is a denormalized copy
// of the owner's pseudo taken at creation time, and Likes mirrors the size
// of LikedBy: both are mutated together inside a single store transaction.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`

	UserID string `json:"userId"`
	Author string `json:"author"`

	Likes   int      `json:"likes"`
	LikedBy []string `json:"likedBy"`

	CreatedAt time.Time `json:"createdAt"`
}

// LikedByUser is the membership predicate used both by the store-side
// toggle transaction and by the optimistic mirror. Keeping a single
// predicate is what prevents the local and stored states from diverging
// on rapid double toggles.
func (a *Article) LikedByUser(userID string) bool {
	for _, id := range a.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment on an article. Comments are immutable: there is no update or
// delete operation anywhere in the system.
type Comment struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is an account. Password is an opaque string compared literally,
// kept as-is for compatibility with the existing user base.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Pseudo    string    `json:"pseudo"`
	Avatar    string    `json:"avatar"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// ArticleSearch describes a query against the article index.
type ArticleSearch struct {
	Q string `json:"q"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type ArticleStore interface {
	// Get returns the article or a 404 error when it does not exist.
	Get(ctx context.Context, id string) (*Article, error)

	// List returns the whole collection. Unpaginated, prototype scale.
	List(ctx context.Context) ([]*Article, error)

	// Insert assigns the id and creation time and persists the article
	// with a zero like count and an empty liked-by set.
	Insert(ctx context.Context, article *Article) error

	Delete(ctx context.Context, id string) error

	// ByAuthor returns the articles owned by the given user.
	ByAuthor(ctx context.Context, userID string) ([]*Article, error)

	// LikedBy returns the articles whose liked-by set contains the
	// given user.
	LikedBy(ctx context.Context, userID string) ([]*Article, error)

	// ToggleLike flips the (article, user) like relationship inside one
	// atomic read-modify-write transaction and returns the committed
	// article. It fails with a 404 error when the article is gone and
	// with a conflict error when the store exhausts its retry budget.
	ToggleLike(ctx context.Context, articleID, userID string) (*Article, error)
}

type CommentStore interface {
	// Insert assigns the id and creation time.
	Insert(ctx context.Context, comment *Comment) error

	// ByArticle returns the comments of an article, newest first.
	ByArticle(ctx context.Context, articleID string) ([]*Comment, error)
}

type UserStore interface {
	// Get returns nil, not an error, when there is no user for the id.
	Get(ctx context.Context, id string) (*User, error)

	// GetByEmailAndPassword returns nil when no account matches both
	// fields exactly.
	GetByEmailAndPassword(ctx context.Context, email, password string) (*User, error)

	// Insert assigns the id and creation time. It fails with a conflict
	// error when the email is already taken; the uniqueness check and
	// the write happen in the same transaction.
	Insert(ctx context.Context, user *User) error

	List(ctx context.Context) ([]*User, error)
}

// SessionStore is the single persisted slot remembering the logged-in
// user's id across restarts.
type SessionStore interface {
	// Get returns "" when no session is stored.
	Get() (string, error)
	Set(userID string) error
	Remove() error
}

// ArticleIndex indexes articles for substring search on title, content
// and category. It returns ids; resolving documents is the caller's job.
type ArticleIndex interface {
	Index(*Article) error
	Search(ArticleSearch) ([]string, error)
	Delete(id string) error
}

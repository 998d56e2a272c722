package repository

import (
	"context"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/rs/zerolog"
)

// Status is the observable state shared by every entity store
type Status interface {
	Loading() bool
	LastError() string
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Status
	Refresh(ctx context.Context)
	FetchAll(ctx context.Context) []models.Article
	FetchOne(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, in models.ArticleInput, author string) (*models.Article, error)
	Update(ctx context.Context, id int, in models.ArticleInput) (*models.Article, error)
	Delete(ctx context.Context, id int) error
	IncrementViews(ctx context.Context, id int) (*models.Article, error)
	MigrateLegacyIDs(ctx context.Context) (bool, error)
	Count(ctx context.Context) int
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Status
	Refresh(ctx context.Context)
	FetchAll(ctx context.Context) []models.Category
	FetchOne(ctx context.Context, id int) (*models.Category, error)
	Create(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id int) error
	MigrateLegacyIDs(ctx context.Context) (bool, error)
	Count(ctx context.Context) int
}

// TagRepository defines the interface for tag data operations
type TagRepository interface {
	Status
	Refresh(ctx context.Context)
	FetchAll(ctx context.Context) []models.Tag
	FetchOne(ctx context.Context, id int) (*models.Tag, error)
	Create(ctx context.Context, in models.TagInput) (*models.Tag, error)
	Update(ctx context.Context, id int, in models.TagInput) (*models.Tag, error)
	Delete(ctx context.Context, id int) error
	MigrateLegacyIDs(ctx context.Context) (bool, error)
	Count(ctx context.Context) int
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Status
	Refresh(ctx context.Context)
	FetchAll(ctx context.Context) []models.Comment
	FetchOne(ctx context.Context, id int) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int) []models.Comment
	Create(ctx context.Context, in models.CommentInput, status string) (*models.Comment, error)
	Approve(ctx context.Context, id int) (*models.Comment, error)
	Delete(ctx context.Context, id int) error
	MigrateLegacyIDs(ctx context.Context) (bool, error)
	Count(ctx context.Context) int
}

// SessionRepository defines the interface for account and session state
type SessionRepository interface {
	Register(ctx context.Context, cred models.Credentials) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*models.Account, string, error)
	Logout(ctx context.Context)
	ValidateToken() bool
	Token() string
	CurrentUser() (*models.Account, bool)
	ResetPassword(ctx context.Context, username, newPassword string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	// Store is the key-value layer shared by every repository
	Store *kv.Store

	Article  ArticleRepository
	Category CategoryRepository
	Tag      TagRepository
	Comment  CommentRepository
	Session  SessionRepository
}

// New creates all repositories on top of the given key-value store
func New(ctx context.Context, store *kv.Store, opts Options, log zerolog.Logger) *Repositories {
	opts = opts.withDefaults()
	return &Repositories{
		Store:    store,
		Article:  NewArticleRepo(store, opts, log),
		Category: NewCategoryRepo(store, opts, log),
		Tag:      NewTagRepo(store, opts, log),
		Comment:  NewCommentRepo(store, opts, log),
		Session:  NewSessionRepo(ctx, store, log),
	}
}

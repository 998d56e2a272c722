package service

import (
	"context"
	"io"
	"net/http"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/render"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article operations
type ArticleService interface {
	ListArticles(ctx context.Context, q models.ArticleQuery) models.ArticlePage
	GetArticle(ctx context.Context, id int, html bool) (*models.ArticleView, error)
	CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id int, in models.ArticleInput) (*models.Article, error)
	DeleteArticle(ctx context.Context, id int) error
	UpdateArticleViews(ctx context.Context, id int) (*models.Article, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	ListCategories(ctx context.Context) []models.Category
	GetCategory(ctx context.Context, id int) (*models.Category, error)
	CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int) error
}

// TagService defines the interface for tag operations
type TagService interface {
	ListTags(ctx context.Context) []models.Tag
	GetTag(ctx context.Context, id int) (*models.Tag, error)
	CreateTag(ctx context.Context, in models.TagInput) (*models.Tag, error)
	UpdateTag(ctx context.Context, id int, in models.TagInput) (*models.Tag, error)
	DeleteTag(ctx context.Context, id int) error
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context) []models.Comment
	ListArticleComments(ctx context.Context, articleID int) []models.Comment
	CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error)
	ApproveComment(ctx context.Context, id int) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// AuthService defines the interface for account and session operations
type AuthService interface {
	Register(ctx context.Context, cred models.Credentials) (*models.Account, error)
	Login(ctx context.Context, cred models.Credentials) (*models.Account, string, error)
	Logout(ctx context.Context)
	ValidateToken() bool
	Authorize(token string) bool
	CurrentUser() (*models.Account, bool)
	ResetPassword(ctx context.Context, req models.PasswordReset) error
}

// ExportService defines the interface for export operations
type ExportService interface {
	StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error
	GetCount(ctx context.Context, resource string) (int, error)
	Stats(ctx context.Context) models.Stats
}

// ImportService defines the interface for import operations
type ImportService interface {
	Import(ctx context.Context, resource string, r io.Reader) (*models.ImportResult, error)
}

// HealthService reports whether the storage medium is reachable
type HealthService interface {
	Ping(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Article  ArticleService
	Category CategoryService
	Tag      TagService
	Comment  CommentService
	Auth     AuthService
	Export   ExportService
	Import   ImportService
	Health   HealthService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	validator := validation.NewValidator()
	renderer := render.New()

	articleSvc := newArticleService(repos, validator, renderer, log)
	categorySvc := newCategoryService(repos.Category, validator, log)
	tagSvc := newTagService(repos.Tag, validator, log)
	commentSvc := newCommentService(repos.Comment, validator, renderer, cfg.Store.CommentModeration, log)

	return &Services{
		Article:  articleSvc,
		Category: categorySvc,
		Tag:      tagSvc,
		Comment:  commentSvc,
		Auth:     newAuthService(repos.Session, validator, log),
		Export:   newExportService(repos, log),
		Import:   newImportService(articleSvc, categorySvc, tagSvc, commentSvc, log),
		Health:   repos.Store,
	}
}

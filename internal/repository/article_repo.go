package repository

import (
	"context"
	"time"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/rs/zerolog"
)

// DefaultAuthor is recorded on articles created without a signed-in user
const DefaultAuthor = "admin"

type articleRepo struct {
	*collection[models.Article]
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(store *kv.Store, opts Options, log zerolog.Logger) ArticleRepository {
	return &articleRepo{&collection[models.Article]{
		kind:    "article",
		key:     kv.KeyArticles,
		store:   store,
		seed:    seedArticles,
		id:      func(a *models.Article) int { return a.ID },
		setID:   func(a *models.Article, id int) { a.ID = id },
		created: func(a *models.Article) time.Time { return a.CreateTime },
		opts:    opts.withDefaults(),
		log:     log.With().Str("component", "article_repo").Logger(),
	}}
}

func (r *articleRepo) FetchAll(ctx context.Context) []models.Article {
	return r.fetchAll(ctx)
}

// FetchOne returns the article and counts a view when it is published
func (r *articleRepo) FetchOne(ctx context.Context, id int) (*models.Article, error) {
	return r.fetchOne(ctx, id, func(a *models.Article) bool {
		if a.Status != models.StatusPublished {
			return false
		}
		a.ViewCount++
		return true
	})
}

func (r *articleRepo) Create(ctx context.Context, in models.ArticleInput, author string) (*models.Article, error) {
	if author == "" {
		author = DefaultAuthor
	}
	return r.create(ctx, nil, func(id int, now time.Time) models.Article {
		a := models.Article{
			ID:         id,
			Author:     author,
			Status:     models.StatusPublished,
			TagIDs:     []int{},
			CreateTime: now,
			UpdateTime: now,
		}
		applyArticleInput(&a, in)
		return a
	}, true)
}

func (r *articleRepo) Update(ctx context.Context, id int, in models.ArticleInput) (*models.Article, error) {
	return r.update(ctx, "update", id, nil, func(a *models.Article, now time.Time) {
		applyArticleInput(a, in)
		a.UpdateTime = now
	})
}

func (r *articleRepo) Delete(ctx context.Context, id int) error {
	return r.remove(ctx, id)
}

// IncrementViews adds one view regardless of status
func (r *articleRepo) IncrementViews(ctx context.Context, id int) (*models.Article, error) {
	return r.update(ctx, "increment_views", id, nil, func(a *models.Article, _ time.Time) {
		a.ViewCount++
	})
}

func (r *articleRepo) Count(ctx context.Context) int {
	return r.count(ctx)
}

func applyArticleInput(a *models.Article, in models.ArticleInput) {
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Summary != nil {
		a.Summary = *in.Summary
	}
	if in.CategoryID != nil {
		a.CategoryID = *in.CategoryID
	}
	if in.TagIDs != nil {
		a.TagIDs = append([]int(nil), in.TagIDs...)
	}
	if in.Status != nil {
		a.Status = *in.Status
	}
}

package repository

import (
	"context"
	"sort"
	"time"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/rs/zerolog"
)

type commentRepo struct {
	*collection[models.Comment]
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(store *kv.Store, opts Options, log zerolog.Logger) CommentRepository {
	return &commentRepo{&collection[models.Comment]{
		kind:    "comment",
		key:     kv.KeyComments,
		store:   store,
		seed:    seedComments,
		id:      func(c *models.Comment) int { return c.ID },
		setID:   func(c *models.Comment, id int) { c.ID = id },
		created: func(c *models.Comment) time.Time { return c.CreateTime },
		opts:    opts.withDefaults(),
		log:     log.With().Str("component", "comment_repo").Logger(),
	}}
}

// FetchAll returns every comment regardless of status, newest first
func (r *commentRepo) FetchAll(ctx context.Context) []models.Comment {
	comments := r.fetchAll(ctx)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreateTime.After(comments[j].CreateTime)
	})
	return comments
}

func (r *commentRepo) FetchOne(ctx context.Context, id int) (*models.Comment, error) {
	return r.fetchOne(ctx, id, nil)
}

// ListByArticle returns the approved comments of one article, oldest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) []models.Comment {
	out := []models.Comment{}
	for _, c := range r.fetchAll(ctx) {
		if c.ArticleID == articleID && c.Status == models.CommentApproved {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreateTime.Before(out[j].CreateTime)
	})
	return out
}

func (r *commentRepo) Create(ctx context.Context, in models.CommentInput, status string) (*models.Comment, error) {
	if status == "" {
		status = models.CommentApproved
	}
	return r.create(ctx, nil, func(id int, now time.Time) models.Comment {
		return models.Comment{
			ID:         id,
			ArticleID:  in.ArticleID,
			Content:    in.Content,
			Author:     in.Author,
			Email:      in.Email,
			Status:     status,
			CreateTime: now,
		}
	}, true)
}

func (r *commentRepo) Approve(ctx context.Context, id int) (*models.Comment, error) {
	return r.update(ctx, "approve", id, nil, func(c *models.Comment, _ time.Time) {
		c.Status = models.CommentApproved
	})
}

func (r *commentRepo) Delete(ctx context.Context, id int) error {
	return r.remove(ctx, id)
}

func (r *commentRepo) Count(ctx context.Context) int {
	return r.count(ctx)
}

package service

import (
	"context"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/render"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments   repository.CommentRepository
	validator  *validation.Validator
	renderer   *render.Renderer
	moderation bool
	log        zerolog.Logger
}

// newCommentService creates a new CommentService. With moderation enabled
// new comments wait for approval before they are listed.
func newCommentService(comments repository.CommentRepository, validator *validation.Validator, renderer *render.Renderer, moderation bool, log zerolog.Logger) *commentService {
	return &commentService{
		comments:   comments,
		validator:  validator,
		renderer:   renderer,
		moderation: moderation,
		log:        log.With().Str("service", "comment").Logger(),
	}
}

func (s *commentService) ListComments(ctx context.Context) []models.Comment {
	return s.comments.FetchAll(ctx)
}

func (s *commentService) ListArticleComments(ctx context.Context, articleID int) []models.Comment {
	return s.comments.ListByArticle(ctx, articleID)
}

// CreateComment strips markup from the submitted text before storing it
func (s *commentService) CreateComment(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	in.Content = s.renderer.PlainText(in.Content)
	in.Author = s.renderer.PlainText(in.Author)
	if err := s.validator.ValidateComment(&in).Err(); err != nil {
		return nil, err
	}

	status := models.CommentApproved
	if s.moderation {
		status = models.CommentPending
	}

	comment, err := s.comments.Create(ctx, in, status)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("comment_id", comment.ID).
		Int("article_id", comment.ArticleID).
		Str("status", comment.Status).
		Msg("Comment created")
	return comment, nil
}

func (s *commentService) ApproveComment(ctx context.Context, id int) (*models.Comment, error) {
	return s.comments.Approve(ctx, id)
}

func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	return s.comments.Delete(ctx, id)
}

package service

import (
	"context"
	"sort"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/render"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// Default pagination values
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles  repository.ArticleRepository
	session   repository.SessionRepository
	validator *validation.Validator
	renderer  *render.Renderer
	log       zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(repos *repository.Repositories, validator *validation.Validator, renderer *render.Renderer, log zerolog.Logger) *articleService {
	return &articleService{
		articles:  repos.Article,
		session:   repos.Session,
		validator: validator,
		renderer:  renderer,
		log:       log.With().Str("service", "article").Logger(),
	}
}

// ListArticles filters, sorts by ascending id and paginates the article
// collection. Without an explicit status or IncludeAllStatuses only
// published articles are returned.
func (s *articleService) ListArticles(ctx context.Context, q models.ArticleQuery) models.ArticlePage {
	return Paginate(FilterArticles(s.articles.FetchAll(ctx), q), q.Page, q.PageSize)
}

// FilterArticles applies the list criteria and returns matches sorted by id
func FilterArticles(articles []models.Article, q models.ArticleQuery) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if q.CategoryID != 0 && a.CategoryID != q.CategoryID {
			continue
		}
		if q.TagID != 0 && !a.HasTag(q.TagID) {
			continue
		}
		if q.Status != "" {
			if a.Status != q.Status {
				continue
			}
		} else if !q.IncludeAllStatuses && a.Status != models.StatusPublished {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Paginate slices one 1-indexed page out of items. Out-of-range pages are
// empty; Total is always the full length.
func Paginate(items []models.Article, page, pageSize int) models.ArticlePage {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	result := models.ArticlePage{
		Data:     []models.Article{},
		Total:    len(items),
		Page:     page,
		PageSize: pageSize,
	}

	// bounds are checked by division so huge page or pageSize values
	// cannot overflow
	n := len(items)
	if n == 0 || page-1 > (n-1)/pageSize {
		return result
	}
	start := (page - 1) * pageSize
	end := n
	if pageSize < n-start {
		end = start + pageSize
	}
	result.Data = items[start:end]
	return result
}

func (s *articleService) GetArticle(ctx context.Context, id int, html bool) (*models.ArticleView, error) {
	article, err := s.articles.FetchOne(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &models.ArticleView{Article: *article}
	if html {
		rendered, err := s.renderer.Markdown(article.Content)
		if err != nil {
			s.log.Warn().Err(err).Int("article_id", id).Msg("Failed to render article")
		} else {
			view.ContentHTML = rendered
		}
	}
	return view, nil
}

// CreateArticle records the signed-in user as author
func (s *articleService) CreateArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	if err := s.validator.ValidateArticle(&in, false).Err(); err != nil {
		return nil, err
	}

	author := ""
	if user, ok := s.session.CurrentUser(); ok {
		author = user.Username
	}

	article, err := s.articles.Create(ctx, in, author)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("article_id", article.ID).Str("status", article.Status).Msg("Article created")
	return article, nil
}

func (s *articleService) UpdateArticle(ctx context.Context, id int, in models.ArticleInput) (*models.Article, error) {
	if err := s.validator.ValidateArticle(&in, true).Err(); err != nil {
		return nil, err
	}
	return s.articles.Update(ctx, id, in)
}

func (s *articleService) DeleteArticle(ctx context.Context, id int) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int("article_id", id).Msg("Article deleted")
	return nil
}

func (s *articleService) UpdateArticleViews(ctx context.Context, id int) (*models.Article, error) {
	return s.articles.IncrementViews(ctx, id)
}

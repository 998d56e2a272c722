package service

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// maxImportErrors caps the errors reported back for one import
const maxImportErrors = 100

// importService loads NDJSON records through the regular create paths so
// every imported record is validated and gets a fresh id
type importService struct {
	articles   ArticleService
	categories CategoryService
	tags       TagService
	comments   CommentService
	log        zerolog.Logger
}

// newImportService creates a new ImportService
func newImportService(articles ArticleService, categories CategoryService, tags TagService, comments CommentService, log zerolog.Logger) *importService {
	return &importService{
		articles:   articles,
		categories: categories,
		tags:       tags,
		comments:   comments,
		log:        log.With().Str("service", "import").Logger(),
	}
}

// Import reads one JSON object per line from r. Invalid lines are reported
// with their line number and skipped; the rest are created.
func (s *importService) Import(ctx context.Context, resource string, r io.Reader) (*models.ImportResult, error) {
	create, err := s.creator(resource)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	result := &models.ImportResult{Resource: resource, Errors: []models.ImportError{}}

	scanner := bufio.NewScanner(r)
	// Increase buffer size for long lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		result.TotalRecords++
		if err := create(ctx, []byte(line)); err != nil {
			result.FailedCount++
			s.addErrors(result, lineNum, err)
			continue
		}
		result.SuccessfulCount++
	}
	if err := scanner.Err(); err != nil {
		return result, err
	}

	result.DurationMs = time.Since(startTime).Milliseconds()
	s.log.Info().
		Str("resource", resource).
		Int("total", result.TotalRecords).
		Int("successful", result.SuccessfulCount).
		Int("failed", result.FailedCount).
		Int64("duration_ms", result.DurationMs).
		Msg("Import completed")
	return result, nil
}

func (s *importService) creator(resource string) (func(ctx context.Context, line []byte) error, error) {
	switch resource {
	case models.ResourceArticles:
		return func(ctx context.Context, line []byte) error {
			var in models.ArticleInput
			if err := json.Unmarshal(line, &in); err != nil {
				return err
			}
			_, err := s.articles.CreateArticle(ctx, in)
			return err
		}, nil
	case models.ResourceCategories:
		return func(ctx context.Context, line []byte) error {
			var in models.CategoryInput
			if err := json.Unmarshal(line, &in); err != nil {
				return err
			}
			_, err := s.categories.CreateCategory(ctx, in)
			return err
		}, nil
	case models.ResourceTags:
		return func(ctx context.Context, line []byte) error {
			var in models.TagInput
			if err := json.Unmarshal(line, &in); err != nil {
				return err
			}
			_, err := s.tags.CreateTag(ctx, in)
			return err
		}, nil
	case models.ResourceComments:
		return func(ctx context.Context, line []byte) error {
			var in models.CommentInput
			if err := json.Unmarshal(line, &in); err != nil {
				return err
			}
			_, err := s.comments.CreateComment(ctx, in)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown resource: %s", resource)
	}
}

func (s *importService) addErrors(result *models.ImportResult, line int, err error) {
	if len(result.Errors) >= maxImportErrors {
		return
	}

	var fieldErrs validation.Errors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &fieldErrs):
		for _, e := range fieldErrs {
			result.Errors = append(result.Errors, models.ImportError{Line: line, Field: e.Field, Message: e.Message, Value: e.Value})
		}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		result.Errors = append(result.Errors, models.ImportError{Line: line, Field: "json", Message: fmt.Sprintf("invalid JSON: %v", err)})
	default:
		result.Errors = append(result.Errors, models.ImportError{Line: line, Message: err.Error()})
	}
}

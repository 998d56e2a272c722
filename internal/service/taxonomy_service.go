package service

import (
	"context"
	"sort"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	categories repository.CategoryRepository
	validator  *validation.Validator
	log        zerolog.Logger
}

// newCategoryService creates a new CategoryService
func newCategoryService(categories repository.CategoryRepository, validator *validation.Validator, log zerolog.Logger) *categoryService {
	return &categoryService{
		categories: categories,
		validator:  validator,
		log:        log.With().Str("service", "category").Logger(),
	}
}

// ListCategories returns every category ordered by id
func (s *categoryService) ListCategories(ctx context.Context) []models.Category {
	categories := s.categories.FetchAll(ctx)
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories
}

func (s *categoryService) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	return s.categories.FetchOne(ctx, id)
}

func (s *categoryService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := s.validator.ValidateCategory(&in, false).Err(); err != nil {
		return nil, err
	}
	category, err := s.categories.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("category_id", category.ID).Str("name", category.Name).Msg("Category created")
	return category, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error) {
	if err := s.validator.ValidateCategory(&in, true).Err(); err != nil {
		return nil, err
	}
	return s.categories.Update(ctx, id, in)
}

// DeleteCategory leaves articles that reference the category untouched
func (s *categoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.categories.Delete(ctx, id)
}

// tagService is the concrete implementation of TagService
type tagService struct {
	tags      repository.TagRepository
	validator *validation.Validator
	log       zerolog.Logger
}

// newTagService creates a new TagService
func newTagService(tags repository.TagRepository, validator *validation.Validator, log zerolog.Logger) *tagService {
	return &tagService{
		tags:      tags,
		validator: validator,
		log:       log.With().Str("service", "tag").Logger(),
	}
}

// ListTags returns every tag ordered by id
func (s *tagService) ListTags(ctx context.Context) []models.Tag {
	tags := s.tags.FetchAll(ctx)
	sort.SliceStable(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags
}

func (s *tagService) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	return s.tags.FetchOne(ctx, id)
}

func (s *tagService) CreateTag(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	if err := s.validator.ValidateTag(&in, false).Err(); err != nil {
		return nil, err
	}
	tag, err := s.tags.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("tag_id", tag.ID).Str("name", tag.Name).Msg("Tag created")
	return tag, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id int, in models.TagInput) (*models.Tag, error) {
	if err := s.validator.ValidateTag(&in, true).Err(); err != nil {
		return nil, err
	}
	return s.tags.Update(ctx, id, in)
}

func (s *tagService) DeleteTag(ctx context.Context, id int) error {
	return s.tags.Delete(ctx, id)
}

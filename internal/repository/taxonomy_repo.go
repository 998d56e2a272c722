package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/rs/zerolog"
)

// nameTaken reports a duplicate when a record other than skip holds name.
// Comparison is exact and case-sensitive.
func nameTaken[T any](kind string, items []T, name string, skip int, nameOf func(*T) string) error {
	for i := range items {
		if i == skip {
			continue
		}
		if nameOf(&items[i]) == name {
			return fmt.Errorf("%s %q: %w", kind, name, ErrDuplicateName)
		}
	}
	return nil
}

type categoryRepo struct {
	*collection[models.Category]
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(store *kv.Store, opts Options, log zerolog.Logger) CategoryRepository {
	return &categoryRepo{&collection[models.Category]{
		kind:    "category",
		key:     kv.KeyCategories,
		store:   store,
		seed:    seedCategories,
		id:      func(c *models.Category) int { return c.ID },
		setID:   func(c *models.Category, id int) { c.ID = id },
		created: func(c *models.Category) time.Time { return c.CreateTime },
		opts:    opts.withDefaults(),
		log:     log.With().Str("component", "category_repo").Logger(),
	}}
}

func categoryName(c *models.Category) string { return c.Name }

func (r *categoryRepo) FetchAll(ctx context.Context) []models.Category {
	return r.fetchAll(ctx)
}

func (r *categoryRepo) FetchOne(ctx context.Context, id int) (*models.Category, error) {
	return r.fetchOne(ctx, id, nil)
}

func (r *categoryRepo) Create(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	name := deref(in.Name)
	check := func(items []models.Category) error {
		return nameTaken(r.kind, items, name, -1, categoryName)
	}
	return r.create(ctx, check, func(id int, now time.Time) models.Category {
		return models.Category{
			ID:          id,
			Name:        name,
			Description: deref(in.Description),
			CreateTime:  now,
		}
	}, false)
}

func (r *categoryRepo) Update(ctx context.Context, id int, in models.CategoryInput) (*models.Category, error) {
	check := func(items []models.Category, idx int) error {
		if in.Name == nil {
			return nil
		}
		return nameTaken(r.kind, items, *in.Name, idx, categoryName)
	}
	return r.update(ctx, "update", id, check, func(c *models.Category, now time.Time) {
		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Description != nil {
			c.Description = *in.Description
		}
		c.UpdateTime = &now
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id int) error {
	return r.remove(ctx, id)
}

func (r *categoryRepo) Count(ctx context.Context) int {
	return r.count(ctx)
}

type tagRepo struct {
	*collection[models.Tag]
}

// NewTagRepo creates a new tag repository
func NewTagRepo(store *kv.Store, opts Options, log zerolog.Logger) TagRepository {
	return &tagRepo{&collection[models.Tag]{
		kind:    "tag",
		key:     kv.KeyTags,
		store:   store,
		seed:    seedTags,
		id:      func(t *models.Tag) int { return t.ID },
		setID:   func(t *models.Tag, id int) { t.ID = id },
		created: func(t *models.Tag) time.Time { return t.CreateTime },
		opts:    opts.withDefaults(),
		log:     log.With().Str("component", "tag_repo").Logger(),
	}}
}

func tagName(t *models.Tag) string { return t.Name }

func (r *tagRepo) FetchAll(ctx context.Context) []models.Tag {
	return r.fetchAll(ctx)
}

func (r *tagRepo) FetchOne(ctx context.Context, id int) (*models.Tag, error) {
	return r.fetchOne(ctx, id, nil)
}

func (r *tagRepo) Create(ctx context.Context, in models.TagInput) (*models.Tag, error) {
	name := deref(in.Name)
	check := func(items []models.Tag) error {
		return nameTaken(r.kind, items, name, -1, tagName)
	}
	return r.create(ctx, check, func(id int, now time.Time) models.Tag {
		return models.Tag{ID: id, Name: name, CreateTime: now}
	}, false)
}

func (r *tagRepo) Update(ctx context.Context, id int, in models.TagInput) (*models.Tag, error) {
	check := func(items []models.Tag, idx int) error {
		if in.Name == nil {
			return nil
		}
		return nameTaken(r.kind, items, *in.Name, idx, tagName)
	}
	return r.update(ctx, "update", id, check, func(t *models.Tag, now time.Time) {
		if in.Name != nil {
			t.Name = *in.Name
		}
		t.UpdateTime = &now
	})
}

func (r *tagRepo) Delete(ctx context.Context, id int) error {
	return r.remove(ctx, id)
}

func (r *tagRepo) Count(ctx context.Context) int {
	return r.count(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

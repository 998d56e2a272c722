package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/mocks"
	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/render"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/service"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

func generateArticles(n int) []models.Article {
	now := time.Now()
	articles := make([]models.Article, n)
	for i := range articles {
		id := n - i
		articles[i] = models.Article{
			ID:         id,
			Title:      fmt.Sprintf("Article %d", id),
			Content:    strings.Repeat("Lorem ipsum dolor sit amet. ", 40),
			CategoryID: id%5 + 1,
			TagIDs:     []int{id%7 + 1, id%3 + 1},
			Status:     models.StatusPublished,
			CreateTime: now.Add(-time.Duration(id) * time.Minute),
			UpdateTime: now,
		}
	}
	return articles
}

func newServices(b *testing.B, articles []models.Article) *service.Services {
	b.Helper()
	ctx := context.Background()
	store := kv.New(mocks.NewMockBackend(), zerolog.Nop())
	if !store.Set(ctx, kv.KeyArticles, articles) {
		b.Fatal("failed to store articles")
	}
	repos := repository.New(ctx, store, repository.Options{}, zerolog.Nop())
	return service.NewServices(repos, &config.Config{}, zerolog.Nop())
}

// BenchmarkListArticles benchmarks a filtered page over a reloaded collection
func BenchmarkListArticles(b *testing.B) {
	svcs := newServices(b, generateArticles(1000))
	ctx := context.Background()
	q := models.ArticleQuery{CategoryID: 2, TagID: 3, Page: 2, PageSize: 20}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		svcs.Article.ListArticles(ctx, q)
	}

	b.ReportMetric(float64(1000*b.N)/b.Elapsed().Seconds(), "rows/sec")
}

// BenchmarkFilterArticles benchmarks the query façade without storage
func BenchmarkFilterArticles(b *testing.B) {
	articles := generateArticles(10000)
	q := models.ArticleQuery{TagID: 2}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.Paginate(service.FilterArticles(articles, q), 3, 50)
	}
}

// BenchmarkCreateArticle benchmarks a create including the full persist
func BenchmarkCreateArticle(b *testing.B) {
	svcs := newServices(b, generateArticles(500))
	ctx := context.Background()
	title, content := "Benchmark", "# Body"
	in := models.ArticleInput{Title: &title, Content: &content}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := svcs.Article.CreateArticle(ctx, in); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkKVSet benchmarks JSON encoding into the memory backend
func BenchmarkKVSet(b *testing.B) {
	store := kv.New(kv.NewMemory(), zerolog.Nop())
	articles := generateArticles(1000)
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		store.Set(ctx, kv.KeyArticles, articles)
	}
}

// BenchmarkValidation benchmarks comment validation
func BenchmarkValidation(b *testing.B) {
	validator := validation.NewValidator()
	in := &models.CommentInput{
		ArticleID: 1,
		Content:   strings.Repeat("word ", 400),
		Author:    "bench",
		Email:     "bench@example.com",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validator.ValidateComment(in)
	}
}

// BenchmarkRenderMarkdown benchmarks article HTML rendering
func BenchmarkRenderMarkdown(b *testing.B) {
	r := render.New()
	src := strings.Repeat("## Section\n\nSome *text* with `code` and a [link](https://example.com).\n\n", 50)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := r.Markdown(src); err != nil {
			b.Fatal(err)
		}
	}
}

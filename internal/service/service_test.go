package service_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blog-store-api/internal/config"
	"github.com/blog-store-api/internal/kv"
	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/repository"
	"github.com/blog-store-api/internal/service"
	"github.com/blog-store-api/internal/validation"
	"github.com/rs/zerolog"
)

func strPtr(s string) *string { return &s }

type testEnv struct {
	store *kv.Store
	repos *repository.Repositories
	svcs  *service.Services
}

func newTestEnv(t *testing.T, moderation bool, articles []models.Article) *testEnv {
	t.Helper()
	ctx := context.Background()
	store := kv.New(kv.NewMemory(), zerolog.Nop())
	if articles != nil {
		if !store.Set(ctx, kv.KeyArticles, articles) {
			t.Fatal("failed to seed articles")
		}
	}
	repos := repository.New(ctx, store, repository.Options{}, zerolog.Nop())
	cfg := &config.Config{Store: config.StoreConfig{CommentModeration: moderation}}
	return &testEnv{store: store, repos: repos, svcs: service.NewServices(repos, cfg, zerolog.Nop())}
}

func generateArticles(n int) []models.Article {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Article, 0, n)
	// Stored newest first, as the store inserts
	for id := n; id >= 1; id-- {
		a := models.Article{
			ID:         id,
			Title:      fmt.Sprintf("Article %d", id),
			Content:    "body",
			CategoryID: id%3 + 1,
			TagIDs:     []int{id%4 + 1},
			Status:     models.StatusPublished,
			CreateTime: created.Add(time.Duration(id) * time.Hour),
		}
		out = append(out, a)
	}
	return out
}

func TestListArticles_Pagination(t *testing.T) {
	articles := generateArticles(25)
	articles = append(articles,
		models.Article{ID: 26, Title: "Draft one", Status: models.StatusDraft},
		models.Article{ID: 27, Title: "Draft two", Status: models.StatusDraft},
	)
	env := newTestEnv(t, false, articles)
	ctx := context.Background()

	page := env.svcs.Article.ListArticles(ctx, models.ArticleQuery{Page: 3, PageSize: 10})
	if page.Total != 25 {
		t.Errorf("expected total 25, got %d", page.Total)
	}
	if len(page.Data) != 5 {
		t.Fatalf("expected 5 articles on page 3, got %d", len(page.Data))
	}
	if page.Data[0].ID != 21 || page.Data[4].ID != 25 {
		t.Errorf("expected ids 21..25, got %d..%d", page.Data[0].ID, page.Data[4].ID)
	}

	tests := []struct {
		name      string
		query     models.ArticleQuery
		wantTotal int
		wantLen   int
		wantPage  int
		wantSize  int
	}{
		{"defaults", models.ArticleQuery{}, 25, 10, 1, 10},
		{"page below one clamps", models.ArticleQuery{Page: -4, PageSize: 5}, 25, 5, 1, 5},
		{"page size below one clamps", models.ArticleQuery{Page: 2, PageSize: 0}, 25, 10, 2, 10},
		{"out of range page", models.ArticleQuery{Page: 9, PageSize: 10}, 25, 0, 9, 10},
		{"include all statuses", models.ArticleQuery{IncludeAllStatuses: true, PageSize: 100}, 27, 27, 1, 100},
		{"explicit draft", models.ArticleQuery{Status: models.StatusDraft}, 2, 2, 1, 10},
		{"category filter", models.ArticleQuery{CategoryID: 1, PageSize: 100}, 8, 8, 1, 100},
		{"tag filter", models.ArticleQuery{TagID: 2, PageSize: 100}, 7, 7, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := env.svcs.Article.ListArticles(ctx, tt.query)
			if got.Total != tt.wantTotal || len(got.Data) != tt.wantLen || got.Page != tt.wantPage || got.PageSize != tt.wantSize {
				t.Errorf("got total=%d len=%d page=%d size=%d, want %d %d %d %d",
					got.Total, len(got.Data), got.Page, got.PageSize,
					tt.wantTotal, tt.wantLen, tt.wantPage, tt.wantSize)
			}
			if got.Data == nil {
				t.Error("data should never be nil")
			}
		})
	}
}

func TestPaginate_LargeValues(t *testing.T) {
	items := service.FilterArticles(generateArticles(25), models.ArticleQuery{})

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantLen  int
	}{
		{"huge page size on page one", 1, math.MaxInt, 25},
		{"huge page size past first page", 3, 1 << 62, 0},
		{"huge page", math.MaxInt, 10, 0},
		{"both huge", math.MaxInt, math.MaxInt, 0},
		{"last partial page", 5, 6, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := service.Paginate(items, tt.page, tt.pageSize)
			if len(got.Data) != tt.wantLen {
				t.Errorf("Paginate(%d, %d) returned %d items, want %d", tt.page, tt.pageSize, len(got.Data), tt.wantLen)
			}
			if got.Total != 25 {
				t.Errorf("expected total 25, got %d", got.Total)
			}
		})
	}

	if got := service.Paginate(nil, 1, 10); got.Data == nil || len(got.Data) != 0 {
		t.Errorf("empty input should give an empty page, got %v", got.Data)
	}
}

func TestFilterArticles_SortsByID(t *testing.T) {
	in := []models.Article{
		{ID: 3, Status: models.StatusPublished},
		{ID: 1, Status: models.StatusPublished},
		{ID: 2, Status: models.StatusPublished},
	}
	got := service.FilterArticles(in, models.ArticleQuery{})
	for i, a := range got {
		if a.ID != i+1 {
			t.Fatalf("expected ascending ids, got %v", got)
		}
	}
}

func TestGetArticle_RendersHTML(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	view, err := env.svcs.Article.GetArticle(ctx, 1, true)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if !strings.Contains(view.ContentHTML, "<h1>") {
		t.Errorf("expected rendered heading, got %q", view.ContentHTML)
	}
	if view.ViewCount != 1235 {
		t.Errorf("expected view count 1235, got %d", view.ViewCount)
	}

	plain, err := env.svcs.Article.GetArticle(ctx, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if plain.ContentHTML != "" {
		t.Error("html should only be rendered on request")
	}

	if _, err := env.svcs.Article.GetArticle(ctx, 42, false); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateArticle_AuthorAndValidation(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	var fieldErrs validation.Errors
	_, err := env.svcs.Article.CreateArticle(ctx, models.ArticleInput{Title: strPtr("No content")})
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation errors, got %v", err)
	}

	if _, _, err := env.svcs.Auth.Login(ctx, models.Credentials{Username: "123", Password: "123456"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	a, err := env.svcs.Article.CreateArticle(ctx, models.ArticleInput{Title: strPtr("Hello"), Content: strPtr("World")})
	if err != nil {
		t.Fatalf("CreateArticle failed: %v", err)
	}
	if a.Author != "123" {
		t.Errorf("expected author 123, got %q", a.Author)
	}
	if a.ID != 4 {
		t.Errorf("expected id 4, got %d", a.ID)
	}
}

func TestUpdateArticleViews(t *testing.T) {
	env := newTestEnv(t, false, []models.Article{{ID: 1, Status: models.StatusDraft, ViewCount: 2}})

	a, err := env.svcs.Article.UpdateArticleViews(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if a.ViewCount != 3 {
		t.Errorf("expected 3 views, got %d", a.ViewCount)
	}
}

func TestCategoryAndTag_ListSortedByID(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	if _, err := env.svcs.Category.CreateCategory(ctx, models.CategoryInput{Name: strPtr("Go")}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svcs.Category.CreateCategory(ctx, models.CategoryInput{Name: strPtr("Go")}); !errors.Is(err, repository.ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	cats := env.svcs.Category.ListCategories(ctx)
	if len(cats) != 4 || cats[3].Name != "Go" {
		t.Errorf("unexpected categories: %+v", cats)
	}

	if _, err := env.svcs.Tag.CreateTag(ctx, models.TagInput{}); err == nil {
		t.Error("expected validation error for missing name")
	}
	if err := env.svcs.Tag.DeleteTag(ctx, 1); err != nil {
		t.Fatal(err)
	}
	tags := env.svcs.Tag.ListTags(ctx)
	if len(tags) != 3 || tags[0].ID != 2 {
		t.Errorf("unexpected tags: %+v", tags)
	}
}

func TestCreateComment_Moderation(t *testing.T) {
	tests := []struct {
		moderation bool
		wantStatus string
		wantListed int
	}{
		{false, models.CommentApproved, 3},
		{true, models.CommentPending, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("moderation=%v", tt.moderation), func(t *testing.T) {
			env := newTestEnv(t, tt.moderation, nil)
			ctx := context.Background()

			c, err := env.svcs.Comment.CreateComment(ctx, models.CommentInput{
				ArticleID: 1,
				Content:   "<b>Nice</b> post",
				Author:    "amy",
				Email:     "amy@example.com",
			})
			if err != nil {
				t.Fatalf("CreateComment failed: %v", err)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, c.Status)
			}
			if c.Content != "Nice post" {
				t.Errorf("expected markup stripped, got %q", c.Content)
			}
			if got := env.svcs.Comment.ListArticleComments(ctx, 1); len(got) != tt.wantListed {
				t.Errorf("expected %d listed comments, got %d", tt.wantListed, len(got))
			}
		})
	}
}

func TestCreateComment_KeepsPlainTextCharacters(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	c, err := env.svcs.Comment.CreateComment(ctx, models.CommentInput{
		ArticleID: 2,
		Content:   `Tom & Jerry said "5 < 6"`,
		Author:    "O'Brien",
	})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if c.Content != `Tom & Jerry said "5 < 6"` || c.Author != "O'Brien" {
		t.Errorf("text should be stored unescaped, got content=%q author=%q", c.Content, c.Author)
	}

	listed := env.svcs.Comment.ListArticleComments(ctx, 2)
	if last := listed[len(listed)-1]; last.Content != c.Content {
		t.Errorf("stored content differs: %q", last.Content)
	}
}

func TestCreateComment_MarkupOnlyRejected(t *testing.T) {
	env := newTestEnv(t, false, nil)

	_, err := env.svcs.Comment.CreateComment(context.Background(), models.CommentInput{
		ArticleID: 1,
		Content:   "<script>alert(1)</script>",
		Author:    "amy",
	})
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuth_Authorize(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	if env.svcs.Auth.Authorize("") {
		t.Error("empty token must not authorize")
	}
	if _, _, err := env.svcs.Auth.Login(ctx, models.Credentials{Username: "admin", Password: "nope"}); !errors.Is(err, repository.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if env.svcs.Auth.ValidateToken() {
		t.Error("failed login must not validate")
	}

	_, token, err := env.svcs.Auth.Login(ctx, models.Credentials{Username: "admin", Password: "admin"})
	if err != nil {
		t.Fatal(err)
	}
	if !env.svcs.Auth.Authorize(token) {
		t.Error("session token should authorize")
	}
	if env.svcs.Auth.Authorize(token + "x") {
		t.Error("other tokens must not authorize")
	}

	env.svcs.Auth.Logout(ctx)
	if env.svcs.Auth.Authorize(token) {
		t.Error("token should be revoked on logout")
	}
}

func TestExport_Formats(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	t.Run("ndjson articles", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := env.svcs.Export.StreamResource(ctx, rec, models.ResourceArticles, service.FormatNDJSON); err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		var a models.Article
		if err := json.Unmarshal([]byte(lines[0]), &a); err != nil {
			t.Fatalf("invalid ndjson line: %v", err)
		}
		if rec.Header().Get("Content-Type") != "application/x-ndjson" {
			t.Errorf("unexpected content type %q", rec.Header().Get("Content-Type"))
		}
	})

	t.Run("json comments", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := env.svcs.Export.StreamResource(ctx, rec, models.ResourceComments, service.FormatJSON); err != nil {
			t.Fatal(err)
		}
		var comments []models.Comment
		if err := json.Unmarshal(rec.Body.Bytes(), &comments); err != nil {
			t.Fatalf("invalid json array: %v", err)
		}
		if len(comments) != 3 {
			t.Errorf("expected 3 comments, got %d", len(comments))
		}
	})

	t.Run("csv tags", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := env.svcs.Export.StreamResource(ctx, rec, models.ResourceTags, service.FormatCSV); err != nil {
			t.Fatal(err)
		}
		records, err := csv.NewReader(rec.Body).ReadAll()
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 5 || records[0][0] != "id" {
			t.Errorf("unexpected csv: %v", records)
		}
	})

	t.Run("csv articles unsupported", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := env.svcs.Export.StreamResource(ctx, rec, models.ResourceArticles, service.FormatCSV); err == nil {
			t.Error("expected error for csv articles")
		}
	})
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, false, nil)

	stats := env.svcs.Export.Stats(context.Background())
	want := models.Stats{Articles: 3, Categories: 3, Tags: 4, Comments: 3}
	if stats != want {
		t.Errorf("got %+v, want %+v", stats, want)
	}
}

func TestImport_NDJSON(t *testing.T) {
	env := newTestEnv(t, false, nil)
	ctx := context.Background()

	input := strings.Join([]string{
		`{"name":"Databases"}`,
		``,
		`{"name":"Frontend"}`,
		`{"name":`,
		`{"description":"no name"}`,
		`{"name":"Security","description":"auth and crypto"}`,
	}, "\n")

	result, err := env.svcs.Import.Import(ctx, models.ResourceCategories, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.TotalRecords != 5 || result.SuccessfulCount != 2 || result.FailedCount != 3 {
		t.Errorf("unexpected result: %+v", result)
	}

	wantLines := []int{3, 4, 5}
	if len(result.Errors) != len(wantLines) {
		t.Fatalf("expected %d errors, got %+v", len(wantLines), result.Errors)
	}
	for i, line := range wantLines {
		if result.Errors[i].Line != line {
			t.Errorf("error %d: line %d, want %d", i, result.Errors[i].Line, line)
		}
	}
	if result.Errors[1].Field != "json" || result.Errors[2].Field != "name" {
		t.Errorf("unexpected error fields: %+v", result.Errors)
	}

	if n := len(env.svcs.Category.ListCategories(ctx)); n != 5 {
		t.Errorf("expected 5 categories, got %d", n)
	}

	if _, err := env.svcs.Import.Import(ctx, "users", strings.NewReader("")); err == nil {
		t.Error("expected error for unknown resource")
	}
}

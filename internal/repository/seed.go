package repository

import (
	"time"

	"github.com/blog-store-api/internal/models"
)

// Built-in dataset used when storage holds no collection yet. Each call
// returns fresh slices so callers may mutate them.

func seedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedArticles() []models.Article {
	return []models.Article{
		{
			ID:    1,
			Title: "Getting Started with the Vue 3 Composition API",
			Content: "# Getting Started with the Vue 3 Composition API\n\n" +
				"Vue 3 introduces the Composition API, a function-based way to organize component logic.\n\n" +
				"## Basic usage\n\n" +
				"```js\nimport { ref, computed } from 'vue'\n\nexport default {\n  setup() {\n" +
				"    const count = ref(0)\n    const doubleCount = computed(() => count.value * 2)\n" +
				"    return { count, doubleCount }\n  }\n}\n```",
			Summary:    "Vue 3 introduces the Composition API, a function-based way to organize component logic.",
			CategoryID: 1,
			TagIDs:     []int{1, 2},
			Author:     "admin",
			ViewCount:  1234,
			Status:     models.StatusPublished,
			CreateTime: seedTime("2023-01-15T08:30:00Z"),
			UpdateTime: seedTime("2023-01-15T08:30:00Z"),
		},
		{
			ID:    2,
			Title: "A Complete Guide to Pinia State Management",
			Content: "# A Complete Guide to Pinia State Management\n\n" +
				"Pinia is the officially recommended state library for Vue, with a smaller API than Vuex.\n\n" +
				"- Simpler API\n- Better TypeScript support\n- Modular stores\n- No mutations",
			Summary:    "Pinia is the officially recommended state library for Vue, with a smaller API than Vuex.",
			CategoryID: 1,
			TagIDs:     []int{1, 3},
			Author:     "admin",
			ViewCount:  876,
			Status:     models.StatusPublished,
			CreateTime: seedTime("2023-01-10T10:20:00Z"),
			UpdateTime: seedTime("2023-01-10T10:20:00Z"),
		},
		{
			ID:    3,
			Title: "Using the Element Plus Component Library",
			Content: "# Using the Element Plus Component Library\n\n" +
				"Element Plus is a Vue 3 desktop component library.\n\n" +
				"## Install\n\n```bash\nnpm install element-plus\n```",
			Summary:    "Element Plus is a Vue 3 desktop component library.",
			CategoryID: 2,
			TagIDs:     []int{2, 4},
			Author:     "admin",
			ViewCount:  543,
			Status:     models.StatusPublished,
			CreateTime: seedTime("2023-01-05T14:10:00Z"),
			UpdateTime: seedTime("2023-01-05T14:10:00Z"),
		},
	}
}

func seedCategories() []models.Category {
	created := seedTime("2023-01-01T00:00:00Z")
	return []models.Category{
		{ID: 1, Name: "Frontend", Description: "HTML, CSS, JavaScript and frontend frameworks.", CreateTime: created},
		{ID: 2, Name: "UI/UX", Description: "Interface design principles, tools and interaction design.", CreateTime: created},
		{ID: 3, Name: "Backend", Description: "Server-side languages, databases, API design and architecture.", CreateTime: created},
	}
}

func seedTags() []models.Tag {
	created := seedTime("2023-01-01T00:00:00Z")
	return []models.Tag{
		{ID: 1, Name: "Vue", CreateTime: created},
		{ID: 2, Name: "JavaScript", CreateTime: created},
		{ID: 3, Name: "State Management", CreateTime: created},
		{ID: 4, Name: "UI Components", CreateTime: created},
	}
}

func seedComments() []models.Comment {
	return []models.Comment{
		{ID: 1, ArticleID: 1, Content: "Great write-up, this helped me a lot!", Author: "user1", Email: "user1@example.com", Status: models.CommentApproved, CreateTime: seedTime("2023-01-16T09:45:00Z")},
		{ID: 2, ArticleID: 1, Content: "Thanks for sharing, learned a lot.", Author: "user2", Email: "user2@example.com", Status: models.CommentApproved, CreateTime: seedTime("2023-01-17T11:20:00Z")},
		{ID: 3, ArticleID: 2, Content: "Pinia really is simpler than Vuex!", Author: "user3", Email: "user3@example.com", Status: models.CommentApproved, CreateTime: seedTime("2023-01-12T15:30:00Z")},
	}
}

// SeedAccounts are the built-in accounts available without registration
func SeedAccounts() []models.Account {
	return []models.Account{
		{ID: 1, Username: "admin", Password: "admin", Email: "admin@example.com", Role: models.RoleAdmin},
		{ID: 2, Username: "123", Password: "123456", Email: "123@example.com", Role: models.RoleUser},
	}
}

package models

import (
	"time"
)

// Article statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[string]bool{
	StatusDraft:     true,
	StatusPublished: true,
}

// Article represents a blog article. JSON field names follow the persisted
// collection format under the blog_articles key.
type Article struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Summary    string    `json:"summary"`
	CategoryID int       `json:"categoryId"`
	TagIDs     []int     `json:"tagIds"`
	Author     string    `json:"author"`
	ViewCount  int       `json:"viewCount"`
	Status     string    `json:"status"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

// HasTag reports whether the article references the given tag id
func (a *Article) HasTag(tagID int) bool {
	for _, id := range a.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}

// ArticleInput carries the fields of an article create or update request.
// Nil fields are left untouched on update.
type ArticleInput struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	Summary    *string `json:"summary"`
	CategoryID *int    `json:"categoryId"`
	TagIDs     []int   `json:"tagIds"`
	Status     *string `json:"status"`
}

// ArticleQuery holds list criteria for articles
type ArticleQuery struct {
	CategoryID         int
	TagID              int
	Status             string
	IncludeAllStatuses bool
	Page               int
	PageSize           int
}

// ArticlePage is one page of a filtered article listing
type ArticlePage struct {
	Data     []Article `json:"data"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

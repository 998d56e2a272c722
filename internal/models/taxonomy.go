package models

import (
	"time"
)

// Category groups articles; names are unique within categories
type Category struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreateTime  time.Time  `json:"createTime"`
	UpdateTime  *time.Time `json:"updateTime,omitempty"`
}

// CategoryInput carries category create/update fields
type CategoryInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Tag labels articles; names are unique within tags
type Tag struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	CreateTime time.Time  `json:"createTime"`
	UpdateTime *time.Time `json:"updateTime,omitempty"`
}

// TagInput carries tag create/update fields
type TagInput struct {
	Name *string `json:"name"`
}

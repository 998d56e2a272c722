package models

import (
	"time"
)

// Comment statuses
const (
	CommentPending  = "pending"
	CommentApproved = "approved"
)

// Comment represents a reader comment on an article
type Comment struct {
	ID         int       `json:"id"`
	ArticleID  int       `json:"articleId"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Email      string    `json:"email"`
	Status     string    `json:"status"`
	CreateTime time.Time `json:"createTime"`
}

// CommentInput is the payload for creating a comment
type CommentInput struct {
	ArticleID int    `json:"articleId"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Email     string `json:"email"`
}

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500

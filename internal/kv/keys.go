package kv

// Storage keys, one per persisted collection or scalar
const (
	KeyArticles        = "blog_articles"
	KeyCategories      = "blog_categories"
	KeyTags            = "blog_tags"
	KeyComments        = "blog_comments"
	KeyUser            = "blog_user"
	KeyToken           = "blog_token"
	KeyRegisteredUsers = "registered_users"
)

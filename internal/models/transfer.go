package models

// ArticleView is an article as returned by the read endpoints. ContentHTML
// is only filled when rendered HTML was requested.
type ArticleView struct {
	Article
	ContentHTML string `json:"contentHtml,omitempty"`
}

// Stats holds entity counts for the stats endpoint
type Stats struct {
	Articles   int `json:"articles"`
	Categories int `json:"categories"`
	Tags       int `json:"tags"`
	Comments   int `json:"comments"`
}

// Import resources
const (
	ResourceArticles   = "articles"
	ResourceCategories = "categories"
	ResourceTags       = "tags"
	ResourceComments   = "comments"
)

// ValidResources defines importable and exportable collections
var ValidResources = map[string]bool{
	ResourceArticles:   true,
	ResourceCategories: true,
	ResourceTags:       true,
	ResourceComments:   true,
}

// ImportError represents a rejected line of an import
type ImportError struct {
	Line    int         `json:"line"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ImportResult summarizes a finished import
type ImportResult struct {
	ImportID        string        `json:"importId,omitempty"`
	Resource        string        `json:"resource"`
	TotalRecords    int           `json:"total"`
	SuccessfulCount int           `json:"created"`
	FailedCount     int           `json:"failed"`
	DurationMs      int64         `json:"durationMs"`
	Errors          []ImportError `json:"errors"`
}

package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blog-store-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Errors is a non-empty list of field errors returned to the HTTP layer
type Errors []ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns nil for an empty list so callers can return it directly
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Validator checks request payloads before they reach the stores
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateArticle validates an article payload. On update (partial) only
// supplied fields are checked.
func (v *Validator) ValidateArticle(in *models.ArticleInput, partial bool) Errors {
	var errors Errors

	if in.Title == nil {
		if !partial {
			errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
		}
	} else if strings.TrimSpace(*in.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title must not be empty"})
	}

	if in.Content == nil {
		if !partial {
			errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
		}
	} else if strings.TrimSpace(*in.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content must not be empty"})
	}

	if in.Status != nil && !models.ValidStatuses[*in.Status] {
		errors = append(errors, ValidationError{
			Field:   "status",
			Message: "invalid status, must be one of: draft, published",
			Value:   *in.Status,
		})
	}

	if in.CategoryID != nil && *in.CategoryID < 0 {
		errors = append(errors, ValidationError{Field: "categoryId", Message: "categoryId must not be negative", Value: *in.CategoryID})
	}
	for _, id := range in.TagIDs {
		if id <= 0 {
			errors = append(errors, ValidationError{Field: "tagIds", Message: "tag ids must be positive", Value: id})
			break
		}
	}

	return errors
}

// ValidateCategory validates a category payload
func (v *Validator) ValidateCategory(in *models.CategoryInput, partial bool) Errors {
	return validateName(in.Name, partial)
}

// ValidateTag validates a tag payload
func (v *Validator) ValidateTag(in *models.TagInput, partial bool) Errors {
	return validateName(in.Name, partial)
}

func validateName(name *string, partial bool) Errors {
	var errors Errors
	if name == nil {
		if !partial {
			errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
		}
	} else if strings.TrimSpace(*name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name must not be empty"})
	}
	return errors
}

// ValidateComment validates a new comment
func (v *Validator) ValidateComment(in *models.CommentInput) Errors {
	var errors Errors

	if in.ArticleID <= 0 {
		errors = append(errors, ValidationError{Field: "articleId", Message: "articleId is required"})
	}

	if strings.TrimSpace(in.Author) == "" {
		errors = append(errors, ValidationError{Field: "author", Message: "author is required"})
	}

	if in.Email != "" && !emailRegex.MatchString(in.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}

	if strings.TrimSpace(in.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	} else {
		wordCount := len(strings.Fields(in.Content))
		if wordCount > models.MaxCommentWords {
			errors = append(errors, ValidationError{
				Field:   "content",
				Message: fmt.Sprintf("content exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
			})
		}
	}

	return errors
}

// ValidateCredentials validates login and register payloads
func (v *Validator) ValidateCredentials(in *models.Credentials) Errors {
	var errors Errors
	if strings.TrimSpace(in.Username) == "" {
		errors = append(errors, ValidationError{Field: "username", Message: "username is required"})
	}
	if in.Password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}
	if in.Email != "" && !emailRegex.MatchString(in.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: in.Email})
	}
	return errors
}

// ValidatePasswordReset validates a reset-password payload
func (v *Validator) ValidatePasswordReset(in *models.PasswordReset) Errors {
	var errors Errors
	if strings.TrimSpace(in.Username) == "" {
		errors = append(errors, ValidationError{Field: "username", Message: "username is required"})
	}
	if in.NewPassword == "" {
		errors = append(errors, ValidationError{Field: "newPassword", Message: "newPassword is required"})
	}
	return errors
}

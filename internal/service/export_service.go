package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/repository"
	"github.com/rs/zerolog"
)

// Export formats
const (
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
	FormatCSV    = "csv"
)

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamResource writes a whole collection to w. CSV is only offered for
// categories and tags.
func (s *exportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	s.log.Info().Str("resource", resource).Str("format", format).Msg("Starting export")

	var (
		count int
		err   error
	)
	switch resource {
	case models.ResourceArticles:
		count, err = streamFormat(w, resource, format, s.repos.Article.FetchAll(ctx), nil)
	case models.ResourceComments:
		count, err = streamFormat(w, resource, format, s.repos.Comment.FetchAll(ctx), nil)
	case models.ResourceCategories:
		count, err = streamFormat(w, resource, format, s.repos.Category.FetchAll(ctx), categoryCSV)
	case models.ResourceTags:
		count, err = streamFormat(w, resource, format, s.repos.Tag.FetchAll(ctx), tagCSV)
	default:
		return fmt.Errorf("unknown resource: %s", resource)
	}
	if err != nil {
		return err
	}

	s.log.Info().Str("resource", resource).Int("count", count).Msg("Export completed")
	return nil
}

// csvCodec renders one collection as CSV rows
type csvCodec[T any] struct {
	header []string
	row    func(*T) []string
}

var categoryCSV = &csvCodec[models.Category]{
	header: []string{"id", "name", "description", "create_time", "update_time"},
	row: func(c *models.Category) []string {
		return []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Description,
			c.CreateTime.Format(time.RFC3339),
			formatOptionalTime(c.UpdateTime),
		}
	},
}

var tagCSV = &csvCodec[models.Tag]{
	header: []string{"id", "name", "create_time", "update_time"},
	row: func(t *models.Tag) []string {
		return []string{
			strconv.Itoa(t.ID),
			t.Name,
			t.CreateTime.Format(time.RFC3339),
			formatOptionalTime(t.UpdateTime),
		}
	},
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func streamFormat[T any](w http.ResponseWriter, resource, format string, items []T, codec *csvCodec[T]) (int, error) {
	switch format {
	case FormatNDJSON:
		return streamNDJSON(w, resource, items)
	case FormatJSON:
		return streamJSON(w, resource, items)
	case FormatCSV:
		if codec == nil {
			return 0, fmt.Errorf("csv format not supported for %s", resource)
		}
		return streamCSV(w, resource, items, codec)
	default:
		return 0, fmt.Errorf("unsupported format: %s", format)
	}
}

func streamNDJSON[T any](w http.ResponseWriter, resource string, items []T) (int, error) {
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Content-Disposition", "attachment; filename="+resource+".ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0
	for i := range items {
		data, err := json.Marshal(items[i])
		if err != nil {
			return count, err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
	}
	return count, nil
}

func streamJSON[T any](w http.ResponseWriter, resource string, items []T) (int, error) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+resource+".json")

	w.Write([]byte("["))
	for i := range items {
		if i > 0 {
			w.Write([]byte(","))
		}
		data, err := json.Marshal(items[i])
		if err != nil {
			w.Write([]byte("]"))
			return i, err
		}
		w.Write(data)
	}
	w.Write([]byte("]"))
	return len(items), nil
}

func streamCSV[T any](w http.ResponseWriter, resource string, items []T, codec *csvCodec[T]) (int, error) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+resource+".csv")

	writer := csv.NewWriter(w)
	if err := writer.Write(codec.header); err != nil {
		return 0, err
	}
	for i := range items {
		if err := writer.Write(codec.row(&items[i])); err != nil {
			return i, err
		}
	}
	writer.Flush()
	return len(items), writer.Error()
}

// GetCount returns count for a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case models.ResourceArticles:
		return s.repos.Article.Count(ctx), nil
	case models.ResourceCategories:
		return s.repos.Category.Count(ctx), nil
	case models.ResourceTags:
		return s.repos.Tag.Count(ctx), nil
	case models.ResourceComments:
		return s.repos.Comment.Count(ctx), nil
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}

// Stats counts every collection
func (s *exportService) Stats(ctx context.Context) models.Stats {
	return models.Stats{
		Articles:   s.repos.Article.Count(ctx),
		Categories: s.repos.Category.Count(ctx),
		Tags:       s.repos.Tag.Count(ctx),
		Comments:   s.repos.Comment.Count(ctx),
	}
}

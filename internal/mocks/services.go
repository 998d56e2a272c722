package mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/blog-store-api/internal/models"
	"github.com/blog-store-api/internal/service"
)

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mu sync.Mutex

	Counts      map[string]int
	StreamCalls []string
	StreamBody  string
	StreamError error
}

// Verify interface compliance
var _ service.ExportService = (*MockExportService)(nil)

func NewMockExportService() *MockExportService {
	return &MockExportService{Counts: make(map[string]int)}
}

func (m *MockExportService) StreamResource(ctx context.Context, w http.ResponseWriter, resource, format string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StreamCalls = append(m.StreamCalls, resource+"/"+format)
	if m.StreamError != nil {
		return m.StreamError
	}
	_, err := io.WriteString(w, m.StreamBody)
	return err
}

func (m *MockExportService) GetCount(ctx context.Context, resource string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !models.ValidResources[resource] {
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
	return m.Counts[resource], nil
}

func (m *MockExportService) Stats(ctx context.Context) models.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Stats{
		Articles:   m.Counts[models.ResourceArticles],
		Categories: m.Counts[models.ResourceCategories],
		Tags:       m.Counts[models.ResourceTags],
		Comments:   m.Counts[models.ResourceComments],
	}
}

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	mu sync.Mutex

	Result *models.ImportResult
	Error  error
	Bodies map[string]string
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{Bodies: make(map[string]string)}
}

func (m *MockImportService) Import(ctx context.Context, resource string, r io.Reader) (*models.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Bodies[resource] = string(data)
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &models.ImportResult{Resource: resource}, nil
}

// MockHealthService reports a fixed health result
type MockHealthService struct {
	Err error
}

// Verify interface compliance
var _ service.HealthService = (*MockHealthService)(nil)

func (m *MockHealthService) Ping(ctx context.Context) error {
	return m.Err
}

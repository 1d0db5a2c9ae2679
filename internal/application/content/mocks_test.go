package content

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/content"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of content.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Item), args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*content.Item, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Item), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter content.Filter) ([]content.Item, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.Item), args.Error(1)
}

func (m *MockRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, item *content.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockRepository) SaveAsset(ctx context.Context, asset *content.Asset) error {
	return m.Called(ctx, asset).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockObjectStore is a mock implementation of content.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	return m.Called(ctx, key, body, contentType).Error(0)
}

func (m *MockObjectStore) PresignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// fakeRenderer records the HTML it was asked to render
type fakeRenderer struct {
	html string
}

func (r *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	r.html = html
	return []byte("%PDF-1.4"), nil
}

package catalog

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"atendbackend/models"
)

// MockCatalogService is a mock implementation of the CatalogService interface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) FindProductByName(name string) mo.Option[*models.Product] {
	args := m.Called(name)
	return args.Get(0).(mo.Option[*models.Product])
}

func (m *MockCatalogService) GetOrderByID(id string) mo.Option[*models.Order] {
	args := m.Called(id)
	return args.Get(0).(mo.Option[*models.Order])
}

func (m *MockCatalogService) GetLatestOrder() mo.Option[*models.Order] {
	args := m.Called()
	return args.Get(0).(mo.Option[*models.Order])
}

func (m *MockCatalogService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogService) Counts() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

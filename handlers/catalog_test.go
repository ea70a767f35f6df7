package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"atendbackend/services/catalog"
)

func TestHandleRefresh(t *testing.T) {
	t.Run("Successful refresh returns counts", func(t *testing.T) {
		mockCatalog := &catalog.MockCatalogService{}
		mockCatalog.On("Refresh", mock.Anything).Return(nil)
		mockCatalog.On("Counts").Return(3, 7)
		handler := NewCatalogHandler(mockCatalog)

		req := httptest.NewRequest("POST", "/catalog/refresh", nil)
		rec := httptest.NewRecorder()

		handler.HandleRefresh(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var counts map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
		assert.Equal(t, 3, counts["products"])
		assert.Equal(t, 7, counts["orders"])
		mockCatalog.AssertExpectations(t)
	})

	t.Run("Refresh failure returns 500", func(t *testing.T) {
		mockCatalog := &catalog.MockCatalogService{}
		mockCatalog.On("Refresh", mock.Anything).Return(errors.New("database down"))
		handler := NewCatalogHandler(mockCatalog)

		req := httptest.NewRequest("POST", "/catalog/refresh", nil)
		rec := httptest.NewRecorder()

		handler.HandleRefresh(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockCatalog.AssertNotCalled(t, "Counts")
	})
}

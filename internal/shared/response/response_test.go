package response_test

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"dayflow/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	t.Run("middle page", func(t *testing.T) {
		got, meta := response.Page(items, 2, 2)
		assert.Equal(t, []int{3, 4}, got)
		assert.Equal(t, int64(5), meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("short last page", func(t *testing.T) {
		got, _ := response.Page(items, 3, 2)
		assert.Equal(t, []int{5}, got)
	})

	t.Run("past the end", func(t *testing.T) {
		got, meta := response.Page(items, 9, 2)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, 9, meta.Page)
	})

	t.Run("empty input", func(t *testing.T) {
		got, meta := response.Page([]string(nil), 1, 10)
		assert.NotNil(t, got)
		assert.Zero(t, meta.TotalPages)
	})
}

func TestPage_HugeValues(t *testing.T) {
	items := []int{1, 2, 3}

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []int
	}{
		{"page near overflow", 1<<62 + 1, 3, []int{}},
		{"max page", math.MaxInt, 2, []int{}},
		{"max page size", 1, math.MaxInt, []int{1, 2, 3}},
		{"max page size second page", 2, math.MaxInt, []int{}},
		{"both max", math.MaxInt, math.MaxInt, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []int
			var meta response.PaginationMeta
			assert.NotPanics(t, func() {
				got, meta = response.Page(items, tt.page, tt.pageSize)
			})
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int64(3), meta.Total)
			assert.GreaterOrEqual(t, meta.TotalPages, 1)
		})
	}
}

func TestError_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	response.Error(c, http.StatusNotFound, "NOT_FOUND", "profile not found", nil)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["ok"])
	assert.NotContains(t, body, "data")
	assert.Equal(t, map[string]any{"code": "NOT_FOUND", "message": "profile not found"}, body["error"])
}

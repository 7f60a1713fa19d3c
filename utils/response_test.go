package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int64
		totalPages int
	}{
		{"empty listing", 1, 20, 0, 0},
		{"exact multiple", 1, 20, 40, 2},
		{"partial last page", 2, 20, 41, 3},
		{"single row", 1, 50, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := newPageMeta(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.page, meta.Page)
			assert.Equal(t, tt.perPage, meta.PerPage)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
		})
	}
}

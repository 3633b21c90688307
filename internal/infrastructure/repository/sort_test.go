package repository

import "testing"

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		allowed   map[string]struct{}
		want      string
	}{
		{"default sort", "", "", saleSortColumns, "created_at DESC"},
		{"known column", "total", "", saleSortColumns, "total DESC"},
		{"ascending", "total", "ASC", saleSortColumns, "total ASC"},
		{"lowercase ascending", "name", "asc", productSortColumns, "name ASC"},
		{"unknown column falls back", "password_hash", "ASC", saleSortColumns, "created_at ASC"},
		{"injection attempt falls back", "created_at; DROP TABLE sales--", "", saleSortColumns, "created_at DESC"},
		{"injection in direction normalized", "total", "ASC; DROP TABLE sales--", saleSortColumns, "total DESC"},
		{"column from the wrong table rejected", "sku", "", saleSortColumns, "created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := orderClause(tt.sortBy, tt.sortOrder, tt.allowed); got != tt.want {
				t.Errorf("orderClause(%q, %q) = %q, want %q", tt.sortBy, tt.sortOrder, got, tt.want)
			}
		})
	}
}

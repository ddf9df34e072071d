package db

import (
	"testing"
	"time"
)

func TestListFilterBuild(t *testing.T) {
	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   ListFilter
		wantSQL  string
		wantArgs int
	}{
		{
			name:    "empty",
			wantSQL: "SELECT * FROM t ORDER BY created_at DESC",
		},
		{
			name:     "status and search",
			filter:   ListFilter{Status: "new", Query: " Smith "},
			wantSQL:  "SELECT * FROM t WHERE status = ? AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?) ORDER BY created_at DESC",
			wantArgs: 3,
		},
		{
			name:     "since with paging",
			filter:   ListFilter{Since: &since, Limit: 10, Offset: 20},
			wantSQL:  "SELECT * FROM t WHERE created_at >= ? ORDER BY created_at DESC LIMIT 10 OFFSET 20",
			wantArgs: 1,
		},
		{
			name:    "offset only",
			filter:  ListFilter{Offset: 5},
			wantSQL: "SELECT * FROM t ORDER BY created_at DESC LIMIT -1 OFFSET 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, args := tt.filter.Build("SELECT * FROM t", "name", "email")
			if got != tt.wantSQL {
				t.Errorf("sql = %q\nwant  %q", got, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("args = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestListFilterSearchLowercases(t *testing.T) {
	_, args := ListFilter{Query: "SMITH"}.Build("SELECT 1", "name")
	if len(args) != 1 || args[0] != "%smith%" {
		t.Errorf("args = %v", args)
	}
}

package db

import (
	"fmt"
	"strings"
	"time"
)

// ListFilter holds the admin list filters shared by every collection.
type ListFilter struct {
	Status string
	Query  string
	Since  *time.Time
	Until  *time.Time
	Limit  int
	Offset int
}

// Build appends the filter to a SELECT statement. searchColumns are matched
// case-insensitively against Query. Results are ordered newest first.
func (f ListFilter) Build(query string, searchColumns ...string) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if f.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, f.Status)
	}
	if q := strings.TrimSpace(f.Query); q != "" && len(searchColumns) > 0 {
		like := "%" + strings.ToLower(q) + "%"
		var ors []string
		for _, col := range searchColumns {
			ors = append(ors, "LOWER("+col+") LIKE ?")
			args = append(args, like)
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}
	if f.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, f.Since.UTC())
	}
	if f.Until != nil {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, f.Until.UTC())
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += limitOffset(f.Limit, f.Offset)
	return query, args
}

func limitOffset(limit, offset int) string {
	var s string
	if limit > 0 {
		s = fmt.Sprintf(" LIMIT %d", limit)
	} else if offset > 0 {
		s = " LIMIT -1"
	}
	if offset > 0 {
		s += fmt.Sprintf(" OFFSET %d", offset)
	}
	return s
}

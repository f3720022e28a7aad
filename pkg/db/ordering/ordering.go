package ordering

import (
	"strings"

	"gorm.io/gorm"
)

// Apply translates API-level orderBy terms ("name", "-createdAt") into ORDER
// BY clauses. allowed maps the API field name to its SQL expression; unknown
// terms are ignored. fallback is applied when nothing valid was requested.
func Apply(stmt *gorm.DB, orderBy []string, allowed map[string]string, fallback string) *gorm.DB {
	applied := false
	for _, term := range orderBy {
		term = strings.TrimSpace(term)
		desc := strings.HasPrefix(term, "-")
		field := strings.TrimPrefix(term, "-")
		expr, ok := allowed[field]
		if !ok || expr == "" {
			continue
		}
		if desc {
			stmt = stmt.Order(expr + " DESC")
		} else {
			stmt = stmt.Order(expr + " ASC")
		}
		applied = true
	}
	if !applied && fallback != "" {
		stmt = stmt.Order(fallback)
	}
	return stmt
}

// Requested reports whether orderBy names field, and whether the first such
// term is descending. Used for derived orderings that need a dedicated
// aggregate expression.
func Requested(orderBy []string, field string) (bool, bool) {
	for _, term := range orderBy {
		term = strings.TrimSpace(term)
		desc := strings.HasPrefix(term, "-")
		if strings.TrimPrefix(term, "-") == field {
			return true, desc
		}
	}
	return false, false
}

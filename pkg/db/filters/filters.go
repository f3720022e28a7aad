package filters

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// TimeRanges carries the created/updated comparison filters every catalog
// listing accepts.
type TimeRanges struct {
	CreatedAtGT  *time.Time
	CreatedAtGTE *time.Time
	CreatedAtLT  *time.Time
	CreatedAtLTE *time.Time
	UpdatedAtGT  *time.Time
	UpdatedAtGTE *time.Time
	UpdatedAtLT  *time.Time
	UpdatedAtLTE *time.Time
}

// Apply adds the range predicates against table's timestamp columns.
func (r TimeRanges) Apply(stmt *gorm.DB, table string) *gorm.DB {
	if r.CreatedAtGT != nil {
		stmt = stmt.Where(table+".created_at > ?", *r.CreatedAtGT)
	}
	if r.CreatedAtGTE != nil {
		stmt = stmt.Where(table+".created_at >= ?", *r.CreatedAtGTE)
	}
	if r.CreatedAtLT != nil {
		stmt = stmt.Where(table+".created_at < ?", *r.CreatedAtLT)
	}
	if r.CreatedAtLTE != nil {
		stmt = stmt.Where(table+".created_at <= ?", *r.CreatedAtLTE)
	}
	if r.UpdatedAtGT != nil {
		stmt = stmt.Where(table+".updated_at > ?", *r.UpdatedAtGT)
	}
	if r.UpdatedAtGTE != nil {
		stmt = stmt.Where(table+".updated_at >= ?", *r.UpdatedAtGTE)
	}
	if r.UpdatedAtLT != nil {
		stmt = stmt.Where(table+".updated_at < ?", *r.UpdatedAtLT)
	}
	if r.UpdatedAtLTE != nil {
		stmt = stmt.Where(table+".updated_at <= ?", *r.UpdatedAtLTE)
	}
	return stmt
}

// Contains builds the case-insensitive LIKE pattern for substring filters.
func Contains(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

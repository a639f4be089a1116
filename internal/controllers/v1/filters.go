package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// textFilter filters a text column by the value of a query parameter.
type textFilter struct {
	field  string // name of the field in the query filter
	column string // database column
	value  string
}

// textFilters adds the conditions for text columns to the query.
//
// Values match substrings. A parameter that is set without a value
// matches empty columns. The search term matches any of the columns.
func textFilters(db, query *gorm.DB, setFields []string, search string, filters ...textFilter) *gorm.DB {
	for _, f := range filters {
		if f.value != "" {
			query = query.Where(fmt.Sprintf("%s LIKE ?", f.column), fmt.Sprintf("%%%s%%", f.value))
		} else if f.field != "" && slices.Contains(setFields, f.field) {
			query = query.Where(fmt.Sprintf("%s = ''", f.column))
		}
	}

	if search == "" || len(filters) == 0 {
		return query
	}

	condition := db.Where(fmt.Sprintf("%s LIKE ?", filters[0].column), fmt.Sprintf("%%%s%%", search))
	for _, f := range filters[1:] {
		condition = condition.Or(fmt.Sprintf("%s LIKE ?", f.column), fmt.Sprintf("%%%s%%", search))
	}

	return query.Where(condition)
}

// queryLimit returns the limit for list queries, 50 unless set.
func queryLimit(setFields []string, value int) int {
	if slices.Contains(setFields, "Limit") {
		return value
	}
	return 50
}

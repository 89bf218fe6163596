package search

import (
	"gorm.io/gorm"
)

// Filter renders joins, filters and the search term onto db.
func (q Query) Filter(db *gorm.DB) *gorm.DB {
	for _, j := range q.Joins {
		db = db.Joins(j)
	}
	for _, f := range q.Filters {
		db = db.Where(f.Expr, f.Value)
	}
	if q.Term != "" && len(q.Columns) > 0 {
		args := make([]interface{}, len(q.Columns))
		for i := range args {
			args[i] = q.Term
		}
		db = db.Where(orClause(q.Columns), args...)
	}
	return db
}

// Apply renders the full query: Filter plus projection, order and page window.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	db = q.Filter(db)
	if q.Distinct && q.Table != "" {
		db = db.Select("DISTINCT " + q.Table + ".*")
	}
	for _, o := range q.Orders {
		if o.Desc {
			db = db.Order(o.Column + " DESC")
		} else {
			db = db.Order(o.Column)
		}
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	return db
}

// Count returns the number of rows matching the filters, ignoring the page window.
func (q Query) Count(db *gorm.DB) (int64, error) {
	var total int64
	db = q.Filter(db)
	if q.Distinct && q.Table != "" {
		db = db.Distinct(q.Table + ".id")
	}
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

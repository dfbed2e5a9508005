package pagination

import "gorm.io/gorm"

// Window bounds a list query. Zero values mean "unset": no cap on the
// result count and no rows skipped.
type Window struct {
	Offset int
	Limit  int
}

// Resolve normalizes raw offset/limit input into a Window. Shape checks
// (non-numeric, negative) are the caller's job; anything non-positive is
// treated as unset here.
func Resolve(offset, limit int) Window {
	w := Window{}
	if offset > 0 {
		w.Offset = offset
	}
	if limit > 0 {
		w.Limit = limit
	}
	return w
}

// Scope applies the window to a gorm query. Unset halves leave the query
// untouched so a bare Window returns every row.
func (w Window) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if w.Offset > 0 {
			db = db.Offset(w.Offset)
		}
		if w.Limit > 0 {
			db = db.Limit(w.Limit)
		}
		return db
	}
}

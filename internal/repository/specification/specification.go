package specification

import "gorm.io/gorm"

// Specification narrows a query. Repositories chain each one onto the
// statement they build, so specs compose freely.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Dao bundles every table accessor behind one handle, the way the service
// layer consumes it. Mutating progression paths receive an explicit *gorm.DB
// so they can run inside a caller-owned transaction.
type Dao struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Dao {
	return &Dao{DB: db}
}

// Transaction runs fn inside a single database transaction.
func (d *Dao) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

func (d *Dao) orDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return d.DB
}

// locked adds a row lock on dialects that support SELECT ... FOR UPDATE.
// SQLite serializes writers on its own, so the clause is skipped there.
func locked(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

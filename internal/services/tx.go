package services

import (
	"context"

	"gorm.io/gorm"
)

// inTx runs fn inside tx when the caller already holds one, otherwise in a
// new transaction on db.
func inTx(ctx context.Context, db, tx *gorm.DB, fn func(txx *gorm.DB) error) error {
	if tx != nil {
		return fn(tx)
	}
	return db.WithContext(ctx).Transaction(fn)
}

package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager scopes an intent submission and its decision-log append to one
// database transaction. The scheduler relies on this so a conflict rollback
// also discards the log row written inside the same unit.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}

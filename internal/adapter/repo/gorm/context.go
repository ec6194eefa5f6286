package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// Transactions travel through the context: RunInTx stashes the *gorm.DB
// transaction handle, and every repo method unwraps it before touching the
// database, falling back to its own connection outside a transaction.
type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return base
}

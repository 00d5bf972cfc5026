package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey txKeyType

// TxManager runs a function inside a single database transaction.
// Repository calls made with the context it passes to fn share that
// transaction, so a failure anywhere rolls back every write.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given connection
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// InTransaction executes fn within one transaction, committing on nil
// and rolling back on error
func (m *TxManager) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// dbFrom returns the transaction bound to ctx, or the fallback connection
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

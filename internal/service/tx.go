package service

import (
	"context"

	"gorm.io/gorm"
)

// TxRunner is the atomic transaction boundary every multi-record mutation
// runs inside: all writes issued by fn commit together or not at all.
// Production uses GORM transactions; unit tests substitute a snapshot-based
// fake so rollbacks are observable without a database.
type TxRunner interface {
	RunAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxRunner struct{ db *gorm.DB }

// NewTxRunner wraps db in a TxRunner backed by database transactions.
func NewTxRunner(db *gorm.DB) TxRunner { return &gormTxRunner{db: db} }

func (r *gormTxRunner) RunAtomic(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

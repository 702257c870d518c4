package graphql

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const ctxKeyDB contextKey = "db"

// WithDB attaches the ledger database so _extension resolvers can reach it.
func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, ctxKeyDB, db)
}

// DBFromContext returns the database attached by WithDB, or nil.
func DBFromContext(ctx context.Context) *gorm.DB {
	db, _ := ctx.Value(ctxKeyDB).(*gorm.DB)
	return db
}

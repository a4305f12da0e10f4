// Package db holds the SQL for the users table behind a small typed Queries
// API. Queries runs against either the pool or a transaction.
package db

import "github.com/ghuser/webapp/pkg/database"

func New(db database.DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db database.DBTX
}

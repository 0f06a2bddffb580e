package repositories

import (
	"context"
)

// UnitOfWork runs a function inside a single transaction scope
type UnitOfWork interface {
	// Do executes fn within one transaction. Any error rolls back every
	// write made through the transaction-aware repositories.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

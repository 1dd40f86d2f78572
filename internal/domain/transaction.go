package domain

import "context"

// TransactionManager runs fn inside a database transaction. Repositories
// called with the context passed to fn join the transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

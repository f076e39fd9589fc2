package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager runs a function atomically. The save path depends on
// this to make "read latest version, insert next" behave as if serialized
// per content identifier.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}

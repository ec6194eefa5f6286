package ports

import "context"

// TxManager scopes a submission and its decision-log append to one atomic
// unit, so a crash between the two cannot leave a submitted intent without
// its log entry.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

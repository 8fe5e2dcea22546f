package repositories

import (
	"context"
)

// TxRepositories exposes the writers that can take part in one storage transaction.
type TxRepositories interface {
	Documents() DocumentWriter
	Comments() CommentWriter
	Audit() AuditWriter
}

// TransactionManager runs a unit of work atomically. If fn returns an error every
// write made through tx is discarded; otherwise all of them are committed together.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}

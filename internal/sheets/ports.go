// Package sheets defines the outbound port for the external ledger the
// export worker writes to.
package sheets

import (
	"context"

	"fintrack/internal/core"
)

// LedgerAppender appends one committed transaction to the external ledger
// and returns an opaque row reference.
type LedgerAppender interface {
	AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
}

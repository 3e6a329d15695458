// Package worker moves committed transactions from the local store to the
// external ledger. It consumes export messages from AMQP and periodically
// sweeps for rows a lost message left behind.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// Store is the slice of the transaction store the worker needs.
type Store interface {
	Get(ctx context.Context, id int64) (core.Transaction, error)
	ListUnexported(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkExported(ctx context.Context, id int64) error
	MarkExportError(ctx context.Context, id int64) error
}

type ExportWorker struct {
	store     Store
	ledger    sheets.LedgerAppender
	batchSize int
}

func NewExportWorker(store Store, ledger sheets.LedgerAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     store,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleMessage processes one export message from AMQP.
func (w *ExportWorker) HandleMessage(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	slog.InfoContext(ctx, "Processing export message", "id", msg.ID, "user_id", msg.UserID)

	t, err := w.store.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("load transaction %d: %w", msg.ID, err)
	}
	return w.export(ctx, t)
}

// ProcessPending sweeps unexported rows in batches; it backs up the AMQP
// path when a message was lost or the worker was down.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.ListUnexported(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unexported: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	var failed int
	for _, t := range pending {
		if err := w.export(ctx, t); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction", "id", t.ID, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pending exports failed", failed, len(pending))
	}
	return nil
}

func (w *ExportWorker) export(ctx context.Context, t core.Transaction) error {
	ref, err := w.ledger.AppendTransaction(ctx, t)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, t.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", t.ID, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.store.MarkExported(ctx, t.ID); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported", "id", t.ID, "sheets_ref", ref)
	return nil
}

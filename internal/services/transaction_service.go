package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// TransactionStore is the writing slice of the transaction store.
type TransactionStore interface {
	Add(ctx context.Context, t core.Transaction) (core.Transaction, error)
}

// ExportPublisher announces committed transactions to the async export
// pipeline.
type ExportPublisher interface {
	PublishTransactionRecorded(ctx context.Context, id, userID int64) error
}

// TransactionService commits transactions and hands them to the export
// pipeline. A nil publisher disables exporting without affecting commits.
type TransactionService struct {
	store     TransactionStore
	publisher ExportPublisher
}

func NewTransactionService(store TransactionStore, publisher ExportPublisher) *TransactionService {
	return &TransactionService{store: store, publisher: publisher}
}

// Record persists one transaction. The store write is the source of truth;
// a publish failure is logged but never fails the user-facing commit.
func (s *TransactionService) Record(ctx context.Context, userID int64, kind core.Kind, category string, amount core.Money, description string) (core.Transaction, error) {
	tx, err := s.store.Add(ctx, core.Transaction{
		UserID:      userID,
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Description: description,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishTransactionRecorded(ctx, tx.ID, tx.UserID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish export message",
				"id", tx.ID, "error", err)
		}
	}

	return tx, nil
}

// Package conversation drives the multi-step add-transaction flow: kind,
// then category, then amount, then an optional description, at which point
// the accumulated entry is committed as one transaction.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
)

const (
	PhaseIdle                Phase = "idle"
	PhaseAwaitingCategory    Phase = "awaiting_category"
	PhaseAwaitingAmount      Phase = "awaiting_amount"
	PhaseAwaitingDescription Phase = "awaiting_description"
)

// SkipMarker entered as a description commits with an empty one.
const SkipMarker = "-"

type (
	Phase string

	// State is the ephemeral per-user progress record. It lives only in
	// the machine's cache and is dropped on commit or TTL expiry.
	State struct {
		UserID   int64
		Phase    Phase
		Kind     core.Kind
		Category string
		Amount   core.Money
	}

	// Outcome reports what an input advanced the flow to.
	Outcome struct {
		// NeedDescription is set when a valid amount was accepted and
		// the flow now waits for a description.
		NeedDescription bool
		// Committed holds the persisted transaction when the flow
		// finished.
		Committed *core.Transaction
	}

	// Recorder commits a finished flow. Implemented by
	// services.TransactionService.
	Recorder interface {
		Record(ctx context.Context, userID int64, kind core.Kind, category string, amount core.Money, description string) (core.Transaction, error)
	}

	Machine struct {
		states   *cache.LRUCache[State]
		recorder Recorder
	}
)

var ErrNoActiveFlow = errors.New("no active add-transaction flow")

// maxStates bounds how many concurrent per-user flows the cache holds;
// beyond it the least recently touched flow is dropped.
const maxStates = 10_000

func NewMachine(recorder Recorder, ttl time.Duration) *Machine {
	return &Machine{
		states:   cache.NewLRUCache[State](maxStates, ttl),
		recorder: recorder,
	}
}

// StateCache exposes the state store for expiry sweeps.
func (m *Machine) StateCache() cache.Cleaner {
	return m.states
}

// Phase returns the user's current position in the flow.
func (m *Machine) Phase(userID int64) Phase {
	st, ok := m.states.Get(userID)
	if !ok {
		return PhaseIdle
	}
	return st.Phase
}

// Begin starts an add-transaction flow of the given kind and returns the
// category options to offer. Starting a new flow replaces any flow the
// user already had (last writer wins on the per-user slot).
func (m *Machine) Begin(userID int64, kind core.Kind) ([]string, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	m.states.Set(userID, State{
		UserID: userID,
		Phase:  PhaseAwaitingCategory,
		Kind:   kind,
	})
	return core.Categories(kind), nil
}

// SelectCategory fixes the category from the enumerated options. Selection
// is exact match; anything else leaves the flow untouched.
func (m *Machine) SelectCategory(userID int64, category string) error {
	st, ok := m.states.Get(userID)
	if !ok || st.Phase != PhaseAwaitingCategory {
		return ErrNoActiveFlow
	}
	if !core.ValidCategory(st.Kind, category) {
		return core.ErrUnknownCategory
	}
	st.Phase = PhaseAwaitingAmount
	st.Category = category
	m.states.Set(userID, st)
	return nil
}

// Input feeds one free-text message into the flow.
//
// In the amount phase a parse failure or non-positive value returns
// core.ErrInvalidAmount and leaves the state untouched so the user can
// retry. In the description phase the flow always commits; a store failure
// is returned wrapped and the state is kept so the user can resend the
// description without losing the fields already entered.
func (m *Machine) Input(ctx context.Context, userID int64, text string) (Outcome, error) {
	st, ok := m.states.Get(userID)
	if !ok {
		return Outcome{}, ErrNoActiveFlow
	}

	switch st.Phase {
	case PhaseAwaitingAmount:
		amount, err := core.ParseAmount(text)
		if err != nil {
			return Outcome{}, err
		}
		st.Phase = PhaseAwaitingDescription
		st.Amount = amount
		m.states.Set(userID, st)
		return Outcome{NeedDescription: true}, nil

	case PhaseAwaitingDescription:
		description := strings.TrimSpace(text)
		if description == SkipMarker {
			description = ""
		}
		tx, err := m.recorder.Record(ctx, userID, st.Kind, st.Category, st.Amount, description)
		if err != nil {
			return Outcome{}, fmt.Errorf("commit transaction: %w", err)
		}
		m.states.Delete(userID)
		return Outcome{Committed: &tx}, nil
	}

	return Outcome{}, ErrNoActiveFlow
}

// Cancel discards any in-progress flow for the user.
func (m *Machine) Cancel(userID int64) {
	m.states.Delete(userID)
}

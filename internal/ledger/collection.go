// Package ledger coordinates mutations against the remote store. The local
// collection is a cache of server state: every successful mutation applies
// the server's version of the record and recomputes the summary totals.
// There is no optimistic flip-then-rollback; totals only ever reflect
// confirmed state.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"utangku/internal/aggregate"
	"utangku/internal/core"
	"utangku/internal/log"
)

var (
	// ErrNotFound means the referenced record is absent from the local
	// collection; no network call is made.
	ErrNotFound = errors.New("record not found")

	// ErrNotConfirmed means a delete was requested without an explicit
	// affirmative confirmation.
	ErrNotConfirmed = errors.New("delete not confirmed")
)

// Backend is the slice of the API client the ledger mutates through.
type Backend interface {
	ListDebts(ctx context.Context) ([]core.Debt, error)
	CreateDebt(ctx context.Context, d core.Debt) (core.Debt, error)
	UpdateDebt(ctx context.Context, id int64, d core.Debt) (core.Debt, error)
	ToggleDebt(ctx context.Context, id int64) (core.Debt, error)
	DeleteDebt(ctx context.Context, id int64) error
}

// Collection is the in-memory mirror of the user's records.
type Collection struct {
	backend Backend
	logger  *log.Logger

	debts []core.Debt
	stats core.Stats
}

func NewCollection(backend Backend, logger *log.Logger) *Collection {
	if logger == nil {
		logger = log.New(log.Config{Component: log.ComponentLedger})
	}
	return &Collection{backend: backend, logger: logger}
}

// Refresh replaces the local collection with the server's list.
func (c *Collection) Refresh(ctx context.Context) error {
	debts, err := c.backend.ListDebts(ctx)
	if err != nil {
		return fmt.Errorf("refresh ledger: %w", err)
	}
	c.debts = debts
	c.recompute()
	c.logger.Debug("Ledger refreshed", log.FieldCount, len(debts))
	return nil
}

// Debts returns the collection in listing order: unsettled first, newest
// first within each group.
func (c *Collection) Debts() []core.Debt {
	return aggregate.SortForListing(c.debts)
}

// Stats returns the totals computed from the last confirmed state.
func (c *Collection) Stats() core.Stats {
	return c.stats
}

// Find returns the local copy of a record.
func (c *Collection) Find(id int64) (core.Debt, error) {
	if i := c.index(id); i >= 0 {
		return c.debts[i], nil
	}
	return core.Debt{}, ErrNotFound
}

// Create submits a new record and adds the server's version locally.
func (c *Collection) Create(ctx context.Context, d core.Debt) (core.Debt, error) {
	created, err := c.backend.CreateDebt(ctx, d)
	if err != nil {
		return core.Debt{}, err
	}
	c.debts = append(c.debts, created)
	c.recompute()
	c.logger.Info("Record created",
		log.FieldDebtID, created.ID,
		log.FieldDebtName, created.Name,
		log.FieldKind, string(created.Kind),
		log.FieldAmount, created.Amount.Rupiah)
	return created, nil
}

// Update replaces the client-settable fields of a record. The kind is fixed
// post-creation.
func (c *Collection) Update(ctx context.Context, id int64, d core.Debt) (core.Debt, error) {
	i := c.index(id)
	if i < 0 {
		return core.Debt{}, ErrNotFound
	}
	if d.Kind != c.debts[i].Kind {
		return core.Debt{}, core.ErrInvalidKind
	}
	updated, err := c.backend.UpdateDebt(ctx, id, d)
	if err != nil {
		return core.Debt{}, err
	}
	c.debts[i] = updated
	c.recompute()
	c.logger.Info("Record updated", log.FieldDebtID, id)
	return updated, nil
}

// Toggle flips a record's settled flag. The server decides the new value;
// the local copy is replaced with what it returns.
func (c *Collection) Toggle(ctx context.Context, id int64) (core.Debt, error) {
	i := c.index(id)
	if i < 0 {
		return core.Debt{}, ErrNotFound
	}
	toggled, err := c.backend.ToggleDebt(ctx, id)
	if err != nil {
		return core.Debt{}, err
	}
	c.debts[i] = toggled
	c.recompute()
	c.logger.Info("Record toggled",
		log.FieldDebtID, id,
		"is_checked", toggled.IsChecked)
	return toggled, nil
}

// Delete removes a record. It refuses to act without confirmation.
func (c *Collection) Delete(ctx context.Context, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	i := c.index(id)
	if i < 0 {
		return ErrNotFound
	}
	if err := c.backend.DeleteDebt(ctx, id); err != nil {
		return err
	}
	c.debts = append(c.debts[:i], c.debts[i+1:]...)
	c.recompute()
	c.logger.Info("Record deleted", log.FieldDebtID, id)
	return nil
}

func (c *Collection) index(id int64) int {
	for i, d := range c.debts {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (c *Collection) recompute() {
	c.stats = aggregate.ComputeStats(c.debts)
}

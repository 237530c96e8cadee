package domain

import (
	"fmt"
	"time"
)

// Operation is a single fill inside an account-leg. ExitPrice and Result are
// populated when the position is closed; an operation lives and dies with its
// owning leg.
type Operation struct {
	Volume     float64  `json:"volume"`               // Lot size (e.g. 1.0, 0.5)
	EntryPrice float64  `json:"entryPrice"`           // Fill price at open
	ExitPrice  *float64 `json:"exitPrice"`            // Fill price at close, nil while open
	TicketID   *string  `json:"ticketId"`             // Broker-side ticket reference (MT5)
	Result     *float64 `json:"result"`               // USD P&L for this fill, nil while open
}

// AccountInLeg is one trading account's participation in a leg, together with
// its ordered operations.
type AccountInLeg struct {
	AccountID  string      `json:"accountId"`
	Operations []Operation `json:"operations"`
}

// Leg is one side of a tiro: a direction shared by one or two accounts.
type Leg struct {
	Direction TradeDirection `json:"direction"`
	Accounts  []AccountInLeg `json:"accounts"`
}

// Validate checks the structural rules of a single leg: a known direction,
// one or two accounts, and at least one operation per account.
func (l Leg) Validate() error {
	if !l.Direction.IsValid() {
		return fmt.Errorf("%w: got %q", ErrInvalidDirection, l.Direction)
	}
	if len(l.Accounts) < 1 || len(l.Accounts) > 2 {
		return fmt.Errorf("%w: got %d", ErrInvalidAccountCount, len(l.Accounts))
	}
	for _, acc := range l.Accounts {
		if len(acc.Operations) == 0 {
			return fmt.Errorf("%w: account %s", ErrEmptyOperations, acc.AccountID)
		}
	}
	return nil
}

// DuplicateAccount returns the first account id that appears more than once
// within the leg, or "" when all accounts are distinct.
func (l Leg) DuplicateAccount() string {
	seen := make(map[string]bool, len(l.Accounts))
	for _, acc := range l.Accounts {
		if seen[acc.AccountID] {
			return acc.AccountID
		}
		seen[acc.AccountID] = true
	}
	return ""
}

// AccountIDs returns the account ids referenced by the leg, in order.
func (l Leg) AccountIDs() []string {
	ids := make([]string, 0, len(l.Accounts))
	for _, acc := range l.Accounts {
		ids = append(ids, acc.AccountID)
	}
	return ids
}

// Tiro is a paired hedge trade: two opposite-direction legs on the same
// symbol, belonging to a funding cycle.
type Tiro struct {
	ID        string     `json:"id"`
	CycleID   string     `json:"cycleId"`
	Symbol    string     `json:"symbol"`
	Status    TiroStatus `json:"status"`
	Leg1      Leg        `json:"leg1"`
	Leg2      Leg        `json:"leg2"`
	Result    *float64   `json:"result"`    // Total USD across all operations, nil while open
	Notes     *string    `json:"notes"`
	OpenDate  time.Time  `json:"openDate"`
	CloseDate *time.Time `json:"closeDate"` // Set when the tiro transitions to Cerrado
}

// Validate checks both legs and the cross-leg rule that they trade opposite
// sides. Per-leg duplicate accounts are checked at the service layer; the same
// account may legitimately appear once on each side.
func (t *Tiro) Validate() error {
	if err := t.Leg1.Validate(); err != nil {
		return fmt.Errorf("leg1: %w", err)
	}
	if err := t.Leg2.Validate(); err != nil {
		return fmt.Errorf("leg2: %w", err)
	}
	if t.Leg1.Direction == t.Leg2.Direction {
		return ErrSameDirectionLegs
	}
	return nil
}

// IsOpen reports whether the tiro has not been closed yet.
func (t *Tiro) IsOpen() bool {
	return t.Status == TiroOpen
}

// AccountIDs returns the union of account ids referenced by both legs,
// preserving first-seen order.
func (t *Tiro) AccountIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range append(t.Leg1.AccountIDs(), t.Leg2.AccountIDs()...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

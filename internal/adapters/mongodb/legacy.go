package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gtfunds/internal/domain"
)

// Tiro documents exist in two shapes. The current shape nests accounts and
// operations under each leg; the historical shape was flat:
//
//	leg1: {accountId, direction, volume, ticketId?}
//
// legDoc decodes both: a non-empty accountId at the top level marks a legacy
// leg, and legToDomain upgrades it in memory on every read instead of running
// a destructive migration pass. After tiroToDoc writes a tiro back, the
// marker field is gone, so the upgrade is idempotent by construction.

type operationDoc struct {
	Volume     float64  `bson:"volume"`
	EntryPrice float64  `bson:"entryPrice"`
	ExitPrice  *float64 `bson:"exitPrice"`
	TicketID   *string  `bson:"ticketId"`
	Result     *float64 `bson:"result"`
}

type accountInLegDoc struct {
	AccountID  string         `bson:"accountId"`
	Operations []operationDoc `bson:"operations"`
}

type legDoc struct {
	Direction string            `bson:"direction,omitempty"`
	Accounts  []accountInLegDoc `bson:"accounts,omitempty"`

	// Legacy flat fields.
	AccountID string   `bson:"accountId,omitempty"`
	Volume    *float64 `bson:"volume,omitempty"`
	TicketID  *string  `bson:"ticketId,omitempty"`
}

type tiroDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CycleID   string             `bson:"cycleId"`
	Symbol    string             `bson:"symbol"`
	Status    string             `bson:"status"`
	Leg1      legDoc             `bson:"leg1"`
	Leg2      legDoc             `bson:"leg2"`
	Result    *float64           `bson:"result"`
	Notes     *string            `bson:"notes"`
	OpenDate  time.Time          `bson:"openDate"`
	CloseDate *time.Time         `bson:"closeDate"`
}

// legToDomain normalizes a stored leg to the current nested shape.
// fallback supplies the direction when even that is missing from a legacy
// record: BUY for leg1, SELL for leg2, matching how old tiros were entered.
func legToDomain(d legDoc, fallback domain.TradeDirection) domain.Leg {
	direction := domain.TradeDirection(d.Direction)
	if d.Direction == "" {
		direction = fallback
	}

	if d.AccountID != "" {
		// Legacy flat record: synthesize one account with one operation.
		// Entry price is zero because historical data predates price capture.
		volume := 1.0
		if d.Volume != nil {
			volume = *d.Volume
		}
		return domain.Leg{
			Direction: direction,
			Accounts: []domain.AccountInLeg{{
				AccountID: d.AccountID,
				Operations: []domain.Operation{{
					Volume:     volume,
					EntryPrice: 0.0,
					TicketID:   d.TicketID,
				}},
			}},
		}
	}

	accounts := make([]domain.AccountInLeg, 0, len(d.Accounts))
	for _, acc := range d.Accounts {
		operations := make([]domain.Operation, 0, len(acc.Operations))
		for _, op := range acc.Operations {
			operations = append(operations, domain.Operation{
				Volume:     op.Volume,
				EntryPrice: op.EntryPrice,
				ExitPrice:  op.ExitPrice,
				TicketID:   op.TicketID,
				Result:     op.Result,
			})
		}
		accounts = append(accounts, domain.AccountInLeg{
			AccountID:  acc.AccountID,
			Operations: operations,
		})
	}
	return domain.Leg{Direction: direction, Accounts: accounts}
}

// legToDoc encodes a leg in the current nested shape. Writes never produce
// the legacy fields.
func legToDoc(l domain.Leg) legDoc {
	accounts := make([]accountInLegDoc, 0, len(l.Accounts))
	for _, acc := range l.Accounts {
		operations := make([]operationDoc, 0, len(acc.Operations))
		for _, op := range acc.Operations {
			operations = append(operations, operationDoc{
				Volume:     op.Volume,
				EntryPrice: op.EntryPrice,
				ExitPrice:  op.ExitPrice,
				TicketID:   op.TicketID,
				Result:     op.Result,
			})
		}
		accounts = append(accounts, accountInLegDoc{
			AccountID:  acc.AccountID,
			Operations: operations,
		})
	}
	return legDoc{Direction: string(l.Direction), Accounts: accounts}
}

func (d tiroDoc) toDomain() *domain.Tiro {
	return &domain.Tiro{
		ID:        d.ID.Hex(),
		CycleID:   d.CycleID,
		Symbol:    d.Symbol,
		Status:    domain.TiroStatus(d.Status),
		Leg1:      legToDomain(d.Leg1, domain.Buy),
		Leg2:      legToDomain(d.Leg2, domain.Sell),
		Result:    d.Result,
		Notes:     d.Notes,
		OpenDate:  d.OpenDate,
		CloseDate: d.CloseDate,
	}
}

func tiroToDoc(t *domain.Tiro) tiroDoc {
	return tiroDoc{
		CycleID:   t.CycleID,
		Symbol:    t.Symbol,
		Status:    string(t.Status),
		Leg1:      legToDoc(t.Leg1),
		Leg2:      legToDoc(t.Leg2),
		Result:    t.Result,
		Notes:     t.Notes,
		OpenDate:  t.OpenDate,
		CloseDate: t.CloseDate,
	}
}

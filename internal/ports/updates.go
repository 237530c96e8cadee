package ports

import (
	"time"

	"gtfunds/internal/domain"
)

// Partial-update carriers. A nil field means "leave untouched"; repositories
// persist only the fields that are set.

// TiroUpdate carries the mutable fields of a tiro.
type TiroUpdate struct {
	Status    *domain.TiroStatus `json:"status"`
	Result    *float64           `json:"result"`
	CloseDate *time.Time         `json:"closeDate"`
	Notes     *string            `json:"notes"`
	Leg1      *domain.Leg        `json:"leg1"`
	Leg2      *domain.Leg        `json:"leg2"`
}

// IsEmpty reports whether no field is set.
func (u TiroUpdate) IsEmpty() bool {
	return u.Status == nil && u.Result == nil && u.CloseDate == nil &&
		u.Notes == nil && u.Leg1 == nil && u.Leg2 == nil
}

// CycleUpdate carries the mutable fields of a cycle.
type CycleUpdate struct {
	Name      *string             `json:"name"`
	Status    *domain.CycleStatus `json:"status"`
	StartDate *time.Time          `json:"startDate"`
}

// IsEmpty reports whether no field is set.
func (u CycleUpdate) IsEmpty() bool {
	return u.Name == nil && u.Status == nil && u.StartDate == nil
}

// TradingAccountUpdate carries the mutable fields of a trading account.
// The owning KYC is deliberately absent: ownership never changes.
type TradingAccountUpdate struct {
	AccountNumber *string               `json:"accountNumber"`
	Cost          *float64              `json:"cost"`
	AccountSize   *float64              `json:"accountSize"`
	PropFirm      *string               `json:"propFirm"`
	Status        *domain.AccountStatus `json:"status"`
	Phase         *domain.AccountPhase  `json:"phase"`
	CycleID       *string               `json:"cycleId"`
	Login         *string               `json:"login"`
	Password      *string               `json:"password"`
	Server        *string               `json:"server"`
}

// IsEmpty reports whether no field is set.
func (u TradingAccountUpdate) IsEmpty() bool {
	return u.AccountNumber == nil && u.Cost == nil && u.AccountSize == nil &&
		u.PropFirm == nil && u.Status == nil && u.Phase == nil &&
		u.CycleID == nil && u.Login == nil && u.Password == nil && u.Server == nil
}

// KycUpdate carries the mutable fields of a KYC record.
type KycUpdate struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	CreditCard       *string `json:"creditCard"`
	Address          *string `json:"address"`
	Status           *bool   `json:"status"`
	DashboardEnabled *bool   `json:"dashboardEnabled"`
	CycleID          *string `json:"cycleId"`
}

// IsEmpty reports whether no field is set.
func (u KycUpdate) IsEmpty() bool {
	return u.Name == nil && u.Phone == nil && u.Email == nil &&
		u.CreditCard == nil && u.Address == nil && u.Status == nil &&
		u.DashboardEnabled == nil && u.CycleID == nil
}

// PayoutUpdate carries the mutable fields of a payout.
type PayoutUpdate struct {
	Amount     *float64   `json:"amount"`
	PayoutDate *time.Time `json:"payoutDate"`
}

// IsEmpty reports whether no field is set.
func (u PayoutUpdate) IsEmpty() bool {
	return u.Amount == nil && u.PayoutDate == nil
}

// InvestorUpdate carries the mutable contact fields of an investor.
// Investments and the running total only change through AddInvestment.
type InvestorUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Identification *string `json:"identification"`
	Country        *string `json:"country"`
	Notes          *string `json:"notes"`
}

// IsEmpty reports whether no field is set.
func (u InvestorUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Identification == nil && u.Country == nil && u.Notes == nil
}

package domain

import "time"

// Investment is a single capital contribution by an investor into a cycle.
type Investment struct {
	CycleID          string           `json:"cycleId"`
	Amount           float64          `json:"amount"`
	ProfitPercentage float64          `json:"profitPercentage"` // Agreed profit share
	InvestmentDate   time.Time        `json:"investmentDate"`
	Status           InvestmentStatus `json:"status"`
}

// Investor is a capital provider with a history of per-cycle investments.
type Investor struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            *string      `json:"phone"`
	Identification   *string      `json:"identification"` // National id, passport, etc.
	Country          *string      `json:"country"`
	Notes            *string      `json:"notes"`
	RegistrationDate time.Time    `json:"registrationDate"`
	TotalInvested    float64      `json:"totalInvested"`
	Investments      []Investment `json:"investments"`
}

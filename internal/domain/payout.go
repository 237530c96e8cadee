package domain

import "time"

// Payout is a withdrawal paid out to a KYC-verified client.
type Payout struct {
	ID         string    `json:"id"`
	KycID      string    `json:"kycId"`
	Amount     float64   `json:"amount"`
	PayoutDate time.Time `json:"payoutDate"`
}

package domain

// TradingAccount is an account opened at a proprietary trading firm on behalf
// of a KYC-verified client. CycleID is optional: accounts may exist before
// being assigned to a funding round.
type TradingAccount struct {
	ID            string        `json:"id"`
	KycID         string        `json:"kycId"`
	AccountNumber string        `json:"accountNumber"`
	Cost          float64       `json:"cost"`        // Purchase cost in USD
	AccountSize   float64       `json:"accountSize"` // Funded size in USD
	PropFirm      string        `json:"propFirm"`
	Status        AccountStatus `json:"status"`
	Phase         AccountPhase  `json:"phase"`
	CycleID       *string       `json:"cycleId"`
	Login         *string       `json:"login"`
	Password      *string       `json:"password"`
	Server        *string       `json:"server"`
}

package domain

import "time"

// KycDocument is a file attached to a KYC record.
type KycDocument struct {
	FileName   string    `json:"fileName"`
	UploadDate time.Time `json:"uploadDate"`
}

// Kyc is a verified client identity record.
type Kyc struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Phone            string        `json:"phone"`
	Email            string        `json:"email"`
	CreditCard       *string       `json:"creditCard"`
	Address          *string       `json:"address"`
	Status           bool          `json:"status"`
	DashboardEnabled bool          `json:"dashboardEnabled"`
	CycleID          *string       `json:"cycleId"`
	SubmittedDate    time.Time     `json:"submittedDate"`
	Documents        []KycDocument `json:"documents"`
}

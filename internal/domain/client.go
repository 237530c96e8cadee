package domain

// Client is a legacy customer record kept for historical data.
type Client struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Status        string  `json:"status"`
	TotalInvested float64 `json:"totalInvested"`
}

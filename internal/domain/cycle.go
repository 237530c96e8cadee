package domain

import "time"

// Cycle is a funding round grouping trading accounts and tiros.
type Cycle struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Status    CycleStatus `json:"status"`
	StartDate time.Time   `json:"startDate"`
}

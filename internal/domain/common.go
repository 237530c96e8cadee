package domain

// TradeDirection represents the side of a leg (BUY or SELL).
type TradeDirection string

const (
	Buy  TradeDirection = "BUY"
	Sell TradeDirection = "SELL"
)

// IsValid reports whether the direction is one of the two known sides.
func (d TradeDirection) IsValid() bool {
	return d == Buy || d == Sell
}

// TiroStatus represents the lifecycle state of a tiro.
// Values are kept in Spanish to match the stored documents.
type TiroStatus string

const (
	TiroOpen   TiroStatus = "Abierto"
	TiroClosed TiroStatus = "Cerrado"
)

// CycleStatus represents the lifecycle state of a funding cycle.
type CycleStatus string

const (
	CycleActive    CycleStatus = "Activo"
	CycleCompleted CycleStatus = "Completado"
)

// AccountPhase represents the evaluation stage of a trading account.
type AccountPhase string

const (
	PhaseOne    AccountPhase = "fase1"
	PhaseTwo    AccountPhase = "fase2"
	PhaseReal   AccountPhase = "real"
	PhaseBurned AccountPhase = "quemada"
)

// AccountStatus represents the administrative state of a trading account.
type AccountStatus string

const (
	AccountPending AccountStatus = "Pending"
	AccountActive  AccountStatus = "Active"
	AccountBurned  AccountStatus = "Burned"
)

// InvestmentStatus represents the state of a single capital contribution.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "Active"
	InvestmentCompleted InvestmentStatus = "Completed"
	InvestmentCancelled InvestmentStatus = "Cancelled"
)

// UserRole represents the permission level of an application user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

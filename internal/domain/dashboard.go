package domain

// DashboardAccount is a trading account enriched with its owner's KYC display
// name for the cycle dashboard.
type DashboardAccount struct {
	TradingAccount
	KycName string `json:"nombre_kyc"`
}

// DashboardTiro is a tiro enriched with the human-readable account number of
// the first account of each leg. Enrichment is best effort: the fields are
// omitted when the reference cannot be resolved.
type DashboardTiro struct {
	Tiro
	Leg1AccountNumber string `json:"leg1_accountNumber,omitempty"`
	Leg2AccountNumber string `json:"leg2_accountNumber,omitempty"`
}

// CycleSummary holds the computed statistics of one cycle.
// JSON keys match the response contract of the original API.
type CycleSummary struct {
	TotalAccounts   int                  `json:"totalCuentas"`
	AccountsByPhase map[AccountPhase]int `json:"cuentasPorFase"`
	AccountsInReal  int                  `json:"cuentasEnReal"`
	ConversionRate  float64              `json:"tasaConversion"` // 100 * real / total, 0 when empty
	TotalTiros      int                  `json:"totalTiros"`
	OpenTiros       int                  `json:"tirosAbiertos"`
	ClosedTiros     int                  `json:"tirosCerrados"`
	TotalTiroResult float64              `json:"resultadoTotalTiros"` // Sum of non-nil results, 2 decimals
}

// CycleDashboard is the composite view for one cycle: metadata, summary, and
// the enriched, sorted account and tiro lists.
type CycleDashboard struct {
	Metadata Cycle              `json:"metadata"`
	Summary  CycleSummary       `json:"resumen"`
	Accounts []DashboardAccount `json:"cuentas"`
	Tiros    []DashboardTiro    `json:"tiros"`
}

// HistoricalStatistics aggregates completed cycles into planning averages.
type HistoricalStatistics struct {
	AvgConversionRate   float64 `json:"promedioTasaConversion"`
	AvgCostPerAccount   float64 `json:"promedioCostoPorCuenta"`
	AvgProfitPerAccount float64 `json:"promedioProfitPorCuenta"`
	CompletedCycles     int     `json:"totalCiclosCompletados"`
	AccountsAnalyzed    int     `json:"totalCuentasAnalizadas"`
}

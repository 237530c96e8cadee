package app

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

// Fallback averages used when no completed cycle has account data yet.
const (
	defaultAvgConversionRate = 10.0
	defaultAvgCostPerAccount = 150.0
	// Estimated profit per funded account; not derived from stored data.
	estimatedProfitPerAccount = 5000.0
)

// Accounts are listed funded-first; unknown phases sort last.
var phaseOrder = map[domain.AccountPhase]int{
	domain.PhaseReal:   0,
	domain.PhaseTwo:    1,
	domain.PhaseOne:    2,
	domain.PhaseBurned: 3,
}

// DashboardService composes cycles, accounts, tiros and KYC records into
// reporting views. Enrichment lookups are best effort: a broken reference
// degrades to a placeholder instead of failing the whole view.
type DashboardService struct {
	cycles   ports.CycleRepository
	accounts ports.TradingAccountRepository
	tiros    ports.TiroRepository
	kycs     ports.KycRepository
	logger   ports.Logger
}

// NewDashboardService creates the dashboard application service.
func NewDashboardService(
	cycles ports.CycleRepository,
	accounts ports.TradingAccountRepository,
	tiros ports.TiroRepository,
	kycs ports.KycRepository,
	logger ports.Logger,
) (*DashboardService, error) {
	if cycles == nil || accounts == nil || tiros == nil || kycs == nil || logger == nil {
		return nil, fmt.Errorf("missing required dependencies for DashboardService")
	}
	return &DashboardService{cycles: cycles, accounts: accounts, tiros: tiros, kycs: kycs, logger: logger}, nil
}

// CycleDashboard builds the composite view for one cycle: metadata, computed
// summary, accounts enriched with KYC names and tiros enriched with leg
// account numbers.
func (s *DashboardService) CycleDashboard(ctx context.Context, cycleID string) (*domain.CycleDashboard, error) {
	cycle, err := s.cycles.FindByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, fmt.Errorf("%w: cycle %s", ports.ErrNotFound, cycleID)
	}

	accounts, err := s.accounts.FindByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	enrichedAccounts := make([]domain.DashboardAccount, 0, len(accounts))
	for _, acc := range accounts {
		enrichedAccounts = append(enrichedAccounts, domain.DashboardAccount{
			TradingAccount: *acc,
			KycName:        s.kycName(ctx, acc.KycID),
		})
	}

	tiros, err := s.tiros.FindByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	enrichedTiros := make([]domain.DashboardTiro, 0, len(tiros))
	for _, tiro := range tiros {
		enrichedTiros = append(enrichedTiros, domain.DashboardTiro{
			Tiro:              *tiro,
			Leg1AccountNumber: s.legAccountNumber(ctx, tiro.Leg1),
			Leg2AccountNumber: s.legAccountNumber(ctx, tiro.Leg2),
		})
	}

	summary := summarize(enrichedAccounts, enrichedTiros)

	sort.SliceStable(enrichedAccounts, func(i, j int) bool {
		return phasePriority(enrichedAccounts[i].Phase) < phasePriority(enrichedAccounts[j].Phase)
	})
	sort.SliceStable(enrichedTiros, func(i, j int) bool {
		return enrichedTiros[i].OpenDate.After(enrichedTiros[j].OpenDate)
	})

	return &domain.CycleDashboard{
		Metadata: *cycle,
		Summary:  summary,
		Accounts: enrichedAccounts,
		Tiros:    enrichedTiros,
	}, nil
}

// kycName resolves the display name of an account's owner, degrading to "N/A"
// when the reference is missing or broken.
func (s *DashboardService) kycName(ctx context.Context, kycID string) string {
	if kycID == "" {
		return "N/A"
	}
	kyc, err := s.kycs.FindByID(ctx, kycID)
	if err != nil || kyc == nil {
		return "N/A"
	}
	return kyc.Name
}

// legAccountNumber resolves the account number of the first account of a leg,
// returning "" (field omitted) when the reference cannot be resolved.
func (s *DashboardService) legAccountNumber(ctx context.Context, leg domain.Leg) string {
	if len(leg.Accounts) == 0 || leg.Accounts[0].AccountID == "" {
		return ""
	}
	account, err := s.accounts.FindByID(ctx, leg.Accounts[0].AccountID)
	if err != nil || account == nil {
		return ""
	}
	return account.AccountNumber
}

func summarize(accounts []domain.DashboardAccount, tiros []domain.DashboardTiro) domain.CycleSummary {
	byPhase := map[domain.AccountPhase]int{
		domain.PhaseOne:    0,
		domain.PhaseTwo:    0,
		domain.PhaseReal:   0,
		domain.PhaseBurned: 0,
	}
	for _, acc := range accounts {
		if _, known := byPhase[acc.Phase]; known {
			byPhase[acc.Phase]++
		}
	}

	total := len(accounts)
	inReal := byPhase[domain.PhaseReal]
	conversionRate := 0.0
	if total > 0 {
		conversionRate = round2(float64(inReal) / float64(total) * 100)
	}

	open, closed := 0, 0
	totalResult := 0.0
	for _, tiro := range tiros {
		switch tiro.Status {
		case domain.TiroOpen:
			open++
		case domain.TiroClosed:
			closed++
		}
		if tiro.Result != nil {
			totalResult += *tiro.Result
		}
	}

	return domain.CycleSummary{
		TotalAccounts:   total,
		AccountsByPhase: byPhase,
		AccountsInReal:  inReal,
		ConversionRate:  conversionRate,
		TotalTiros:      len(tiros),
		OpenTiros:       open,
		ClosedTiros:     closed,
		TotalTiroResult: round2(totalResult),
	}
}

// HistoricalStatistics averages conversion rates and costs over completed
// cycles. Cycles without accounts contribute nothing; when none have data,
// configured defaults stand in so planning screens still render.
func (s *DashboardService) HistoricalStatistics(ctx context.Context) (*domain.HistoricalStatistics, error) {
	completed, err := s.cycles.FindByStatus(ctx, domain.CycleCompleted)
	if err != nil {
		return nil, err
	}

	var (
		totalConversionRate float64
		totalCost           float64
		totalAccounts       int
		cyclesWithData      int
	)
	for _, cycle := range completed {
		accounts, err := s.accounts.FindByCycle(ctx, cycle.ID)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			continue
		}

		inReal := 0
		for _, acc := range accounts {
			if acc.Phase == domain.PhaseReal {
				inReal++
			}
			totalCost += acc.Cost
		}
		totalConversionRate += float64(inReal) / float64(len(accounts)) * 100
		totalAccounts += len(accounts)
		cyclesWithData++
	}

	stats := &domain.HistoricalStatistics{
		AvgConversionRate:   defaultAvgConversionRate,
		AvgCostPerAccount:   defaultAvgCostPerAccount,
		AvgProfitPerAccount: estimatedProfitPerAccount,
		CompletedCycles:     cyclesWithData,
		AccountsAnalyzed:    totalAccounts,
	}
	if cyclesWithData > 0 {
		stats.AvgConversionRate = round2(totalConversionRate / float64(cyclesWithData))
		if totalAccounts > 0 {
			stats.AvgCostPerAccount = round2(totalCost / float64(totalAccounts))
		} else {
			stats.AvgCostPerAccount = 0
		}
	}
	return stats, nil
}

func phasePriority(phase domain.AccountPhase) int {
	if p, ok := phaseOrder[phase]; ok {
		return p
	}
	return len(phaseOrder)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

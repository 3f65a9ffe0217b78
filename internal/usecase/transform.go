package usecase

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/mkamada/scanboard/internal/domain"
	"github.com/mkamada/scanboard/internal/gateway"
)

// TransformMetrics normalizes a raw backend security-overview payload into
// the internal AdvancedMetrics shape. It is total: any missing group
// defaults to a zero-value block or empty slice, and it never fails.
func TransformMetrics(raw gateway.RawSecurityOverview, debt domain.DebtConfig) domain.AdvancedMetrics {
	out := domain.AdvancedMetrics{
		OwaspAnalysis:       []domain.OwaspCategory{},
		ComplianceScores:    map[string]float64{},
		VulnerabilityTrends: []domain.TrendPoint{},
	}

	if raw.SecurityMetrics != nil {
		for _, cat := range raw.SecurityMetrics.OwaspTop10 {
			out.OwaspAnalysis = append(out.OwaspAnalysis, domain.OwaspCategory{
				Category: cat.Category,
				Count:    cat.Count,
				Severity: cat.Severity,
			})
		}
	}

	if raw.CodeQualityMetrics != nil {
		out.CodeQuality = domain.CodeQualityMetrics{
			CoveragePercent:    raw.CodeQualityMetrics.CoveragePercent,
			DuplicationPercent: raw.CodeQualityMetrics.DuplicationPercent,
			Maintainability:    raw.CodeQualityMetrics.Maintainability,
			LinesOfCode:        raw.CodeQualityMetrics.LinesOfCode,
		}
		if raw.CodeQualityMetrics.TechnicalDebt != nil {
			out.TechnicalDebtDetailed = computeTechnicalDebt(*raw.CodeQualityMetrics.TechnicalDebt, debt)
		}
	}

	for k, v := range raw.ComplianceScores {
		out.ComplianceScores[k] = v
	}

	for _, p := range raw.VulnerabilityTrends {
		out.VulnerabilityTrends = append(out.VulnerabilityTrends, domain.TrendPoint{
			Date:     p.Date,
			Critical: p.Critical,
			High:     p.High,
			Medium:   p.Medium,
			Low:      p.Low,
			Total:    p.Total,
		})
	}
	out.TrendSummary = summarizeTrends(out.VulnerabilityTrends)

	if raw.TeamMetrics != nil {
		out.TeamMetrics = domain.TeamMetrics{
			ActiveDevelopers:   raw.TeamMetrics.ActiveDevelopers,
			ScansPerWeek:       raw.TeamMetrics.ScansPerWeek,
			AvgRemediationDays: raw.TeamMetrics.AvgRemediationDays,
		}
	}

	return out
}

// computeTechnicalDebt converts outstanding severity counts into effort and
// cost estimates using the configured heuristics.
func computeTechnicalDebt(td gateway.RawTechnicalDebt, cfg domain.DebtConfig) *domain.TechnicalDebtDetail {
	buckets := []domain.DebtBucket{
		debtBucket("critical", td.CriticalCount, cfg.HoursCritical, cfg.HourlyRate),
		debtBucket("high", td.HighCount, cfg.HoursHigh, cfg.HourlyRate),
		debtBucket("medium", td.MediumCount, cfg.HoursMedium, cfg.HourlyRate),
		debtBucket("low", td.LowCount, cfg.HoursLow, cfg.HourlyRate),
	}
	var totalHours, totalCost float64
	for _, b := range buckets {
		totalHours += b.Hours
		totalCost += b.Cost
	}
	divisor := float64(td.TotalVulnerabilities)
	if divisor < 1 {
		divisor = 1
	}
	detail := &domain.TechnicalDebtDetail{
		Buckets:    buckets,
		TotalHours: totalHours,
		TotalCost:  totalCost,
		DebtRatio:  totalHours / divisor,
		ROI: domain.DebtROI{
			MaintenanceSavings: totalCost * cfg.MaintenancePct,
			RiskReductionValue: totalCost * cfg.RiskReductionPct,
			ProductivityGain:   totalCost * cfg.ProductivityPct,
		},
	}
	if cfg.SprintHours > 0 {
		detail.EstimatedSprintImpact = int(math.Round(totalHours / cfg.SprintHours))
	}
	return detail
}

func debtBucket(severity string, count int, hoursEach, rate float64) domain.DebtBucket {
	hours := float64(count) * hoursEach
	return domain.DebtBucket{
		Severity: severity,
		Count:    count,
		Hours:    hours,
		Cost:     hours * rate,
	}
}

// summarizeTrends computes descriptive statistics over the trend totals.
// Returns nil for an empty series.
func summarizeTrends(points []domain.TrendPoint) *domain.TrendSummary {
	if len(points) == 0 {
		return nil
	}
	totals := make([]float64, 0, len(points))
	for _, p := range points {
		totals = append(totals, float64(p.Total))
	}
	mean, err := stats.Mean(totals)
	if err != nil {
		return nil
	}
	minTotal, err := stats.Min(totals)
	if err != nil {
		return nil
	}
	maxTotal, err := stats.Max(totals)
	if err != nil {
		return nil
	}
	return &domain.TrendSummary{MeanTotal: mean, MinTotal: minTotal, MaxTotal: maxTotal}
}

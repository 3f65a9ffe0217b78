package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkamada/scanboard/internal/domain"
	"github.com/mkamada/scanboard/internal/gateway"
)

func TestTransformMetrics_EmptyPayload(t *testing.T) {
	out := TransformMetrics(gateway.RawSecurityOverview{}, domain.DefaultDebtConfig())

	assert.Empty(t, out.OwaspAnalysis)
	assert.Empty(t, out.ComplianceScores)
	assert.Empty(t, out.VulnerabilityTrends)
	assert.Nil(t, out.TrendSummary)
	assert.Nil(t, out.TechnicalDebtDetailed)
	assert.Equal(t, domain.CodeQualityMetrics{}, out.CodeQuality)
	assert.Equal(t, domain.TeamMetrics{}, out.TeamMetrics)
}

func TestTransformMetrics_FieldRenames(t *testing.T) {
	coverage := 81.5
	raw := gateway.RawSecurityOverview{
		SecurityMetrics: &gateway.RawSecurityMetrics{
			RiskLevel: "medium",
			OwaspTop10: []gateway.RawOwaspCategory{
				{Category: "A01: Broken Access Control", Count: 4, Severity: "high"},
			},
		},
		CodeQualityMetrics: &gateway.RawCodeQualityMetrics{
			CoveragePercent: &coverage,
			Maintainability: "B",
			LinesOfCode:     52000,
		},
		ComplianceScores: map[string]float64{"PCI-DSS": 92.0, "SOC2": 88.5},
		VulnerabilityTrends: []gateway.RawTrendPoint{
			{Date: "2025-06-01", Critical: 1, High: 2, Medium: 3, Low: 4, Total: 10},
			{Date: "2025-06-08", Critical: 0, High: 1, Medium: 2, Low: 3, Total: 6},
		},
		TeamMetrics: &gateway.RawTeamMetrics{
			ActiveDevelopers:   7,
			ScansPerWeek:       12.5,
			AvgRemediationDays: 3.2,
		},
	}

	out := TransformMetrics(raw, domain.DefaultDebtConfig())

	require.Len(t, out.OwaspAnalysis, 1)
	assert.Equal(t, domain.OwaspCategory{Category: "A01: Broken Access Control", Count: 4, Severity: "high"}, out.OwaspAnalysis[0])

	require.NotNil(t, out.CodeQuality.CoveragePercent)
	assert.InDelta(t, 81.5, *out.CodeQuality.CoveragePercent, 0.001)
	assert.Equal(t, "B", out.CodeQuality.Maintainability)
	assert.Equal(t, 52000, out.CodeQuality.LinesOfCode)

	assert.Equal(t, map[string]float64{"PCI-DSS": 92.0, "SOC2": 88.5}, out.ComplianceScores)

	require.Len(t, out.VulnerabilityTrends, 2)
	assert.Equal(t, "2025-06-01", out.VulnerabilityTrends[0].Date)
	assert.Equal(t, 10, out.VulnerabilityTrends[0].Total)

	require.NotNil(t, out.TrendSummary)
	assert.InDelta(t, 8.0, out.TrendSummary.MeanTotal, 0.001)
	assert.InDelta(t, 6.0, out.TrendSummary.MinTotal, 0.001)
	assert.InDelta(t, 10.0, out.TrendSummary.MaxTotal, 0.001)

	assert.Equal(t, 7, out.TeamMetrics.ActiveDevelopers)
	assert.InDelta(t, 12.5, out.TeamMetrics.ScansPerWeek, 0.001)

	// No technical_debt block, no derived detail.
	assert.Nil(t, out.TechnicalDebtDetailed)
}

func TestTransformMetrics_TechnicalDebt(t *testing.T) {
	raw := gateway.RawSecurityOverview{
		CodeQualityMetrics: &gateway.RawCodeQualityMetrics{
			TechnicalDebt: &gateway.RawTechnicalDebt{
				CriticalCount:        10,
				HighCount:            4,
				MediumCount:          2,
				LowCount:             8,
				TotalVulnerabilities: 24,
			},
		},
	}

	out := TransformMetrics(raw, domain.DefaultDebtConfig())
	detail := out.TechnicalDebtDetailed
	require.NotNil(t, detail)

	// 10*16 + 4*8 + 2*4 + 8*1 = 208 hours, at 85/hour = 17680.
	assert.InDelta(t, 208.0, detail.TotalHours, 0.001)
	assert.InDelta(t, 17680.0, detail.TotalCost, 0.001)
	assert.InDelta(t, 208.0/24.0, detail.DebtRatio, 0.001)
	// round(208 / 80) = 3 sprints.
	assert.Equal(t, 3, detail.EstimatedSprintImpact)

	assert.InDelta(t, 17680.0*0.30, detail.ROI.MaintenanceSavings, 0.001)
	assert.InDelta(t, 17680.0*0.50, detail.ROI.RiskReductionValue, 0.001)
	assert.InDelta(t, 17680.0*0.20, detail.ROI.ProductivityGain, 0.001)

	require.Len(t, detail.Buckets, 4)
	assert.Equal(t, domain.DebtBucket{Severity: "critical", Count: 10, Hours: 160, Cost: 13600}, detail.Buckets[0])
	assert.Equal(t, domain.DebtBucket{Severity: "low", Count: 8, Hours: 8, Cost: 680}, detail.Buckets[3])
}

func TestTransformMetrics_DebtRatioFloorsDivisor(t *testing.T) {
	// Zero reported vulnerabilities must not divide by zero.
	raw := gateway.RawSecurityOverview{
		CodeQualityMetrics: &gateway.RawCodeQualityMetrics{
			TechnicalDebt: &gateway.RawTechnicalDebt{CriticalCount: 1},
		},
	}
	out := TransformMetrics(raw, domain.DefaultDebtConfig())
	require.NotNil(t, out.TechnicalDebtDetailed)
	assert.InDelta(t, 16.0, out.TechnicalDebtDetailed.DebtRatio, 0.001)
}

func TestTransformMetrics_ConfigurableHeuristics(t *testing.T) {
	cfg := domain.DebtConfig{
		HoursCritical: 2, HoursHigh: 1, HoursMedium: 1, HoursLow: 1,
		HourlyRate: 100, SprintHours: 10,
		MaintenancePct: 0.5, RiskReductionPct: 0.25, ProductivityPct: 0.25,
	}
	raw := gateway.RawSecurityOverview{
		CodeQualityMetrics: &gateway.RawCodeQualityMetrics{
			TechnicalDebt: &gateway.RawTechnicalDebt{CriticalCount: 5, TotalVulnerabilities: 5},
		},
	}
	detail := TransformMetrics(raw, cfg).TechnicalDebtDetailed
	require.NotNil(t, detail)
	assert.InDelta(t, 10.0, detail.TotalHours, 0.001)
	assert.InDelta(t, 1000.0, detail.TotalCost, 0.001)
	assert.Equal(t, 1, detail.EstimatedSprintImpact)
	assert.InDelta(t, 500.0, detail.ROI.MaintenanceSavings, 0.001)
}

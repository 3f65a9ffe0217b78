package domain

// CodeQualityMetrics is the normalized code-quality block of the advanced
// metrics payload.
type CodeQualityMetrics struct {
	CoveragePercent    *float64 `json:"coveragePercent,omitempty"`
	DuplicationPercent *float64 `json:"duplicationPercent,omitempty"`
	Maintainability    string   `json:"maintainability,omitempty"`
	LinesOfCode        int      `json:"linesOfCode,omitempty"`
}

// OwaspCategory is one OWASP Top 10 category with its finding count.
type OwaspCategory struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Severity string `json:"severity"`
}

// TrendPoint is one sample of the vulnerability trend series.
type TrendPoint struct {
	Date     string `json:"date"`
	Critical int    `json:"critical"`
	High     int    `json:"high"`
	Medium   int    `json:"medium"`
	Low      int    `json:"low"`
	Total    int    `json:"total"`
}

// TrendSummary carries descriptive statistics over the trend totals.
type TrendSummary struct {
	MeanTotal float64 `json:"meanTotal"`
	MinTotal  float64 `json:"minTotal"`
	MaxTotal  float64 `json:"maxTotal"`
}

// TeamMetrics is the normalized team activity block.
type TeamMetrics struct {
	ActiveDevelopers   int     `json:"activeDevelopers"`
	ScansPerWeek       float64 `json:"scansPerWeek"`
	AvgRemediationDays float64 `json:"avgRemediationDays"`
}

// DebtBucket is the estimated remediation effort for one severity level.
type DebtBucket struct {
	Severity string  `json:"severity"`
	Count    int     `json:"count"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
}

// DebtROI splits the total remediation cost into projected returns.
type DebtROI struct {
	MaintenanceSavings float64 `json:"maintenanceSavings"`
	RiskReductionValue float64 `json:"riskReductionValue"`
	ProductivityGain   float64 `json:"productivityGain"`
}

// TechnicalDebtDetail is the computed technical-debt estimate. It is only
// present when the backend reported a technical_debt block.
type TechnicalDebtDetail struct {
	Buckets               []DebtBucket `json:"buckets"`
	TotalHours            float64      `json:"totalHours"`
	TotalCost             float64      `json:"totalCost"`
	DebtRatio             float64      `json:"debtRatio"`
	EstimatedSprintImpact int          `json:"estimatedSprintImpact"`
	ROI                   DebtROI      `json:"roi"`
}

// AdvancedMetrics is the normalized bundle produced once per fetch cycle
// from the backend security-overview payload. Missing backend sections leave
// zero-value blocks rather than failing the transform.
type AdvancedMetrics struct {
	CodeQuality           CodeQualityMetrics   `json:"codeQuality"`
	OwaspAnalysis         []OwaspCategory      `json:"owaspAnalysis"`
	ComplianceScores      map[string]float64   `json:"complianceScores"`
	VulnerabilityTrends   []TrendPoint         `json:"vulnerabilityTrends"`
	TrendSummary          *TrendSummary        `json:"trendSummary,omitempty"`
	TeamMetrics           TeamMetrics          `json:"teamMetrics"`
	TechnicalDebtDetailed *TechnicalDebtDetail `json:"technicalDebtDetailed,omitempty"`
}

// DebtConfig names the heuristics behind the technical-debt estimate:
// remediation hours per severity, a blended hourly rate, hours per sprint,
// and the ROI split of the total cost.
type DebtConfig struct {
	HoursCritical    float64
	HoursHigh        float64
	HoursMedium      float64
	HoursLow         float64
	HourlyRate       float64
	SprintHours      float64
	MaintenancePct   float64
	RiskReductionPct float64
	ProductivityPct  float64
}

// DefaultDebtConfig returns the stock heuristics: 16/8/4/1 hours per
// critical/high/medium/low finding, 85 per hour, 80-hour sprints, and a
// 30/50/20 maintenance/risk/productivity ROI split.
func DefaultDebtConfig() DebtConfig {
	return DebtConfig{
		HoursCritical:    16,
		HoursHigh:        8,
		HoursMedium:      4,
		HoursLow:         1,
		HourlyRate:       85,
		SprintHours:      80,
		MaintenancePct:   0.30,
		RiskReductionPct: 0.50,
		ProductivityPct:  0.20,
	}
}

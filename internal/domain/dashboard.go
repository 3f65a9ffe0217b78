package domain

import "time"

// ActivityStatus classifies an activity feed entry for presentation.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityWarning ActivityStatus = "warning"
	ActivityInfo    ActivityStatus = "info"
)

// ScanFamily tags a record with the scan stream it came from.
type ScanFamily string

const (
	FamilyStandard ScanFamily = "standard"
	FamilyCustom   ScanFamily = "custom"
)

// VulnerabilityTypeEntry is one labeled, severity-tagged vulnerability
// category with its accumulated count. Entries with a zero count are never
// emitted.
type VulnerabilityTypeEntry struct {
	Type         string     `json:"type"`
	Count        int        `json:"count"`
	Severity     string     `json:"severity"`
	ScanType     ScanFamily `json:"scanType"`
	RepositoryID int64      `json:"repositoryId,omitempty"`
}

// ActivityEntry is one row of the merged scan activity feed.
type ActivityEntry struct {
	ID             string         `json:"id"`
	Action         string         `json:"action"`
	Time           string         `json:"time"`
	Timestamp      time.Time      `json:"timestamp"`
	Status         ActivityStatus `json:"status"`
	ScanType       ScanFamily     `json:"scanType"`
	RepositoryName string         `json:"repositoryName"`
	RepositoryID   int64          `json:"repositoryId"`
}

// CustomScanStats summarizes the custom-scan stream inside the selected
// window.
type CustomScanStats struct {
	TotalCustomScans          int `json:"totalCustomScans"`
	ActiveCustomScans         int `json:"activeCustomScans"`
	CustomScanVulnerabilities int `json:"customScanVulnerabilities"`
	CustomScanCritical        int `json:"customScanCritical"`
}

// DashboardData is the single normalized value the presentation layer
// consumes: one security score, the categorized vulnerability counts, the
// bounded activity feed, the custom-scan counters, and the reshaped advanced
// metrics, all derived from the same window and repository selection.
type DashboardData struct {
	GeneratedAt        time.Time                `json:"generatedAt"`
	Window             TimeFilter               `json:"window"`
	Repository         string                   `json:"repository"`
	SecurityScore      int                      `json:"securityScore"`
	TotalRepositories  int                      `json:"totalRepositories"`
	TotalScans         int                      `json:"totalScans"`
	VulnerabilityTypes []VulnerabilityTypeEntry `json:"vulnerabilityTypes"`
	RecentActivity     []ActivityEntry          `json:"recentActivity"`
	CustomScanStats    CustomScanStats          `json:"customScanStats"`
	AdvancedMetrics    AdvancedMetrics          `json:"advancedMetrics"`
}

package usecase

import (
	"time"

	"github.com/mkamada/scanboard/internal/domain"
)

// AggregateCustomScanStats summarizes the custom-scan stream inside the
// window and selection: total volume, in-flight count, and vulnerability
// totals. Missing counts contribute zero.
func AggregateCustomScanStats(customScans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) domain.CustomScanStats {
	var out domain.CustomScanStats
	for _, scan := range filterCustomScans(customScans, window, selector, now) {
		out.TotalCustomScans++
		if scan.Status == domain.ScanRunning {
			out.ActiveCustomScans++
		}
		out.CustomScanVulnerabilities += scan.TotalVulnerabilities
		out.CustomScanCritical += scan.CriticalCount
	}
	return out
}

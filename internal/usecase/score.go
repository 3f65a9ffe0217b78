package usecase

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/mkamada/scanboard/internal/domain"
)

// Severity weights for the per-scan vulnerability load.
const (
	weightCritical = 10
	weightHigh     = 7
	weightMedium   = 4
	weightLow      = 1
)

const (
	maxPenalty   = 85
	penaltyScale = 3
	floorScore   = 15
	fullScore    = 100
)

// SecurityScore derives the single 0-100 security score from all scan
// records, standard and custom, inside the window and selection.
//
// Each scan scores between 15 and 100: a clean scan scores 100, otherwise
// the weighted load (critical*10 + high*7 + medium*4 + low*1) is tripled,
// capped at 85, and subtracted from 100. The overall score is the rounded
// mean. An empty record set scores exactly 100: no evidence of risk defaults
// to fully secure.
func SecurityScore(repos []domain.Repository, customScans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) int {
	records := collectScanRecords(repos, customScans, window, selector, now)
	if len(records) == 0 {
		return fullScore
	}
	scores := make([]float64, 0, len(records))
	for _, scan := range records {
		scores = append(scores, perScanScore(scan))
	}
	mean, err := stats.Mean(scores)
	if err != nil {
		return fullScore
	}
	return int(math.Round(mean))
}

// collectScanRecords builds the unified scan list both the score and the
// total-scan count are computed from.
func collectScanRecords(repos []domain.Repository, customScans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) []domain.Scan {
	var records []domain.Scan
	for _, repo := range filterRepositories(repos, window, selector, now) {
		if repo.LatestScan != nil {
			records = append(records, *repo.LatestScan)
		}
	}
	for _, scan := range filterCustomScans(customScans, window, selector, now) {
		records = append(records, scan.Scan)
	}
	return records
}

func perScanScore(scan domain.Scan) float64 {
	if scan.TotalVulnerabilities == 0 {
		return fullScore
	}
	load := scan.CriticalCount*weightCritical +
		scan.HighCount*weightHigh +
		scan.MediumCount*weightMedium +
		scan.LowCount*weightLow
	penalty := math.Min(maxPenalty, float64(load*penaltyScale))
	return math.Max(floorScore, fullScore-penalty)
}

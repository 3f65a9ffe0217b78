// Package usecase contains the business logic of the application: the pure
// aggregation functions over scan records and the dashboard orchestrator
// that feeds them.
package usecase

import (
	"time"

	"github.com/mkamada/scanboard/internal/domain"
)

// filterRepositories returns the repositories matching the selector whose
// latest scan falls inside the window. Repositories without a latest scan
// are kept; they simply contribute no scan record downstream.
func filterRepositories(repos []domain.Repository, window domain.TimeFilter, selector string, now time.Time) []domain.Repository {
	out := make([]domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if !domain.SelectorMatches(selector, repo.ID) {
			continue
		}
		if repo.LatestScan != nil && !window.Includes(repo.LatestScan.StartedAt.Time, now) {
			continue
		}
		out = append(out, repo)
	}
	return out
}

// filterCustomScans returns the custom scans matching the selector whose
// start time falls inside the window.
func filterCustomScans(scans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) []domain.CustomScanResult {
	out := make([]domain.CustomScanResult, 0, len(scans))
	for _, scan := range scans {
		if !domain.SelectorMatches(selector, scan.RepositoryID) {
			continue
		}
		if !window.Includes(scan.StartedAt.Time, now) {
			continue
		}
		out = append(out, scan)
	}
	return out
}

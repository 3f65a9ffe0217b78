package usecase

import (
	"time"

	"github.com/mkamada/scanboard/internal/domain"
)

// Canonical display labels per severity. These are fixed presentation
// labels, not derived from scan findings.
var standardLabels = [4]string{"SQL Injection", "XSS", "CSRF", "Outdated Dependencies"}

var customLabels = [4]string{
	"Custom Rule - Critical",
	"Custom Rule - High",
	"Custom Rule - Medium",
	"Custom Rule - Low",
}

var severityNames = [4]string{"critical", "high", "medium", "low"}

// ClassifyVulnerabilities maps the severity counts of every in-scope scan
// onto labeled categories and accumulates them per label. The same label
// from different repositories sums together, keeping the last-seen
// repository id. Labels that accumulate a zero count are dropped. Output
// order is insertion order: standard categories in the repository order they
// were first seen, then custom categories.
func ClassifyVulnerabilities(repos []domain.Repository, customScans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) []domain.VulnerabilityTypeEntry {
	acc := newTypeAccumulator()
	for _, repo := range filterRepositories(repos, window, selector, now) {
		if repo.LatestScan == nil {
			continue
		}
		acc.add(*repo.LatestScan, standardLabels, domain.FamilyStandard, repo.ID)
	}
	for _, scan := range filterCustomScans(customScans, window, selector, now) {
		acc.add(scan.Scan, customLabels, domain.FamilyCustom, scan.RepositoryID)
	}
	return acc.entries()
}

// typeAccumulator keeps per-label totals in insertion order.
type typeAccumulator struct {
	index map[string]int
	order []domain.VulnerabilityTypeEntry
}

func newTypeAccumulator() *typeAccumulator {
	return &typeAccumulator{index: make(map[string]int)}
}

func (a *typeAccumulator) add(scan domain.Scan, labels [4]string, family domain.ScanFamily, repoID int64) {
	counts := [4]int{scan.CriticalCount, scan.HighCount, scan.MediumCount, scan.LowCount}
	for i, count := range counts {
		a.bump(labels[i], count, severityNames[i], family, repoID)
	}
}

func (a *typeAccumulator) bump(label string, count int, severity string, family domain.ScanFamily, repoID int64) {
	if i, ok := a.index[label]; ok {
		a.order[i].Count += count
		a.order[i].Severity = severity
		a.order[i].ScanType = family
		a.order[i].RepositoryID = repoID
		return
	}
	a.index[label] = len(a.order)
	a.order = append(a.order, domain.VulnerabilityTypeEntry{
		Type:         label,
		Count:        count,
		Severity:     severity,
		ScanType:     family,
		RepositoryID: repoID,
	})
}

// entries returns the accumulated categories with zero-count labels
// removed.
func (a *typeAccumulator) entries() []domain.VulnerabilityTypeEntry {
	out := make([]domain.VulnerabilityTypeEntry, 0, len(a.order))
	for _, entry := range a.order {
		if entry.Count > 0 {
			out = append(out, entry)
		}
	}
	return out
}

package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/mkamada/scanboard/internal/domain"
)

// maxActivityEntries bounds the merged feed.
const maxActivityEntries = 5

// displayTimeLayout is the hour:minute form shown in the feed.
const displayTimeLayout = "15:04"

// BuildActivityFeed merges scan events from both families into a single
// ranked timeline of at most five entries, most recent first. Entries are
// ordered by the underlying event timestamp (completion time when present,
// start time otherwise), not by the formatted display time, so feeds
// spanning multiple days stay correctly ordered.
func BuildActivityFeed(repos []domain.Repository, customScans []domain.CustomScanResult, window domain.TimeFilter, selector string, now time.Time) []domain.ActivityEntry {
	entries := make([]domain.ActivityEntry, 0, len(repos)+len(customScans))

	for _, repo := range filterRepositories(repos, window, selector, now) {
		if repo.LatestScan == nil {
			continue
		}
		scan := *repo.LatestScan
		entries = append(entries, domain.ActivityEntry{
			ID:             fmt.Sprintf("scan-%d", scan.ID),
			Action:         fmt.Sprintf("%s scan %s", repo.Name, scanVerb(scan)),
			Time:           eventTime(scan).Format(displayTimeLayout),
			Timestamp:      eventTime(scan),
			Status:         activityStatus(scan),
			ScanType:       domain.FamilyStandard,
			RepositoryName: repo.Name,
			RepositoryID:   repo.ID,
		})
	}

	for _, scan := range filterCustomScans(customScans, window, selector, now) {
		entries = append(entries, domain.ActivityEntry{
			ID:             fmt.Sprintf("custom-%d", scan.ID),
			Action:         fmt.Sprintf("Custom scan for %s %s", scan.RepositoryName, scanVerb(scan.Scan)),
			Time:           eventTime(scan.Scan).Format(displayTimeLayout),
			Timestamp:      eventTime(scan.Scan),
			Status:         activityStatus(scan.Scan),
			ScanType:       domain.FamilyCustom,
			RepositoryName: scan.RepositoryName,
			RepositoryID:   scan.RepositoryID,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > maxActivityEntries {
		entries = entries[:maxActivityEntries]
	}
	return entries
}

// eventTime is the completion time when the scan finished, otherwise the
// start time.
func eventTime(scan domain.Scan) time.Time {
	if !scan.CompletedAt.IsZero() {
		return scan.CompletedAt.Time
	}
	return scan.StartedAt.Time
}

func scanVerb(scan domain.Scan) string {
	if scan.Status == domain.ScanCompleted {
		return "completed"
	}
	return "started"
}

func activityStatus(scan domain.Scan) domain.ActivityStatus {
	switch {
	case scan.Status == domain.ScanCompleted && scan.TotalVulnerabilities == 0:
		return domain.ActivitySuccess
	case scan.Status == domain.ScanCompleted:
		return domain.ActivityWarning
	default:
		return domain.ActivityInfo
	}
}

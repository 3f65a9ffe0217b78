package usecase

import (
	"time"

	"github.com/mkamada/scanboard/internal/domain"
)

// testNow is the fixed reference time used across the usecase tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func at(t time.Time) domain.Timestamp {
	return domain.Timestamp{Time: t}
}

type counts struct {
	critical, high, medium, low int
}

func testScan(id int64, status domain.ScanStatus, started time.Time, c counts) domain.Scan {
	return domain.Scan{
		ID:                   id,
		Status:               status,
		StartedAt:            at(started),
		CriticalCount:        c.critical,
		HighCount:            c.high,
		MediumCount:          c.medium,
		LowCount:             c.low,
		TotalVulnerabilities: c.critical + c.high + c.medium + c.low,
	}
}

func testRepo(id int64, name string, latest *domain.Scan) domain.Repository {
	if latest != nil {
		latest.RepositoryID = id
	}
	return domain.Repository{ID: id, Name: name, LatestScan: latest}
}

func testCustomScan(id, repoID int64, repoName string, status domain.ScanStatus, started time.Time, c counts) domain.CustomScanResult {
	scan := testScan(id, status, started, c)
	scan.RepositoryID = repoID
	return domain.CustomScanResult{
		Scan:           scan,
		RepositoryName: repoName,
		RulesUsed:      3,
		FilesScanned:   120,
	}
}

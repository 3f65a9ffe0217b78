// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strconv"
	"time"
)

// ScanStatus is the lifecycle state of a scan as reported by the backend.
type ScanStatus string

const (
	ScanPending   ScanStatus = "pending"
	ScanRunning   ScanStatus = "running"
	ScanCompleted ScanStatus = "completed"
	ScanFailed    ScanStatus = "failed"
)

// Timestamp is a lenient RFC 3339 timestamp. The backend occasionally emits
// malformed or empty date strings; those decode to the zero time instead of
// failing the whole payload, and a zero time is excluded by every bounded
// time window.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON accepts an RFC 3339 string, null, or garbage. Only the first
// form produces a non-zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}

// MarshalJSON emits RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(t.Format(time.RFC3339))), nil
}

// Scan is a single standard scan run against a repository.
// TotalVulnerabilities is expected to equal the sum of the four severity
// counts; consumers sum whatever counts are present and never rely on it.
type Scan struct {
	ID                   int64      `json:"id"`
	Status               ScanStatus `json:"status"`
	StartedAt            Timestamp  `json:"started_at"`
	CompletedAt          Timestamp  `json:"completed_at"`
	CriticalCount        int        `json:"critical_count"`
	HighCount            int        `json:"high_count"`
	MediumCount          int        `json:"medium_count"`
	LowCount             int        `json:"low_count"`
	TotalVulnerabilities int        `json:"total_vulnerabilities"`
	SecurityScore        *int       `json:"security_score,omitempty"`
	RepositoryID         int64      `json:"repository_id"`
	UserID               int64      `json:"user_id"`
}

// CustomScanResult is a scan run with user-supplied rules. It is tracked as
// an independent record stream from standard scans and denormalizes the
// repository name plus rule metadata.
type CustomScanResult struct {
	Scan
	RepositoryName string `json:"repository_name"`
	RulesUsed      int    `json:"rules_used"`
	FilesScanned   int    `json:"files_scanned"`
}

// Repository is a connected code repository. Owned by the backend and
// read-only to the aggregation core.
type Repository struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	UserID               int64     `json:"user_id"`
	LatestScan           *Scan     `json:"latest_scan,omitempty"`
	TotalVulnerabilities *int      `json:"total_vulnerabilities,omitempty"`
	SecurityScore        *int      `json:"security_score,omitempty"`
	CreatedAt            Timestamp `json:"created_at"`
}

// AllRepositories is the repository selector value that matches every
// repository.
const AllRepositories = "all"

// SelectorMatches reports whether the repository selector ("all", empty, or a
// decimal repository id) matches the given repository id.
func SelectorMatches(selector string, repoID int64) bool {
	if selector == "" || selector == AllRepositories {
		return true
	}
	id, err := strconv.ParseInt(selector, 10, 64)
	if err != nil {
		return false
	}
	return id == repoID
}

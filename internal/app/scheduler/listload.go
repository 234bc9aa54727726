// internal/app/scheduler/listload.go
package scheduler

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// LineError describes one rejected line from a bulk role-list load.
type LineError struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// BulkReport summarizes a bulk role-list load. Malformed lines are
// reported individually and never abort the ingestion.
type BulkReport struct {
	Loaded   int         `json:"loaded"`
	Skipped  int         `json:"skipped"`
	Failures []LineError `json:"failures,omitempty"`
}

// ParseIDList reads an ID-per-line role list: blank lines and lines
// starting with '#' are skipped, every other line must be a numeric user
// ID. It returns the parsed IDs alongside a per-line report; a read error
// on the underlying source is the only fatal outcome.
func ParseIDList(r io.Reader) ([]int64, BulkReport, error) {
	var (
		ids    []int64
		report BulkReport
	)

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			report.Skipped++
			continue
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			report.Failures = append(report.Failures, LineError{
				Line:   line,
				Text:   text,
				Reason: "not a numeric user ID",
			})
			continue
		}
		ids = append(ids, id)
		report.Loaded++
	}
	if err := sc.Err(); err != nil {
		return nil, report, err
	}
	return ids, report, nil
}

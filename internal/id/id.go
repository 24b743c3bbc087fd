package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatRunID returns an import-run ID like "IMP-20250105-001".
func FormatRunID(date time.Time, seq int) string {
	return fmt.Sprintf("IMP-%s-%03d", date.Format("20060102"), seq)
}

// ParseRunID parses "IMP-20250105-001" into its date and sequence number.
func ParseRunID(id string) (date time.Time, seq int, err error) {
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != "IMP" {
		return time.Time{}, 0, fmt.Errorf("invalid run ID format: %q", id)
	}

	date, err = time.Parse("20060102", parts[1])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date in run ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in run ID %q: %w", id, err)
	}

	return date, seq, nil
}

// NextRunSeq returns the next sequence number for date given the run IDs seen
// so far (typically from the import log).
func NextRunSeq(date time.Time, seen []string) int {
	day := date.Format("20060102")
	maxSeq := 0
	for _, id := range seen {
		d, seq, err := ParseRunID(id)
		if err != nil {
			continue
		}
		if d.Format("20060102") == day && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}

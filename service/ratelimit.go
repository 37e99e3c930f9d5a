// Package service holds the pure logic behind the HTTP handlers:
// rate-limit accounting and video chunk selection
package service

import "time"

const (
	// SubmissionLimit is the number of email submissions allowed per
	// IP within SubmissionWindow.
	SubmissionLimit  = 5
	SubmissionWindow = time.Hour

	// CounterTTL is the store-enforced expiry on a rate-limit counter
	// key, refreshed on every write.
	CounterTTL = time.Hour
)

// Throttled reports whether an IP with the given submission history is
// currently over the limit. History entries are epoch milliseconds;
// only entries inside the trailing window count.
func Throttled(history []int64, now time.Time) bool {
	cutoff := now.Add(-SubmissionWindow).UnixMilli()

	count := 0
	for _, ts := range history {
		if ts > cutoff {
			count++
		}
	}

	return count >= SubmissionLimit
}

// RecordSubmission returns the history to persist after a successful
// submission at now. Stale entries are intentionally not pruned here:
// filtering happens only at read time in Throttled, and the key's TTL
// bounds growth. Keep it that way.
func RecordSubmission(history []int64, now time.Time) []int64 {
	return append(history, now.UnixMilli())
}

// Package model contains the data shapes stored in and read from the
// key-value store
package model

import (
	"math/rand"
	"time"
)

// UserRecord is a target's profile snapshot. Records are written by an
// external pipeline; this service only reads them, keyed by the
// sanitized username.
type UserRecord struct {
	Username      string  `json:"username"`
	UserID        string  `json:"user_id"`
	Followers     int64   `json:"followers"`
	Following     int64   `json:"following"`
	PostsCount    int64   `json:"posts_count"`
	AvgEngagement float64 `json:"avg_engagement"`
	VideoSent     string  `json:"video_sent"`
	SentAt        string  `json:"sent_at"`
	Clicked       bool    `json:"clicked"`
}

// DemoUser returns a built-in record for the given username, or nil.
// These back the page when no store is configured or the store has no
// entry. The delivery timestamp is generated 5-30 minutes in the past
// so the click-latency readout stays plausible.
func DemoUser(username string) *UserRecord {
	minutesAgo := rand.Intn(25) + 5
	sentAt := time.Now().Add(-time.Duration(minutesAgo) * time.Minute).UTC().Format(time.RFC3339)

	switch username {
	case "testuser1":
		return &UserRecord{
			Username:      "testuser1",
			UserID:        "1234567",
			Followers:     1500,
			Following:     1200,
			PostsCount:    450,
			AvgEngagement: 0.0850,
			VideoSent:     "CHUNK_001",
			SentAt:        sentAt,
		}
	case "demouser":
		return &UserRecord{
			Username:      "demouser",
			UserID:        "9876543",
			Followers:     2300,
			Following:     890,
			PostsCount:    230,
			AvgEngagement: 0.1250,
			VideoSent:     "CHUNK_003",
			SentAt:        sentAt,
		}
	case "hackathon":
		return &UserRecord{
			Username:      "hackathon",
			UserID:        "5555555",
			Followers:     999,
			Following:     666,
			PostsCount:    333,
			AvgEngagement: 0.0999,
			VideoSent:     "CHUNK_005",
			SentAt:        sentAt,
		}
	}

	return nil
}

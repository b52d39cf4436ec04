package domain

import "time"

// Profile holds the account-level metrics fetched from the platform API.
type Profile struct {
	AccountID     string
	DisplayName   string
	Description   string
	CreatedAt     time.Time
	FollowerCount int64
}

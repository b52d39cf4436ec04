package domain

import "fmt"

// Platform identifies the external service an account lives on.
type Platform string

const (
	PlatformYouTube Platform = "YouTube"
	PlatformTwitter Platform = "Twitter"
)

// ParsePlatform validates a platform tag from config or CLI input.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformYouTube:
		return PlatformYouTube, nil
	case PlatformTwitter:
		return PlatformTwitter, nil
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// Account is one external platform entity tracked for import.
// The list of accounts is sourced once per run and immutable within it.
type Account struct {
	ID       string
	Platform Platform
	SourceID string
}

// Validate checks the invariants every sourced account must hold.
func (a *Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("account has empty id")
	}
	if _, err := ParsePlatform(string(a.Platform)); err != nil {
		return fmt.Errorf("account %s: %w", a.ID, err)
	}
	return nil
}

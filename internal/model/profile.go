package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultCurrencyCode is assigned to profiles created without an explicit
// currency preference.
const DefaultCurrencyCode = "INR"

// UserProfile holds the durable per-user settings and identity data.
type UserProfile struct {
	CreatedAt   time.Time
	LastUpdated time.Time
	UID         string
	FirstName   string
	LastName    string
	Email       string
	Currency    string
}

// Validate checks the profile invariants.
func (p *UserProfile) Validate() error {
	if p.UID == "" {
		return fmt.Errorf("profile uid is required")
	}
	if !emailPattern.MatchString(p.Email) {
		return fmt.Errorf("invalid email address: %q", p.Email)
	}
	return nil
}

// Symbol resolves the profile's currency code against the catalog, falling
// back to the default symbol for unknown codes.
func (p *UserProfile) Symbol() string {
	return CurrencySymbol(p.Currency)
}

// ProfileFromDisplayName builds a minimal profile from the identity
// provider's own display name, used when the profile store is unreachable.
func ProfileFromDisplayName(uid, email, displayName string) UserProfile {
	first := "User"
	last := ""
	if parts := strings.Fields(displayName); len(parts) > 0 {
		first = parts[0]
		if len(parts) > 1 {
			last = parts[1]
		}
	}
	return UserProfile{
		UID:       uid,
		Email:     email,
		FirstName: first,
		LastName:  last,
		Currency:  DefaultCurrencyCode,
	}
}

// ValidEmail reports whether addr looks like an email address.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

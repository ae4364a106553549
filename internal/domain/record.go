package domain

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

type DisciplinaryRecord struct {
	Reason     string
	Level      Level
	CreatedAt  time.Time
	ExpiryDate time.Time
}

// IsExpired reports whether now is strictly after the expiry date.
// A record is still active at the exact expiry instant.
func (r DisciplinaryRecord) IsExpired(now time.Time) bool {
	return IsExpired(r.ExpiryDate, now)
}

func IsExpired(expiry, now time.Time) bool {
	return now.After(expiry)
}

func ExpiryStatus(expiry, now time.Time) Status {
	if IsExpired(expiry, now) {
		return StatusExpired
	}
	return StatusActive
}

// ExpiryFrom adds expiryMonths 30-day months to createdAt. Callers keep
// expiryMonths within 0..MaxExpiryMonths.
func ExpiryFrom(createdAt time.Time, expiryMonths int) time.Time {
	return createdAt.AddDate(0, 0, expiryMonths*daysPerMonth)
}

// CanonicalTime is the single timestamp representation written to and read from the store:
// UTC at microsecond precision, which every supported engine keeps exactly.
func CanonicalTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

package holiday

import "time"

// Holiday is a company calendar entry, optionally scoped to a location.
// Only the batch reconcilers consult it; live clock-in/out does not.
type Holiday struct {
	ID         string
	CompanyID  string
	LocationID *string
	Date       time.Time
	Name       string
}

package challenge

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailyChallenge is the currently active challenge as served by the
// challenge service. The JSON field names (French) are the wire contract
// with that service and must not change.
type DailyChallenge struct {
	ID        uuid.UUID `json:"id"`
	StartDate time.Time `json:"dateDebut"`
	EndDate   time.Time `json:"dateFin"`
	Challenge Challenge `json:"challenge"`
}

type Challenge struct {
	Title       string `json:"titre"`
	Description string `json:"description"`
}

// Active reports whether the challenge window is still open at the
// given instant.
func (d *DailyChallenge) Active(now time.Time) bool {
	return now.Before(d.EndDate)
}

// Fetcher retrieves the currently active challenge from the challenge
// service. Implementations block until a reply arrives or ctx expires.
// A nil challenge with a nil error means no challenge is active.
type Fetcher interface {
	FetchCurrent(ctx context.Context, now time.Time) (*DailyChallenge, error)
}

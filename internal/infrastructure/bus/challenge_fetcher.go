package bus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/challenge"
)

// requestConn is the request/reply slice of *nats.Conn, extracted for tests.
type requestConn interface {
	RequestWithContext(ctx context.Context, subj string, data []byte) (*nats.Msg, error)
}

// ChallengeFetcher asks the challenge service for the currently active
// daily challenge over NATS request/reply. The request body is the caller's
// "now" as an RFC 3339 JSON string; the reply is the challenge document, or
// an empty/null body when no challenge window is open.
type ChallengeFetcher struct {
	conn    requestConn
	subject string
}

func NewChallengeFetcher(conn *nats.Conn, subject string) *ChallengeFetcher {
	return &ChallengeFetcher{conn: conn, subject: subject}
}

func (f *ChallengeFetcher) FetchCurrent(ctx context.Context, now time.Time) (*challenge.DailyChallenge, error) {
	payload, err := json.Marshal(now.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal challenge request: %w", err)
	}

	reply, err := f.conn.RequestWithContext(ctx, f.subject, payload)
	if err != nil {
		return nil, fmt.Errorf("challenge request on %s failed: %w", f.subject, err)
	}

	body := bytes.TrimSpace(reply.Data)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		// No challenge currently active
		return nil, nil
	}

	var current challenge.DailyChallenge
	if err := json.Unmarshal(body, &current); err != nil {
		return nil, fmt.Errorf("failed to decode challenge reply: %w", err)
	}

	return &current, nil
}

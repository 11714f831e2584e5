// Package bus wraps the NATS connection shared with the other
// Shot Your Pet services: the timeline fan-out subject and the challenge
// service request/reply subject.
package bus

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect opens the NATS connection used for both publishing publication
// events and querying the challenge service.
func Connect(url, appName string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(appName),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return nc, nil
}

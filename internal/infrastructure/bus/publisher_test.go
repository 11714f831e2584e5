package bus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shot-your-pet/publications-groupe9/internal/domains/post/model"
)

type fakePublishConn struct {
	err  error
	sent []*nats.Msg
}

func (f *fakePublishConn) PublishMsg(msg *nats.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func strPtr(s string) *string { return &s }

func TestPublishPostCreated_SendsOnConfiguredSubject(t *testing.T) {
	conn := &fakePublishConn{}
	publisher := &Publisher{conn: conn, subject: "timeline.events"}

	post := &model.Post{
		ID:          1,
		AuthorID:    uuid.MustParse("6eb6c444-fdf8-415d-b815-fb89469ad214"),
		ChallengeID: uuid.MustParse("42b6c444-fdf8-415d-b815-fb89469ad214"),
		Content:     strPtr("A new publication"),
		PublishedAt: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC),
		ImageID:     123,
	}

	require.NoError(t, publisher.PublishPostCreated(context.Background(), post))
	require.Len(t, conn.sent, 1)
	assert.Equal(t, "timeline.events", conn.sent[0].Subject)

	// The payload is the contract with the timeline consumers.
	assert.JSONEq(t, `{
		"type": "new_publication",
		"content": {
			"id": 1,
			"author_id": "6eb6c444-fdf8-415d-b815-fb89469ad214",
			"challenge_id": "42b6c444-fdf8-415d-b815-fb89469ad214",
			"content": "A new publication",
			"date": "2023-10-01T12:00:00Z",
			"image_id": 123
		}
	}`, string(conn.sent[0].Data))
}

func TestPublishPostCreated_PropagatesTransportError(t *testing.T) {
	conn := &fakePublishConn{err: errors.New("broker unavailable")}
	publisher := &Publisher{conn: conn, subject: "timeline.events"}

	err := publisher.PublishPostCreated(context.Background(), &model.Post{ID: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestLikeEvent_SchemaMatch(t *testing.T) {
	event := NewLikePublicationEvent(uuid.MustParse("6eb6c444-fdf8-415d-b815-fb89469ad214"), 1)

	data, err := json.Marshal(event)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "like",
		"content": {
			"author_id": "6eb6c444-fdf8-415d-b815-fb89469ad214",
			"post_id": 1
		}
	}`, string(data))
}

func TestPostEvent_NullContent(t *testing.T) {
	event := NewPostPublicationEvent(&model.Post{
		ID:          2,
		AuthorID:    uuid.MustParse("6eb6c444-fdf8-415d-b815-fb89469ad214"),
		ChallengeID: uuid.MustParse("42b6c444-fdf8-415d-b815-fb89469ad214"),
		PublishedAt: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC),
		ImageID:     9,
	})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "new_publication",
		"content": {
			"id": 2,
			"author_id": "6eb6c444-fdf8-415d-b815-fb89469ad214",
			"challenge_id": "42b6c444-fdf8-415d-b815-fb89469ad214",
			"content": null,
			"date": "2023-10-01T12:00:00Z",
			"image_id": 9
		}
	}`, string(data))
}

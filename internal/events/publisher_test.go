package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestLoanEvent_JSON(t *testing.T) {
	at := time.Date(2024, 8, 12, 14, 48, 41, 0, time.UTC)

	out, err := json.Marshal(LoanEvent{Type: BookReturned, BookID: 3, OccurredAt: at})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"returned","bookId":3,"occurredAt":"2024-08-12T14:48:41Z"}`, string(out))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), LoanEvent{Type: BookBorrowed}))
	assert.NoError(t, p.Close())
}

type recordingPublisher struct {
	got      []LoanEvent
	fail     error
	closeErr error
	closed   bool
}

func (r *recordingPublisher) Publish(_ context.Context, e LoanEvent) error {
	r.got = append(r.got, e)
	return r.fail
}

func (r *recordingPublisher) Close() error {
	r.closed = true
	return r.closeErr
}

func TestFanout(t *testing.T) {
	down := errors.New("redis down")
	broken := &recordingPublisher{fail: down, closeErr: down}
	healthy := &recordingPublisher{}
	f := Fanout{broken, healthy}

	err := f.Publish(context.Background(), LoanEvent{Type: BookBorrowed, BookID: 1, UserID: 2})
	assert.ErrorIs(t, err, down)
	assert.Len(t, broken.got, 1)
	assert.Len(t, healthy.got, 1, "a failing member must not starve the rest")

	assert.ErrorIs(t, f.Close(), down)
	assert.True(t, healthy.closed)

	assert.NoError(t, Fanout{}.Publish(context.Background(), LoanEvent{}))
}

func TestNewRedisPublisher_BadURL(t *testing.T) {
	_, err := NewRedisPublisher(context.Background(), "not a url", "library:loans")
	assert.ErrorContains(t, err, "parse redis url")
}

func TestRedisPublisher_DeliversToSubscribers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	publisher, err := NewRedisPublisher(ctx, url, "library:loans")
	require.NoError(t, err)
	defer publisher.Close()

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	subscriber := redis.NewClient(opts)
	defer subscriber.Close()

	sub := subscriber.Subscribe(ctx, "library:loans")
	defer sub.Close()
	_, err = sub.Receive(ctx) // subscription confirmation
	require.NoError(t, err)

	event := LoanEvent{Type: BookBorrowed, BookID: 1, UserID: 1, OccurredAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, publisher.Publish(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var got LoanEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event.Type, got.Type)
	assert.Equal(t, event.BookID, got.BookID)
	assert.Equal(t, event.UserID, got.UserID)
	assert.True(t, event.OccurredAt.Equal(got.OccurredAt))
}

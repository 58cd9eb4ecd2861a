//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"certledger/pkg/platform/events"
	"certledger/pkg/platform/events/kafka"
	"certledger/pkg/testutil/containers"
)

func TestPublisherRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redpanda := containers.NewRedpandaContainer(t)

	const topic = "certledger.registry.events.test"
	pub, err := kafka.New([]string{redpanda.Broker}, topic)
	require.NoError(t, err)
	t.Cleanup(pub.Close)

	require.NoError(t, pub.EnsureTopic(ctx))
	// EnsureTopic is idempotent across boots.
	require.NoError(t, pub.EnsureTopic(ctx))

	event := events.Event{
		Action:        events.ActionCertificateIssued,
		Timestamp:     time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		Actor:         "0xuni",
		Subject:       "0xstudent",
		CertificateID: 42,
		CourseID:      1,
		Grade:         85,
	}
	require.NoError(t, pub.Publish(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	t.Cleanup(consumer.Close)

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, "42", string(records[0].Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(records[0].Value, &decoded))
	require.Equal(t, string(events.ActionCertificateIssued), decoded["action"])
	require.Equal(t, "compliance", decoded["category"])
}

//go:build integration

package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"clubswim/internal/meet/events"
	"clubswim/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	brokers []string
	client  *kgo.Client
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.brokers = mgr.GetRedpanda(s.T()).Brokers

	client, err := events.NewClient(s.brokers, "clubswim-test")
	s.Require().NoError(err)
	s.client = client
}

func (s *KafkaPublisherSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *KafkaPublisherSuite) TestEnsureTopicIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(events.EnsureTopic(ctx, s.client, "meet-idempotent", 1, 1))
	s.Require().NoError(events.EnsureTopic(ctx, s.client, "meet-idempotent", 1, 1))
}

func (s *KafkaPublisherSuite) TestPublishedEventIsConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const topic = "meet-events"
	s.Require().NoError(events.EnsureTopic(ctx, s.client, topic, 3, 1))

	pub := events.NewKafkaPublisher(s.client, topic)
	sent := events.Event{
		Type:       events.ResultRecorded,
		EntityID:   "registration-1",
		OccurredAt: time.Now().UTC().Truncate(time.Millisecond),
		Attributes: map[string]string{"competition_id": "competition-1"},
	}
	s.Require().NoError(pub.Publish(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var record *kgo.Record
	for record == nil {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "no record consumed before deadline")
		fetches.EachRecord(func(r *kgo.Record) {
			if record == nil {
				record = r
			}
		})
	}

	s.Equal("registration-1", string(record.Key))
	s.Require().Len(record.Headers, 1)
	s.Equal("event_type", record.Headers[0].Key)
	s.Equal("result.recorded", string(record.Headers[0].Value))

	var got events.Event
	s.Require().NoError(json.Unmarshal(record.Value, &got))
	s.Equal(sent.Type, got.Type)
	s.Equal(sent.EntityID, got.EntityID)
	s.True(sent.OccurredAt.Equal(got.OccurredAt))
	s.Equal(sent.Attributes, got.Attributes)
}

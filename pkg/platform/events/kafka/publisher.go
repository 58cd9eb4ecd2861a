// Package kafka publishes registry events to a Kafka or Redpanda topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"certledger/pkg/platform/events"
)

// Publisher is a Kafka sink for registry events. Records are keyed by
// certificate ID so per-certificate ordering survives partitioning.
type Publisher struct {
	client *kgo.Client
	topic  string
}

func New(brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// EnsureTopic creates the topic when missing. Safe to call on every boot.
func (p *Publisher) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(p.client)
	_, err := adm.CreateTopic(ctx, 1, 1, nil, p.topic)
	if err != nil && !errors.Is(err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(struct {
		events.Event
		Category string `json:"category"`
	}{Event: event, Category: string(event.Action.Category())})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(strconv.FormatUint(uint64(event.CertificateID), 10)),
		Value: value,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Close()
}

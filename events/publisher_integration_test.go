//go:build integration

package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func TestKafkaPublisher_RoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.8.0",
		tckafka.WithClusterID("test-cluster"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	const topic = "orders.events.test"
	p := NewKafkaPublisher(brokers, topic)
	p.timeout = 30 * time.Second
	t.Cleanup(func() { _ = p.Close() })

	require.NoError(t, p.Publish(ctx, "order-1", sampleEvent{OrderID: "order-1", Status: "Pending"}))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	t.Cleanup(func() { _ = reader.Close() })

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	assert.Equal(t, "order-1", string(msg.Key))
	var got sampleEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "Pending", got.Status)
}

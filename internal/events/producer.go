// Package events publishes ride and driver-location events to Kafka.
// Publishing is best effort: a nil *Producer is a no-op so the server runs
// without a broker configured.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/example/ride-client/internal/models"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return &Producer{writer: w}
}

func (p *Producer) PublishDriverLocation(ping models.DriverPing) error {
	if p == nil {
		return nil
	}
	b, _ := json.Marshal(ping)
	return p.write(strconv.Itoa(ping.ID), b)
}

func (p *Producer) PublishRideCreated(r models.Ride) error {
	if p == nil {
		return nil
	}
	b, _ := json.Marshal(r)
	return p.write(r.RideID, b)
}

func (p *Producer) write(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

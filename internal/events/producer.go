package events

import (
	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// Producer wraps the confluent Kafka producer used by the relay.
type Producer struct {
	producer *kafka.Producer
}

func NewProducer(bootstrapServers string) (*Producer, error) {
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"client.id":         "widepay-gateway",
		"acks":              "all",
	})
	if err != nil {
		return nil, err
	}
	return &Producer{producer: p}, nil
}

// Produce delivers a message to the producer channel without waiting for acks.
func (p *Producer) Produce(topic string, key string, value []byte) error {
	message := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(key),
		Value: value,
	}
	return p.producer.Produce(message, nil)
}

func (p *Producer) Close() {
	if p == nil || p.producer == nil {
		return
	}
	p.producer.Flush(5000)
	p.producer.Close()
}

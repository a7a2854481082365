package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues events and writes them to a topic from a single
// goroutine, keyed by order id so events of one order stay ordered.
type KafkaPublisher struct {
	w     messageWriter
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 50 * time.Millisecond,
	}, buf)
}

func newKafkaPublisher(w messageWriter, buf int) *KafkaPublisher {
	return &KafkaPublisher{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start runs the write loop until Close is called.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				logger.Error().Err(err).Str("key", string(m.Key)).Msg("kafka: write failed")
			}
			cancel()
		}
		if err := p.w.Close(); err != nil {
			logger.Error().Err(err).Msg("kafka: close writer")
		}
	}()
}

// Publish enqueues ev. A full queue drops the event with an error log.
func (p *KafkaPublisher) Publish(_ context.Context, ev Event) {
	value, err := json.Marshal(ev)
	if err != nil {
		logger.Error().Err(err).Msg("kafka: marshal event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(ev.OrderID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(ev.Type)},
		},
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- msg:
	default:
		logger.Error().Str("orderId", ev.OrderID).Msg("kafka: queue full, dropping event")
	}
}

// Close flushes queued messages and waits for the writer to shut down.
func (p *KafkaPublisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
	p.mu.Unlock()
	<-p.done
}

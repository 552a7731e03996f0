package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/contable-ledger/internal/config"
	"github.com/contable-ledger/internal/domain/journal"
)

// EntryPostedEvent is the payload published after an entry has been
// appended to the record store. Amounts carry two decimals as strings
// so consumers never reparse floats.
type EntryPostedEvent struct {
	EntryID     string `json:"entry_id"`
	Date        string `json:"date"`
	Document    string `json:"document"`
	TotalDebit  string `json:"total_debit"`
	TotalCredit string `json:"total_credit"`
	LineCount   int    `json:"line_count"`
	SubmittedBy string `json:"submitted_by"`
	PostedAt    string `json:"posted_at"`
}

// NewEntryPostedEvent builds the event from the records of one appended entry.
func NewEntryPostedEvent(records []*journal.LedgerRecord) EntryPostedEvent {
	event := EntryPostedEvent{
		LineCount: len(records),
		PostedAt:  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(records) == 0 {
		return event
	}

	first := records[0]
	event.EntryID = first.EntryID.String()
	event.Date = first.Date.Format("2006-01-02")
	event.Document = first.Document
	event.SubmittedBy = first.SubmittedBy

	debit := first.Debit
	credit := first.Credit
	for _, rec := range records[1:] {
		debit = debit.Add(rec.Debit)
		credit = credit.Add(rec.Credit)
	}
	event.TotalDebit = debit.StringFixed(2)
	event.TotalCredit = credit.StringFixed(2)
	return event
}

type EntryPostedProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewEntryPostedProducer creates the posted-entry producer and ensures the topic exists.
func NewEntryPostedProducer(ctx context.Context, logger *slog.Logger, cfg *config.EventsConfig) (*EntryPostedProducer, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka events topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for entry posted producer: %w", err)
	}
	defer conn.Close()

	err = createKafkaTopicIfNotExists(conn, cfg.Topic, cfg.NumPartitions, cfg.ReplicationFactor, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure events topic %s exists for entry posted producer: %w", cfg.Topic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Posting never waits on the broker
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write messages asynchronously", "topic", cfg.Topic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote messages asynchronously", "topic", cfg.Topic, "count", len(messages))
			}
		},
	}

	return &EntryPostedProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.Topic,
	}, nil
}

func (p *EntryPostedProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message value for entry posted producer: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish entry posted event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish message to %s via entry posted producer: %w", p.topic, err)
	}

	p.logger.Debug("Published entry posted event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *EntryPostedProducer) Close() error {
	p.logger.Info("Closing entry posted Kafka producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}

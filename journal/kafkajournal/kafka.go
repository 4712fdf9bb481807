// Package kafkajournal publishes journal entries to a Kafka topic.
//
// Every entry becomes one message. The message key is the entry's RecordID payload field,
// so all events of one record land on the same partition in append order.
package kafkajournal

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"

	"github.com/AntonStoeckl/library-circulation-go/journal"
)

const (
	headerEventType         = "event_type"
	keyField                = "RecordID"
	logMsgPublishFailed     = "publishing journal entries failed"
	logMsgEntriesPublished  = "journal entries published"
	logAttrError            = "error"
	logAttrEntryCount       = "entry_count"
	logAttrTopic            = "topic"
	defaultBatchTimeout     = 10 * time.Millisecond
	defaultRequiredAcksMode = kafka.RequireAll
)

var (
	// ErrNoBrokersSupplied is returned when no broker address is configured.
	ErrNoBrokersSupplied = errors.New("no kafka brokers supplied")

	// ErrEmptyTopicSupplied is returned when an empty topic is configured.
	ErrEmptyTopicSupplied = errors.New("empty kafka topic supplied")

	// ErrNilWriter is returned when a nil MessageWriter is supplied.
	ErrNilWriter = errors.New("kafka writer must not be nil")
)

// Logger interface for operational information and error reporting.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// MessageWriter is the part of *kafka.Writer the Journal needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Journal implements journal.Appender on top of a Kafka topic.
type Journal struct {
	writer MessageWriter
	topic  string
	logger Logger
}

// Option defines a functional option for configuring Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// NewWriter creates a synchronous kafka.Writer that waits for all in-sync replicas.
func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokersSupplied
	}

	if topic == "" {
		return nil, ErrEmptyTopicSupplied
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: defaultRequiredAcksMode,
		Async:        false,
		BatchTimeout: defaultBatchTimeout,
	}, nil
}

// NewJournal creates a Journal publishing through writer. topic is only used for logging.
func NewJournal(writer MessageWriter, topic string, options ...Option) (*Journal, error) {
	if writer == nil {
		return nil, ErrNilWriter
	}

	j := &Journal{writer: writer, topic: topic}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Append publishes the entries in one WriteMessages call.
func (j *Journal) Append(ctx context.Context, entry journal.Entry, more ...journal.Entry) error {
	allEntries := append(journal.Entries{entry}, more...)

	messages := make([]kafka.Message, 0, len(allEntries))
	for _, e := range allEntries {
		message, err := messageFrom(e)
		if err != nil {
			return errors.Join(journal.ErrAppendingEntriesFailed, err)
		}

		messages = append(messages, message)
	}

	if err := j.writer.WriteMessages(ctx, messages...); err != nil {
		if j.logger != nil {
			j.logger.Error(logMsgPublishFailed, logAttrError, err.Error(), logAttrTopic, j.topic)
		}

		return errors.Join(journal.ErrAppendingEntriesFailed, err)
	}

	if j.logger != nil {
		j.logger.Info(logMsgEntriesPublished, logAttrEntryCount, len(messages), logAttrTopic, j.topic)
	}

	return nil
}

// Close flushes and closes the underlying writer.
func (j *Journal) Close() error {
	return j.writer.Close()
}

// Envelope is the JSON value of every published message.
type Envelope struct {
	EventType  string              `json:"eventType"`
	OccurredAt time.Time           `json:"occurredAt"`
	Payload    jsoniter.RawMessage `json:"payload"`
	Metadata   jsoniter.RawMessage `json:"metadata"`
}

func messageFrom(entry journal.Entry) (kafka.Message, error) {
	value, err := jsoniter.ConfigFastest.Marshal(Envelope{
		EventType:  entry.EventType,
		OccurredAt: entry.OccurredAt,
		Payload:    entry.PayloadJSON,
		Metadata:   entry.MetadataJSON,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	var key []byte
	if recordID := jsoniter.Get(entry.PayloadJSON, keyField); recordID.LastError() == nil {
		key = []byte(recordID.ToString())
	}

	return kafka.Message{
		Key:     key,
		Value:   value,
		Time:    entry.OccurredAt,
		Headers: []kafka.Header{{Key: headerEventType, Value: []byte(entry.EventType)}},
	}, nil
}

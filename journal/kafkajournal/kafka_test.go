package kafkajournal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/journal"
	"github.com/AntonStoeckl/library-circulation-go/journal/kafkajournal"
)

type writerSpy struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *writerSpy) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}

	w.messages = append(w.messages, msgs...)

	return nil
}

func (w *writerSpy) Close() error {
	w.closed = true
	return nil
}

func Test_Journal_Append_PublishesOneMessagePerEntryKeyedByRecord(t *testing.T) {
	// arrange
	spy := &writerSpy{}
	j, err := kafkajournal.NewJournal(spy, "circulation")
	require.NoError(t, err)
	occurredAt := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	lent, _ := journal.BuildEntry("RecordLentToPatron", occurredAt, []byte(`{"RecordID":10,"PatronID":5}`), []byte(`{"MessageID":"m1"}`))
	queued, _ := journal.BuildEntryWithEmptyMetadata("ClaimQueuedForRecord", occurredAt, []byte(`{"RecordID":10,"PatronID":7}`))

	// act
	appendErr := j.Append(context.Background(), lent, queued)

	// assert
	require.NoError(t, appendErr)
	require.Len(t, spy.messages, 2)
	assert.Equal(t, []byte("10"), spy.messages[0].Key)
	assert.Equal(t, "event_type", spy.messages[0].Headers[0].Key)
	assert.Equal(t, []byte("ClaimQueuedForRecord"), spy.messages[1].Headers[0].Value)

	var envelope kafkajournal.Envelope
	require.NoError(t, jsoniter.ConfigFastest.Unmarshal(spy.messages[0].Value, &envelope))
	assert.Equal(t, "RecordLentToPatron", envelope.EventType)
	assert.True(t, occurredAt.Equal(envelope.OccurredAt))
	assert.JSONEq(t, `{"RecordID":10,"PatronID":5}`, string(envelope.Payload))
	assert.JSONEq(t, `{"MessageID":"m1"}`, string(envelope.Metadata))
}

func Test_Journal_Append_WrapsWriterErrors(t *testing.T) {
	writerErr := errors.New("leader not available")
	j, _ := kafkajournal.NewJournal(&writerSpy{err: writerErr}, "circulation")
	entry, _ := journal.BuildEntryWithEmptyMetadata("RecordAddedToCatalog", time.Now(), []byte(`{"RecordID":1}`))

	err := j.Append(context.Background(), entry)

	assert.ErrorIs(t, err, journal.ErrAppendingEntriesFailed)
	assert.ErrorIs(t, err, writerErr)
}

func Test_Journal_Close_ClosesWriter(t *testing.T) {
	spy := &writerSpy{}
	j, _ := kafkajournal.NewJournal(spy, "circulation")

	require.NoError(t, j.Close())

	assert.True(t, spy.closed)
}

func Test_NewWriter_ValidatesConfiguration(t *testing.T) {
	_, noBrokersErr := kafkajournal.NewWriter(nil, "circulation")
	_, noTopicErr := kafkajournal.NewWriter([]string{"localhost:9092"}, "")
	writer, err := kafkajournal.NewWriter([]string{"localhost:9092"}, "circulation")
	_, nilWriterErr := kafkajournal.NewJournal(nil, "circulation")

	assert.ErrorIs(t, noBrokersErr, kafkajournal.ErrNoBrokersSupplied)
	assert.ErrorIs(t, noTopicErr, kafkajournal.ErrEmptyTopicSupplied)
	assert.ErrorIs(t, nilWriterErr, kafkajournal.ErrNilWriter)
	require.NoError(t, err)
	assert.Equal(t, "circulation", writer.Topic)
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
}

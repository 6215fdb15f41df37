package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

type fakeReader struct {
	msgs      []kafka.Message
	committed []int64
	closed    bool
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, context.Canceled
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func TestKafkaPublisherEncodesEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	ev := OrderCreated{OrderID: 42, Items: []OrderedItem{{ProductID: "p1", Quantity: 2}}}
	require.NoError(t, p.PublishOrderCreated(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))

	var got OrderCreated
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, ev, got)
}

func TestKafkaPublisherWrapsError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}}
	err := p.PublishOrderCreated(context.Background(), OrderCreated{OrderID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestConsumerHandlesAndCommits(t *testing.T) {
	good, _ := json.Marshal(OrderCreated{OrderID: 7, Items: []OrderedItem{{ProductID: "p1", Quantity: 1}}})
	r := &fakeReader{msgs: []kafka.Message{
		{Offset: 1, Value: good},
		{Offset: 2, Value: []byte("{not json")},
		{Offset: 3, Value: good},
	}}

	var handled []int64
	c := &Consumer{reader: r, handler: func(_ context.Context, ev OrderCreated) error {
		handled = append(handled, ev.OrderID)
		if len(handled) == 2 {
			return errors.New("transient")
		}
		return nil
	}}

	require.NoError(t, c.Run(context.Background()))
	assert.Equal(t, []int64{7, 7}, handled)
	assert.Equal(t, []int64{1, 2, 3}, r.committed)
	assert.True(t, r.closed)
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreated{}))
	assert.NoError(t, p.Close())
}

// Package channel provides the data streams used for IntCode machine I/O.
//
// A Stream is a single-producer, single-consumer append-only buffer of
// values with independent read and write cursors. Reads never block: an
// empty stream reports ErrNoData, and a closed stream reports ErrClosed,
// even if unread data remains.
package channel

import (
	"iter"
	"slices"
)

const (
	// STREAM_DEFAULT_CAPACITY is the initial buffer allocation for a new stream.
	STREAM_DEFAULT_CAPACITY = 64
)

// Stream is an append-only value buffer with separate read and write positions.
type Stream struct {
	WriteIndex int
	ReadIndex  int
	Closed     bool
	Data       []int64
}

// NewStream creates an empty stream, optionally holding initial values.
func NewStream(values ...int64) (stream *Stream) {
	stream = &Stream{
		Data: make([]int64, 0, max(STREAM_DEFAULT_CAPACITY, len(values))),
	}
	for _, value := range values {
		stream.Write(value)
	}

	return
}

// Write appends a value at the write position.
func (stream *Stream) Write(value int64) {
	if stream.WriteIndex < len(stream.Data) {
		stream.Data[stream.WriteIndex] = value
	} else {
		stream.Data = append(stream.Data, value)
	}
	stream.WriteIndex++
}

// TryRead returns the next unread value. It returns ErrClosed if the
// stream has been closed, and ErrNoData if every written value has
// already been read.
func (stream *Stream) TryRead() (value int64, err error) {
	switch {
	case stream.Closed:
		err = ErrClosed
	case stream.ReadIndex >= stream.WriteIndex:
		err = ErrNoData
	default:
		value = stream.Data[stream.ReadIndex]
		stream.ReadIndex++
	}

	return
}

// Receive returns an iterator that yields values from the current read
// position until the stream is empty or closed.
func (stream *Stream) Receive() iter.Seq[int64] {
	if stream == nil {
		return func(func(int64) bool) {}
	}

	return func(yield func(value int64) bool) {
		for {
			value, err := stream.TryRead()
			if err != nil {
				return
			}
			if !yield(value) {
				return
			}
		}
	}
}

// ReadAll drains every available value, in write order.
func (stream *Stream) ReadAll() (values []int64) {
	values = slices.Collect(stream.Receive())
	if values == nil {
		values = []int64{}
	}
	return
}

// Len returns the number of unread values.
func (stream *Stream) Len() int {
	return stream.WriteIndex - stream.ReadIndex
}

// Close marks the stream closed. Subsequent reads report ErrClosed.
func (stream *Stream) Close() {
	stream.Closed = true
}

// Rewind resets the read position to the start.
func (stream *Stream) Rewind() {
	stream.ReadIndex = 0
}

// Snapshot returns an independent copy of the stream.
func (stream *Stream) Snapshot() *Stream {
	return &Stream{
		WriteIndex: stream.WriteIndex,
		ReadIndex:  stream.ReadIndex,
		Closed:     stream.Closed,
		Data:       slices.Clone(stream.Data),
	}
}

// Reset returns the stream to its initial empty state, keeping the
// allocated buffer.
func (stream *Stream) Reset() {
	clear(stream.Data)
	stream.Data = stream.Data[:0]
	stream.WriteIndex = 0
	stream.ReadIndex = 0
	stream.Closed = false
}

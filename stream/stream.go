package stream

import "context"

// Sink consumes batches of fixed-size records.
type Sink interface {
	// ItemSize returns the record size in bytes.
	ItemSize() int
	// Work offers a batch of whole records and returns the number of
	// records consumed. Fewer than offered (or zero) means
	// backpressure, not failure; the caller re-offers the remainder.
	Work(items []byte) (int, error)
	// Close drains buffered records and releases the sink's resources.
	Close() error
}

// Source provides pull-based sequential access to batches of records.
type Source interface {
	// Next returns the next batch. Returns (nil, false, nil) when exhausted.
	Next(ctx context.Context) ([]byte, bool, error)
	// Close releases any resources held by the source.
	Close() error
}

// SliceSource yields an in-memory record array in fixed-size batches.
type SliceSource struct {
	data      []byte
	batchSize int
	off       int
}

// NewSliceSource creates a Source over data, yielding at most
// batchItems records of itemSize bytes per Next call. Trailing bytes
// that do not form a whole record are dropped.
func NewSliceSource(data []byte, itemSize, batchItems int) *SliceSource {
	usable := (len(data) / itemSize) * itemSize
	return &SliceSource{
		data:      data[:usable],
		batchSize: itemSize * batchItems,
	}
}

// Next returns the next batch as a view into the underlying array.
func (s *SliceSource) Next(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s.off >= len(s.data) {
		return nil, false, nil
	}
	end := s.off + s.batchSize
	if end > len(s.data) {
		end = len(s.data)
	}
	batch := s.data[s.off:end]
	s.off = end
	return batch, true, nil
}

// Close implements Source.
func (s *SliceSource) Close() error { return nil }

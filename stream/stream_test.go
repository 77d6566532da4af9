package stream

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

// captureSink accepts at most maxPerCall records per Work call and
// records everything it consumes.
type captureSink struct {
	itemSize   int
	maxPerCall int
	stallCalls int // calls that consume nothing before accepting again
	buf        bytes.Buffer
	workErr    error
	calls      int
}

func (s *captureSink) ItemSize() int { return s.itemSize }

func (s *captureSink) Work(items []byte) (int, error) {
	s.calls++
	if s.workErr != nil {
		return 0, s.workErr
	}
	if s.stallCalls > 0 {
		s.stallCalls--
		return 0, nil
	}
	n := len(items) / s.itemSize
	if s.maxPerCall > 0 && n > s.maxPerCall {
		n = s.maxPerCall
	}
	s.buf.Write(items[:n*s.itemSize])
	return n, nil
}

func (s *captureSink) Close() error { return nil }

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestSliceSource_Batches(t *testing.T) {
	src := NewSliceSource(pattern(10), 4, 2)

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected first batch, got ok=%v err=%v", ok, err)
	}
	if len(batch) != 8 {
		t.Errorf("expected 8-byte batch, got %d", len(batch))
	}

	// 10 bytes at item size 4: the 2 trailing bytes are dropped.
	if _, ok, _ = src.Next(context.Background()); ok {
		t.Error("expected source exhausted after whole records")
	}
}

func TestRunner_DeliversInOrder(t *testing.T) {
	data := pattern(64 * 4)
	src := NewSliceSource(data, 4, 16)
	sink := &captureSink{itemSize: 4}

	if err := NewRunner(src, sink).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(sink.buf.Bytes(), data) {
		t.Error("sink bytes differ from source bytes")
	}
}

func TestRunner_ReoffersTail(t *testing.T) {
	data := pattern(10 * 4)
	src := NewSliceSource(data, 4, 10)
	sink := &captureSink{itemSize: 4, maxPerCall: 3}

	err := NewRunner(src, sink, WithPollInterval(time.Microsecond)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(sink.buf.Bytes(), data) {
		t.Error("partial consumption lost or reordered records")
	}
	if sink.calls < 4 {
		t.Errorf("expected at least 4 Work calls for 10 records at 3/call, got %d", sink.calls)
	}
}

func TestRunner_YieldsOnZeroProgress(t *testing.T) {
	data := pattern(4 * 4)
	src := NewSliceSource(data, 4, 4)
	sink := &captureSink{itemSize: 4, stallCalls: 3}

	err := NewRunner(src, sink, WithPollInterval(time.Microsecond)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !bytes.Equal(sink.buf.Bytes(), data) {
		t.Error("stalled sink should still receive all records")
	}
}

func TestRunner_ContextCancel(t *testing.T) {
	data := pattern(4 * 4)
	src := NewSliceSource(data, 4, 4)
	sink := &captureSink{itemSize: 4, stallCalls: 1 << 30}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := NewRunner(src, sink, WithPollInterval(time.Millisecond)).Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestRunner_SinkError(t *testing.T) {
	data := pattern(4 * 4)
	src := NewSliceSource(data, 4, 4)
	wantErr := errors.New("broken pipe")
	sink := &captureSink{itemSize: 4, workErr: wantErr}

	err := NewRunner(src, sink).Run(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestRunner_RejectsRaggedBatch(t *testing.T) {
	sink := &captureSink{itemSize: 4}
	src := &raggedSource{}

	err := NewRunner(src, sink).Run(context.Background())
	if err == nil {
		t.Fatal("expected error for batch not aligned to item size")
	}
}

type raggedSource struct{ done bool }

func (s *raggedSource) Next(ctx context.Context) ([]byte, bool, error) {
	if s.done {
		return nil, false, nil
	}
	s.done = true
	return make([]byte, 7), true, nil
}

func (s *raggedSource) Close() error { return nil }

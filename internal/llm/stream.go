package llm

import (
	"context"
	"strings"
)

// StreamResult is the terminal event of a successful stream.
type StreamResult struct {
	Usage      Usage
	Model      string
	StopReason string
}

// EmitFunc delivers one text fragment to the stream consumer. It returns
// an error once the stream has been cancelled.
type EmitFunc func(text string) error

// Stream is a cancellable sequence of text fragments followed by a single
// terminal result or error.
type Stream struct {
	chunks chan string
	done   chan struct{}
	cancel context.CancelFunc

	result StreamResult
	err    error
}

// NewStream runs produce in its own goroutine and exposes what it emits.
// The context passed to produce is cancelled when the stream is closed.
func NewStream(ctx context.Context, produce func(ctx context.Context, emit EmitFunc) (StreamResult, error)) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	return newStream(ctx, cancel, produce)
}

// openStream derives the stream context before open runs, so the source
// open returns is bound to it and Close aborts it. A failed open is
// reported synchronously.
func openStream[T any](
	ctx context.Context,
	open func(ctx context.Context) (T, error),
	produce func(ctx context.Context, src T, emit EmitFunc) (StreamResult, error),
) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	src, err := open(ctx)
	if err != nil {
		cancel()
		return nil, err
	}
	return newStream(ctx, cancel, func(ctx context.Context, emit EmitFunc) (StreamResult, error) {
		return produce(ctx, src, emit)
	}), nil
}

func newStream(ctx context.Context, cancel context.CancelFunc, produce func(ctx context.Context, emit EmitFunc) (StreamResult, error)) *Stream {
	s := &Stream{
		chunks: make(chan string, 16),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	go func() {
		defer close(s.done)
		defer close(s.chunks)
		defer cancel()

		emit := func(text string) error {
			if text == "" {
				return nil
			}
			select {
			case s.chunks <- text:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		s.result, s.err = produce(ctx, emit)
		if s.err == nil && ctx.Err() != nil {
			s.err = ctx.Err()
		}
	}()

	return s
}

// Chunks yields fragments in arrival order. The channel is closed when the
// stream ends, successfully or not.
func (s *Stream) Chunks() <-chan string {
	return s.chunks
}

// Wait discards any unread fragments, blocks until the stream ends, and
// returns its terminal result.
func (s *Stream) Wait() (StreamResult, error) {
	for range s.chunks {
	}
	<-s.done
	return s.result, s.err
}

// Close cancels the stream. It is safe to call more than once.
func (s *Stream) Close() {
	s.cancel()
}

// Collect reads a stream to the end and returns the concatenated text.
// onChunk, when non-nil, observes every fragment as it arrives. If the
// stream fails, the partial text is discarded and only the error returned.
func Collect(s *Stream, onChunk func(string)) (string, error) {
	defer s.Close()

	var b strings.Builder
	for c := range s.Chunks() {
		b.WriteString(c)
		if onChunk != nil {
			onChunk(c)
		}
	}
	if _, err := s.Wait(); err != nil {
		return "", err
	}
	return b.String(), nil
}

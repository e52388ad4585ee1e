package fetcher

import (
	"errors"
	"io"
)

var errQueueOverflow = errors.New("cache writer fell behind")

// fanout is the cache branch of a tee. The response side writes into it and
// never blocks: chunks go into a bounded queue, and when the queue is full the
// branch is dropped and the reader sees errQueueOverflow. Write and finish
// must be called from a single goroutine; Read from another.
type fanout struct {
	ch      chan []byte
	err     error
	closed  bool
	pending []byte
}

func newFanout(chunks int) *fanout {
	if chunks < 1 {
		chunks = 1
	}
	return &fanout{ch: make(chan []byte, chunks)}
}

func (q *fanout) Write(p []byte) (int, error) {
	if q.closed || len(p) == 0 {
		return len(p), nil
	}
	chunk := make([]byte, len(p))
	copy(chunk, p)
	select {
	case q.ch <- chunk:
	default:
		q.finish(errQueueOverflow)
	}
	return len(p), nil
}

// finish ends the stream. A nil err means the source was fully delivered.
func (q *fanout) finish(err error) {
	if q.closed {
		return
	}
	q.closed = true
	q.err = err
	close(q.ch)
}

func (q *fanout) Read(p []byte) (int, error) {
	for len(q.pending) == 0 {
		chunk, ok := <-q.ch
		if !ok {
			if q.err != nil {
				return 0, q.err
			}
			return 0, io.EOF
		}
		q.pending = chunk
	}
	n := copy(p, q.pending)
	q.pending = q.pending[n:]
	return n, nil
}

// channel.go

// Copyright (C) 2026 The telloedu authors

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package telloedu

import (
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"
)

// A datagramChannel bridges one UDP socket to an ordered queue of decoded
// values.  Every inbound datagram is decoded and enqueued, decode failures
// included, so errors surface to whichever caller takes that slot rather
// than being thrown away at receive time.  The queue is unbounded and the
// receiver never blocks on it.
//
// The queue is single-consumer: only one goroutine may call take at a time.
type datagramChannel[T any] struct {
	conn   *net.UDPConn
	decode func([]byte) (T, error)

	mu    sync.Mutex
	items []item[T]
	avail chan struct{} // capacity 1, signalled on enqueue
}

type item[T any] struct {
	val T
	err error
}

// newDatagramChannel wraps conn and starts the receive goroutine.  The
// goroutine exits when conn is closed.
func newDatagramChannel[T any](conn *net.UDPConn, decode func([]byte) (T, error)) *datagramChannel[T] {
	c := &datagramChannel[T]{
		conn:   conn,
		decode: decode,
		avail:  make(chan struct{}, 1),
	}
	go c.listen()
	return c
}

func (c *datagramChannel[T]) listen() {
	buf := make([]byte, 2048)
	for {
		n, err := c.conn.Read(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Debug("telloedu: datagram read error", "err", err)
			continue
		}
		v, derr := c.decode(buf[:n])
		if derr != nil {
			slog.Debug("telloedu: datagram decode failed", "err", derr)
		}
		c.put(item[T]{val: v, err: derr})
	}
}

func (c *datagramChannel[T]) put(it item[T]) {
	c.mu.Lock()
	c.items = append(c.items, it)
	c.mu.Unlock()
	select {
	case c.avail <- struct{}{}:
	default:
	}
}

// take dequeues the next decoded value in FIFO order, or fails with
// ErrTimeout once timeout has elapsed with the queue still empty.
func (c *datagramChannel[T]) take(timeout time.Duration) (T, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		c.mu.Lock()
		if len(c.items) > 0 {
			it := c.items[0]
			c.items = c.items[1:]
			c.mu.Unlock()
			return it.val, it.err
		}
		c.mu.Unlock()

		select {
		case <-c.avail:
			// loop: the signal may predate a value we already consumed
		case <-deadline.C:
			var zero T
			return zero, ErrTimeout
		}
	}
}

func (c *datagramChannel[T]) close() {
	c.conn.Close()
}

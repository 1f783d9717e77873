// keepalive.go

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
	"log/slog"
	"time"
)

// The drone drops the link after about 15 seconds without traffic, so an
// idle session must emit some harmless command periodically.  "time?" is
// the no-op of choice: it queries the motor-on time and changes nothing.
const keepaliveCommand = "time?"

type keepalive struct {
	stopChan chan struct{}
	done     chan struct{}
}

// startKeepalive launches the heartbeat goroutine.  It sends immediately
// and then once per period until stopped.
func startKeepalive(d *Drone, period time.Duration) *keepalive {
	k := &keepalive{
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
	go k.run(d, period)
	return k
}

func (k *keepalive) run(d *Drone, period time.Duration) {
	defer close(k.done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		// A missed heartbeat must not kill the loop; only stop() ends it.
		if _, err := d.Send(keepaliveCommand); err != nil {
			slog.Debug("telloedu: keepalive heartbeat failed", "err", err)
		}
		select {
		case <-k.stopChan:
			return
		case <-ticker.C:
		}
	}
}

// stop requests cancellation and blocks until the heartbeat goroutine has
// fully exited.  Once stop returns, no further commands will be sent on the
// session, so the caller may close the command socket immediately.
func (k *keepalive) stop() {
	close(k.stopChan)
	<-k.done
}

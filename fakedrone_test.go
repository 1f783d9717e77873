// fakedrone_test.go

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
	"net"
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeDrone simulates the command side of the drone on a loopback UDP
// socket.  By default it replies "ok" to everything; a reply func can
// override that per command (returning "" suppresses the reply entirely).
type fakeDrone struct {
	t    *testing.T
	conn *net.UDPConn

	mu    sync.Mutex
	cmds  []string
	reply func(cmd string) string
}

func startFakeDrone(t *testing.T) *fakeDrone {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("Failed to bind fake drone socket: %v", err)
	}
	f := &fakeDrone{t: t, conn: conn}
	go f.serve()
	t.Cleanup(func() { conn.Close() })
	return f
}

func (f *fakeDrone) serve() {
	buf := make([]byte, 1024)
	for {
		n, addr, err := f.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		cmd := string(buf[:n])

		f.mu.Lock()
		f.cmds = append(f.cmds, cmd)
		reply := f.reply
		f.mu.Unlock()

		resp := "ok"
		if reply != nil {
			resp = reply(cmd)
		}
		if resp != "" {
			f.conn.WriteToUDP([]byte(resp), addr)
		}
	}
}

func (f *fakeDrone) setReply(fn func(cmd string) string) {
	f.mu.Lock()
	f.reply = fn
	f.mu.Unlock()
}

func (f *fakeDrone) port() int {
	return f.conn.LocalAddr().(*net.UDPAddr).Port
}

// commands returns a snapshot of every command received so far.
func (f *fakeDrone) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cmds...)
}

func (f *fakeDrone) countCommand(cmd string) int {
	n := 0
	for _, c := range f.commands() {
		if c == cmd {
			n++
		}
	}
	return n
}

// waitForCommand polls until the fake has received cmd at least n times.
func (f *fakeDrone) waitForCommand(cmd string, n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if f.countCommand(cmd) >= n {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

// freeUDPPort grabs an ephemeral loopback port and releases it again.  The
// tiny reuse window is fine for tests.
func freeUDPPort(t *testing.T) int {
	t.Helper()
	c, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("Failed to find a free port: %v", err)
	}
	port := c.LocalAddr().(*net.UDPAddr).Port
	c.Close()
	return port
}

// testConfig points a session at the fake drone, with a long keepalive
// period so heartbeats stay out of the way unless a test wants them.
func testConfig(t *testing.T, f *fakeDrone) Config {
	t.Helper()
	return Config{
		DroneAddr:        "127.0.0.1",
		CommandPort:      f.port(),
		StatePort:        freeUDPPort(t),
		LocalAddr:        "127.0.0.1",
		LocalCommandPort: freeUDPPort(t),
		Timeout:          time.Second,
		KeepalivePeriod:  time.Hour,
	}
}

// pushTelemetry sends a raw state line to the session's telemetry port as
// the drone would.
func pushTelemetry(t *testing.T, cfg Config, line string) {
	t.Helper()
	conn, err := net.Dial("udp", net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.StatePort)))
	if err != nil {
		t.Fatalf("Failed to dial telemetry port: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(line)); err != nil {
		t.Fatalf("Failed to push telemetry: %v", err)
	}
}

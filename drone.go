// drone.go

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
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/zaruhev/telloedu/state"
)

const (
	// DefaultDroneAddr is the address the drone assigns itself on the
	// Wi-Fi network it hosts.
	DefaultDroneAddr = "192.168.10.1"

	defaultCommandPort = 8889
	defaultStatePort   = 8890
	defaultVideoPort   = 11111

	// DefaultTimeout bounds each command/telemetry wait unless a per-call
	// deadline is given.
	DefaultTimeout = 5 * time.Second

	// DefaultKeepalivePeriod is the interval between keepalive heartbeats.
	DefaultKeepalivePeriod = 10 * time.Second
)

// Config holds the connection knobs for Connect.  The zero value of every
// field selects the drone's factory default.
type Config struct {
	DroneAddr   string // drone host, default DefaultDroneAddr
	CommandPort int    // drone command port, default 8889
	StatePort   int    // local port the drone pushes telemetry to, default 8890
	VideoPort   int    // local port the drone streams video to, default 11111

	LocalAddr        string // local bind host, default wildcard
	LocalCommandPort int    // local command port, default mirrors CommandPort

	Timeout         time.Duration // per-call deadline, default DefaultTimeout
	KeepalivePeriod time.Duration // heartbeat interval, default DefaultKeepalivePeriod
}

func (cfg Config) withDefaults() Config {
	if cfg.DroneAddr == "" {
		cfg.DroneAddr = DefaultDroneAddr
	}
	if cfg.CommandPort == 0 {
		cfg.CommandPort = defaultCommandPort
	}
	if cfg.StatePort == 0 {
		cfg.StatePort = defaultStatePort
	}
	if cfg.VideoPort == 0 {
		cfg.VideoPort = defaultVideoPort
	}
	if cfg.LocalCommandPort == 0 {
		cfg.LocalCommandPort = cfg.CommandPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.KeepalivePeriod == 0 {
		cfg.KeepalivePeriod = DefaultKeepalivePeriod
	}
	return cfg
}

// Drone is a live session with the drone.  It owns the command socket and
// the two receive channels, and is valid until Disconnect is called.
//
// Send is internally serialised: the SDK carries no request identifiers, so
// responses are matched to commands purely by arrival order, and the Drone
// enforces the required single-flight discipline itself.
type Drone struct {
	addr *net.UDPAddr
	cfg  Config

	cmdConn *net.UDPConn
	cmd     *datagramChannel[string]
	telem   *datagramChannel[state.State]
	ka      *keepalive

	sendMu sync.Mutex
}

// Connect binds the local command and telemetry sockets, performs the
// "command" handshake, and starts the keepalive.  On any failure every
// socket opened so far is closed before the error is returned; a handshake
// failure is reported as ErrHandshakeFailed.
func Connect(cfg Config) (*Drone, error) {
	cfg = cfg.withDefaults()

	droneAddr, err := net.ResolveUDPAddr("udp",
		net.JoinHostPort(cfg.DroneAddr, strconv.Itoa(cfg.CommandPort)))
	if err != nil {
		return nil, err
	}
	localCmdAddr, err := net.ResolveUDPAddr("udp",
		net.JoinHostPort(cfg.LocalAddr, strconv.Itoa(cfg.LocalCommandPort)))
	if err != nil {
		return nil, err
	}
	localStateAddr, err := net.ResolveUDPAddr("udp",
		net.JoinHostPort(cfg.LocalAddr, strconv.Itoa(cfg.StatePort)))
	if err != nil {
		return nil, err
	}

	cmdConn, err := net.DialUDP("udp", localCmdAddr, droneAddr)
	if err != nil {
		return nil, err
	}
	stateConn, err := net.ListenUDP("udp", localStateAddr)
	if err != nil {
		cmdConn.Close()
		return nil, err
	}

	d := &Drone{
		addr:    droneAddr,
		cfg:     cfg,
		cmdConn: cmdConn,
		cmd:     newDatagramChannel(cmdConn, decodeResponse),
		telem:   newDatagramChannel(stateConn, decodeTelemetry),
	}

	// The drone ignores everything until it has seen "command".  A failed
	// handshake must not leak either socket.
	if _, err := d.Send("command"); err != nil {
		d.cmd.close()
		d.telem.close()
		return nil, fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	// only a live session is worth keeping alive
	d.ka = startKeepalive(d, cfg.KeepalivePeriod)

	slog.Info("telloedu: connected", "drone", droneAddr.String())
	return d, nil
}

// ConnectDefault connects to a drone on the factory default addresses.
func ConnectDefault() (*Drone, error) {
	return Connect(Config{})
}

// Disconnect tears the session down.  The keepalive is stopped and awaited
// first, then the command socket is closed, then the telemetry socket.
// The Drone must not be used afterwards.
func (d *Drone) Disconnect() {
	d.ka.stop()
	d.cmd.close()
	d.telem.close()
	slog.Info("telloedu: disconnected", "drone", d.addr.String())
}

// Addr returns the resolved address of the drone's command channel.
func (d *Drone) Addr() *net.UDPAddr {
	return d.addr
}

// Send transmits an SDK command and waits for the drone's reply, bounded by
// the session's default timeout.
func (d *Drone) Send(command string) (string, error) {
	return d.SendTimeout(command, d.cfg.Timeout)
}

// SendTimeout transmits an SDK command and waits up to timeout for the
// drone's reply.  The reply text is returned on success; an
// *UnknownCommandError, ErrDroneError or ErrTimeout otherwise.
func (d *Drone) SendTimeout(command string, timeout time.Duration) (string, error) {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	if _, err := d.cmdConn.Write([]byte(command)); err != nil {
		return "", err
	}
	return d.cmd.take(timeout)
}

// State returns the next unconsumed telemetry snapshot, bounded by the
// session's default timeout.
func (d *Drone) State() (state.State, error) {
	return d.StateTimeout(d.cfg.Timeout)
}

// StateTimeout returns the next unconsumed telemetry snapshot, waiting up
// to timeout for one to arrive.  Telemetry is pushed by the drone at its
// own rate; the snapshot is not correlated to any request.
func (d *Drone) StateTimeout(timeout time.Duration) (state.State, error) {
	return d.telem.take(timeout)
}

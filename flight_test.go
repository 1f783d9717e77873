// flight_test.go

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
	"testing"
	"time"
)

func connectForFlight(t *testing.T) (*Drone, *fakeDrone) {
	t.Helper()
	f := startFakeDrone(t)
	drone, err := Connect(testConfig(t, f))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(drone.Disconnect)
	return drone, f
}

func TestNamedCommands(t *testing.T) {
	drone, f := connectForFlight(t)

	steps := []struct {
		call func() error
		want string
	}{
		{drone.TakeOff, "takeoff"},
		{func() error { return drone.Up(50) }, "up 50"},
		{func() error { return drone.Forward(100) }, "forward 100"},
		{func() error { return drone.Clockwise(90) }, "cw 90"},
		{func() error { return drone.CounterClockwise(45) }, "ccw 45"},
		{func() error { return drone.Flip(FlipLeft) }, "flip l"},
		{func() error { return drone.Go(100, -100, 50, 60) }, "go 100 -100 50 60"},
		{func() error { return drone.SetSpeed(50) }, "speed 50"},
		{drone.Hover, "stop"},
		{drone.Land, "land"},
		{drone.Emergency, "emergency"},
	}

	for _, step := range steps {
		if err := step.call(); err != nil {
			t.Fatalf("%q failed: %v", step.want, err)
		}
	}

	cmds := f.commands()
	for _, step := range steps {
		found := false
		for _, c := range cmds {
			if c == step.want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Command %q never reached the drone", step.want)
		}
	}
}

// Out-of-range arguments are rejected locally, before anything is sent.
func TestNamedCommandValidation(t *testing.T) {
	drone, f := connectForFlight(t)

	// let the keepalive's initial heartbeat land so the command count is stable
	if !f.waitForCommand(keepaliveCommand, 1, time.Second) {
		t.Fatal("Initial heartbeat never arrived")
	}
	before := len(f.commands())

	bad := []func() error{
		func() error { return drone.Up(10) },
		func() error { return drone.Forward(501) },
		func() error { return drone.Clockwise(0) },
		func() error { return drone.CounterClockwise(361) },
		func() error { return drone.Go(600, 0, 0, 50) },
		func() error { return drone.Go(0, 0, 0, 5) },
		func() error { return drone.SetSpeed(200) },
	}
	for i, call := range bad {
		if err := call(); err == nil {
			t.Errorf("Case %d: expected a range error", i)
		}
	}

	if after := len(f.commands()); after != before {
		t.Errorf("Rejected commands still hit the wire: %d -> %d", before, after)
	}
}

func TestQueries(t *testing.T) {
	f := startFakeDrone(t)
	f.setReply(func(cmd string) string {
		switch cmd {
		case "battery?":
			return "87"
		case "speed?":
			return "100"
		case "time?":
			return "12s"
		case "wifi?":
			return "90"
		}
		return "ok"
	})
	drone, err := Connect(testConfig(t, f))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer drone.Disconnect()

	if v, err := drone.Battery(); err != nil || v != 87 {
		t.Errorf("Battery: got %d, %v", v, err)
	}
	if v, err := drone.Speed(); err != nil || v != 100 {
		t.Errorf("Speed: got %d, %v", v, err)
	}
	if v, err := drone.FlightTime(); err != nil || v != 12 {
		t.Errorf("FlightTime: got %d, %v", v, err)
	}
	if v, err := drone.WifiSNR(); err != nil || v != 90 {
		t.Errorf("WifiSNR: got %d, %v", v, err)
	}
}

func TestQueryBadReply(t *testing.T) {
	f := startFakeDrone(t)
	f.setReply(func(cmd string) string {
		if cmd == "battery?" {
			return "plenty"
		}
		return "ok"
	})
	drone, err := Connect(testConfig(t, f))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer drone.Disconnect()

	if _, err := drone.Battery(); err == nil {
		t.Error("Expected an error for a non-numeric battery reply")
	}
}

// flight.go

// This file contains the high-level named flight command API.

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
	"strconv"
	"strings"
)

// Every method below is a thin translation of a semantic action into its
// SDK command string, issued through Send.  Argument ranges are those the
// SDK documents; values outside them are rejected locally rather than
// bounced off the drone.

// FlipDirection selects the direction of a Flip.
type FlipDirection string

const (
	FlipLeft     FlipDirection = "l"
	FlipRight    FlipDirection = "r"
	FlipForward  FlipDirection = "f"
	FlipBackward FlipDirection = "b"
)

// TakeOff starts the motors and lifts off to around 1m.
func (d *Drone) TakeOff() error {
	_, err := d.Send("takeoff")
	return err
}

// Land descends and stops the motors.
func (d *Drone) Land() error {
	_, err := d.Send("land")
	return err
}

// Emergency stops all motors immediately.  The drone will fall.
func (d *Drone) Emergency() error {
	_, err := d.Send("emergency")
	return err
}

// Hover stops the current motion and hovers in place.
func (d *Drone) Hover() error {
	_, err := d.Send("stop")
	return err
}

// Up moves the drone up by cm centimetres (20-500).
func (d *Drone) Up(cm int) error { return d.move("up", cm) }

// Down moves the drone down by cm centimetres (20-500).
func (d *Drone) Down(cm int) error { return d.move("down", cm) }

// Left moves the drone left by cm centimetres (20-500).
func (d *Drone) Left(cm int) error { return d.move("left", cm) }

// Right moves the drone right by cm centimetres (20-500).
func (d *Drone) Right(cm int) error { return d.move("right", cm) }

// Forward moves the drone forward by cm centimetres (20-500).
func (d *Drone) Forward(cm int) error { return d.move("forward", cm) }

// Back moves the drone backward by cm centimetres (20-500).
func (d *Drone) Back(cm int) error { return d.move("back", cm) }

func (d *Drone) move(dir string, cm int) error {
	if cm < 20 || cm > 500 {
		return fmt.Errorf("telloedu: %s distance %dcm outside 20-500", dir, cm)
	}
	_, err := d.Send(fmt.Sprintf("%s %d", dir, cm))
	return err
}

// Clockwise rotates the drone clockwise by deg degrees (1-360).
func (d *Drone) Clockwise(deg int) error { return d.rotate("cw", deg) }

// CounterClockwise rotates the drone counter-clockwise by deg degrees (1-360).
func (d *Drone) CounterClockwise(deg int) error { return d.rotate("ccw", deg) }

func (d *Drone) rotate(dir string, deg int) error {
	if deg < 1 || deg > 360 {
		return fmt.Errorf("telloedu: rotation %d° outside 1-360", deg)
	}
	_, err := d.Send(fmt.Sprintf("%s %d", dir, deg))
	return err
}

// Flip performs a flip in the given direction.  Fails on the drone when the
// battery is low.
func (d *Drone) Flip(dir FlipDirection) error {
	_, err := d.Send("flip " + string(dir))
	return err
}

// Go flies to the position x,y,z (each -500-500 cm, relative) at the given
// speed (10-100 cm/s).
func (d *Drone) Go(x, y, z, speed int) error {
	for _, v := range []int{x, y, z} {
		if v < -500 || v > 500 {
			return fmt.Errorf("telloedu: go coordinate %d outside -500-500", v)
		}
	}
	if speed < 10 || speed > 100 {
		return fmt.Errorf("telloedu: go speed %d outside 10-100", speed)
	}
	_, err := d.Send(fmt.Sprintf("go %d %d %d %d", x, y, z, speed))
	return err
}

// SetSpeed sets the default flight speed in cm/s (10-100).
func (d *Drone) SetSpeed(speed int) error {
	if speed < 10 || speed > 100 {
		return fmt.Errorf("telloedu: speed %d outside 10-100", speed)
	}
	_, err := d.Send(fmt.Sprintf("speed %d", speed))
	return err
}

// Battery queries the remaining battery charge in percent.
func (d *Drone) Battery() (int, error) {
	return d.queryInt("battery?")
}

// Speed queries the current flight speed in cm/s.
func (d *Drone) Speed() (int, error) {
	return d.queryInt("speed?")
}

// FlightTime queries the accumulated motor-on time in seconds.
func (d *Drone) FlightTime() (int, error) {
	resp, err := d.Send("time?")
	if err != nil {
		return 0, err
	}
	// the drone answers with a unit suffix, eg. "12s"
	return strconv.Atoi(strings.TrimSuffix(resp, "s"))
}

// WifiSNR queries the Wi-Fi signal-to-noise ratio.
func (d *Drone) WifiSNR() (int, error) {
	return d.queryInt("wifi?")
}

func (d *Drone) queryInt(query string) (int, error) {
	resp, err := d.Send(query)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(resp))
	if err != nil {
		return 0, fmt.Errorf("telloedu: unexpected reply %q to %q", resp, query)
	}
	return v, nil
}

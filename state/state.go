// state.go

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

// Package state parses the telemetry lines pushed by the Tello EDU on its
// state channel.  A line is a run of key:value pairs separated by
// semicolons, eg.
//
//	pitch:0;roll:-1;yaw:45;vgx:0;vgy:0;vgz:0;templ:82;temph:84;tof:10;
//	h:0;bat:63;baro:223.76;time:0;agx:-5.00;agy:0.00;agz:-998.00;
//
// Drones with mission pads enabled prepend mid, x, y, z and mpry fields.
package state

import (
	"fmt"
	"strconv"
	"strings"
)

// State is one decoded telemetry snapshot.  Keys that a given firmware does
// not send are left at their zero values; unrecognised keys are ignored.
type State struct {
	Pitch, Roll, Yaw int     // attitude in degrees
	VgX, VgY, VgZ    int     // velocity components in dm/s
	TempLow          int     // lowest  board temperature, °C
	TempHigh         int     // highest board temperature, °C
	TOF              int     // time-of-flight distance, cm
	Height           int     // height above takeoff point, cm
	Battery          int     // remaining charge, percent
	Barometer        float64 // barometric altitude, cm
	MotorTime        int     // accumulated motor-on time, s
	AgX, AgY, AgZ    float64 // acceleration components, 0.001g

	// Mission-pad fields (Tello EDU only, -1/-2 when no pad is visible).
	MissionPad                int
	PadX, PadY, PadZ          int
	PadPitch, PadRoll, PadYaw int
}

// Parse decodes a raw telemetry line into a State.  It fails on the first
// pair that is not key:value shaped or whose value does not parse as a
// number for a known key.
func Parse(raw string) (State, error) {
	var s State
	s.MissionPad = -1

	for _, pair := range strings.Split(strings.TrimSpace(raw), ";") {
		if pair == "" {
			continue
		}
		key, val, found := strings.Cut(pair, ":")
		if !found {
			return State{}, fmt.Errorf("state: bad field %q", pair)
		}
		if err := s.setField(key, val); err != nil {
			return State{}, err
		}
	}
	return s, nil
}

func (s *State) setField(key, val string) error {
	// mpry is the one compound value: pad pitch,roll,yaw
	if key == "mpry" {
		parts := strings.Split(val, ",")
		if len(parts) != 3 {
			return fmt.Errorf("state: bad mpry value %q", val)
		}
		var vs [3]int
		for i, p := range parts {
			v, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("state: bad mpry value %q", val)
			}
			vs[i] = v
		}
		s.PadPitch, s.PadRoll, s.PadYaw = vs[0], vs[1], vs[2]
		return nil
	}

	var ip *int
	var fp *float64

	switch key {
	case "pitch":
		ip = &s.Pitch
	case "roll":
		ip = &s.Roll
	case "yaw":
		ip = &s.Yaw
	case "vgx":
		ip = &s.VgX
	case "vgy":
		ip = &s.VgY
	case "vgz":
		ip = &s.VgZ
	case "templ":
		ip = &s.TempLow
	case "temph":
		ip = &s.TempHigh
	case "tof":
		ip = &s.TOF
	case "h":
		ip = &s.Height
	case "bat":
		ip = &s.Battery
	case "baro":
		fp = &s.Barometer
	case "time":
		ip = &s.MotorTime
	case "agx":
		fp = &s.AgX
	case "agy":
		fp = &s.AgY
	case "agz":
		fp = &s.AgZ
	case "mid":
		ip = &s.MissionPad
	case "x":
		ip = &s.PadX
	case "y":
		ip = &s.PadY
	case "z":
		ip = &s.PadZ
	default:
		return nil // unknown key, skip
	}

	if ip != nil {
		v, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("state: bad %s value %q", key, val)
		}
		*ip = v
		return nil
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("state: bad %s value %q", key, val)
	}
	*fp = v
	return nil
}

// Encode renders the State back into the drone's wire form.  Mission-pad
// fields are only emitted when a pad id is present, mirroring what the
// drone itself sends.
func (s State) Encode() string {
	var b strings.Builder
	if s.MissionPad != -1 {
		fmt.Fprintf(&b, "mid:%d;x:%d;y:%d;z:%d;mpry:%d,%d,%d;",
			s.MissionPad, s.PadX, s.PadY, s.PadZ, s.PadPitch, s.PadRoll, s.PadYaw)
	}
	fmt.Fprintf(&b, "pitch:%d;roll:%d;yaw:%d;", s.Pitch, s.Roll, s.Yaw)
	fmt.Fprintf(&b, "vgx:%d;vgy:%d;vgz:%d;", s.VgX, s.VgY, s.VgZ)
	fmt.Fprintf(&b, "templ:%d;temph:%d;", s.TempLow, s.TempHigh)
	fmt.Fprintf(&b, "tof:%d;h:%d;bat:%d;baro:%.2f;time:%d;",
		s.TOF, s.Height, s.Battery, s.Barometer, s.MotorTime)
	fmt.Fprintf(&b, "agx:%.2f;agy:%.2f;agz:%.2f;", s.AgX, s.AgY, s.AgZ)
	return b.String()
}

// decode.go

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
	"fmt"
	"strings"

	"github.com/zaruhev/telloedu/state"
)

var (
	// ErrTimeout is returned when no decoded value arrived on the expected
	// channel within the deadline.  Safe to retry.
	ErrTimeout = errors.New("timed out waiting for the drone")

	// ErrDroneError is returned when the drone accepted a command but
	// reported that it failed.
	ErrDroneError = errors.New("drone reported an error")

	// ErrMalformedTelemetry wraps a telemetry line the state parser could
	// not decode.  The telemetry channel keeps running afterwards.
	ErrMalformedTelemetry = errors.New("malformed telemetry line")

	// ErrHandshakeFailed wraps whatever stopped the initial "command"
	// exchange from succeeding during Connect.
	ErrHandshakeFailed = errors.New("drone handshake failed")
)

const unknownCommandPrefix = "unknown command: "

// UnknownCommandError is returned when the drone did not recognise the
// command text it was sent.
type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return unknownCommandPrefix + e.Command
}

// decodeResponse turns a raw command-channel datagram into the drone's
// reply text, or into the error the reply encodes.
func decodeResponse(data []byte) (string, error) {
	text := strings.TrimSpace(string(data))
	if cmd, ok := strings.CutPrefix(text, unknownCommandPrefix); ok {
		return "", &UnknownCommandError{Command: cmd}
	}
	if strings.HasPrefix(text, "error") {
		return "", ErrDroneError
	}
	return text, nil
}

// decodeTelemetry turns a raw state-channel datagram into a snapshot via
// the state parser.
func decodeTelemetry(data []byte) (state.State, error) {
	s, err := state.Parse(strings.TrimSpace(string(data)))
	if err != nil {
		return state.State{}, fmt.Errorf("%w: %v", ErrMalformedTelemetry, err)
	}
	return s, nil
}

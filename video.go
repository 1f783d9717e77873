// video.go

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
)

// Frame is one decoded video frame in packed RGB form.
type Frame struct {
	Seq           uint64
	Width, Height int
	Data          []byte
	TraceID       string
}

// A FrameReader produces decoded frames from the drone's video transport.
// Read blocks until the next frame is available or the stream has failed
// terminally.
type FrameReader interface {
	Read() (Frame, error)
	Close() error
}

// An OpenStreamFunc opens the video transport at the given local host:port
// and returns a decoder over it.  The video subpackage provides a
// GStreamer-backed implementation.
type OpenStreamFunc func(addr string) (FrameReader, error)

// VideoFeed switches the drone's video stream on and opens the transport
// through open.  The returned feed is lazy, unbounded and non-restartable.
//
// Do not call VideoFeed while another command is still awaiting its reply;
// the streamon exchange goes through the same command channel.
func (d *Drone) VideoFeed(open OpenStreamFunc) (*VideoFeed, error) {
	if _, err := d.Send("streamon"); err != nil {
		return nil, err
	}
	r, err := open(net.JoinHostPort(d.cfg.LocalAddr, strconv.Itoa(d.cfg.VideoPort)))
	if err != nil {
		d.Send("streamoff")
		return nil, err
	}
	return &VideoFeed{d: d, r: r}, nil
}

// VideoFeed is a live video stream.  Frames are pulled with Next; the feed
// ends when Close is called or a decode error occurs, and in either case
// "streamoff" is sent to the drone exactly once.
type VideoFeed struct {
	d *Drone
	r FrameReader

	offOnce sync.Once
	offErr  error
}

// Next returns the next decoded frame.  A transport or decode error is
// terminal: the feed is closed and the error returned; there is no
// automatic reconnect.
func (v *VideoFeed) Next() (Frame, error) {
	f, err := v.r.Read()
	if err != nil {
		v.Close()
		return Frame{}, err
	}
	return f, nil
}

// Close stops the decoder and tells the drone to stop streaming.  Safe to
// call more than once; only the first call does anything.
func (v *VideoFeed) Close() error {
	v.offOnce.Do(func() {
		v.r.Close()
		_, v.offErr = v.d.Send("streamoff")
	})
	return v.offErr
}

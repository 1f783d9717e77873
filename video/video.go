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

// Package video decodes the drone's H.264 video transport into RGB frames
// using GStreamer.  It implements the FrameReader capability consumed by
// telloedu.Drone.VideoFeed:
//
//	feed, err := drone.VideoFeed(video.Open)
package video

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"

	"github.com/google/uuid"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/zaruhev/telloedu"
)

// The drone streams 960x720 but decodes faster and travels lighter scaled
// to VGA, which is what the stock app uses too.
const (
	frameWidth  = 640
	frameHeight = 480
)

// Open listens for the drone's video stream on addr ("host:port") and
// returns a FrameReader of decoded RGB frames.  The pipeline is
//
//	udpsrc ! h264parse ! avdec_h264 ! videoconvert ! videoscale !
//	capsfilter(RGB 640x480) ! appsink
//
// and frames are pulled from the appsink on demand.
func Open(addr string) (telloedu.FrameReader, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("video: bad address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("video: bad port %q: %w", portStr, err)
	}
	if host == "" {
		host = "0.0.0.0"
	}

	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create pipeline: %w", err)
	}

	udpsrc, err := gst.NewElement("udpsrc")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create udpsrc: %w", err)
	}
	udpsrc.SetProperty("address", host)
	udpsrc.SetProperty("port", port)
	// the drone sends a bare H.264 byte stream, no RTP framing
	udpsrc.SetProperty("caps", gst.NewCapsFromString("video/x-h264,stream-format=byte-stream"))

	parse, err := gst.NewElement("h264parse")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create h264parse: %w", err)
	}

	decoder, err := gst.NewElement("avdec_h264")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create avdec_h264: %w", err)
	}
	decoder.SetProperty("output-corrupt", false)

	converter, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create videoconvert: %w", err)
	}

	scaler, err := gst.NewElement("videoscale")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create videoscale: %w", err)
	}

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, fmt.Errorf("video: failed to create capsfilter: %w", err)
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString(frameCaps(frameWidth, frameHeight)))

	appsink, err := app.NewAppSink()
	if err != nil {
		return nil, fmt.Errorf("video: failed to create appsink: %w", err)
	}
	appsink.SetProperty("sync", false)    // real time, no clock sync
	appsink.SetProperty("max-buffers", 1) // keep only the latest frame
	appsink.SetProperty("drop", true)

	pipeline.AddMany(udpsrc, parse, decoder, converter, scaler, capsfilter, appsink.Element)
	if err := gst.ElementLinkMany(udpsrc, parse, decoder, converter, scaler, capsfilter, appsink.Element); err != nil {
		return nil, fmt.Errorf("video: failed to link pipeline elements: %w", err)
	}

	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return nil, fmt.Errorf("video: failed to start pipeline: %w", err)
	}

	slog.Debug("video: pipeline playing", "addr", addr)
	return &stream{pipeline: pipeline, sink: appsink}, nil
}

type stream struct {
	pipeline *gst.Pipeline
	sink     *app.Sink
	seq      uint64
}

// Read blocks until the next decoded frame.  It returns io.EOF once the
// pipeline has stopped producing samples (after Close or at end of stream).
func (s *stream) Read() (telloedu.Frame, error) {
	sample := s.sink.PullSample()
	if sample == nil {
		return telloedu.Frame{}, io.EOF
	}

	buffer := sample.GetBuffer()
	if buffer == nil {
		return telloedu.Frame{}, fmt.Errorf("video: sample carried no buffer")
	}

	mapInfo := buffer.Map(gst.MapRead)
	data := mapInfo.Bytes()
	if len(data) == 0 {
		buffer.Unmap()
		return telloedu.Frame{}, fmt.Errorf("video: empty buffer")
	}

	// copy out: GStreamer reuses the buffer
	frameData := make([]byte, len(data))
	copy(frameData, data)
	buffer.Unmap()

	s.seq++
	return telloedu.Frame{
		Seq:     s.seq,
		Width:   frameWidth,
		Height:  frameHeight,
		Data:    frameData,
		TraceID: uuid.New().String(),
	}, nil
}

// Close stops the pipeline and releases its resources.
func (s *stream) Close() error {
	if err := s.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("video: failed to stop pipeline: %w", err)
	}
	return nil
}

func frameCaps(width, height int) string {
	return fmt.Sprintf("video/x-raw,format=RGB,width=%d,height=%d", width, height)
}

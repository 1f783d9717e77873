/*Package telloedu provides an unofficial, standalone client for the ASCII
SDK spoken by the Ryze Tello EDU® drone.

Disclaimer

Tello is a registered trademark of Ryze Tech.  The author(s) of this package
is/are in no way affiliated with Ryze, DJI, or Intel.  The package has been
developed from the published SDK documentation and by observing datagrams
sent to/from the drone.

Use this package at your own risk.  The author(s) is/are in no way
responsible for any damage caused either to or by the drone when using this
software.

Concepts

The drone exposes three independent UDP channels: a command channel
(request/response ASCII text), a telemetry channel (unsolicited pushed state
lines), and a video channel (a raw H.264 elementary stream).

A session is obtained with Connect or ConnectDefault, which binds the local
sockets, performs the "command" handshake, and starts a background keepalive
that stops the drone's own inactivity timer from dropping the link.
Disconnect tears everything down in a fixed order: the keepalive is stopped
and awaited first, then the command socket is closed, then the telemetry
socket.

Responses on the command channel carry no request identifier; they are
matched to commands purely by arrival order.  The Drone therefore enforces
single-flight internally: Send calls are serialised by a mutex, so at most
one command is ever awaiting its response.

Raw commands vs. named commands

Send transmits any SDK command string and returns the drone's reply.  The
named methods (TakeOff, Land, Forward, ...) are a thin convenience layer on
top of Send which validate argument ranges before transmitting; they add no
protocol behaviour of their own.

Video

VideoFeed switches the video stream on and yields decoded frames through a
pluggable decoder capability.  The video subpackage provides a GStreamer
backed implementation.  The feed guarantees that "streamoff" is sent to the
drone exactly once when the consumer closes it or a decode error ends it.
*/
package telloedu

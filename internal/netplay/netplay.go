// Package netplay carries wire frames between two peers over TCP. One
// side listens and accepts exactly one opponent, the other dials. Each
// connection runs a single reader goroutine that delivers decoded
// messages on a channel drained by the front-end loop; all protocol
// faults surface as error values, never as panics, and nothing here
// touches the rules — received moves are validated by the engine.
package netplay

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"

	"github.com/varekai/netchess/internal/wire"
)

// ErrClosed reports a send on a connection that is already closed.
var ErrClosed = errors.New("netplay: connection closed")

// Listener waits for the single opponent of a hosted game.
type Listener struct {
	ln net.Listener
}

// Listen binds the given TCP address and returns a listener ready to
// accept one peer. Use ":0" to let the system pick a port.
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netplay: listen %s: %w", addr, err)
	}
	return &Listener{ln: ln}, nil
}

// Addr returns the bound address, including the resolved port.
func (l *Listener) Addr() string {
	return l.ln.Addr().String()
}

// Accept blocks until an opponent connects and returns the connection.
func (l *Listener) Accept() (*Conn, error) {
	c, err := l.ln.Accept()
	if err != nil {
		return nil, fmt.Errorf("netplay: accept: %w", err)
	}
	log.Printf("[netplay] peer connected from %s", c.RemoteAddr())
	return newConn(c), nil
}

// Close stops listening. Safe to call after Accept succeeded.
func (l *Listener) Close() error {
	return l.ln.Close()
}

// Host is Listen followed by a single Accept; the listener is closed
// once the opponent is connected.
func Host(addr string) (*Conn, error) {
	l, err := Listen(addr)
	if err != nil {
		return nil, err
	}
	defer l.Close()
	return l.Accept()
}

// Dial connects to a hosting peer.
func Dial(addr string) (*Conn, error) {
	c, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("netplay: dial %s: %w", addr, err)
	}
	log.Printf("[netplay] connected to %s", c.RemoteAddr())
	return newConn(c), nil
}

// Conn is one peer connection. Incoming frames are decoded by a reader
// goroutine and delivered on Messages; the channel closes when the peer
// disconnects or the connection is closed, after which Err tells a
// clean EOF (nil) apart from a transport fault.
type Conn struct {
	conn net.Conn
	in   chan wire.Message

	sendMu   sync.Mutex
	lastSent wire.Message
	sentAny  bool

	closeOnce sync.Once
	closeErr  error

	errMu   sync.Mutex
	readErr error
}

func newConn(c net.Conn) *Conn {
	conn := &Conn{
		conn: c,
		in:   make(chan wire.Message, 16),
	}
	go conn.readLoop()
	return conn
}

// readLoop blocks on exact 5-byte reads until the stream ends. A frame
// that fails to decode is dropped with a warning: fixed-width framing
// keeps the stream aligned, so one bad frame does not poison the rest.
func (c *Conn) readLoop() {
	defer close(c.in)

	var frame [wire.FrameSize]byte
	for {
		if _, err := io.ReadFull(c.conn, frame[:]); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				c.setReadErr(fmt.Errorf("netplay: read: %w", err))
			}
			return
		}

		msg, err := wire.Decode(frame)
		if err != nil {
			log.Printf("[netplay] Warning: dropping malformed frame: %v", err)
			continue
		}
		c.in <- msg
	}
}

// Messages returns the channel of decoded incoming messages. It closes
// when the peer is gone; check Err afterwards.
func (c *Conn) Messages() <-chan wire.Message {
	return c.in
}

// Send encodes and writes one full frame. The last successfully sent
// message is remembered for the offer/answer handshakes.
func (c *Conn) Send(msg wire.Message) error {
	frame, err := wire.Encode(msg)
	if err != nil {
		return err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if _, err := c.conn.Write(frame[:]); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("netplay: write: %w", err)
	}
	c.lastSent = msg
	c.sentAny = true
	return nil
}

// LastSent returns the most recently sent message and whether anything
// has been sent yet. Front ends use it to interpret an incoming Accept
// or Decline as the answer to their own pending Undo or Draw offer.
func (c *Conn) LastSent() (wire.Message, bool) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	return c.lastSent, c.sentAny
}

// Err returns the transport fault that ended the read loop, or nil when
// the stream ended cleanly.
func (c *Conn) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.readErr
}

func (c *Conn) setReadErr(err error) {
	c.errMu.Lock()
	c.readErr = err
	c.errMu.Unlock()
}

// RemoteAddr returns the peer's address for display.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Close tears the connection down and unblocks the reader. Idempotent.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

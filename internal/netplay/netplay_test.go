package netplay

import (
	"net"
	"testing"
	"time"

	"github.com/varekai/netchess/internal/board"
	"github.com/varekai/netchess/internal/testutil"
	"github.com/varekai/netchess/internal/wire"
)

// pipePair wires two Conns together over an in-memory stream.
func pipePair(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	ca, cb := newConn(a), newConn(b)
	t.Cleanup(func() {
		ca.Close()
		cb.Close()
	})
	return ca, cb
}

func receive(t *testing.T, c *Conn) wire.Message {
	t.Helper()
	select {
	case msg, ok := <-c.Messages():
		if !ok {
			t.Fatalf("message channel closed early (err: %v)", c.Err())
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
	}
	return wire.Message{}
}

func TestSendReceive(t *testing.T) {
	host, guest := pipePair(t)

	sent := wire.NewMoveMessage(board.E2, board.NewMove(board.E4))
	testutil.AssertNoError(t, host.Send(sent))

	got := receive(t, guest)
	testutil.AssertEqual(t, got, sent)

	testutil.AssertNoError(t, guest.Send(wire.Message{Type: wire.TypeDraw}))
	testutil.AssertEqual(t, receive(t, host).Type, wire.TypeDraw)
}

func TestLastSentTracksOffers(t *testing.T) {
	host, guest := pipePair(t)

	if _, ok := host.LastSent(); ok {
		t.Error("LastSent should report nothing before the first send")
	}

	testutil.AssertNoError(t, host.Send(wire.Message{Type: wire.TypeUndo}))
	receive(t, guest)

	last, ok := host.LastSent()
	if !ok || last.Type != wire.TypeUndo {
		t.Errorf("LastSent = %v (ok=%v), want the undo offer", last, ok)
	}
}

func TestMalformedFrameIsSkipped(t *testing.T) {
	a, b := net.Pipe()
	conn := newConn(b)
	t.Cleanup(func() {
		a.Close()
		conn.Close()
	})

	// An unknown tag keeps frame alignment, so the following good frame
	// must still come through.
	bad := [wire.FrameSize]byte{0xFF, 0, 0, 0, 0}
	good, err := wire.Encode(wire.Message{Type: wire.TypeAccept})
	testutil.AssertNoError(t, err)

	go func() {
		a.Write(bad[:])
		a.Write(good[:])
	}()

	testutil.AssertEqual(t, receive(t, conn).Type, wire.TypeAccept)
}

func TestCleanShutdown(t *testing.T) {
	host, guest := pipePair(t)

	testutil.AssertNoError(t, host.Close())
	testutil.AssertNoError(t, host.Close()) // idempotent

	select {
	case _, ok := <-guest.Messages():
		if ok {
			t.Fatal("expected the channel to close, got a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestListenAcceptDial(t *testing.T) {
	l, err := Listen("127.0.0.1:0")
	testutil.AssertNoError(t, err)
	defer l.Close()

	type result struct {
		conn *Conn
		err  error
	}
	accepted := make(chan result, 1)
	go func() {
		c, err := l.Accept()
		accepted <- result{c, err}
	}()

	guest, err := Dial(l.Addr())
	testutil.AssertNoError(t, err)
	defer guest.Close()

	res := <-accepted
	testutil.AssertNoError(t, res.err)
	host := res.conn
	defer host.Close()

	testutil.AssertNoError(t, guest.Send(wire.Message{Type: wire.TypeResign}))
	testutil.AssertEqual(t, receive(t, host).Type, wire.TypeResign)
}

package irc

import (
	"context"
	"net"
	"testing"
	"time"
)

// newFakeConnPair returns the two ends of an in-memory net.Pipe: the
// server side the test drives, and the side handed to the pump.
func newFakeConnPair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	return server, client
}

// S7 / property 10: PONG precedes a queued command.
func TestPump_PingBeforeQueuedCommand(t *testing.T) {
	serverSide, pumpSide := newFakeConnPair(t)
	defer serverSide.Close()

	queue := newCommandQueue()
	inbox := make(chan ServerMessage, 16)
	p := newPump(pumpSide, queue, inbox, nil, "test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if _, err := serverSide.Write([]byte("PING :tok123\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Read until the PONG is observed: this is the synchronization point
	// confirming the pump has finished its auto-response before we queue
	// the next outbound command, so the second read below can only ever
	// observe NICK, never a re-ordered PONG.
	buf := make([]byte, 4096)
	serverSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := serverSide.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if indexOf(string(buf[:n]), "PONG :tok123\r\n") < 0 {
		t.Fatalf("PONG not observed in %q", string(buf[:n]))
	}

	queue.Send(CmdNick{Target: "new"})

	serverSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err = serverSide.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if indexOf(string(buf[:n]), "NICK new\r\n") < 0 {
		t.Fatalf("NICK not observed in %q", string(buf[:n]))
	}

	queue.Close()
	serverSide.Close()
	<-done
}

// property 11: CAP line triggers CAP END.
func TestPump_CapEndsNegotiation(t *testing.T) {
	serverSide, pumpSide := newFakeConnPair(t)
	defer serverSide.Close()

	queue := newCommandQueue()
	inbox := make(chan ServerMessage, 16)
	p := newPump(pumpSide, queue, inbox, nil, "test")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if _, err := serverSide.Write([]byte("CAP * LS :multi-prefix\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	buf := make([]byte, 4096)
	serverSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := serverSide.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if indexOf(string(buf[:n]), "CAP END\r\n") < 0 {
		t.Fatalf("CAP END not observed in %q", string(buf[:n]))
	}

	queue.Close()
	serverSide.Close()
	<-done
}

// property 12: a closed/abandoned inbox does not block auto-responses.
func TestPump_ClosedInboxDoesNotBlockAutoResponse(t *testing.T) {
	serverSide, pumpSide := newFakeConnPair(t)
	defer serverSide.Close()

	queue := newCommandQueue()
	inbox := make(chan ServerMessage) // unbuffered, nobody drains it

	p := newPump(pumpSide, queue, inbox, nil, "test")

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // application already gone

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	if _, err := serverSide.Write([]byte("PING :still-alive\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	buf := make([]byte, 4096)
	serverSide.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := serverSide.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if indexOf(string(buf[:n]), "PONG :still-alive\r\n") < 0 {
		t.Fatalf("PONG not observed despite dead inbox: %q", string(buf[:n]))
	}

	queue.Close()
	serverSide.Close()
	<-done
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

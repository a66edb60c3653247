package irc

import (
	"bufio"
	"context"
	"io"
	"net"

	"github.com/sirupsen/logrus"
)

// lineEvent is one raw line read from the socket, or the terminal
// read error/EOF that ended the read loop.
type lineEvent struct {
	line []byte
	err  error
}

// Pump is the long-running task that owns the opened stream and
// interleaves socket reads with outbound-command writes (spec.md
// §4.F), grounded on the teacher's readMsgs/writeMsgs/muxErrors
// goroutine split in irc/client.go, collapsed into the single
// cooperative loop the spec requires so auto-responses are strictly
// ordered ahead of the next queued command.
type Pump struct {
	conn   net.Conn
	queue  *commandQueue
	inbox  chan<- ServerMessage
	log    *logrus.Entry
	server string
}

// ServerMessage is one classified inbound event delivered to the
// application (spec.md §4.G, §6: "Inbound events the core exposes").
type ServerMessage struct {
	Response Response
	Source   *Source
}

func newPump(conn net.Conn, queue *commandQueue, inbox chan<- ServerMessage, log *logrus.Entry, server string) *Pump {
	return &Pump{conn: conn, queue: queue, inbox: inbox, log: log, server: server}
}

// Run owns the connection until the socket closes or the command
// queue is closed and drained. ctx only gates the forward-to-inbox
// step: its cancellation lets the pump keep writing auto-responses
// even when nothing drains the inbox anymore (spec.md property 12).
func (p *Pump) Run(ctx context.Context) error {
	defer p.conn.Close()

	lines := make(chan lineEvent, 1)
	go p.readLoop(lines)

	outbound := make(chan Command)
	go p.queue.forward(outbound)

	w := bufio.NewWriter(p.conn)

	for {
		select {
		case ev, ok := <-lines:
			if !ok {
				return nil
			}
			if ev.err != nil {
				return wrapIRCIOError(IOError, ev.err)
			}
			if err := p.handleLine(ctx, w, ev.line); err != nil {
				return err
			}

		case cmd, ok := <-outbound:
			if !ok {
				return nil
			}
			if err := p.writeCommand(w, cmd); err != nil {
				return err
			}
		}
	}
}

func (p *Pump) readLoop(out chan<- lineEvent) {
	defer close(out)
	r := bufio.NewReader(p.conn)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			out <- lineEvent{line: line}
		}
		if err != nil {
			if err != io.EOF {
				out <- lineEvent{err: err}
			}
			return
		}
	}
}

// handleLine parses and routes one raw line, writing any required
// auto-response (PING→PONG, CAP→CAP END) before forwarding the
// classified ServerMessage to the application (spec.md §4.F.1).
func (p *Pump) handleLine(ctx context.Context, w *bufio.Writer, raw []byte) error {
	msg := ParseMessage(raw)
	resp := GetResponse(msg)

	sm := ServerMessage{Response: resp, Source: msg.Source}

	switch rc := resp.(type) {
	case RespCmd:
		switch cmd := rc.Command.(type) {
		case CmdPing:
			if err := p.writeCommand(w, CmdPong{Token: cmd.Token}); err != nil {
				return err
			}
		case CmdCap:
			if err := p.writeCommand(w, CmdCap{Arg: "END"}); err != nil {
				return err
			}
		}
	}

	p.forwardToApp(ctx, sm)
	return nil
}

// forwardToApp runs after any auto-response for the line has been
// written. Once ctx is cancelled, an abandoned inbox never blocks the
// pump (spec.md property 12); while ctx is live, a full inbox blocks
// the pump until the application drains it, which is the bounded
// channel's backpressure (spec.md §4.G).
func (p *Pump) forwardToApp(ctx context.Context, sm ServerMessage) {
	select {
	case p.inbox <- sm:
	case <-ctx.Done():
		if p.log != nil {
			p.log.Debug("dropping inbound message: application receiver gone")
		}
	}
}

func (p *Pump) writeCommand(w *bufio.Writer, cmd Command) error {
	if _, err := w.Write(cmd.Bytes()); err != nil {
		return wrapIRCIOError(IOError, err)
	}
	if err := w.Flush(); err != nil {
		return wrapIRCIOError(IOError, err)
	}
	return nil
}

package irc

import "github.com/pkg/errors"

// ConnectionKind classifies a ConnectionError (spec.md §7).
type ConnectionKind int

const (
	ConnectTCP ConnectionKind = iota
	InvalidDNS
	ConnectionUnknown
)

func (k ConnectionKind) String() string {
	switch k {
	case ConnectTCP:
		return "ConnectTCP"
	case InvalidDNS:
		return "InvalidDNS"
	default:
		return "Unknown"
	}
}

// ConnectionError reports a failure acquiring the byte stream in §4.E:
// dialing TCP, resolving DNS, or completing a TLS handshake.
type ConnectionError struct {
	Kind ConnectionKind
	Err  error
}

func (e *ConnectionError) Error() string {
	return "irc: connection: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func newConnectionError(kind ConnectionKind, err error) *ConnectionError {
	return &ConnectionError{Kind: kind, Err: errors.WithStack(err)}
}

// IRCIOKind classifies an IRCIOError (spec.md §7).
type IRCIOKind int

const (
	IOError IRCIOKind = iota
	SendCommand
	SendMessage
	IRCIOUnknown
)

func (k IRCIOKind) String() string {
	switch k {
	case IOError:
		return "IO"
	case SendCommand:
		return "SendCommand"
	case SendMessage:
		return "SendMessage"
	default:
		return "Unknown"
	}
}

// IRCIOError reports a failure in the pump or login write path: socket
// I/O, or a send on a channel whose other end has gone away.
type IRCIOError struct {
	Kind IRCIOKind
	Err  error
}

func (e *IRCIOError) Error() string {
	return "irc: io: " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *IRCIOError) Unwrap() error { return e.Err }

func newIRCIOError(kind IRCIOKind, err error) *IRCIOError {
	return &IRCIOError{Kind: kind, Err: errors.WithStack(err)}
}

// ClownError aggregates ConnectionError and IRCIOError into the single
// error type a caller (the supervisor) needs to branch on, following
// spec.md §7's "ClownError aggregates the two above."
type ClownError struct {
	Connection *ConnectionError
	IO         *IRCIOError
}

func (e *ClownError) Error() string {
	switch {
	case e.Connection != nil:
		return e.Connection.Error()
	case e.IO != nil:
		return e.IO.Error()
	default:
		return "irc: unknown error"
	}
}

func (e *ClownError) Unwrap() error {
	switch {
	case e.Connection != nil:
		return e.Connection
	case e.IO != nil:
		return e.IO
	default:
		return nil
	}
}

func wrapConnectionError(kind ConnectionKind, err error) *ClownError {
	return &ClownError{Connection: newConnectionError(kind, err)}
}

func wrapIRCIOError(kind IRCIOKind, err error) *ClownError {
	return &ClownError{IO: newIRCIOError(kind, err)}
}

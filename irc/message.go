// Package irc implements the IRC (RFC 1459/2812) wire protocol: parsing,
// the command/reply taxonomies, connection setup, and the I/O pump that
// multiplexes a socket with the application's outbound command queue.
package irc

import "fmt"

// SourceKind distinguishes the two things a message's prefix can name.
type SourceKind uint8

const (
	// SourceNick means the message originated from a client (a nick,
	// optionally with !user and @host).
	SourceNick SourceKind = iota
	// SourceServer means the message originated from a server (a
	// dotted name, e.g. "irc.example.net").
	SourceServer
)

// Source is the optional prefix of a Message: who sent it.
type Source struct {
	Kind SourceKind
	Name string
	User string
	Host string
}

func (s *Source) String() string {
	if s == nil {
		return ""
	}
	if s.User == "" && s.Host == "" {
		return s.Name
	}
	return fmt.Sprintf("%s!%s@%s", s.Name, s.User, s.Host)
}

// maxMiddleParams is the number of space-separated "middle" parameters
// collected before the trailing rule takes over (RFC 2812 allows 15
// parameters total; the 15th is the trailing).
const maxMiddleParams = 14

// Message is the parsed view of one IRC line. Params never contains
// empty strings and never exceeds maxMiddleParams entries; Trailing
// holds the final, possibly-empty, free-form parameter when present.
type Message struct {
	Source      *Source
	Command     string
	Params      []string
	Trailing    string
	HasTrailing bool
}

// ParseMessage parses a single raw IRC line. line should not include the
// trailing CR/LF; ParseMessage strips it if present regardless, so
// callers may pass either form. Each grammar stage (prefix, command,
// params, trailing) is independently recoverable: a stage that fails to
// match leaves the relevant Message field at its zero value and does
// not abort parsing of the remaining stages. ParseMessage never returns
// an error; a malformed line yields the best-effort view.
func ParseMessage(line []byte) *Message {
	buf := trimCRLF(line)

	m := &Message{}
	buf, m.Source = parseSource(buf)
	buf, m.Command = parseCommand(buf)
	var params []string
	buf, params = parseParams(buf)
	m.Params = params
	m.Trailing, m.HasTrailing = parseTrailing(buf)
	return m
}

func trimCRLF(b []byte) []byte {
	n := len(b)
	for n > 0 && (b[n-1] == '\r' || b[n-1] == '\n') {
		n--
	}
	return b[:n]
}

// String renders a debug representation used for Response.Unknown and
// logging; it is not a wire encoding.
func (m *Message) String() string {
	return fmt.Sprintf("Message{source=%v command=%q params=%v trailing=%q hasTrailing=%v}",
		m.Source, m.Command, m.Params, m.Trailing, m.HasTrailing)
}

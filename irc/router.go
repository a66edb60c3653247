package irc

import "strings"

// Response is the classification of one parsed Message: either a known
// client/server command, a numeric reply, or an unrecognized line
// (spec.md §3/§4.D).
type Response interface {
	isResponse()
}

// RespCmd wraps a recognized verb, built per that verb's arity rules.
type RespCmd struct {
	Command Command
	Source  *Source
}

// RespRpl wraps a parsed numeric reply.
type RespRpl struct {
	Reply  ResponseNumber
	Source *Source
}

// RespUnknown is a line whose command is neither a three-digit numeric
// nor a verb this package models; Text is a debug representation, not
// a wire encoding.
type RespUnknown struct{ Text string }

func (RespCmd) isResponse()     {}
func (RespRpl) isResponse()     {}
func (RespUnknown) isResponse() {}

// GetResponse classifies a parsed Message into a Response, applying the
// arity rules in spec.md §4.D.
func GetResponse(m *Message) Response {
	if isNumeric(m.Command) {
		code := parseNumeric(m.Command)
		return RespRpl{Reply: buildReply(code, m.Trailing, m.HasTrailing), Source: m.Source}
	}

	if cmd, ok := buildCommand(m); ok {
		return RespCmd{Command: cmd, Source: m.Source}
	}

	return RespUnknown{Text: m.String()}
}

func isNumeric(cmd string) bool {
	if len(cmd) != 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !isDigit(cmd[i]) {
			return false
		}
	}
	return true
}

func parseNumeric(cmd string) uint16 {
	n := uint16(0)
	for i := 0; i < len(cmd); i++ {
		n = n*10 + uint16(cmd[i]-'0')
	}
	return n
}

// firstParam returns the first param, or "" if there is none.
func firstParam(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return params[0]
}

func buildCommand(m *Message) (Command, bool) {
	switch strings.ToUpper(m.Command) {
	case "PRIVMSG":
		return CmdPrivMsg{Target: firstParam(m.Params), Content: contentOf(m)}, true
	case "NOTICE":
		return CmdNotice{Target: firstParam(m.Params), Content: contentOf(m)}, true
	case "NICK":
		return CmdNick{Target: nickTarget(m)}, true
	case "PASS":
		return CmdPass{Password: firstParam(m.Params)}, true
	case "USER":
		return CmdUser{Username: firstParam(m.Params), RealName: m.Trailing}, true
	case "PING":
		return CmdPing{Token: tokenOf(m)}, true
	case "PONG":
		return CmdPong{Token: tokenOf(m)}, true
	case "QUIT":
		return CmdQuit{Reason: m.Trailing, HasReason: m.HasTrailing}, true
	case "JOIN":
		return CmdJoin{Channel: firstParam(m.Params)}, true
	case "PART":
		return CmdPart{Channel: firstParam(m.Params), Reason: m.Trailing, HasReason: m.HasTrailing}, true
	case "TOPIC":
		return CmdTopic{Channel: firstParam(m.Params), Text: m.Trailing}, true
	case "CAP":
		return CmdCap{Arg: capArg(m)}, true
	case "ERROR":
		return CmdError{Text: contentOf(m)}, true
	default:
		return nil, false
	}
}

// contentOf implements the PRIVMSG/NOTICE arity rule: trailing if
// present, else the remaining params joined by space.
func contentOf(m *Message) string {
	if m.HasTrailing {
		return m.Trailing
	}
	if len(m.Params) <= 1 {
		return ""
	}
	return strings.Join(m.Params[1:], " ")
}

// nickTarget implements the NICK arity rule: trailing if present, else
// the first param.
func nickTarget(m *Message) string {
	if m.HasTrailing {
		return m.Trailing
	}
	return firstParam(m.Params)
}

// tokenOf implements the PING/PONG arity rule: trailing if present,
// else the first param.
func tokenOf(m *Message) string {
	if m.HasTrailing {
		return m.Trailing
	}
	return firstParam(m.Params)
}

func capArg(m *Message) string {
	parts := append([]string{}, m.Params...)
	if m.HasTrailing {
		parts = append(parts, m.Trailing)
	}
	return strings.Join(parts, " ")
}

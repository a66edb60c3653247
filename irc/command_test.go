package irc

import (
	"strings"
	"testing"
)

func TestCommandBytes_CanonicalForms(t *testing.T) {
	cases := []struct {
		cmd  Command
		want string
	}{
		{CmdPrivMsg{Target: "#chan", Content: "hi"}, "PRIVMSG #chan :hi\r\n"},
		{CmdNotice{Target: "#chan", Content: "hi"}, "NOTICE #chan :hi\r\n"},
		{CmdNick{Target: "bob"}, "NICK bob\r\n"},
		{CmdPass{Password: "hunter2"}, "PASS hunter2\r\n"},
		{CmdUser{Username: "bob", RealName: "Bob Bobson"}, "USER bob 0 * :Bob Bobson\r\n"},
		{CmdPing{Token: "tok"}, "PING :tok\r\n"},
		{CmdPong{Token: "tok"}, "PONG :tok\r\n"},
		{CmdQuit{}, "QUIT\r\n"},
		{CmdQuit{Reason: "bye", HasReason: true}, "QUIT :bye\r\n"},
		{CmdJoin{Channel: "#chan"}, "JOIN #chan\r\n"},
		{CmdPart{Channel: "#chan"}, "PART #chan\r\n"},
		{CmdPart{Channel: "#chan", Reason: "later", HasReason: true}, "PART #chan :later\r\n"},
		{CmdTopic{Channel: "#chan", Text: "yo"}, "TOPIC #chan :yo\r\n"},
		{CmdCap{Arg: "END"}, "CAP END\r\n"},
	}
	for _, c := range cases {
		got := string(c.cmd.Bytes())
		if got != c.want {
			t.Errorf("%T.Bytes() = %q, want %q", c.cmd, got, c.want)
		}
	}
}

func TestCommandBytes_CmdErrorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected CmdError.Bytes() to panic")
		}
	}()
	CmdError{Text: "nope"}.Bytes()
}

func TestCommandBytes_AlwaysEndsWithCRLF(t *testing.T) {
	cmds := []Command{
		CmdPrivMsg{Target: "a", Content: "b"},
		CmdJoin{Channel: "#x"},
		CmdQuit{},
	}
	for _, c := range cmds {
		if !strings.HasSuffix(string(c.Bytes()), "\r\n") {
			t.Errorf("%T does not end with CRLF", c)
		}
	}
}

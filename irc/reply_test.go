package irc

import "testing"

func TestBuildReply_NamedNumerics(t *testing.T) {
	cases := []struct {
		code uint16
		text string
		want ResponseNumber
	}{
		{1, "Welcome to the network", RplWelcome{simple("Welcome to the network")}},
		{332, "the topic", RplTopic{simple("the topic")}},
		{333, "alice 1234567890", RplTopicWhoTime{simple("alice 1234567890")}},
		{331, "No topic is set", RplNoTopic{simple("No topic is set")}},
		{376, "End of MOTD", RplEndOfMOTD{simple("End of MOTD")}},
	}
	for _, c := range cases {
		got := buildReply(c.code, c.text, true)
		if got != c.want {
			t.Errorf("buildReply(%d) = %#v, want %#v", c.code, got, c.want)
		}
	}
}

func TestBuildReply_ErrorSet(t *testing.T) {
	for _, code := range []uint16{400, 433, 502, 524, 525, 691, 696, 723, 902, 904, 907} {
		got := buildReply(code, "oops", true)
		e, ok := got.(RplErr)
		if !ok {
			t.Fatalf("code %d: expected RplErr, got %T", code, got)
		}
		if e.Code != code || e.Text != "oops" {
			t.Fatalf("code %d: got %+v", code, e)
		}
	}
}

func TestBuildReply_UnknownNumeric(t *testing.T) {
	got := buildReply(999, "mystery", true)
	u, ok := got.(RplUnknown)
	if !ok {
		t.Fatalf("expected RplUnknown, got %T", got)
	}
	if u.Code != 999 || u.Text != "mystery" {
		t.Fatalf("got %+v", u)
	}
}

func TestBuildReply_NameReplySplit(t *testing.T) {
	got := buildReply(353, "alice @bob   carol", true)
	nr := got.(RplNameReply)
	want := []string{"alice", "@bob", "carol"}
	if len(nr.Names) != len(want) {
		t.Fatalf("names = %v, want %v", nr.Names, want)
	}
	for i := range want {
		if nr.Names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, nr.Names[i], want[i])
		}
	}
}

func TestBuildReply_AbsentTrailingStillProducesReply(t *testing.T) {
	got := buildReply(1, "", false)
	w, ok := got.(RplWelcome)
	if !ok {
		t.Fatalf("expected RplWelcome even with absent trailing, got %T", got)
	}
	if w.Text != "" {
		t.Fatalf("text = %q, want empty", w.Text)
	}
}

func TestIsErrorCode_Boundaries(t *testing.T) {
	inSet := []uint16{400, 450, 502, 524, 525, 691, 696, 723, 902, 904, 905, 906, 907}
	for _, n := range inSet {
		if !isErrorCode(n) {
			t.Errorf("isErrorCode(%d) = false, want true", n)
		}
	}
	outOfSet := []uint16{399, 503, 523, 526, 690, 692, 700, 901, 903, 908}
	for _, n := range outOfSet {
		if isErrorCode(n) {
			t.Errorf("isErrorCode(%d) = true, want false", n)
		}
	}
}

// Command velourc is a headless IRC client built on the velour wire
// engine: it connects to one server, logs every classified server
// message, and lets the operator send commands by piping lines of the
// form "<verb> <args...>" on standard input.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/velour/velour/irc"
	"github.com/velour/velour/session"
	"github.com/velour/velour/supervisor"
)

const (
	defaultPort = 6667

	// initialTimeout is the initial reconnect delay; each failed
	// reconnection doubles it, matching the teacher's velour.go loop.
	initialTimeout = 2 * time.Second
	maxTimeout     = 2 * time.Minute
)

var (
	nick   = flag.String("n", username(), "nickname")
	full   = flag.String("f", "", "full name")
	pass   = flag.String("p", "", "password")
	debug  = flag.Bool("d", false, "debug logging")
	join   = flag.String("j", "", "automatically join a channel")
	useTLS = flag.Bool("ssl", false, "use TLS to connect to the server")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: velourc [options] <server>[:<port>]")
		flag.PrintDefaults()
	}
	flag.Parse()
	if len(flag.Args()) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&formatter.Formatter{
		FieldsOrder:     []string{"server", "conn"},
		HideKeys:        true,
		TimestampFormat: time.RFC3339,
	})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	host, portStr, err := net.SplitHostPort(flag.Arg(0))
	if err != nil {
		host, portStr = flag.Arg(0), strconv.Itoa(defaultPort)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("bad port %q: %v", portStr, err)
	}

	connCfg := irc.ConnectionConfig{Address: host, Port: port, TLS: *useTLS}
	loginCfg := irc.LoginConfig{Nickname: *nick, RealName: *full, Password: *pass, Channel: *join}

	entry := log.WithField("server", host)
	sup := supervisor.New(1, rate.NewLimiter(rate.Every(initialTimeout), 1), entry)
	sess := session.New(loginCfg.Nickname, loginCfg.Channel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		entry.Info("shutting down")
		sup.SendCommand(0, irc.CmdQuit{})
		cancel()
	}()

	go readStdinCommands(sup, entry)

	timeout := initialTimeout
	for {
		if err := sup.InitConnection(0, connCfg, loginCfg); err != nil {
			entry.WithError(err).Fatal("could not register server")
		}

		begin := time.Now()
		drainUntilDisconnected(ctx, sup, sess, entry, loginCfg.Channel)
		sup.ClearConnection(0)

		if ctx.Err() != nil {
			return
		}

		if time.Since(begin) < time.Minute {
			entry.WithField("retry_in", timeout).Warn("reconnecting")
			select {
			case <-time.After(timeout):
			case <-ctx.Done():
				return
			}
			timeout *= 2
			if timeout > maxTimeout {
				timeout = maxTimeout
			}
		} else {
			timeout = initialTimeout
		}
	}
}

// drainUntilDisconnected polls the supervisor's message/error fan-in
// until the connection for server 0 is gone.
func drainUntilDisconnected(ctx context.Context, sup *supervisor.Supervisor, sess *session.Session, log *logrus.Entry, autoJoin string) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	joined := autoJoin == ""
	registered := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, ev := range sup.PullMessages() {
				if rpl, ok := ev.Message.Response.(irc.RespRpl); ok {
					if _, ok := rpl.Reply.(irc.RplWelcome); ok {
						registered = true
					}
				}
				handleServerMessage(sup, sess, log, ev)
			}
			for _, ev := range sup.PullErrors() {
				log.WithField("err", ev.Err).Error("connection error")
			}
			if !joined && registered {
				sup.SendCommand(0, irc.CmdJoin{Channel: autoJoin})
				joined = true
			}
			if !sup.IsConnected(0) {
				return
			}
		}
	}
}

func handleServerMessage(sup *supervisor.Supervisor, sess *session.Session, log *logrus.Entry, ev supervisor.ServerEvent) {
	switch r := ev.Message.Response.(type) {
	case irc.RespCmd:
		switch cmd := r.Command.(type) {
		case irc.CmdPrivMsg:
			source := sourceName(r.Source)
			sess.PrivMsg(source, cmd.Target, cmd.Content)
			log.Infof("<%s> %s: %s", cmd.Target, source, cmd.Content)
		case irc.CmdJoin:
			sess.Join(cmd.Channel, sourceName(r.Source))
			log.Infof("%s joined %s", sourceName(r.Source), cmd.Channel)
		case irc.CmdPart:
			sess.Part(cmd.Channel, sourceName(r.Source))
			log.Infof("%s left %s", sourceName(r.Source), cmd.Channel)
		case irc.CmdQuit:
			sess.Quit(sourceName(r.Source), cmd.Reason)
			log.Infof("%s quit", sourceName(r.Source))
		case irc.CmdNick:
			sess.Nick(sourceName(r.Source), cmd.Target)
			log.Infof("%s is now known as %s", sourceName(r.Source), cmd.Target)
		case irc.CmdTopic:
			sess.SetTopic(cmd.Channel, cmd.Text)
			log.Infof("topic for %s: %s", cmd.Channel, cmd.Text)
		}
	case irc.RespRpl:
		switch rpl := r.Reply.(type) {
		case irc.RplNameReply:
			log.Infof("names: %s", strings.Join(rpl.Names, " "))
		case irc.RplErr:
			log.Errorf("server error %d: %s", rpl.Code, rpl.Text)
		}
	case irc.RespUnknown:
		log.Debug(r.Text)
	}
}

func sourceName(s *irc.Source) string {
	if s == nil {
		return ""
	}
	return s.Name
}

// readStdinCommands lets the operator drive the connection with lines
// like "PRIVMSG #chan hello there" or "JOIN #chan".
func readStdinCommands(sup *supervisor.Supervisor, log *logrus.Entry) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, ok := parseUserCommand(fields)
		if !ok {
			log.Warnf("unrecognized command: %s", fields[0])
			continue
		}
		sup.SendCommand(0, cmd)
	}
}

func parseUserCommand(fields []string) (irc.Command, bool) {
	verb := strings.ToUpper(fields[0])
	args := fields[1:]
	switch verb {
	case "PRIVMSG":
		if len(args) < 2 {
			return nil, false
		}
		return irc.CmdPrivMsg{Target: args[0], Content: strings.Join(args[1:], " ")}, true
	case "JOIN":
		if len(args) < 1 {
			return nil, false
		}
		return irc.CmdJoin{Channel: args[0]}, true
	case "PART":
		if len(args) < 1 {
			return nil, false
		}
		return irc.CmdPart{Channel: args[0]}, true
	case "NICK":
		if len(args) < 1 {
			return nil, false
		}
		return irc.CmdNick{Target: args[0]}, true
	case "QUIT":
		return irc.CmdQuit{Reason: strings.Join(args, " "), HasReason: len(args) > 0}, true
	default:
		return nil, false
	}
}

func username() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "velourc"
}

package irc

import (
	"bufio"
	"context"
	"net"

	"github.com/sirupsen/logrus"
)

// LoginConfig carries the per-server login identity (spec.md §3).
// yaml tags let an external config loader deserialize directly into
// this type; the core itself never reads a config file (out of scope,
// spec.md §1).
type LoginConfig struct {
	Nickname string `yaml:"nickname"`
	Username string `yaml:"username,omitempty"`
	RealName string `yaml:"real_name,omitempty"`
	Password string `yaml:"password,omitempty"`
	Channel  string `yaml:"channel,omitempty"`
}

// ConnectionConfig carries the transport target (spec.md §3). TLS is
// selected explicitly by the TLS field (Launch then dials with DialTLS
// instead of Dial); it is not inferred from the port.
type ConnectionConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
	TLS     bool   `yaml:"tls"`
}

// Client is the per-connection facade (spec.md §4.H): it owns the
// outbound command queue and the inbound message channel, and drives
// login before handing control to the Pump.
type Client struct {
	login LoginConfig
	log   *logrus.Entry

	queue *commandQueue
	inbox chan ServerMessage
}

// inboxCapacity is the bounded inbound-message channel's capacity
// (spec.md §4.G, Open Questions: "1024 is recommended but any bounded
// positive value is acceptable").
const inboxCapacity = 1024

// NewClient constructs a Client for the given login identity. Queues
// are created immediately; the stream is opened only by Launch.
func NewClient(login LoginConfig, log *logrus.Entry) *Client {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		login: login,
		log:   log,
		queue: newCommandQueue(),
		inbox: make(chan ServerMessage, inboxCapacity),
	}
}

// CommandSender returns a handle producers can use to enqueue outbound
// Commands. It may be called repeatedly; every caller shares the same
// underlying unbounded queue (spec.md §4.H: "clone-on-call").
func (c *Client) CommandSender() CommandSender {
	return CommandSender{queue: c.queue}
}

// MessageReceiver returns the inbound message channel. Spec.md
// describes this as "take-once"; callers are expected to call it a
// single time and hold onto the result.
func (c *Client) MessageReceiver() <-chan ServerMessage {
	return c.inbox
}

// CommandSender is a clonable handle for queuing outbound Commands.
type CommandSender struct{ queue *commandQueue }

// Send enqueues cmd. It never blocks.
func (s CommandSender) Send(cmd Command) { s.queue.Send(cmd) }

// Launch opens the stream described by cfg, performs the login
// handshake (spec.md §4.H), and runs the pump until the connection
// closes. It blocks until the pump terminates.
func (c *Client) Launch(ctx context.Context, cfg ConnectionConfig) error {
	conn, err := dialFor(cfg)
	if err != nil {
		return err
	}

	if err := c.register(conn); err != nil {
		conn.Close()
		return err
	}

	pump := newPump(conn, c.queue, c.inbox, c.log, cfg.Address)
	return pump.Run(ctx)
}

func dialFor(cfg ConnectionConfig) (net.Conn, error) {
	if cfg.TLS {
		return DialTLS(cfg.Address, cfg.Port)
	}
	return Dial(cfg.Address, cfg.Port)
}

// register performs the login sequence in spec.md §4.H: PASS (if a
// password is configured), NICK, USER. Unlike the teacher's register,
// it does not block reading RPL_WELCOME/ERR_* off the socket — that
// reconciliation is the application's job once messages start
// arriving on the inbox, keeping the pump the single reader of conn.
func (c *Client) register(conn net.Conn) error {
	w := bufio.NewWriter(conn)

	username := c.login.Username
	if username == "" {
		username = c.login.Nickname
	}
	realName := c.login.RealName
	if realName == "" {
		realName = c.login.Nickname
	}

	var cmds []Command
	if c.login.Password != "" {
		cmds = append(cmds, CmdPass{Password: c.login.Password})
	}
	cmds = append(cmds,
		CmdNick{Target: c.login.Nickname},
		CmdUser{Username: username, RealName: realName},
	)

	for _, cmd := range cmds {
		if _, err := w.Write(cmd.Bytes()); err != nil {
			return wrapIRCIOError(IOError, err)
		}
	}
	if err := w.Flush(); err != nil {
		return wrapIRCIOError(IOError, err)
	}
	return nil
}

// Package supervisor is the multi-server registry: it owns one irc.Client
// per configured server, bounds reconnect attempts with a decrementing
// retry counter, and fans in per-connection messages and errors for the
// application to drain (spec.md §4.J).
package supervisor

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/velour/velour/irc"
)

// initialRetries is the supervisor's starting retry budget (spec.md
// §4.J: "a retry counter (initial 5, decrement per attempt)").
const initialRetries = 5

// errChanCapacity is the bounded per-connection error channel's
// capacity (spec.md §4.J: "bounded, cap 10").
const errChanCapacity = 10

// ServerEvent pairs a server id with one of its inbound messages, the
// shape pull_all_server_message yields in the original source.
type ServerEvent struct {
	ServerID int
	Message  irc.ServerMessage
}

// ErrorEvent pairs a server id with a stringified launch/pump error.
type ErrorEvent struct {
	ServerID int
	Err      string
}

// connection is one registered, currently-launched server.
type connection struct {
	client *irc.Client
	cancel context.CancelFunc
	errs   chan string
	done   chan struct{}
}

// Supervisor is a fixed-size registry of optional connections indexed
// by configured server id (spec.md §4.J: "a vector of optional
// IRCConnection").
type Supervisor struct {
	mu          sync.Mutex
	connections []*connection
	retry       int
	limiter     *rate.Limiter
	log         *logrus.Entry
}

// New creates a Supervisor with slots for n servers. limiter paces
// repeated InitConnection attempts (spec.md's retry counter is "not an
// exponential backoff"; the rate limiter only prevents attempts faster
// than one per window, it does not grow the window over time).
func New(n int, limiter *rate.Limiter, log *logrus.Entry) *Supervisor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Every(0), 1<<30) // effectively unlimited
	}
	return &Supervisor{
		connections: make([]*connection, n),
		retry:       initialRetries,
		limiter:     limiter,
		log:         log,
	}
}

// ResetRetry restores the retry budget to its initial value.
func (s *Supervisor) ResetRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retry = initialRetries
}

// RetriesRemaining reports the current retry budget.
func (s *Supervisor) RetriesRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retry
}

// IsConnected reports whether id currently has a registered connection.
// The slot stays registered after its Launch fails or its pump ends,
// until ClearConnection is called.
func (s *Supervisor) IsConnected(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return id >= 0 && id < len(s.connections) && s.connections[id] != nil
}

// InitConnection launches a Client for server id, consuming one unit
// of the retry budget. It is a no-op if the retry budget is exhausted,
// the rate limiter rejects the attempt, or id already has a live
// connection (spec.md §4.J, §7: "further connect requests are ignored
// until reset").
func (s *Supervisor) InitConnection(id int, connCfg irc.ConnectionConfig, loginCfg irc.LoginConfig) error {
	s.mu.Lock()
	if id < 0 || id >= len(s.connections) {
		s.mu.Unlock()
		return fmt.Errorf("supervisor: server id %d out of range", id)
	}
	if s.connections[id] != nil {
		s.mu.Unlock()
		return nil
	}
	if s.retry <= 0 {
		s.mu.Unlock()
		return nil
	}
	if !s.limiter.Allow() {
		s.mu.Unlock()
		return nil
	}
	s.retry--
	s.mu.Unlock()

	client := irc.NewClient(loginCfg, s.log.WithField("server", connCfg.Address))
	ctx, cancel := context.WithCancel(context.Background())
	conn := &connection{
		client: client,
		cancel: cancel,
		errs:   make(chan string, errChanCapacity),
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	s.connections[id] = conn
	s.mu.Unlock()

	go func() {
		defer close(conn.done)
		if err := client.Launch(ctx, connCfg); err != nil {
			select {
			case conn.errs <- fmt.Sprintf("Connection error: %s", err.Error()):
			default:
				s.log.WithField("server", connCfg.Address).Warn("error channel full, dropping launch error")
			}
		}
	}()

	return nil
}

// ClearConnection removes server id's connection record after its
// pump has terminated, cancelling its context as a safety net.
func (s *Supervisor) ClearConnection(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.connections) || s.connections[id] == nil {
		return
	}
	s.connections[id].cancel()
	s.connections[id] = nil
}

// SendCommand enqueues cmd on server id's outbound queue; a no-op if
// id has no live connection.
func (s *Supervisor) SendCommand(id int, cmd irc.Command) {
	s.mu.Lock()
	conn := s.get(id)
	s.mu.Unlock()
	if conn == nil {
		return
	}
	conn.client.CommandSender().Send(cmd)
}

func (s *Supervisor) get(id int) *connection {
	if id < 0 || id >= len(s.connections) {
		return nil
	}
	return s.connections[id]
}

// PullMessages drains every registered connection's inbound channel
// without blocking, mirroring pull_all_server_message.
func (s *Supervisor) PullMessages() []ServerEvent {
	s.mu.Lock()
	conns := append([]*connection(nil), s.connections...)
	s.mu.Unlock()

	var out []ServerEvent
	for id, conn := range conns {
		if conn == nil {
			continue
		}
		for {
			select {
			case msg := <-conn.client.MessageReceiver():
				out = append(out, ServerEvent{ServerID: id, Message: msg})
				continue
			default:
			}
			break
		}
	}
	return out
}

// PullErrors drains every registered connection's error channel
// without blocking, mirroring pull_all_server_error.
func (s *Supervisor) PullErrors() []ErrorEvent {
	s.mu.Lock()
	conns := append([]*connection(nil), s.connections...)
	s.mu.Unlock()

	var out []ErrorEvent
	for id, conn := range conns {
		if conn == nil {
			continue
		}
		for {
			select {
			case e := <-conn.errs:
				out = append(out, ErrorEvent{ServerID: id, Err: e})
				continue
			default:
			}
			break
		}
	}
	return out
}

// AllConnectedServers returns the ids of every currently registered
// connection.
func (s *Supervisor) AllConnectedServers() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int
	for i, c := range s.connections {
		if c != nil {
			ids = append(ids, i)
		}
	}
	return ids
}

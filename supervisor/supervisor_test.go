package supervisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/velour/velour/irc"
)

func TestInitConnection_OutOfRangeID(t *testing.T) {
	s := New(2, rate.NewLimiter(rate.Inf, 1), nil)
	err := s.InitConnection(5, irc.ConnectionConfig{Address: "irc.example.net", Port: 6667}, irc.LoginConfig{Nickname: "me"})
	assert.Error(t, err)
}

func TestInitConnection_UnreachableAddressConsumesNoRetryOnRepeat(t *testing.T) {
	s := New(1, rate.NewLimiter(rate.Inf, 1), nil)
	// An unreachable address still launches a goroutine (Launch will
	// fail async); the registry slot becomes occupied immediately.
	_ = s.InitConnection(0, irc.ConnectionConfig{Address: "127.0.0.1", Port: 1}, irc.LoginConfig{Nickname: "me"})
	assert.True(t, s.IsConnected(0))

	// A second attempt on the same id is a no-op: retry budget is
	// unaffected since the slot is already occupied.
	before := s.RetriesRemaining()
	_ = s.InitConnection(0, irc.ConnectionConfig{Address: "127.0.0.1", Port: 1}, irc.LoginConfig{Nickname: "me"})
	assert.Equal(t, before, s.RetriesRemaining())
}

func TestRetryBudgetExhausts(t *testing.T) {
	s := New(initialRetries+2, rate.NewLimiter(rate.Inf, initialRetries+2), nil)
	for i := 0; i < initialRetries; i++ {
		_ = s.InitConnection(i, irc.ConnectionConfig{Address: "127.0.0.1", Port: 1}, irc.LoginConfig{Nickname: "me"})
	}
	assert.Equal(t, 0, s.RetriesRemaining())

	// One more slot, budget exhausted: InitConnection is a no-op.
	_ = s.InitConnection(initialRetries, irc.ConnectionConfig{Address: "127.0.0.1", Port: 1}, irc.LoginConfig{Nickname: "me"})
	assert.False(t, s.IsConnected(initialRetries))

	s.ResetRetry()
	assert.Equal(t, initialRetries, s.RetriesRemaining())
}

func TestClearConnectionFreesSlot(t *testing.T) {
	s := New(1, rate.NewLimiter(rate.Inf, 1), nil)
	_ = s.InitConnection(0, irc.ConnectionConfig{Address: "127.0.0.1", Port: 1}, irc.LoginConfig{Nickname: "me"})
	assert.True(t, s.IsConnected(0))

	s.ClearConnection(0)
	assert.False(t, s.IsConnected(0))
}

func TestPullMessagesAndErrorsEmptyWhenNoConnections(t *testing.T) {
	s := New(3, rate.NewLimiter(rate.Inf, 1), nil)
	assert.Empty(t, s.PullMessages())
	assert.Empty(t, s.PullErrors())
	assert.Empty(t, s.AllConnectedServers())
}

package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func Test_Connection_Open(t *testing.T) {
	tests := []struct {
		name      string
		irc       *fakeIrc
		canceled  bool
		wantErr   string
		wantOpen  bool
		wantState error
	}{
		{
			name:     "connects",
			irc:      &fakeIrc{},
			wantOpen: true,
		},
		{
			name:      "connect failure is returned and recorded",
			irc:       &fakeIrc{connectErr: errors.New("no route to host")},
			wantErr:   "no route to host",
			wantState: errors.New("no route to host"),
		},
		{
			name:      "canceled context aborts the wait",
			irc:       &fakeIrc{stall: true},
			canceled:  true,
			wantErr:   "context canceled while waiting to connect",
			wantState: ErrConnectionNotOpen,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { tt.irc.drop(nil) })
			conn := NewConnection(tt.irc, zap.NewNop())
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.canceled {
				cancel()
			}

			err := conn.Open(ctx)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOpen, conn.isOpen())
			if tt.wantState == nil {
				assert.NoError(t, conn.GetStatus())
			} else {
				assert.EqualError(t, conn.GetStatus(), tt.wantState.Error())
			}
		})
	}
}

func Test_Connection_Close(t *testing.T) {
	t.Run("never opened", func(t *testing.T) {
		conn := NewConnection(&fakeIrc{}, zap.NewNop())
		assert.ErrorIs(t, conn.GetStatus(), ErrConnectionNotOpen)
		assert.ErrorIs(t, conn.Close(), ErrConnectionNotOpen)
	})
	t.Run("disconnects", func(t *testing.T) {
		irc := &fakeIrc{}
		conn := NewConnection(irc, zap.NewNop())
		require.NoError(t, conn.Open(context.Background()))

		assert.NoError(t, conn.Close())
		assert.False(t, conn.isOpen())
		assert.ErrorIs(t, conn.GetStatus(), ErrConnectionNotOpen)
		assert.ErrorIs(t, conn.Close(), ErrConnectionNotOpen)
	})
	t.Run("disconnect failure is returned", func(t *testing.T) {
		irc := &fakeIrc{disconnectErr: errors.New("socket already closed")}
		t.Cleanup(func() { irc.drop(nil) })
		conn := NewConnection(irc, zap.NewNop())
		require.NoError(t, conn.Open(context.Background()))

		assert.EqualError(t, conn.Close(), "socket already closed")
	})
}

func Test_Connection_dropped(t *testing.T) {
	irc := &fakeIrc{}
	conn := NewConnection(irc, zap.NewNop())
	require.NoError(t, conn.Open(context.Background()))
	require.NoError(t, conn.GetStatus())

	irc.drop(errors.New("connection reset by peer"))
	assert.Eventually(t, func() bool { return !conn.isOpen() }, time.Second, time.Millisecond)
	assert.EqualError(t, conn.GetStatus(), "connection reset by peer")
}

// fakeIrc stands in for the go-twitch-irc client: Connect reports success via the
// OnConnect callback, then blocks until the connection is dropped
type fakeIrc struct {
	connectErr    error
	disconnectErr error
	stall         bool

	mu        sync.Mutex
	onConnect func()
	dropped   chan error
}

func (f *fakeIrc) drops() chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dropped == nil {
		f.dropped = make(chan error, 1)
	}
	return f.dropped
}

// drop ends a blocked Connect call with the given error
func (f *fakeIrc) drop(err error) {
	select {
	case f.drops() <- err:
	default:
	}
}

func (f *fakeIrc) Connect() error {
	if f.connectErr != nil {
		return f.connectErr
	}
	if !f.stall {
		f.mu.Lock()
		callback := f.onConnect
		f.mu.Unlock()
		if callback != nil {
			callback()
		}
	}
	return <-f.drops()
}

func (f *fakeIrc) Disconnect() error {
	if f.disconnectErr != nil {
		return f.disconnectErr
	}
	f.drop(nil)
	return nil
}

func (f *fakeIrc) OnConnect(callback func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onConnect = callback
}

func (c *Connection) isOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

var _ IrcConnection = (*fakeIrc)(nil)

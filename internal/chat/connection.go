package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrConnectionNotOpen = errors.New("not connected")

// IrcConnection is the part of the go-twitch-irc client that manages its connection
type IrcConnection interface {
	OnConnect(func())
	Connect() error
	Disconnect() error
}

// Connection tracks the state of an IrcConnection, whose Connect method blocks for as
// long as the connection is open
type Connection struct {
	client IrcConnection
	logger *zap.Logger

	connectErrChan chan error

	mu      sync.Mutex
	open    bool
	lastErr error
}

func NewConnection(client IrcConnection, logger *zap.Logger) *Connection {
	return &Connection{
		client:         client,
		logger:         logger,
		connectErrChan: make(chan error, 2),
	}
}

// GetStatus returns nil if connected, or the reason we're not
func (c *Connection) GetStatus() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastErr == nil && !c.open {
		return ErrConnectionNotOpen
	}
	return c.lastErr
}

// Open connects, blocking until the connection is established or fails, or until ctx
// is done
func (c *Connection) Open(ctx context.Context) error {
	// Write nil (indicating no error) when connection succeeds, limited to the scope of
	// this function
	c.client.OnConnect(func() { c.connectErrChan <- nil })
	defer c.client.OnConnect(nil)

	// Connect() is blocking, so run it in a separate goroutine, and signal its return
	// value by writing to the error channel
	go func() {
		c.connectErrChan <- c.client.Connect()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context canceled while waiting to connect: %v", ctx.Err())
	case err := <-c.connectErrChan:
		// nil means our OnConnect callback fired; anything else means Connect failed
		if err != nil {
			c.mu.Lock()
			c.lastErr = err
			c.mu.Unlock()
			return err
		}
	}

	// We're connected, and the Connect goroutine is still running: once it returns,
	// record its result
	c.mu.Lock()
	c.open = true
	c.lastErr = nil
	c.mu.Unlock()
	go func() {
		err := <-c.connectErrChan
		c.logger.Info("irc connection closed", zap.Error(err))
		if err != nil {
			c.mu.Lock()
			c.open = false
			c.lastErr = err
			c.mu.Unlock()
		}
	}()
	return nil
}

// Close disconnects, if connected
func (c *Connection) Close() error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrConnectionNotOpen
	}
	c.open = false
	c.mu.Unlock()
	return c.client.Disconnect()
}

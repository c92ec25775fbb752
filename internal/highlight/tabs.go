package highlight

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Priority is the urgency with which a tab is highlighted, from None (no highlight)
// up to Highlight
type Priority int

const (
	// None clears the tab color
	None Priority = 0
	// Data indicates that something happened in the channel
	Data Priority = 1
	// Message indicates that a noteworthy message arrived in the channel
	Message Priority = 2
	// Highlight is the most urgent color
	Highlight Priority = 3
)

// Host is the subset of host capabilities needed to recolor tabs
type Host interface {
	FocusedChannel() string
	Command(channel string, command string) error
}

// Tabs tracks the highlight color currently applied to each channel's tab, so that
// we only issue a recolor command when a tab's color actually needs to go up
type Tabs struct {
	host   Host
	logger *zap.Logger

	mu     sync.Mutex
	colors map[string]Priority

	// OnRecolor, if set, is called each time a recolor command is issued
	OnRecolor func(channel string, priority Priority)
}

// NewTabs initializes a Tabs with no recorded colors
func NewTabs(host Host, logger *zap.Logger) *Tabs {
	return &Tabs{
		host:   host,
		logger: logger,
		colors: make(map[string]Priority),
	}
}

// Escalate raises the highlight on the given channel's tab to priority, if the
// channel isn't focused and its tab isn't already at least that urgent. Returns true
// if a recolor command was issued.
func (t *Tabs) Escalate(channel string, priority Priority) bool {
	key := normalize(channel)

	// Focus is checked and the command issued under the lock, so that neither a
	// racing escalation nor a Reset for a newly-focused tab can land out of order
	t.mu.Lock()
	defer t.mu.Unlock()

	if sameChannel(t.host.FocusedChannel(), channel) {
		return false
	}
	if current, ok := t.colors[key]; ok && priority <= current {
		return false
	}
	t.colors[key] = priority
	t.recolor(channel, priority)
	return true
}

// Reset clears the highlight on the given channel's tab, unconditionally. It's called
// whenever a channel becomes focused.
func (t *Tabs) Reset(channel string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.colors[normalize(channel)] = None
	t.recolor(channel, None)
}

// Priority returns the highlight currently recorded for the given channel
func (t *Tabs) Priority(channel string) Priority {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.colors[normalize(channel)]
}

func (t *Tabs) recolor(channel string, priority Priority) {
	if err := t.host.Command(channel, fmt.Sprintf("GUI COLOR %d", priority)); err != nil {
		t.logger.Warn("failed to recolor tab",
			zap.String("channel", channel),
			zap.Int("priority", int(priority)),
			zap.Error(err),
		)
	}
	if t.OnRecolor != nil {
		t.OnRecolor(channel, priority)
	}
}

func normalize(channel string) string {
	return strings.ToLower(channel)
}

func sameChannel(a string, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

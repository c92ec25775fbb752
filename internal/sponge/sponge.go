// Package sponge correlates a chat line seen on the wire with the host's own rendering
// of that same line.
//
// The host parses and renders chat messages itself, without the IRCv3 tags we need in
// order to display badges and the like. So when a PRIVMSG arrives on the wire, we soak
// up the fully-tagged message into the Sponge; then, when the host is about to print
// a line, we squeeze out the message with the matching signature, if it's still there.
//
// The Sponge holds exactly one message. A new message always replaces the old one,
// whether or not the old one was ever claimed: the host renders each line as it
// arrives, so an unclaimed message has already been (or never will be) printed.
package sponge

import (
	"sync"

	"github.com/golden-vcr/tagchat/internal/irc"
)

// Sponge is a single-slot rendezvous between the raw-line hook and the print hook
type Sponge struct {
	mu        sync.Mutex
	signature string
	message   *irc.Message
}

// New returns an empty Sponge
func New() *Sponge {
	return &Sponge{}
}

// Put stores m under the given signature, replacing anything already held. Returns
// true if a previous message was discarded without being claimed.
func (s *Sponge) Put(signature string, m *irc.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	superseded := s.message != nil
	s.signature = signature
	s.message = m
	return superseded
}

// PutMessage stores m under its own signature
func (s *Sponge) PutMessage(m *irc.Message) bool {
	return s.Put(m.Signature(), m)
}

// Pop removes and returns the held message if it was stored under the given
// signature; otherwise the Sponge is left untouched and nil is returned
func (s *Sponge) Pop(signature string) *irc.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.message == nil || s.signature != signature {
		return nil
	}
	m := s.message
	s.signature = ""
	s.message = nil
	return m
}

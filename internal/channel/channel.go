// package channel implements the process-wide replay-last message channel.
//
// A single [Channel] instance decouples the catalog client, the session
// expiry flow, and the dialogs from the top-level views: publishers never
// know who listens, and a subscriber arriving late still observes the
// most recent value (and only that one).
package channel

import (
	"strings"
	"sync"
)

// Well-known messages carried by the channel. Unauthenticated notices
// append the server-supplied message after the prefix.
const (
	UserCreated           = "user-created-successfully"
	ListChanged           = "list-changed"
	UnauthenticatedPrefix = "authenticated-error:"
)

// Handler receives published messages.
type Handler func(message string)

type subscriber struct {
	handler Handler
	active  bool
}

// Channel is a replay-last subject: every publish is delivered
// synchronously and in subscription order to all current subscribers,
// and the most recent value is replayed to each new subscriber.
type Channel struct {
	mu   sync.Mutex
	last string
	subs []*subscriber
}

// New creates a channel whose initial replayed value is the empty string.
func New() *Channel {
	return &Channel{}
}

// Publish stores the message as the new replay value and delivers it to
// every current subscriber before returning.
func (c *Channel) Publish(message string) {
	c.mu.Lock()
	c.last = message
	subs := make([]*subscriber, 0, len(c.subs))
	for _, s := range c.subs {
		if s.active {
			subs = append(subs, s)
		}
	}
	c.mu.Unlock()

	for _, s := range subs {
		s.handler(message)
	}
}

// Subscribe registers the handler, immediately replays the most recent
// value to it, and returns a function that removes the subscription.
func (c *Channel) Subscribe(handler Handler) (unsubscribe func()) {
	c.mu.Lock()
	s := &subscriber{handler: handler, active: true}
	c.subs = append(c.subs, s)
	last := c.last
	c.mu.Unlock()

	handler(last)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		s.active = false
		for i, cur := range c.subs {
			if cur == s {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				break
			}
		}
	}
}

// Last returns the most recent published value.
func (c *Channel) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Unauthenticated builds the notice for a rejected session, carrying the
// server message after the prefix.
func Unauthenticated(serverMessage string) string {
	return UnauthenticatedPrefix + serverMessage
}

// ParseUnauthenticated reports whether the message is an unauthenticated
// notice and returns the server-supplied suffix.
func ParseUnauthenticated(message string) (string, bool) {
	if !strings.HasPrefix(message, UnauthenticatedPrefix) {
		return "", false
	}
	return strings.TrimPrefix(message, UnauthenticatedPrefix), true
}

// Package bus provides the async message bus between channels and the
// dialogue engine.
package bus

import (
	"context"
	"sync"
	"time"
)

// InboundTurn is a user message arriving from a channel.
type InboundTurn struct {
	Channel   string    `json:"channel"`
	SessionID string    `json:"session_id"`
	TraceID   string    `json:"trace_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// OutboundReply is an assistant reply headed back to a channel.
type OutboundReply struct {
	Channel   string `json:"channel"`
	SessionID string `json:"session_id"`
	TraceID   string `json:"trace_id"`
	Content   string `json:"content"`
}

// MessageBus decouples channels from the dialogue engine.
type MessageBus struct {
	inbound  chan *InboundTurn
	outbound chan *OutboundReply
	subs     map[string][]func(*OutboundReply)
	mu       sync.RWMutex
}

// NewMessageBus creates a new message bus.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound:  make(chan *InboundTurn, 100),
		outbound: make(chan *OutboundReply, 100),
		subs:     make(map[string][]func(*OutboundReply)),
	}
}

// PublishInbound sends a user turn to the engine.
func (b *MessageBus) PublishInbound(turn *InboundTurn) {
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	b.inbound <- turn
}

// ConsumeInbound blocks until a turn is available or the context is
// cancelled.
func (b *MessageBus) ConsumeInbound(ctx context.Context) (*InboundTurn, error) {
	select {
	case turn := <-b.inbound:
		return turn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PublishOutbound sends a reply from the engine to channels.
func (b *MessageBus) PublishOutbound(reply *OutboundReply) {
	b.outbound <- reply
}

// Subscribe registers a callback for replies addressed to a channel.
func (b *MessageBus) Subscribe(channel string, callback func(*OutboundReply)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[channel] = append(b.subs[channel], callback)
}

// DispatchOutbound runs the outbound dispatcher. Run it as a goroutine.
func (b *MessageBus) DispatchOutbound(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reply := <-b.outbound:
			b.mu.RLock()
			callbacks := b.subs[reply.Channel]
			b.mu.RUnlock()

			for _, cb := range callbacks {
				cb(reply)
			}
		}
	}
}

// InboundSize returns the number of pending inbound turns.
func (b *MessageBus) InboundSize() int {
	return len(b.inbound)
}

// OutboundSize returns the number of pending outbound replies.
func (b *MessageBus) OutboundSize() int {
	return len(b.outbound)
}

// Package messaging routes the JSON envelopes exchanged with editor pages.
//
// Pages send {"message": "<name>", "params": {...}} through
// juceBridge.postMessage; handlers may answer with a result that is sent
// back as {"message": "<name>", "result": ...}.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/plugview/internal/logging"
)

var (
	ErrMalformedEnvelope = errors.New("malformed message envelope")
	ErrUnknownMessage    = errors.New("no handler for message")
)

// Envelope is the JSON shape of page requests and native replies.
type Envelope struct {
	Message string          `json:"message"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Sender delivers text to the page.
type Sender interface {
	SendMessage(text string) error
}

// Handler handles the params of one message name.
// A nil result sends no reply.
type Handler interface {
	Handle(ctx context.Context, params json.RawMessage) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, error)

// Handle calls f(ctx, params).
func (f HandlerFunc) Handle(ctx context.Context, params json.RawMessage) (any, error) {
	return f(ctx, params)
}

// Router dispatches envelopes to registered handlers.
type Router struct {
	baseCtx context.Context
	sender  Sender

	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRouter creates a router replying through sender. sender may be set
// later with SetSender when the view is built after the router.
func NewRouter(ctx context.Context, sender Sender) *Router {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Router{
		baseCtx:  logging.WithComponent(ctx, "message-router"),
		sender:   sender,
		handlers: make(map[string]Handler),
	}
}

// SetSender replaces the reply channel.
func (r *Router) SetSender(sender Sender) {
	r.mu.Lock()
	r.sender = sender
	r.mu.Unlock()
}

// Register registers a handler for a message name.
func (r *Router) Register(name string, handler Handler) error {
	if name == "" {
		return errors.New("message name cannot be empty")
	}
	if handler == nil {
		return errors.New("message handler cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
	return nil
}

// Len returns the number of registered handlers.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// HandleMessage dispatches payload with the router's base context and
// logs failures. Its signature matches nativeview.MessageHandler.
func (r *Router) HandleMessage(payload string) {
	if err := r.Dispatch(r.baseCtx, payload); err != nil {
		logging.FromContext(r.baseCtx).Warn().Err(err).Msg("message dropped")
	}
}

// Dispatch decodes payload and runs the matching handler.
func (r *Router) Dispatch(ctx context.Context, payload string) error {
	var env Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Message == "" {
		return fmt.Errorf("%w: missing message name", ErrMalformedEnvelope)
	}

	r.mu.RLock()
	handler, ok := r.handlers[env.Message]
	sender := r.sender
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownMessage, env.Message)
	}

	log := logging.FromContext(ctx)
	log.Debug().Str("message", env.Message).Msg("dispatching page message")

	result, err := handler.Handle(ctx, env.Params)
	if err != nil {
		log.Warn().Err(err).Str("message", env.Message).Msg("handler failed")
		return r.reply(sender, Envelope{Message: env.Message, Error: err.Error()})
	}
	if result == nil {
		return nil
	}
	return r.reply(sender, Envelope{Message: env.Message, Result: result})
}

// Send pushes an unsolicited envelope to the page.
func (r *Router) Send(name string, result any) error {
	r.mu.RLock()
	sender := r.sender
	r.mu.RUnlock()
	return r.reply(sender, Envelope{Message: name, Result: result})
}

func (r *Router) reply(sender Sender, env Envelope) error {
	if sender == nil {
		return errors.New("no sender configured")
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal reply %q: %w", env.Message, err)
	}
	return sender.SendMessage(string(data))
}

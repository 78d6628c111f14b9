package nativeview

import (
	"github.com/bnema/plugview/internal/application/port"
)

// MessageHandler receives the payload of a "message" wire message.
type MessageHandler func(message string)

// ResizeHandler handles a page initiated resize request.
type ResizeHandler func(width, height int)

type options struct {
	loadFinished    func()
	resizeHandler   ResizeHandler
	messageHandlers []MessageHandler
	strict          bool
	post            port.PostFunc
}

// Option configures a NativeWebView.
type Option func(*options)

// WithLoadFinished registers a callback invoked before OnLoad on every
// completed navigation.
func WithLoadFinished(fn func()) Option {
	return func(o *options) {
		o.loadFinished = fn
	}
}

// WithResizeHandler replaces the default resize behaviour, which resizes
// the view itself.
func WithResizeHandler(h ResizeHandler) Option {
	return func(o *options) {
		o.resizeHandler = h
	}
}

// WithMessageHandler adds a handler for page messages. Handlers run after
// the configuration's OnMessageReceived, in registration order.
func WithMessageHandler(h MessageHandler) Option {
	return func(o *options) {
		if h != nil {
			o.messageHandlers = append(o.messageHandlers, h)
		}
	}
}

// WithStrictAssertions turns attach/detach protocol violations into panics.
func WithStrictAssertions() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithPost sets the function backends use to deliver events on the UI
// goroutine.
func WithPost(post port.PostFunc) Option {
	return func(o *options) {
		o.post = post
	}
}

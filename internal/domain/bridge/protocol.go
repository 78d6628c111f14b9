// Package bridge defines the wire protocol spoken between native code and
// the page script running inside a web view.
//
// Every message is a single string of the form "<tag>:<payload>". Script to
// native messages carry plain UTF-8 text; native to script calls embed the
// payload in an escaped JavaScript string literal (see EscapeJSLiteral).
package bridge

import (
	"strings"
)

// Tag identifies the category of a wire message.
type Tag string

const (
	// TagMessage carries an opaque payload for the host message callback.
	TagMessage Tag = "message"
	// TagMsg is the legacy alias of TagMessage. Accepted inbound only.
	TagMsg Tag = "msg"
	// TagResize carries a "width,height" resize request.
	TagResize Tag = "resize"
	// TagLog carries forwarded console output as "level+text".
	TagLog Tag = "log"
)

const (
	// HandlerName is the name of the platform script message handler.
	HandlerName = "juceBridge"
	// InternalFunction is the page function that forwards a raw wire
	// message to the native side.
	InternalFunction = "juceBridgeInternalMessage"
	// ReceiverFunction is the page function native code calls to deliver
	// a message to the page.
	ReceiverFunction = "juceBridgeOnMessage"
)

// Known reports whether t is one of the tags the native side dispatches.
func (t Tag) Known() bool {
	switch t {
	case TagMessage, TagMsg, TagResize, TagLog:
		return true
	default:
		return false
	}
}

// IsMessage reports whether t delivers to the host message callback.
func (t Tag) IsMessage() bool {
	return t == TagMessage || t == TagMsg
}

// Decompose splits a raw wire message at the first ':'.
// ok is false when the message has no delimiter.
func Decompose(raw string) (tag Tag, payload string, ok bool) {
	idx := strings.IndexByte(raw, ':')
	if idx < 0 {
		return "", "", false
	}
	return Tag(raw[:idx]), raw[idx+1:], true
}

// Encode builds a wire message from a tag and payload.
func Encode(tag Tag, payload string) string {
	return string(tag) + ":" + payload
}

// ParseResize parses a "width,height" payload.
// Fewer than two comma separated tokens is not a resize request. Tokens are
// read leniently: leading blanks and an optional sign, then as many digits
// as are present; anything else reads as zero.
func ParseResize(payload string) (w, h int, ok bool) {
	if payload == "" {
		return 0, 0, false
	}
	tokens := strings.Split(payload, ",")
	if len(tokens) < 2 {
		return 0, 0, false
	}
	return lenientAtoi(tokens[0]), lenientAtoi(tokens[1]), true
}

// ParseLog splits a "level+text" payload at the first '+'.
// A payload without '+' is reported at level "log".
func ParseLog(payload string) (level, text string) {
	idx := strings.IndexByte(payload, '+')
	if idx < 0 {
		return "log", payload
	}
	return payload[:idx], payload[idx+1:]
}

const maxInt32 = 1<<31 - 1

func lenientAtoi(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
		if n > maxInt32 {
			n = maxInt32
		}
	}
	if neg {
		return -n
	}
	return n
}

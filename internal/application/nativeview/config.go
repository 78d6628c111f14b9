package nativeview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/plugview/internal/domain/entity"
)

// ErrInvalidConfig is returned by New when the configuration is unusable.
var ErrInvalidConfig = errors.New("invalid web view configuration")

// ExecuteJavascript evaluates a script in the page. Fire-and-forget.
type ExecuteJavascript func(script string)

// WebViewConfiguration describes a web view to build.
type WebViewConfiguration struct {
	// URL is the initial page: http(s)://, file:// or data:.
	URL string
	// Size is the initial bounds relative to the parent.
	Size entity.Rect
	// WantsKeyboardFocus lets the control take keyboard focus.
	WantsKeyboardFocus bool
	// UserScript runs at document start, after the bridge object exists.
	UserScript string
	// ForwardConsole mirrors page console output into the native log.
	ForwardConsole bool

	// OnLoad is called after each completed navigation with an executor
	// bound to the view.
	OnLoad func(exec ExecuteJavascript)
	// OnDestroy is called once while the view is being destroyed.
	OnDestroy func()
	// OnMessageReceived receives payloads posted with juceBridge.postMessage.
	OnMessageReceived func(message string)
}

// Validate reports configuration problems.
func (c WebViewConfiguration) Validate() error {
	var problems []string

	if strings.TrimSpace(c.URL) == "" {
		problems = append(problems, "url must not be empty")
	}
	if c.Size.W < 0 || c.Size.H < 0 {
		problems = append(problems, fmt.Sprintf("size must not be negative, got %dx%d", c.Size.W, c.Size.H))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

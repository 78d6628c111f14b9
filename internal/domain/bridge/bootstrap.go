package bridge

import "strings"

// bridgeScript defines the page facing juceBridge object.
const bridgeScript = `var juceBridge = {
    postMessage: function (param) {
        juceBridgeInternalMessage("message:" + param);
    },

    resizeTo: function (width, height) {
        juceBridgeInternalMessage("resize:" + width.toString() + "," + height.toString());
    }
};
`

// consoleForwardScript mirrors console output to the native side as
// "log:<level>+<text>" while keeping the original console behaviour.
const consoleForwardScript = `(function () {
    if (typeof console === 'undefined') {
        return;
    }
    ['log', 'info', 'warn', 'error', 'debug'].forEach(function (level) {
        var original = console[level];
        console[level] = function () {
            var parts = [];
            for (var i = 0; i < arguments.length; i++) {
                var arg = arguments[i];
                if (typeof arg === 'string') {
                    parts.push(arg);
                    continue;
                }
                try {
                    parts.push(JSON.stringify(arg));
                } catch (e) {
                    parts.push(String(arg));
                }
            }
            try {
                juceBridgeInternalMessage("log:" + level + "+" + parts.join(" "));
            } catch (e) {}
            if (typeof original === 'function') {
                return original.apply(console, arguments);
            }
        };
    });
})();
`

// WebKitInjection is the platform part for WebKit based controls
// (WKWebView, WebKitGTK) which expose script message handlers.
const WebKitInjection = `function juceBridgeInternalMessage(msg) {
    webkit.messageHandlers.juceBridge.postMessage(msg);
}
`

// BootstrapOptions controls what Bootstrap emits.
type BootstrapOptions struct {
	// ForwardConsole patches console functions to post log messages.
	ForwardConsole bool
	// UserScript is appended after the bridge and runs before page scripts.
	UserScript string
}

// Bootstrap returns the platform independent part of the document start
// script: the bridge object, the optional console patch and the caller's
// script, in that order.
func Bootstrap(opts BootstrapOptions) string {
	var b strings.Builder
	b.WriteString(bridgeScript)
	if opts.ForwardConsole {
		b.WriteString(consoleForwardScript)
	}
	if opts.UserScript != "" {
		b.WriteString("\n")
		b.WriteString(opts.UserScript)
	}
	return b.String()
}

// WithPlatformInjection prepends a backend's platform script to bootstrap.
func WithPlatformInjection(platform, bootstrap string) string {
	if platform == "" {
		return bootstrap
	}
	return platform + "\n" + bootstrap
}

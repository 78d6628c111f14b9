package headless

// preludeScript gives the runtime the small part of the browser environment
// editor pages rely on: window, document and DOM style event targets.
const preludeScript = `var window = this;
var self = this;
(function (global) {
    function eventTarget(obj) {
        var listeners = {};
        obj.addEventListener = function (type, fn) {
            if (typeof fn !== 'function') {
                return;
            }
            (listeners[type] = listeners[type] || []).push(fn);
        };
        obj.removeEventListener = function (type, fn) {
            var list = listeners[type] || [];
            var idx = list.indexOf(fn);
            if (idx >= 0) {
                list.splice(idx, 1);
            }
        };
        obj.dispatchEvent = function (event) {
            var handler = obj['on' + event.type];
            if (typeof handler === 'function') {
                handler.call(obj, event);
            }
            var list = (listeners[event.type] || []).slice();
            for (var i = 0; i < list.length; i++) {
                list[i].call(obj, event);
            }
            return true;
        };
    }

    global.document = { readyState: 'loading', title: '' };
    global.navigator = { userAgent: 'plugview-headless' };
    global.location = { href: '' };
    eventTarget(global);
    eventTarget(global.document);
})(this);
`

// loadEventsScript advances document.readyState and fires the page
// lifecycle events once all page scripts ran.
const loadEventsScript = `document.readyState = 'interactive';
document.dispatchEvent({ type: 'DOMContentLoaded' });
document.readyState = 'complete';
window.dispatchEvent({ type: 'load' });
`

// platformInjection connects the bridge to the Go side of the runtime.
const platformInjection = `function juceBridgeInternalMessage(msg) {
    __plugviewNativePost(String(msg));
}
`

const nativePostFunction = "__plugviewNativePost"

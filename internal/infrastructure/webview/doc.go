// Package webview is the backend built on github.com/webview/webview_go
// (WebKitGTK on Linux, WebView2 on Windows, WKWebView on macOS). It is
// compiled with the webview build tag.
//
// webview_go owns its native control and cannot move it to another
// parent, so the control is bound when the view is attached: a *Surface
// handle reuses the host window's control, an unsafe.Pointer handle (a
// native window) gets a new embedded control. Attaching again reloads the
// page.
package webview

// Name is the registry name of the backend.
const Name = "webview"

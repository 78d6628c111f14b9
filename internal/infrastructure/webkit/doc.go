// Package webkit is the WebKitGTK 6 backend. It is compiled with the
// webkitgtk build tag, which needs the webkitgtk-6.0 and gtk4 development
// packages:
//
//	go build -tags webkitgtk ./cmd/plugview
//
// Views accept a *gtk.Fixed or a *gtk.Box as parent handle. Only a Fixed
// parent honours the x/y of SetBounds.
package webkit

// Name is the registry name of the backend.
const Name = "webkitgtk"

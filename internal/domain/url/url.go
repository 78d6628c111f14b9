// Package url classifies the locations a web view can be pointed at and
// decodes inline data URIs.
package url

import (
	"encoding/base64"
	"errors"
	"fmt"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
)

// Kind describes how a backend should load a URL.
type Kind int

const (
	KindInvalid Kind = iota
	KindRemote
	KindFile
	KindData
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindFile:
		return "file"
	case KindData:
		return "data"
	default:
		return "invalid"
	}
}

var (
	ErrNotDataURI   = errors.New("not a data URI")
	ErrMalformedURI = errors.New("malformed data URI")
	ErrNotFileURI   = errors.New("not a file URI")
)

const defaultDataMIME = "text/plain"

// Classify reports the kind of raw. Anything that is neither data: nor
// file: is treated as remote and handed to the backend as-is.
func Classify(raw string) Kind {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return KindInvalid
	case hasSchemePrefix(raw, "data:"):
		return KindData
	case hasSchemePrefix(raw, "file:"):
		return KindFile
	default:
		return KindRemote
	}
}

// DataURI is a decoded data: URL.
type DataURI struct {
	MIMEType string
	Charset  string
	Data     []byte
}

// DecodeDataURI decodes "data:[<mime>][;charset=<cs>][;base64],<data>".
// A missing media type reads as text/plain.
func DecodeDataURI(raw string) (*DataURI, error) {
	raw = strings.TrimSpace(raw)
	if !hasSchemePrefix(raw, "data:") {
		return nil, ErrNotDataURI
	}

	rest := raw[len("data:"):]
	comma := strings.IndexByte(rest, ',')
	if comma < 0 {
		return nil, fmt.Errorf("%w: missing ','", ErrMalformedURI)
	}
	header, body := rest[:comma], rest[comma+1:]

	out := &DataURI{MIMEType: defaultDataMIME}
	isBase64 := false
	for i, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		switch {
		case i == 0:
			if part != "" {
				out.MIMEType = strings.ToLower(part)
			}
		case strings.EqualFold(part, "base64"):
			isBase64 = true
		case len(part) > len("charset=") && strings.EqualFold(part[:len("charset=")], "charset="):
			out.Charset = part[len("charset="):]
		}
	}

	if isBase64 {
		data, err := decodeBase64(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedURI, err)
		}
		out.Data = data
		return out, nil
	}

	out.Data = percentDecode(body)
	return out, nil
}

// FilePath returns the local path of a file: URL.
func FilePath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !hasSchemePrefix(raw, "file:") {
		return "", ErrNotFileURI
	}

	u, err := neturl.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse file URI: %w", err)
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrNotFileURI)
	}
	return filepath.FromSlash(p), nil
}

// ReadHTMLFile reads the page a file: URL points at. ok is false when the
// path does not name an HTML document.
func ReadHTMLFile(raw string) (content []byte, ok bool, err error) {
	p, err := FilePath(raw)
	if err != nil {
		return nil, false, err
	}
	if !IsHTML(MIMEFromPath(p)) {
		return nil, false, nil
	}
	content, err = os.ReadFile(p)
	if err != nil {
		return nil, false, fmt.Errorf("read page: %w", err)
	}
	return content, true, nil
}

// IsHTML reports whether mime is an HTML media type.
func IsHTML(mime string) bool {
	return mime == "text/html" || mime == "application/xhtml+xml"
}

// IsJavaScript reports whether mime is a JavaScript media type.
func IsJavaScript(mime string) bool {
	switch mime {
	case "text/javascript", "application/javascript", "application/x-javascript", "application/ecmascript":
		return true
	default:
		return false
	}
}

// MIMEFromPath guesses a media type from a file extension.
func MIMEFromPath(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".html", ".htm":
		return "text/html"
	case ".xhtml":
		return "application/xhtml+xml"
	case ".js", ".mjs":
		return "text/javascript"
	case ".css":
		return "text/css"
	case ".json":
		return "application/json"
	default:
		return defaultDataMIME
	}
}

func hasSchemePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// percentDecode decodes %XX sequences. A '%' that does not start a valid
// sequence is kept literally, as browsers do.
func percentDecode(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return out
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func decodeBase64(raw string) ([]byte, error) {
	s := string(percentDecode(raw))
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, s)

	if data, err := base64.StdEncoding.DecodeString(s); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

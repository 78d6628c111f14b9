package headless

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// pageScript is one <script> element in document order.
type pageScript struct {
	Src  string
	Code string
}

// document is what the headless backend keeps of an HTML page.
type document struct {
	Title   string
	Scripts []pageScript
	// ModuleScripts counts type="module" scripts, which are not run.
	ModuleScripts int
}

var scriptTypes = map[string]bool{
	"":                         true,
	"text/javascript":          true,
	"application/javascript":   true,
	"application/x-javascript": true,
}

// parseDocument extracts the title and executable scripts from an HTML page.
func parseDocument(content []byte) (*document, error) {
	doc := &document{}
	z := html.NewTokenizer(bytes.NewReader(content))

	var (
		inScript  bool
		inTitle   bool
		current   pageScript
		runnable  bool
		scriptBuf strings.Builder
	)

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return doc, err
			}
			return doc, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Script:
				current = pageScript{}
				typ := ""
				for _, a := range tok.Attr {
					switch a.Key {
					case "src":
						current.Src = a.Val
					case "type":
						typ = strings.ToLower(strings.TrimSpace(a.Val))
					}
				}
				runnable = scriptTypes[typ]
				if typ == "module" {
					doc.ModuleScripts++
				}
				if tt == html.SelfClosingTagToken {
					if runnable && current.Src != "" {
						doc.Scripts = append(doc.Scripts, current)
					}
					continue
				}
				inScript = true
				scriptBuf.Reset()
			case atom.Title:
				inTitle = tt == html.StartTagToken
			}

		case html.TextToken:
			switch {
			case inScript:
				scriptBuf.Write(z.Text())
			case inTitle:
				doc.Title += string(z.Text())
			}

		case html.EndTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Script:
				if inScript && runnable {
					current.Code = scriptBuf.String()
					doc.Scripts = append(doc.Scripts, current)
				}
				inScript = false
			case atom.Title:
				inTitle = false
				doc.Title = strings.TrimSpace(doc.Title)
			}
		}
	}
}

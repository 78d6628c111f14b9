package url

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindInvalid, Classify(""))
	assert.Equal(t, KindInvalid, Classify("   "))
	assert.Equal(t, KindData, Classify("data:text/html,<p>x</p>"))
	assert.Equal(t, KindData, Classify("DATA:,x"))
	assert.Equal(t, KindFile, Classify("file:///tmp/index.html"))
	assert.Equal(t, KindRemote, Classify("https://example.com"))
	assert.Equal(t, KindRemote, Classify("about:blank"))
}

func TestDecodeDataURIBase64(t *testing.T) {
	d, err := DecodeDataURI("data:text/html;base64,PGh0bWw+PC9odG1sPg==")
	require.NoError(t, err)
	assert.Equal(t, "text/html", d.MIMEType)
	assert.Equal(t, "<html></html>", string(d.Data))
}

func TestDecodeDataURIPercentEncoded(t *testing.T) {
	d, err := DecodeDataURI("data:text/html;charset=utf-8,%3Cp%3Ehi%3C%2Fp%3E")
	require.NoError(t, err)
	assert.Equal(t, "text/html", d.MIMEType)
	assert.Equal(t, "utf-8", d.Charset)
	assert.Equal(t, "<p>hi</p>", string(d.Data))
}

func TestDecodeDataURIDefaultMIME(t *testing.T) {
	d, err := DecodeDataURI("data:,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", d.MIMEType)
	assert.Equal(t, "hello world", string(d.Data))
}

func TestDecodeDataURIKeepsStrayPercent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`data:text/html,<div style="width:100%">x</div>`, `<div style="width:100%">x</div>`},
		{"data:,50%", "50%"},
		{"data:,5%2", "5%2"},
		{"data:,%zz%41", "%zzA"},
		{"data:,100%25", "100%"},
	}
	for _, tt := range tests {
		d, err := DecodeDataURI(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, string(d.Data), tt.in)
	}
}

func TestDecodeDataURIUnpaddedBase64(t *testing.T) {
	d, err := DecodeDataURI("data:;base64,aGk")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(d.Data))
}

func TestDecodeDataURIErrors(t *testing.T) {
	_, err := DecodeDataURI("https://example.com")
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, err = DecodeDataURI("data:text/html")
	assert.ErrorIs(t, err, ErrMalformedURI)

	_, err = DecodeDataURI("data:;base64,!!!!")
	assert.ErrorIs(t, err, ErrMalformedURI)
}

func TestFilePath(t *testing.T) {
	p, err := FilePath("file:///tmp/editor/index.html")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/editor/index.html", p)

	p, err = FilePath("file:///tmp/with%20space.html")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/with space.html", p)

	_, err = FilePath("data:,x")
	assert.ErrorIs(t, err, ErrNotFileURI)
}

func TestReadHTMLFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte("<p>editor</p>"), 0o600))
	script := filepath.Join(dir, "app.js")
	require.NoError(t, os.WriteFile(script, []byte("1;"), 0o600))

	content, ok, err := ReadHTMLFile(FileURL(page))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "<p>editor</p>", string(content))

	_, ok, err = ReadHTMLFile(FileURL(script))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ReadHTMLFile(FileURL(filepath.Join(dir, "missing.html")))
	assert.Error(t, err)

	_, _, err = ReadHTMLFile("https://example.com/index.html")
	assert.ErrorIs(t, err, ErrNotFileURI)
}

func TestMIMEFromPath(t *testing.T) {
	assert.Equal(t, "text/html", MIMEFromPath("/a/index.HTML"))
	assert.Equal(t, "text/javascript", MIMEFromPath("main.js"))
	assert.Equal(t, "text/plain", MIMEFromPath("README"))
	assert.True(t, IsHTML("text/html"))
	assert.True(t, IsJavaScript("application/javascript"))
	assert.False(t, IsJavaScript("text/html"))
}

package wikipedia

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Clean reduces an article to text plus bare tags. Entities are decoded,
// non-breaking spaces become plain spaces, script and style bodies are
// dropped, and tags are kept without attributes so that ">" still marks
// where a table cell starts.
func Clean(r io.Reader) (string, error) {
	z := html.NewTokenizer(r)
	var b strings.Builder
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return b.String(), err
			}
			return b.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if tt == html.StartTagToken && (a == atom.Script || a == atom.Style) {
				skip++
				continue
			}
			if skip == 0 {
				b.WriteByte('<')
				b.Write(name)
				b.WriteByte('>')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if a == atom.Script || a == atom.Style {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip == 0 {
				b.WriteString("</")
				b.Write(name)
				b.WriteByte('>')
			}

		case html.TextToken:
			if skip > 0 {
				continue
			}
			b.WriteString(strings.ReplaceAll(string(z.Text()), "\u00a0", " "))
		}
	}
}

package extract

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/dusk-indust/archlens/internal/syntax"
)

// TriviaIndex maps each member declaration of one file to its first leading
// documentation block. It lives for a single file extraction.
type TriviaIndex map[*syntax.Node]syntax.Trivia

// BuildTriviaIndex walks every member declaration in file once and records
// the first documentation trivia found in its leading comments.
func BuildTriviaIndex(file *syntax.File) TriviaIndex {
	idx := make(TriviaIndex)
	if file == nil || file.Root == nil {
		return idx
	}
	for _, n := range file.Root.Descendants() {
		if !n.MemberLike() {
			continue
		}
		for _, tr := range n.Leading {
			if tr.IsDoc() {
				idx[n] = tr
				break
			}
		}
	}
	return idx
}

// SummaryFor returns the trimmed text of the first <summary> element in the
// documentation block indexed for node. A missing block and malformed markup
// both yield nil.
func SummaryFor(node *syntax.Node, idx TriviaIndex) *string {
	tr, ok := idx[node]
	if !ok {
		return nil
	}
	summary, ok := parseSummary(stripDocMarkers(tr))
	if !ok {
		return nil
	}
	return &summary
}

// stripDocMarkers removes the comment syntax around documentation text.
func stripDocMarkers(tr syntax.Trivia) string {
	if tr.Kind == syntax.TriviaMultiLineDoc {
		body := strings.TrimPrefix(tr.Text, "/**")
		body = strings.TrimSuffix(body, "*/")
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			trimmed := strings.TrimLeft(line, " \t")
			if strings.HasPrefix(trimmed, "*") {
				lines[i] = trimmed[1:]
			}
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
	return strings.TrimSpace(strings.ReplaceAll(tr.Text, "///", ""))
}

// parseSummary parses doc as an XML fragment and extracts the content of the
// first summary element in document order. The whole fragment must be
// well-formed; any decoder error reports ok == false.
func parseSummary(doc string) (summary string, ok bool) {
	dec := xml.NewDecoder(strings.NewReader("<doc>" + doc + "</doc>"))

	var (
		found   bool
		inside  bool
		depth   int
		content strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if inside {
				depth++
			} else if !found && t.Name.Local == "summary" {
				found, inside, depth = true, true, 0
			}
		case xml.EndElement:
			if inside {
				if depth == 0 {
					inside = false
				} else {
					depth--
				}
			}
		case xml.CharData:
			if inside {
				content.Write(t)
			}
		}
	}
	if !found {
		return "", false
	}
	return strings.TrimSpace(content.String()), true
}

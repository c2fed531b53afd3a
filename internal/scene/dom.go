package scene

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
)

// element is a node of the lightweight DOM. Attribute names are local
// names; xlink:href is stored as href.
type element struct {
	name     string
	space    string
	attrs    map[string]string
	children []*element
	// text collects character data of a text element and its tspans
	text strings.Builder
}

func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// charsetReader validates the declared encoding against the IANA registry
// before handing it to the HTML charset decoders.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return charset.NewReaderLabel(label, input)
}

// parseDOM decodes doc into an element tree. Nesting deeper than
// maxDepth fails with RecursionLimitError.
func parseDOM(doc []byte, maxDepth int) (*element, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	decoder.Strict = true
	decoder.CharsetReader = charsetReader

	var root *element
	var stack []*element
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, xmlError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(stack) >= maxDepth {
				return nil, &RecursionLimitError{Limit: maxDepth, Reason: "element nesting"}
			}
			el := newElement(t)
			if len(stack) == 0 {
				if root != nil {
					return nil, &XMLSyntaxError{Err: errors.New("multiple root elements")}
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if owner := textOwner(stack); owner != nil {
				owner.text.Write(t)
			}
		}
	}
	if root == nil {
		return nil, &UnsupportedRootError{Err: ErrNoRoot}
	}
	return root, nil
}

func newElement(t xml.StartElement) *element {
	el := &element{
		name:  t.Name.Local,
		space: t.Name.Space,
		attrs: make(map[string]string, len(t.Attr)),
	}
	for _, a := range t.Attr {
		switch a.Name.Space {
		case "", svgNamespace, xlinkNamespace, "xlink":
		default:
			// xmlns, xml:* and foreign namespaces
			continue
		}
		if a.Name.Local == "xmlns" {
			continue
		}
		el.attrs[a.Name.Local] = a.Value
	}
	return el
}

func xmlError(err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &XMLSyntaxError{Line: se.Line, Err: errors.New(se.Msg)}
	}
	return &XMLSyntaxError{Err: err}
}

// textOwner returns the text element receiving character data at the top
// of stack: the innermost element must be text or tspan.
func textOwner(stack []*element) *element {
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i].name {
		case "text":
			return stack[i]
		case "tspan":
			continue
		}
		return nil
	}
	return nil
}

// textContent returns the character data of a text element, tspan content
// included, with whitespace collapsed.
func textContent(e *element) string {
	return strings.Join(strings.Fields(e.text.String()), " ")
}

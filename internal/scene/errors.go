package scene

import (
	"errors"
	"fmt"
)

// ErrNoRoot is wrapped by UnsupportedRootError when the document has no
// root element at all.
var ErrNoRoot = errors.New("document has no root element")

// XMLSyntaxError reports malformed markup. It is fatal.
type XMLSyntaxError struct {
	Line int
	Err  error
}

func (e *XMLSyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("svg: xml syntax error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("svg: xml syntax error: %v", e.Err)
}

func (e *XMLSyntaxError) Unwrap() error { return e.Err }

// UnsupportedRootError reports a root element that is not <svg> or that
// does not define a canvas size. It is fatal.
type UnsupportedRootError struct {
	Element string
	Reason  string
	Err     error
}

func (e *UnsupportedRootError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("svg: unsupported root <%s>: %v", e.Element, e.Err)
	}
	return fmt.Sprintf("svg: unsupported root <%s>: %s", e.Element, e.Reason)
}

func (e *UnsupportedRootError) Unwrap() error { return e.Err }

// RecursionLimitError reports nesting or reference expansion beyond the
// configured limit. It is fatal.
type RecursionLimitError struct {
	Limit  int
	Reason string
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("svg: recursion limit %d exceeded: %s", e.Limit, e.Reason)
}

// PathSyntaxError reports malformed path data on one element. The path
// contributes no geometry; the rest of the document renders.
type PathSyntaxError struct {
	ID  string
	Err error
}

func (e *PathSyntaxError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("svg: path %q: %v", e.ID, e.Err)
	}
	return fmt.Sprintf("svg: path: %v", e.Err)
}

func (e *PathSyntaxError) Unwrap() error { return e.Err }

// UnsupportedFeatureWarning reports an element or attribute that is
// skipped. Attribute is empty when the whole element was skipped.
type UnsupportedFeatureWarning struct {
	Element   string
	Attribute string
}

func (w *UnsupportedFeatureWarning) Error() string {
	if w.Attribute != "" {
		return fmt.Sprintf("svg: unsupported attribute %q on <%s> ignored", w.Attribute, w.Element)
	}
	return fmt.Sprintf("svg: unsupported element <%s> skipped", w.Element)
}

// InvalidAttributeWarning reports an attribute value that prevents an
// element from rendering, such as a negative width.
type InvalidAttributeWarning struct {
	Element   string
	Attribute string
	Value     string
}

func (w *InvalidAttributeWarning) Error() string {
	return fmt.Sprintf("svg: invalid %s=%q on <%s>, element not rendered", w.Attribute, w.Value, w.Element)
}

// PaintReferenceWarning reports a fill or stroke that could not be
// resolved. The fallback paint, or none, is used instead.
type PaintReferenceWarning struct {
	Element  string
	Property string
	Value    string
	Reason   string
}

func (w *PaintReferenceWarning) Error() string {
	return fmt.Sprintf("svg: %s=%q on <%s>: %s", w.Property, w.Value, w.Element, w.Reason)
}

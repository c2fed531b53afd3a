package geom

import (
	"fmt"
	"math"

	"github.com/gogpu/svg/internal/lex"
)

// TransformSyntaxError reports a malformed transform list.
type TransformSyntaxError struct {
	Input  string
	Offset int
	Reason string
}

func (e *TransformSyntaxError) Error() string {
	return fmt.Sprintf("svg: transform %q: %s at offset %d", e.Input, e.Reason, e.Offset)
}

// argument counts accepted by each transform function
var transformArity = map[string][]int{
	"matrix":    {6},
	"translate": {1, 2},
	"scale":     {1, 2},
	"rotate":    {1, 3},
	"skewX":     {1},
	"skewY":     {1},
}

// ParseTransform parses an SVG transform list such as
// "translate(10,20) rotate(45 5 5) scale(2)".
//
// Operations are composed left to right, each one post-multiplying the
// running matrix, so the rightmost operation is applied to points first.
// An empty list yields the identity. On error the identity is returned
// together with a *TransformSyntaxError.
func ParseTransform(s string) (Matrix, error) {
	sc := lex.NewScanner(s)
	m := Identity()
	fail := func(reason string) (Matrix, error) {
		return Identity(), &TransformSyntaxError{Input: s, Offset: sc.Pos(), Reason: reason}
	}

	for {
		sc.SkipSeparator()
		if sc.Done() {
			return m, nil
		}

		start := sc.Pos()
		for isNameByte(sc.Peek()) {
			sc.Next()
		}
		name := s[start:sc.Pos()]
		arity, known := transformArity[name]
		if !known {
			if name == "" {
				return fail("expected transform name")
			}
			return fail(fmt.Sprintf("unknown transform %q", name))
		}

		sc.SkipSpace()
		if sc.Next() != '(' {
			return fail("expected '('")
		}
		var args [6]float64
		n := 0
		for {
			sc.SkipSpace()
			if sc.Peek() == ')' {
				sc.Next()
				break
			}
			if n > 0 {
				sc.SkipSeparator()
			}
			v, ok := sc.Number()
			if !ok {
				return fail("expected number or ')'")
			}
			if n == len(args) {
				return fail("too many arguments")
			}
			args[n] = v
			n++
		}
		if !containsInt(arity, n) {
			return fail(fmt.Sprintf("%s takes %v arguments, got %d", name, arity, n))
		}
		m = m.Multiply(transformOp(name, args[:n]))
	}
}

func transformOp(name string, a []float64) Matrix {
	switch name {
	case "matrix":
		return FromSVG(a[0], a[1], a[2], a[3], a[4], a[5])
	case "translate":
		if len(a) == 1 {
			return Translate(a[0], 0)
		}
		return Translate(a[0], a[1])
	case "scale":
		if len(a) == 1 {
			return Scale(a[0], a[0])
		}
		return Scale(a[0], a[1])
	case "rotate":
		rad := a[0] * math.Pi / 180
		if len(a) == 3 {
			return RotateAbout(rad, a[1], a[2])
		}
		return Rotate(rad)
	case "skewX":
		return SkewX(a[0] * math.Pi / 180)
	case "skewY":
		return SkewY(a[0] * math.Pi / 180)
	}
	return Identity()
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

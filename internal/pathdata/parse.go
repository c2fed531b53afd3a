package pathdata

import (
	"fmt"

	"github.com/gogpu/svg/internal/geom"
	"github.com/gogpu/svg/internal/lex"
)

// SyntaxError reports malformed path data. The segments parsed before the
// offending token are still returned by Parse.
type SyntaxError struct {
	Offset int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svg: path data: %s at offset %d", e.Reason, e.Offset)
}

// number of arguments per command letter (lower case)
var arity = [...]int{
	'm': 2, 'l': 2, 'h': 1, 'v': 1, 'c': 6, 's': 4, 'q': 4, 't': 2, 'a': 7, 'z': 0,
}

func isCommand(c byte) bool {
	l := c | 0x20
	return int(l) < len(arity) && (l == 'z' || arity[l] > 0)
}

// parser state
type parser struct {
	sc    *lex.Scanner
	segs  []Segment
	cur   geom.Point
	start geom.Point
	// last control point of the previous C, S, Q or T, for reflection
	lastCtrl geom.Point
	prev     byte
}

// Parse converts path data into absolute segments.
//
// H and V become LineTo, S and T become CubicTo and QuadTo with the
// reflected control point, and extra coordinate groups after a MoveTo are
// treated as LineTo. On malformed input Parse returns the segments of every
// command completed before the error together with a *SyntaxError.
func Parse(d string) ([]Segment, error) {
	p := &parser{sc: lex.NewScanner(d)}
	if err := p.run(); err != nil {
		return p.segs, err
	}
	return p.segs, nil
}

func (p *parser) fail(reason string) error {
	return &SyntaxError{Offset: p.sc.Pos(), Reason: reason}
}

func (p *parser) run() error {
	sc := p.sc
	sc.SkipSpace()
	if sc.Done() {
		return nil
	}
	if c := sc.Peek(); c != 'M' && c != 'm' {
		return p.fail("path data must start with a moveto")
	}

	var cmd byte
	for {
		sc.SkipSpace()
		if sc.Done() {
			return nil
		}
		c := sc.Peek()
		switch {
		case isCommand(c):
			sc.Next()
			cmd = c
		case cmd == 0 || cmd == 'z' || cmd == 'Z' || !sc.AtNumber():
			return p.fail(fmt.Sprintf("unexpected %q", c))
		default:
			// implicit repetition of the previous command
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		}

		if err := p.command(cmd); err != nil {
			return err
		}
		p.prev = cmd | 0x20
		sc.SkipSeparator()
	}
}

func (p *parser) command(cmd byte) error {
	lower := cmd | 0x20
	rel := cmd == lower

	var args [7]float64
	var flags [2]bool
	n := arity[lower]
	for i := 0; i < n; i++ {
		if i > 0 {
			p.sc.SkipSeparator()
		} else {
			p.sc.SkipSpace()
		}
		if lower == 'a' && (i == 3 || i == 4) {
			f, ok := p.sc.Flag()
			if !ok {
				return p.fail("expected arc flag")
			}
			flags[i-3] = f
			continue
		}
		v, ok := p.sc.Number()
		if !ok {
			return p.fail("expected number")
		}
		args[i] = v
	}

	pt := func(i int) geom.Point {
		q := geom.Point{X: args[i], Y: args[i+1]}
		if rel {
			q = q.Add(p.cur)
		}
		return q
	}

	switch lower {
	case 'm':
		to := pt(0)
		p.segs = append(p.segs, MoveTo{To: to})
		p.cur, p.start = to, to
	case 'l':
		to := pt(0)
		p.segs = append(p.segs, LineTo{To: to})
		p.cur = to
	case 'h':
		to := geom.Point{X: args[0], Y: p.cur.Y}
		if rel {
			to.X += p.cur.X
		}
		p.segs = append(p.segs, LineTo{To: to})
		p.cur = to
	case 'v':
		to := geom.Point{X: p.cur.X, Y: args[0]}
		if rel {
			to.Y += p.cur.Y
		}
		p.segs = append(p.segs, LineTo{To: to})
		p.cur = to
	case 'c':
		c1, c2, to := pt(0), pt(2), pt(4)
		p.segs = append(p.segs, CubicTo{Ctrl1: c1, Ctrl2: c2, To: to})
		p.lastCtrl, p.cur = c2, to
	case 's':
		c1 := p.reflected()
		c2, to := pt(0), pt(2)
		p.segs = append(p.segs, CubicTo{Ctrl1: c1, Ctrl2: c2, To: to})
		p.lastCtrl, p.cur = c2, to
	case 'q':
		c, to := pt(0), pt(2)
		p.segs = append(p.segs, QuadTo{Ctrl: c, To: to})
		p.lastCtrl, p.cur = c, to
	case 't':
		c := p.reflected()
		to := pt(0)
		p.segs = append(p.segs, QuadTo{Ctrl: c, To: to})
		p.lastCtrl, p.cur = c, to
	case 'a':
		to := pt(5)
		p.segs = append(p.segs, ArcTo{
			RX: args[0], RY: args[1], Rotation: args[2],
			LargeArc: flags[0], Sweep: flags[1],
			To: to,
		})
		p.cur = to
	case 'z':
		p.segs = append(p.segs, Close{})
		p.cur = p.start
	}
	return nil
}

// reflected returns the first control point of a smooth curve: the previous
// curve's last control point mirrored about the current point, or the
// current point when the previous segment was not a curve.
func (p *parser) reflected() geom.Point {
	switch p.prev {
	case 'c', 's', 'q', 't':
		return p.cur.Add(p.cur.Sub(p.lastCtrl))
	}
	return p.cur
}

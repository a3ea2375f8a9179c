package lr

import (
	"fmt"

	"github.com/dekarrin/vnlex/lex"
	"github.com/dekarrin/vnlex/source"
)

// Error is a located parse error from the driver: an
// unexpected token, or end of input where a reduction was still required.
type Error struct {
	Location source.Location
	Msg      string
}

func (e *Error) Error() string {
	path := e.Location.Path
	if path == "" {
		path = "<input>"
	}
	if e.Location.StartRow == e.Location.EndRow && e.Location.StartCol == e.Location.EndCol {
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Location.StartRow+1, e.Location.StartCol+1, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d: %s", path, e.Location.StartRow+1, e.Location.StartCol+1, e.Location.EndRow+1, e.Location.EndCol+1, e.Msg)
}

func isTrivia[T any](tok lex.Token[T]) bool {
	return tok.Kind == lex.KindWhitespace
}

// Driver executes a Table against a token stream: a stack of
// state indices and a parallel stack of AST frames.
type Driver[T any] struct {
	table   *Table[T]
	states  []int
	frames  []*Node[T]
	lastLoc source.Location
	eofLoc  source.Location
	eofSet  bool
}

// New returns a Driver positioned at the named entry state.
func New[T any](table *Table[T], entry string) (*Driver[T], error) {
	start, ok := table.EntryStates[entry]
	if !ok {
		return nil, fmt.Errorf("no such entry state %q", entry)
	}
	return &Driver[T]{table: table, states: []int{start}}, nil
}

func (d *Driver[T]) top() int { return d.states[len(d.states)-1] }

// SetEOFLocation records where the input's logical end of file lies (the
// position immediately after the last token scanned, trivia included), so
// that an unexpected-end-of-input error from Finish points there rather
// than at the start of the last real token fed.
func (d *Driver[T]) SetEOFLocation(loc source.Location) {
	d.eofLoc = loc
	d.eofSet = true
}

// tryReduce applies the top state's reduction, if it has one, and reports
// whether it did. When that reduction is the synthetic accept (non-terminal
// id 0) it returns the accepted root instead of pushing a node.
func (d *Driver[T]) tryReduce() (accepted *Node[T], didReduce bool) {
	st := &d.table.States[d.top()]
	if st.Reduction == nil {
		return nil, false
	}
	red := st.Reduction
	popped := d.frames[len(d.frames)-red.PopCount:]
	poppedCopy := make([]*Node[T], len(popped))
	copy(poppedCopy, popped)
	d.frames = d.frames[:len(d.frames)-red.PopCount]
	d.states = d.states[:len(d.states)-red.PopCount]

	node := red.Build(poppedCopy)
	if node == nil {
		node = &Node[T]{NonTerminalID: red.NonTerminalID, NonTerminalName: red.NonTerminalName, ProductionIndex: red.ProductionIndex, Children: poppedCopy}
	}

	if red.NonTerminalID == 0 {
		return node, true
	}

	newTop := d.table.States[d.top()]
	target, ok := newTop.gotoNode(red.NonTerminalID)
	if !ok {
		// a correctly built table never reaches this; returning a parse
		// error would hide a build defect as a parse failure, so panic.
		panic(fmt.Sprintf("lr: no node-jump for non-terminal %d from state %d", red.NonTerminalID, d.top()))
	}
	d.states = append(d.states, target)
	d.frames = append(d.frames, node)
	return nil, true
}

// Feed processes one real (non-trivia) input token.
func (d *Driver[T]) Feed(tok lex.Token[T]) error {
	d.lastLoc = tok.Location
	for {
		st := &d.table.States[d.top()]
		if target, ok := st.shift(tok); ok {
			d.states = append(d.states, target)
			d.frames = append(d.frames, Leaf(tok))
			return nil
		}
		if _, reduced := d.tryReduce(); reduced {
			continue
		}
		return &Error{Location: tok.Location, Msg: fmt.Sprintf("unexpected token %s", tok.String())}
	}
}

// Finish signals end of input, draining reductions until the accept
// reduction fires.
func (d *Driver[T]) Finish() (*Node[T], error) {
	for {
		node, reduced := d.tryReduce()
		if node != nil {
			return node, nil
		}
		if !reduced {
			loc := d.lastLoc
			if d.eofSet {
				loc = d.eofLoc
			}
			return nil, &Error{Location: loc, Msg: "unexpected end of input"}
		}
	}
}

// Parse runs toks (as produced by lex.Lexer.Stream, trivia included) through
// table from entry and requires a non-empty root.
func Parse[T any](table *Table[T], entry string, toks []lex.Token[T]) (*Node[T], error) {
	node, err := ParseOptional(table, entry, toks)
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, &Error{Msg: "unexpected end of input"}
	}
	return node, nil
}

// ParseOptional is like Parse but returns (nil, nil) if toks contains no
// real (non-trivia) tokens at all.
func ParseOptional[T any](table *Table[T], entry string, toks []lex.Token[T]) (*Node[T], error) {
	d, err := New(table, entry)
	if err != nil {
		return nil, err
	}
	sawReal := false
	for _, tok := range toks {
		if isTrivia(tok) {
			continue
		}
		sawReal = true
		if err := d.Feed(tok); err != nil {
			return nil, err
		}
	}
	if !sawReal {
		return nil, nil
	}
	if n := len(toks); n > 0 {
		end := toks[n-1].Location
		d.SetEOFLocation(source.Location{
			Path:     end.Path,
			StartRow: end.EndRow,
			StartCol: end.EndCol,
			EndRow:   end.EndRow,
			EndCol:   end.EndCol,
		})
	}
	return d.Finish()
}

package tnl

import (
	"fmt"

	"github.com/dekarrin/vnlex/lex"
	"github.com/dekarrin/vnlex/lr"
	"github.com/dekarrin/vnlex/source"
)

// ParseError is a located syntax error surfaced while parsing TNL text:
// either a lexical/grammar failure from the toolkit, or a TNL-specific
// failure such as a duplicate attribute name.
type ParseError struct {
	Location source.Location
	Msg      string
}

func (e *ParseError) Error() string {
	path := e.Location.Path
	if path == "" {
		path = "<input>"
	}
	if e.Location.StartRow == e.Location.EndRow && e.Location.StartCol == e.Location.EndCol {
		return fmt.Sprintf("%s:%d:%d: %s", path, e.Location.StartRow+1, e.Location.StartCol+1, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d: %s", path, e.Location.StartRow+1, e.Location.StartCol+1, e.Location.EndRow+1, e.Location.EndCol+1, e.Msg)
}

// ParseText parses a complete TNL document:
// the root is always an unnamed, un-namespaced Object whose positional
// elements and attributes are the document's top-level items.
func ParseText(src string, startRow, startCol int, path string) (*Value, error) {
	if err := ensureGrammarBuilt(); err != nil {
		return nil, err
	}
	cur := source.New(src, startRow, startCol, path)
	toks, err := newLexer().Stream(cur)
	if err != nil {
		return nil, wrapLexError(err)
	}
	root, err := lr.ParseOptional[payload](tnlTable, "script", toks)
	if err != nil {
		return nil, wrapParseError(err)
	}
	loc := cur.LocationFrom(startRow, startCol)
	obj := NewObject(loc, false, "", "", nil, nil)
	if root == nil {
		return obj, nil
	}
	if err := translateObjectItemList(root, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseValue parses a single TNL value,
// returning (nil, nil) if src contains no real tokens at all.
func ParseValue(src string, startRow, startCol int, path string) (*Value, error) {
	if err := ensureGrammarBuilt(); err != nil {
		return nil, err
	}
	cur := source.New(src, startRow, startCol, path)
	toks, err := newLexer().Stream(cur)
	if err != nil {
		return nil, wrapLexError(err)
	}
	root, err := lr.ParseOptional[payload](tnlTable, "valueroot", toks)
	if err != nil {
		return nil, wrapParseError(err)
	}
	if root == nil {
		return nil, nil
	}
	return translateValue(root)
}

func wrapLexError(err error) error {
	if le, ok := err.(*lex.Error); ok {
		return &ParseError{Location: le.Location, Msg: le.Msg}
	}
	return err
}

func wrapParseError(err error) error {
	if pe, ok := err.(*lr.Error); ok {
		return &ParseError{Location: pe.Location, Msg: pe.Msg}
	}
	return err
}

func spanLocation(first, last source.Location) source.Location {
	return source.Location{
		Path:     first.Path,
		StartRow: first.StartRow,
		StartCol: first.StartCol,
		EndRow:   last.EndRow,
		EndCol:   last.EndCol,
	}
}

// collectObjectItems flattens the left-recursive object_item_list into the
// ordered slice of object_item nodes it names: productions
// are object_item_list -> object_item (0) | object_item_list object_item (1).
func collectObjectItems(node *lr.Node[payload]) []*lr.Node[payload] {
	var items []*lr.Node[payload]
	for {
		switch node.ProductionIndex {
		case 0:
			items = append(items, node.Children[0])
			reverse(items)
			return items
		case 1:
			items = append(items, node.Children[1])
			node = node.Children[0]
		default:
			panic("tnl: unexpected object_item_list production")
		}
	}
}

func reverse(nodes []*lr.Node[payload]) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

func translateObjectItemList(node *lr.Node[payload], obj *Value) error {
	for _, item := range collectObjectItems(node) {
		if err := translateObjectItem(item, obj); err != nil {
			return err
		}
	}
	return nil
}

// translateObjectItem applies one object_item (an attribute or a positional
// element) to obj. Productions, in grammar declaration order:
//
//	0: @ident ':' value
//	1: @ident ':' value ','
//	2: value
//	3: value ','
func translateObjectItem(node *lr.Node[payload], obj *Value) error {
	switch node.ProductionIndex {
	case 0, 1:
		nameTok := node.Children[0].Token
		val, err := translateValue(node.Children[2])
		if err != nil {
			return err
		}
		ident := Ident{Location: nameTok.Location, Name: nameTok.Content}
		if !obj.Attributes.Insert(ident, val) {
			return &ParseError{Location: nameTok.Location, Msg: fmt.Sprintf("duplicate attribute %q", nameTok.Content)}
		}
		return nil
	case 2, 3:
		val, err := translateValue(node.Children[0])
		if err != nil {
			return err
		}
		obj.Elements = append(obj.Elements, val)
		return nil
	default:
		panic("tnl: unexpected object_item production")
	}
}

// translateValue builds a Value from a `value` node. Productions, in
// grammar declaration order:
//
//	0: "null"            1: "true"         2: "false"
//	3: @integer          4: '-' @integer
//	5: @float             6: '-' @float
//	7: @string            8: @code_block
//	9: object            10: array          11: @ident
func translateValue(node *lr.Node[payload]) (*Value, error) {
	switch node.ProductionIndex {
	case 0:
		return NewNull(node.Children[0].Token.Location), nil
	case 1:
		return NewBool(node.Children[0].Token.Location, true), nil
	case 2:
		return NewBool(node.Children[0].Token.Location, false), nil
	case 3:
		tok := node.Children[0].Token
		return NewInt(tok.Location, false, tok.Data.Integer), nil
	case 4:
		minusTok := node.Children[0].Token
		numTok := node.Children[1].Token
		return NewInt(spanLocation(minusTok.Location, numTok.Location), true, numTok.Data.Integer), nil
	case 5:
		tok := node.Children[0].Token
		return NewFloat(tok.Location, tok.Data.Float), nil
	case 6:
		minusTok := node.Children[0].Token
		numTok := node.Children[1].Token
		return NewFloat(spanLocation(minusTok.Location, numTok.Location), -numTok.Data.Float), nil
	case 7:
		tok := node.Children[0].Token
		return NewString(tok.Location, tok.Data.String), nil
	case 8:
		tok := node.Children[0].Token
		loc := tok.Location
		loc.StartCol += tok.Data.CodeBlock.FenceLen
		loc.EndCol -= tok.Data.CodeBlock.FenceLen
		return NewString(loc, tok.Data.CodeBlock.Inner), nil
	case 9:
		return translateObject(node.Children[0])
	case 10:
		return translateArray(node.Children[0])
	case 11:
		tok := node.Children[0].Token
		return NewIdent(tok.Location, tok.Content), nil
	default:
		return nil, fmt.Errorf("tnl: unexpected value production %d", node.ProductionIndex)
	}
}

// translateObject builds an Object from an `object` node. Productions, in
// grammar declaration order:
//
//	0: '{' '}'
//	1: '{' object_item_list '}'
//	2: @ident '{' '}'
//	3: @ident '{' object_item_list '}'
//	4: @ident ':' @ident '{' '}'
//	5: @ident ':' @ident '{' object_item_list '}'
func translateObject(node *lr.Node[payload]) (*Value, error) {
	children := node.Children
	first := children[0].Token.Location
	last := children[len(children)-1].Token.Location
	loc := spanLocation(first, last)

	switch node.ProductionIndex {
	case 0:
		return NewObject(loc, false, "", "", nil, nil), nil
	case 1:
		obj := NewObject(loc, false, "", "", nil, nil)
		if err := translateObjectItemList(children[1], obj); err != nil {
			return nil, err
		}
		return obj, nil
	case 2:
		name := children[0].Token.Content
		return NewObject(loc, false, "", name, nil, nil), nil
	case 3:
		name := children[0].Token.Content
		obj := NewObject(loc, false, "", name, nil, nil)
		if err := translateObjectItemList(children[2], obj); err != nil {
			return nil, err
		}
		return obj, nil
	case 4:
		ns, name := children[0].Token.Content, children[2].Token.Content
		return NewObject(loc, true, ns, name, nil, nil), nil
	case 5:
		ns, name := children[0].Token.Content, children[2].Token.Content
		obj := NewObject(loc, true, ns, name, nil, nil)
		if err := translateObjectItemList(children[4], obj); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("tnl: unexpected object production %d", node.ProductionIndex)
	}
}

// translateArray builds an Array from an `array` node. Productions:
//
//	0: '[' ']'
//	1: '[' value_items ']'
//	2: '[' value_items ',' ']'
func translateArray(node *lr.Node[payload]) (*Value, error) {
	children := node.Children
	loc := spanLocation(children[0].Token.Location, children[len(children)-1].Token.Location)
	if node.ProductionIndex == 0 {
		return NewArray(loc, nil), nil
	}
	items := collectValueItems(children[1])
	elements := make([]*Value, len(items))
	for i, it := range items {
		v, err := translateValue(it)
		if err != nil {
			return nil, err
		}
		elements[i] = v
	}
	return NewArray(loc, elements), nil
}

// collectValueItems flattens value_items (value | value_items ',' value)
// into the ordered slice of `value` nodes it names.
func collectValueItems(node *lr.Node[payload]) []*lr.Node[payload] {
	var items []*lr.Node[payload]
	for {
		switch node.ProductionIndex {
		case 0:
			items = append(items, node.Children[0])
			reverse(items)
			return items
		case 1:
			items = append(items, node.Children[2])
			node = node.Children[0]
		default:
			panic("tnl: unexpected value_items production")
		}
	}
}

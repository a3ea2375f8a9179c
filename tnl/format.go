package tnl

import (
	"fmt"
	"strconv"
	"strings"
)

// textFormatter renders a value tree back into TNL source text, tracking
// brace depth as it walks the tree.
type textFormatter struct {
	out    strings.Builder
	indent int
}

// Format renders root (expected to be the document's root Object, as
// returned by ParseText) as TNL source text.
func Format(root *Value) string {
	f := &textFormatter{}
	f.formatRoot(root)
	return f.out.String()
}

// FormatValue renders a single value as it would appear nested inside a
// document.
func FormatValue(v *Value) string {
	f := &textFormatter{}
	f.value(v)
	return f.out.String()
}

func (f *textFormatter) newLine() {
	f.out.WriteByte('\n')
	for i := 0; i < f.indent; i++ {
		f.out.WriteString("    ")
	}
}

// formatRoot writes the root object's own attributes and elements directly,
// without the enclosing name/braces a nested object would get.
func (f *textFormatter) formatRoot(obj *Value) {
	if obj == nil {
		return
	}
	obj.Attributes.Each(func(name Ident, v *Value) {
		f.out.WriteString(name.Name)
		f.out.WriteString(": ")
		f.value(v)
		f.newLine()
	})
	for _, e := range obj.Elements {
		f.value(e)
		f.newLine()
	}
}

func (f *textFormatter) value(v *Value) {
	switch v.Kind {
	case KindNull:
		f.out.WriteString("null")
	case KindBool:
		if v.Bool {
			f.out.WriteString("true")
		} else {
			f.out.WriteString("false")
		}
	case KindInt:
		if v.IntMinus && v.IntMagnitude != 0 {
			f.out.WriteByte('-')
		}
		f.out.WriteString(strconv.FormatUint(v.IntMagnitude, 10))
	case KindFloat:
		f.out.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindString:
		f.out.WriteString(strconv.Quote(v.Text))
	case KindIdent:
		f.out.WriteString(v.Text)
	case KindArray:
		f.array(v)
	case KindObject:
		f.object(v)
	default:
		panic(fmt.Sprintf("tnl: unformattable value kind %v", v.Kind))
	}
}

func (f *textFormatter) array(v *Value) {
	if len(v.Elements) == 0 {
		f.out.WriteString("[]")
		return
	}
	f.out.WriteByte('[')
	f.indent++
	for i, e := range v.Elements {
		if i > 0 {
			f.out.WriteByte(',')
		}
		f.newLine()
		f.value(e)
	}
	f.indent--
	f.newLine()
	f.out.WriteByte(']')
}

// object writes a nested object. A named object's name is written bare
// (no leading '@'), matching what the grammar actually accepts as input;
// the round-trip property requires that output re-parse to an
// equal tree, which a literal '@' character would break since '@' only
// introduces an input-terminal-kind reference inside grammar text, not a
// token TNL source can itself contain.
func (f *textFormatter) object(v *Value) {
	switch {
	case v.HasNamespace:
		f.out.WriteString(v.Namespace)
		f.out.WriteByte(':')
		f.out.WriteString(v.Name)
		f.out.WriteString(" {")
	case v.Name != "":
		f.out.WriteString(v.Name)
		f.out.WriteString(" {")
	default:
		f.out.WriteByte('{')
	}

	if v.Attributes.IsEmpty() && len(v.Elements) == 0 {
		f.out.WriteByte('}')
		return
	}

	f.indent++
	v.Attributes.Each(func(name Ident, av *Value) {
		f.newLine()
		f.out.WriteString(name.Name)
		f.out.WriteString(": ")
		f.value(av)
	})
	for _, e := range v.Elements {
		f.newLine()
		f.value(e)
	}
	f.indent--
	f.newLine()
	f.out.WriteByte('}')
}

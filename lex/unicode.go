package lex

import "unicode"

// isUnicodeSpace defers to the standard library's Unicode space table. No
// library in the retrieval pack ships a ready-made XID/whitespace table (see
// DESIGN.md), and the standard library's unicode package is exactly the
// dependency-free, always-correct source of truth for this classification.
func isUnicodeSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// isIDStart reports whether r may begin an identifier: XID_Start or '_'.
func isIDStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// isIDContinue reports whether r may continue an identifier begun with
// isIDStart: XID_Continue.
func isIDContinue(r rune) bool {
	return isIDStart(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

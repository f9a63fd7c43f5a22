package parser

import (
	"strings"
	"unicode"
)

// printable lists the general categories that survive StripControl.
// Everything outside them is category C: Cc, Cf, Cs, Co and unassigned Cn.
var printable = []*unicode.RangeTable{
	unicode.L,
	unicode.M,
	unicode.N,
	unicode.P,
	unicode.S,
	unicode.Z,
}

// IsControl reports whether r belongs to Unicode general category C.
func IsControl(r rune) bool {
	return !unicode.In(r, printable...)
}

// StripControl removes every category C rune from s. Other runes,
// emoji included, are kept as they are.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if IsControl(r) {
			return -1
		}
		return r
	}, s)
}

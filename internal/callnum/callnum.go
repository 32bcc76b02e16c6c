// Package callnum recognises and reformats library call numbers found in
// free text.
//
// A call number appears as a parenthesised digit group immediately followed
// by more digits, e.g. (1)23456. The canonical form strips the parentheses
// and prepends the fixed "00" prefix: 00123456. Pattern and prefix encode an
// institutional cataloguing convention and are deliberately not configurable.
package callnum

import "regexp"

// Prefix is prepended to every reformatted call number.
const Prefix = "00"

// pattern matches a parenthesised digit run immediately followed by a digit
// run. No whitespace is permitted between the group and the trailing digits.
var pattern = regexp.MustCompile(`\((\d+)\)(\d+)`)

// TryFormat scans s left to right and returns the canonical form of the
// first call number it contains. Later occurrences are ignored. The second
// return is false when s contains no call number.
//
// The canonical form cannot re-match: it contains no parentheses, so feeding
// an output back in always reports no match. The clipboard monitor relies on
// this to terminate the write-back notification loop.
func TryFormat(s string) (string, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return Prefix + m[1] + m[2], true
}

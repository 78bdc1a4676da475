// seehuhn.de/go/glyphcopy - a tool for copying glyphs between TrueType fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package unirange parses Unicode codepoint range strings.
//
// A range string is either a single codepoint or two codepoints separated
// by a hyphen.  Codepoints are hexadecimal, optionally prefixed with "U+"
// or "0x"; the two bounds of a range do not need to use the same prefix.
package unirange

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// InvalidRangeError indicates a malformed codepoint range string.
type InvalidRangeError struct {
	Token  string
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid codepoint range %q: %s", e.Token, e.Reason)
}

// Parse converts a list of range strings into the sorted union of all
// requested codepoints.  Overlapping ranges are deduplicated, so the result
// does not depend on the order of the arguments.
func Parse(ranges []string) ([]rune, error) {
	seen := make(map[rune]bool)
	for _, s := range ranges {
		lo, hi, err := parseRange(s)
		if err != nil {
			return nil, err
		}
		for r := lo; r <= hi; r++ {
			seen[r] = true
		}
	}
	res := maps.Keys(seen)
	slices.Sort(res)
	return res, nil
}

func parseRange(s string) (lo, hi rune, err error) {
	body := strings.TrimSpace(s)

	// A leading hyphen is never a separator, so malformed tokens like "-41"
	// fail as non-hexadecimal input rather than as an empty lower bound.
	if idx := strings.IndexByte(body, '-'); idx > 0 {
		lo, err = parseCodepoint(s, body[:idx])
		if err != nil {
			return 0, 0, err
		}
		hi, err = parseCodepoint(s, body[idx+1:])
		if err != nil {
			return 0, 0, err
		}
		if lo > hi {
			return 0, 0, &InvalidRangeError{
				Token:  s,
				Reason: "start exceeds end",
			}
		}
		return lo, hi, nil
	}

	lo, err = parseCodepoint(s, body)
	if err != nil {
		return 0, 0, err
	}
	return lo, lo, nil
}

func parseCodepoint(token, s string) (rune, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		s = s[2:]
	}
	x, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, &InvalidRangeError{
			Token:  token,
			Reason: "not a hexadecimal codepoint",
		}
	}
	if x > unicode.MaxRune {
		return 0, &InvalidRangeError{
			Token:  token,
			Reason: "beyond U+10FFFF",
		}
	}
	return rune(x), nil
}

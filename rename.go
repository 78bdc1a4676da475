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

package glyphcopy

import (
	"fmt"
	"regexp"
)

// InvalidFamilyNameError indicates that a requested family name has no
// valid PostScript form.
type InvalidFamilyNameError struct {
	Name string
}

func (e *InvalidFamilyNameError) Error() string {
	return fmt.Sprintf("family name %q has no valid PostScript form", e.Name)
}

// Rename sets a new family name for the font.  The family name, the full
// name, the PostScript name and the typographic family name written into
// the output all derive from this value; every other naming entry is left
// unchanged.
//
// The PostScript form of a name is restricted to a subset of printable
// ASCII.  If family contains no characters from that subset at all, the
// font is left unmodified and an *InvalidFamilyNameError is returned.
func Rename(f *Font, family string) error {
	if sanitizePostScript(family) == "" {
		return &InvalidFamilyNameError{Name: family}
	}
	f.FamilyName = family
	return nil
}

// PostScript names exclude space and the delimiters "[", "]", "(", ")",
// "{", "}", "<", ">", "/" and "%".
var psDisallowed = regexp.MustCompile(`[^!-$&-'*-.0-;=?-Z\\^-z|~]+`)

func sanitizePostScript(s string) string {
	return psDisallowed.ReplaceAllString(s, "")
}

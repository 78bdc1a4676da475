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
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
)

// componentClosure returns the given glyphs together with every glyph they
// transitively reference as a composite component.  Each glyph appears
// exactly once, the roots first in their given order, followed by
// components in discovery order.  The visited set makes the walk terminate
// even for cyclic component references.
func componentClosure(outlines *glyf.Outlines, roots []glyph.ID) []glyph.ID {
	seen := make(map[glyph.ID]bool)
	var order []glyph.ID
	for _, gid := range roots {
		if seen[gid] {
			continue
		}
		seen[gid] = true
		order = append(order, gid)
	}

	for i := 0; i < len(order); i++ {
		gid := order[i]
		if int(gid) >= len(outlines.Glyphs) {
			continue
		}
		for _, component := range outlines.Glyphs[gid].Components() {
			if seen[component] {
				continue
			}
			seen[component] = true
			order = append(order, component)
		}
	}
	return order
}

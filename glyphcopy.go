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

// Package glyphcopy copies glyphs between TrueType fonts.
//
// Given a set of Unicode codepoints, the package resolves each codepoint
// to a glyph in a source font, collects every component glyph which
// composite outlines reference, and transplants outline records, metric
// records and character map entries into a destination font.  The merged
// font is then written as a new static TrueType file.
package glyphcopy

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode"

	"seehuhn.de/go/postscript/funit"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/glyphcopy/vmtx"
)

// Report summarises one copy operation.
type Report struct {
	// Copied lists the requested codepoints which resolved to a glyph in
	// the source font, sorted.
	Copied []rune

	// Missing lists the requested codepoints which have no glyph in the
	// source font, sorted.  Missing codepoints do not abort the
	// operation.
	Missing []rune

	// Dependencies counts the additional glyphs copied because composite
	// outlines reference them.
	Dependencies int
}

// Copy copies the glyphs for the given codepoints from src into dst,
// together with every component glyph their composite outlines reference.
//
// The destination's character map is updated for the requested codepoints
// only.  Existing mappings for other codepoints are preserved; an existing
// mapping for a requested codepoint is overwritten.  Glyphs are only ever
// appended to the destination, so glyph IDs of pre-existing destination
// glyphs do not change.
//
// Codepoints without a glyph in the source font are skipped and reported
// in the returned Report.
func Copy(dst, src *Font, codepoints []rune) (*Report, error) {
	srcOutlines, ok := src.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, errors.New("source font has no TrueType outlines")
	}
	dstOutlines, ok := dst.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, errors.New("destination font has no TrueType outlines")
	}

	srcCmap, err := src.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("source character map: %w", err)
	}

	src.EnsureGlyphNames()
	dst.EnsureGlyphNames()
	for dstOutlines.Names != nil && len(dstOutlines.Names) < len(dstOutlines.Glyphs) {
		dstOutlines.Names = append(dstOutlines.Names, "")
	}

	report := &Report{}
	resolved := make(map[rune]glyph.ID)
	rootName := make(map[glyph.ID]string)
	var roots []glyph.ID
	for _, r := range codepoints {
		gid := srcCmap.Lookup(r)
		if gid == 0 || int(gid) >= len(srcOutlines.Glyphs) {
			report.Missing = append(report.Missing, r)
			continue
		}
		resolved[r] = gid
		report.Copied = append(report.Copied, r)
		if _, ok := rootName[gid]; !ok {
			rootName[gid] = codepointName(r)
			roots = append(roots, gid)
		}
	}

	needed := componentClosure(srcOutlines, roots)

	if len(dstOutlines.Glyphs)+len(needed) > 65536 {
		return nil, errors.New("too many glyphs for one font")
	}

	t := &transplanter{
		src:            srcOutlines,
		dst:            dstOutlines,
		srcVM:          src.VMetrics,
		dstVM:          dst.VMetrics,
		defaultAdvance: dst.UnitsPerEm,
		newGID:         make(map[glyph.ID]glyph.ID),
		nameGID:        make(map[string]glyph.ID),
	}
	for gid, name := range glyphNames(dstOutlines) {
		t.nameGID[name] = gid
	}
	for _, gid := range needed {
		name, ok := rootName[gid]
		if !ok && int(gid) < len(srcOutlines.Names) {
			name = srcOutlines.Names[gid]
		}
		t.place(gid, name)
	}
	t.fixComponents()

	// count only glyphs actually copied, not components reused from the
	// destination
	for _, p := range t.placed {
		if _, ok := rootName[p.from]; !ok {
			report.Dependencies++
		}
	}

	mapping := existingMapping(dst)
	for r, gid := range resolved {
		mapping[r] = t.newGID[gid]
	}
	dst.CMapTable = makeCMapTable(mapping)

	sortRunes(report.Copied)
	sortRunes(report.Missing)
	return report, nil
}

// transplanter copies glyph records from one set of outlines into another.
// The old to new glyph ID mapping is threaded through the entire operation
// so that composite references can be rewritten consistently at the end.
type transplanter struct {
	src, dst       *glyf.Outlines
	srcVM, dstVM   *vmtx.Info
	defaultAdvance uint16

	newGID  map[glyph.ID]glyph.ID
	nameGID map[string]glyph.ID
	placed  []placedGlyph
}

type placedGlyph struct {
	from glyph.ID // glyph ID in the source outlines
	to   glyph.ID
}

// place copies one glyph record, its horizontal metric and, when the
// destination maintains vertical metrics, its vertical metric.  If the
// destination already has a different glyph under the requested name, a
// fresh collision-free name is assigned; a glyph with the same name and
// the same outline is reused instead of being copied twice.
func (t *transplanter) place(gid glyph.ID, name string) {
	if _, ok := t.newGID[gid]; ok {
		return
	}

	var srcGlyph *glyf.Glyph
	if int(gid) < len(t.src.Glyphs) {
		srcGlyph = t.src.Glyphs[gid]
	}
	var width funit.Int16
	if int(gid) < len(t.src.Widths) {
		width = t.src.Widths[gid]
	}

	if name != "" {
		if prev, ok := t.nameGID[name]; ok {
			if int(prev) < len(t.dst.Glyphs) && sameOutline(t.dst.Glyphs[prev], srcGlyph) {
				t.newGID[gid] = prev
				return
			}
			name = t.freshName(name)
		}
	}

	to := glyph.ID(len(t.dst.Glyphs))
	t.dst.Glyphs = append(t.dst.Glyphs, srcGlyph)
	t.dst.Widths = append(t.dst.Widths, width)
	if t.dst.Names != nil {
		t.dst.Names = append(t.dst.Names, name)
	}
	if name != "" {
		t.nameGID[name] = to
	}
	if t.dstVM != nil {
		advance, tsb := t.defaultAdvance, int16(0)
		if t.srcVM != nil && int(gid) < t.srcVM.NumGlyphs() {
			advance, tsb = t.srcVM.Metrics(int(gid))
		}
		t.dstVM.AdvanceHeight = append(t.dstVM.AdvanceHeight, advance)
		t.dstVM.TopSideBearing = append(t.dstVM.TopSideBearing, tsb)
	}

	t.newGID[gid] = to
	t.placed = append(t.placed, placedGlyph{from: gid, to: to})
}

// fixComponents rewrites the component references of every newly placed
// composite glyph from source glyph IDs to destination glyph IDs.
func (t *transplanter) fixComponents() {
	for _, p := range t.placed {
		g := t.dst.Glyphs[p.to]
		if g == nil {
			continue
		}
		if _, ok := g.Data.(glyf.CompositeGlyph); !ok {
			continue
		}
		t.dst.Glyphs[p.to] = g.FixComponents(t.newGID)
	}
}

func (t *transplanter) freshName(name string) string {
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s.alt%d", name, i)
		if _, ok := t.nameGID[candidate]; !ok {
			return candidate
		}
	}
}

// sameOutline reports whether two simple glyphs have identical outlines.
// Composite glyphs are never considered equal, since their component
// references are relative to different glyph sets.
func sameOutline(a, b *glyf.Glyph) bool {
	if a == nil || b == nil {
		return a == b
	}
	if _, ok := a.Data.(glyf.CompositeGlyph); ok {
		return false
	}
	if _, ok := b.Data.(glyf.CompositeGlyph); ok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// codepointName returns the deterministic glyph name for a codepoint:
// "uni" followed by four hex digits inside the basic multilingual plane,
// "u" followed by five or six hex digits above.
func codepointName(r rune) string {
	if r <= 0xFFFF {
		return fmt.Sprintf("uni%04X", r)
	}
	return fmt.Sprintf("u%X", r)
}

func glyphNames(outlines *glyf.Outlines) map[glyph.ID]string {
	res := make(map[glyph.ID]string)
	for i, name := range outlines.Names {
		if name != "" {
			res[glyph.ID(i)] = name
		}
	}
	return res
}

// existingMapping enumerates the destination's current character map.  A
// destination without a usable character map yields an empty mapping.
func existingMapping(f *Font) map[rune]glyph.ID {
	mapping := make(map[rune]glyph.ID)
	if f.CMapTable == nil {
		return mapping
	}
	sub, err := f.CMapTable.GetBest()
	if err != nil {
		return mapping
	}
	low, high := sub.CodeRange()
	if high > unicode.MaxRune {
		high = unicode.MaxRune
	}
	for r := low; r <= high; r++ {
		if gid := sub.Lookup(r); gid != 0 {
			mapping[r] = gid
		}
	}
	return mapping
}

// makeCMapTable encodes a codepoint mapping as a cmap table: a (3,1)
// format 4 subtable for the basic multilingual plane, plus a (3,10)
// format 12 subtable when mappings beyond U+FFFF are present.
func makeCMapTable(mapping map[rune]glyph.ID) cmap.Table {
	format4 := cmap.Format4{}
	hasHigh := false
	for r, gid := range mapping {
		if r <= 0xFFFF {
			format4[uint16(r)] = gid
		} else {
			hasHigh = true
		}
	}
	table := cmap.Table{
		{PlatformID: 3, EncodingID: 1}: format4.Encode(0),
	}
	if hasHigh {
		format12 := cmap.Format12{}
		for r, gid := range mapping {
			format12[uint32(r)] = gid
		}
		table[cmap.Key{PlatformID: 3, EncodingID: 10}] = format12.Encode(0)
	}
	return table
}

func sortRunes(rr []rune) {
	sort.Slice(rr, func(i, j int) bool { return rr[i] < rr[j] })
}

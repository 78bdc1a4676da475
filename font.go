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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/header"

	"seehuhn.de/go/glyphcopy/sfntpatch"
	"seehuhn.de/go/glyphcopy/vmtx"
)

// Font is a TrueType font loaded for glyph transplantation.
//
// In addition to the parsed sfnt data, a Font carries the vertical layout
// metrics of the original file, which the sfnt outline model does not
// represent.
type Font struct {
	*sfnt.Font

	// VMetrics holds the per-glyph vertical layout metrics, or nil if the
	// font file had no "vhea" and "vmtx" tables.
	VMetrics *vmtx.Info

	// HadVariations reports whether the font file contained variable-font
	// tables.  Variation data is always discarded when the font is
	// loaded: the outlines collapse to the default instance, and none of
	// the variation tables survive into written output.
	HadVariations bool
}

var variationTables = []string{
	"avar", "cvar", "fvar", "gvar", "HVAR", "MVAR", "STAT", "VVAR",
}

// Read parses a TrueType font from data.
func Read(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	outlines, ok := info.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, errors.New("font has no TrueType outlines")
	}

	dir, err := header.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	res := &Font{Font: info}
	for _, tag := range variationTables {
		if _, ok := dir.Toc[tag]; ok {
			res.HadVariations = true
		}
		delete(outlines.Tables, tag)
	}

	vheaData := rawTable(data, dir, "vhea")
	vmtxData := rawTable(data, dir, "vmtx")
	if vheaData != nil && vmtxData != nil {
		vm, err := vmtx.Decode(vheaData, vmtxData)
		if err != nil {
			return nil, fmt.Errorf("vertical metrics: %w", err)
		}
		fixVMetricsCount(vm, info.NumGlyphs(), info.UnitsPerEm)
		res.VMetrics = vm
	}

	return res, nil
}

// ReadFile loads a TrueType font from the named file.
func ReadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	res, err := Read(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return res, nil
}

func rawTable(data []byte, dir *header.Info, name string) []byte {
	rec, ok := dir.Toc[name]
	if !ok {
		return nil
	}
	end := int64(rec.Offset) + int64(rec.Length)
	if int64(rec.Offset) > end || end > int64(len(data)) {
		return nil
	}
	return data[rec.Offset:end]
}

// fixVMetricsCount pads or truncates the vertical metrics so that there is
// exactly one entry per glyph.  Padding repeats the last advance height,
// following the run-length layout of the "vmtx" table; a font without any
// entries falls back to one em.
func fixVMetricsCount(vm *vmtx.Info, numGlyphs int, unitsPerEm uint16) {
	advance := unitsPerEm
	if n := vm.NumGlyphs(); n > 0 {
		advance = vm.AdvanceHeight[n-1]
	}
	for vm.NumGlyphs() < numGlyphs {
		vm.AdvanceHeight = append(vm.AdvanceHeight, advance)
		vm.TopSideBearing = append(vm.TopSideBearing, 0)
	}
	vm.AdvanceHeight = vm.AdvanceHeight[:numGlyphs]
	vm.TopSideBearing = vm.TopSideBearing[:numGlyphs]
}

// Write serializes the font.  The vertical metrics, if any, are inserted
// into the table directory after the sfnt data is laid out.
func (f *Font) Write(w io.Writer) error {
	buf := &bytes.Buffer{}
	_, err := f.Font.Write(buf)
	if err != nil {
		return err
	}
	data := buf.Bytes()

	if f.VMetrics != nil {
		vheaData, vmtxData := f.VMetrics.Encode()
		data, err = sfntpatch.Insert(data, map[string][]byte{
			"vhea": vheaData,
			"vmtx": vmtxData,
		})
		if err != nil {
			return err
		}
	}

	_, err = w.Write(data)
	return err
}

// WriteFile writes the font to the named file.  The file is created in one
// step, so a failed run never leaves a partially written font behind.
func (f *Font) WriteFile(fname string) error {
	buf := &bytes.Buffer{}
	err := f.Write(buf)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(fname), ".glyphcopy-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(buf.Bytes())
	if err2 := tmp.Close(); err == nil {
		err = err2
	}
	if err == nil {
		err = os.Chmod(tmp.Name(), 0o644)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	err = os.Rename(tmp.Name(), fname)
	if err != nil {
		os.Remove(tmp.Name())
	}
	return err
}

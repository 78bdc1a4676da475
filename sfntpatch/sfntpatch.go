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

// Package sfntpatch rewrites the table directory of serialized sfnt font
// files.  This allows tables which a font model does not represent to be
// carried into a newly written font file.
package sfntpatch

import (
	"bytes"
	"fmt"

	"seehuhn.de/go/sfnt/header"
)

// Insert returns a copy of the font file with the given tables added.
// Tables already present in the file are replaced.  Offsets, lengths,
// per-table checksums and the checksum adjustment in the "head" table are
// all recomputed.
func Insert(font []byte, extra map[string][]byte) ([]byte, error) {
	info, err := header.Read(bytes.NewReader(font))
	if err != nil {
		return nil, err
	}

	tables := make(map[string][]byte)
	for name, rec := range info.Toc {
		end := int64(rec.Offset) + int64(rec.Length)
		if int64(rec.Offset) > end || end > int64(len(font)) {
			return nil, fmt.Errorf("sfntpatch: table %q out of bounds", name)
		}
		tables[name] = font[rec.Offset:end]
	}
	for name, body := range extra {
		if len(name) != 4 {
			return nil, fmt.Errorf("sfntpatch: invalid table tag %q", name)
		}
		tables[name] = body
	}

	// header.Write patches the checksum adjustment in place, and the "head"
	// bytes still alias the input file here.
	if head, ok := tables["head"]; ok {
		tables["head"] = append([]byte(nil), head...)
	}

	buf := &bytes.Buffer{}
	_, err = header.Write(buf, info.ScalerType, tables)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

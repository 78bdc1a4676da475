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

package vmtx

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		info *Info
	}{
		{
			name: "varying advances",
			info: &Info{
				AdvanceHeight:  []uint16{1000, 950, 1100, 1000},
				TopSideBearing: []int16{120, -5, 0, 33},
				Ascent:         880,
				Descent:        -120,
				LineGap:        0,
			},
		},
		{
			name: "constant tail",
			info: &Info{
				AdvanceHeight:  []uint16{1000, 900, 900, 900, 900},
				TopSideBearing: []int16{10, 20, 30, 40, 50},
				Ascent:         880,
				Descent:        -120,
			},
		},
		{
			name: "all advances equal",
			info: &Info{
				AdvanceHeight:  []uint16{1000, 1000, 1000},
				TopSideBearing: []int16{0, 0, -1},
				Ascent:         800,
				Descent:        -200,
				LineGap:        90,
			},
		},
		{
			name: "single glyph",
			info: &Info{
				AdvanceHeight:  []uint16{512},
				TopSideBearing: []int16{-100},
				Ascent:         500,
				Descent:        -12,
			},
		},
		{
			name: "caret and extent fields",
			info: &Info{
				AdvanceHeight:        []uint16{1000, 2000},
				TopSideBearing:       []int16{1, 2},
				Ascent:               1024,
				Descent:              -400,
				LineGap:              10,
				MinBottomSideBearing: -7,
				YMaxExtent:           1500,
				CaretSlopeRise:       1,
				CaretSlopeRun:        0,
				CaretOffset:          0,
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vheaData, vmtxData := test.info.Encode()
			got, err := Decode(vheaData, vmtxData)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(test.info, got); d != "" {
				t.Errorf("unexpected result (-want +got):\n%s", d)
			}
		})
	}
}

// TestShortFormat checks that runs of equal advance heights at the end of
// the table are stored in the two byte short form.
func TestShortFormat(t *testing.T) {
	info := &Info{
		AdvanceHeight:  []uint16{1000, 900, 900, 900},
		TopSideBearing: []int16{1, 2, 3, 4},
	}
	_, vmtxData := info.Encode()
	// two long entries (4 bytes each) and two short entries (2 bytes each)
	if len(vmtxData) != 2*4+2*2 {
		t.Errorf("wrong vmtx length %d", len(vmtxData))
	}
}

func TestDecode(t *testing.T) {
	vheaData := []byte{
		0x00, 0x01, 0x00, 0x00, // version 1.0
		0x03, 0x20, // ascent
		0xFF, 0x38, // descent
		0x00, 0x00, // line gap
		0x04, 0x00, // advanceHeightMax
		0x00, 0x0A, // minTopSideBearing
		0xFF, 0xF6, // minBottomSideBearing
		0x04, 0x00, // yMaxExtent
		0x00, 0x01, // caretSlopeRise
		0x00, 0x00, // caretSlopeRun
		0x00, 0x00, // caretOffset
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // reserved
		0x00, 0x00, // metricDataFormat
		0x00, 0x02, // numOfLongVerMetrics
	}
	vmtxData := []byte{
		0x04, 0x00, 0x00, 0x0A, // glyph 0: advance 1024, tsb 10
		0x03, 0x00, 0xFF, 0xF6, // glyph 1: advance 768, tsb -10
		0x00, 0x14, // glyph 2: tsb 20, advance repeated
	}
	want := &Info{
		AdvanceHeight:        []uint16{1024, 768, 768},
		TopSideBearing:       []int16{10, -10, 20},
		Ascent:               800,
		Descent:              -200,
		MinBottomSideBearing: -10,
		YMaxExtent:           1024,
		CaretSlopeRise:       1,
	}
	got, err := Decode(vheaData, vmtxData)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestDecodeErrors(t *testing.T) {
	good, _ := (&Info{
		AdvanceHeight:  []uint16{100},
		TopSideBearing: []int16{0},
	}).Encode()

	badVersion := make([]byte, len(good))
	copy(badVersion, good)
	badVersion[0] = 0x00
	badVersion[1] = 0x02

	tests := []struct {
		name     string
		vheaData []byte
		vmtxData []byte
	}{
		{"truncated vhea", good[:10], []byte{0, 100, 0, 0}},
		{"bad version", badVersion, []byte{0, 100, 0, 0}},
		{"truncated vmtx", good, []byte{0, 100, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.vheaData, test.vmtxData)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

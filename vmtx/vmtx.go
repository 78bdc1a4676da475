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

// Package vmtx has code for reading and writing the "vhea" and "vmtx"
// tables.  These tables hold the per-glyph metrics for vertical text
// layout: advance heights and top side bearings.
// https://docs.microsoft.com/en-us/typography/opentype/spec/vhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/vmtx
package vmtx

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Info contains information from the "vhea" and "vmtx" tables.
type Info struct {
	AdvanceHeight  []uint16
	TopSideBearing []int16

	Ascent  int16
	Descent int16 // negative
	LineGap int16

	// MinBottomSideBearing and YMaxExtent are carried through unchanged;
	// recomputing them would require every glyph bounding box.
	MinBottomSideBearing int16
	YMaxExtent           int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    int16
}

// NumGlyphs returns the number of per-glyph metric entries.
func (info *Info) NumGlyphs() int {
	return len(info.AdvanceHeight)
}

// Metrics returns the advance height and top side bearing of one glyph.
func (info *Info) Metrics(gid int) (advance uint16, tsb int16) {
	if gid < 0 || gid >= len(info.AdvanceHeight) {
		return 0, 0
	}
	return info.AdvanceHeight[gid], info.TopSideBearing[gid]
}

// Decode extracts information from the "vhea" and "vmtx" tables.
func Decode(vheaData, vmtxData []byte) (*Info, error) {
	r := bytes.NewReader(vheaData)
	vheaEnc := &binaryVhea{}
	err := binary.Read(r, binary.BigEndian, vheaEnc)
	if err != nil {
		return nil, err
	}
	if vheaEnc.Version != 0x00010000 && vheaEnc.Version != 0x00011000 {
		return nil, fmt.Errorf("unsupported vhea version %08x", vheaEnc.Version)
	}
	if vheaEnc.MetricDataFormat != 0 {
		return nil, fmt.Errorf("unsupported metric data format %d", vheaEnc.MetricDataFormat)
	}

	info := &Info{
		Ascent:  vheaEnc.Ascent,
		Descent: vheaEnc.Descent,
		LineGap: vheaEnc.LineGap,

		MinBottomSideBearing: vheaEnc.MinBottomSideBearing,
		YMaxExtent:           vheaEnc.YMaxExtent,

		CaretSlopeRise: vheaEnc.CaretSlopeRise,
		CaretSlopeRun:  vheaEnc.CaretSlopeRun,
		CaretOffset:    vheaEnc.CaretOffset,
	}

	numVerMetrics := int(vheaEnc.NumOfLongVerMetrics)
	prevAdvance := uint16(0)
	var advances []uint16
	var tsbs []int16
	for i := 0; len(vmtxData) > 0; i++ {
		advance := prevAdvance
		if i < numVerMetrics {
			if len(vmtxData) < 2 {
				return nil, fmt.Errorf("vmtx too short")
			}
			advance = uint16(vmtxData[0])<<8 | uint16(vmtxData[1])
			vmtxData = vmtxData[2:]
			prevAdvance = advance
		}
		advances = append(advances, advance)

		if len(vmtxData) < 2 {
			return nil, fmt.Errorf("vmtx too short")
		}
		tsb := int16(vmtxData[0])<<8 | int16(vmtxData[1])
		vmtxData = vmtxData[2:]
		tsbs = append(tsbs, tsb)
	}
	if len(advances) < numVerMetrics {
		return nil, fmt.Errorf("vmtx too short")
	}
	info.AdvanceHeight = advances
	info.TopSideBearing = tsbs

	return info, nil
}

// Encode creates the "vhea" and "vmtx" tables.
func (info *Info) Encode() (vheaData []byte, vmtxData []byte) {
	numGlyphs := len(info.AdvanceHeight)
	if len(info.TopSideBearing) != numGlyphs {
		panic("tsb length mismatch")
	}

	numLong := numGlyphs
	for numLong > 1 && info.AdvanceHeight[numLong-1] == info.AdvanceHeight[numLong-2] {
		numLong--
	}

	vhea := &binaryVhea{
		Version: 0x00010000, // 1.0
		Ascent:  info.Ascent,
		Descent: info.Descent,
		LineGap: info.LineGap,

		MinBottomSideBearing: info.MinBottomSideBearing,
		YMaxExtent:           info.YMaxExtent,

		CaretSlopeRise: info.CaretSlopeRise,
		CaretSlopeRun:  info.CaretSlopeRun,
		CaretOffset:    info.CaretOffset,

		NumOfLongVerMetrics: uint16(numLong),
	}

	for _, h := range info.AdvanceHeight {
		if h > vhea.AdvanceHeightMax {
			vhea.AdvanceHeightMax = h
		}
	}
	for i, tsb := range info.TopSideBearing {
		if i == 0 || tsb < vhea.MinTopSideBearing {
			vhea.MinTopSideBearing = tsb
		}
	}

	buf := bytes.NewBuffer(make([]byte, 0, vheaLength))
	_ = binary.Write(buf, binary.BigEndian, vhea)
	vheaData = buf.Bytes()

	buf = bytes.NewBuffer(make([]byte, 0, 4*numLong+2*(numGlyphs-numLong)))
	for i := 0; i < numGlyphs; i++ {
		if i < numLong {
			buf.Write([]byte{
				byte(info.AdvanceHeight[i] >> 8), byte(info.AdvanceHeight[i]),
			})
		}
		buf.Write([]byte{
			byte(info.TopSideBearing[i] >> 8), byte(info.TopSideBearing[i]),
		})
	}
	vmtxData = buf.Bytes()

	return vheaData, vmtxData
}

const vheaLength = 36

type binaryVhea struct {
	Version              uint32
	Ascent               int16
	Descent              int16
	LineGap              int16
	AdvanceHeightMax     uint16
	MinTopSideBearing    int16
	MinBottomSideBearing int16
	YMaxExtent           int16
	CaretSlopeRise       int16
	CaretSlopeRun        int16
	CaretOffset          int16
	_                    int16
	_                    int16
	_                    int16
	_                    int16
	MetricDataFormat     int16
	NumOfLongVerMetrics  uint16
}

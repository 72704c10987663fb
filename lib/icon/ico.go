// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ICO container layout constants. The format is ICONDIR (6 bytes),
// then one 16-byte ICONDIRENTRY per image, then the image payloads.
// Payloads are PNG-encoded, which Windows accepts for all entries
// since Vista and which keeps the 256px slot within format limits
// (the BMP encoding would not fit its size fields).
const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// buildICO assembles a multi-resolution Windows .ico from the
// rendered PNGs. Sizes must be ascending and each must be present in
// rendered; both are guaranteed by renderAll.
func buildICO(rendered map[int][]byte, sizes []int) ([]byte, error) {
	if len(sizes) == 0 || len(sizes) > 0xffff {
		return nil, fmt.Errorf("ico: %d entries out of range", len(sizes))
	}

	var buffer bytes.Buffer

	// ICONDIR: reserved (0), type (1 = icon), count.
	writeUint16(&buffer, 0)
	writeUint16(&buffer, 1)
	writeUint16(&buffer, uint16(len(sizes)))

	// Entries reference payload offsets, so compute them up front.
	offset := icoHeaderSize + icoEntrySize*len(sizes)
	for _, size := range sizes {
		payload := rendered[size]

		// Width and height bytes: 0 means 256. Sizes above 256 do not
		// fit the entry format at all.
		if size > 256 {
			return nil, fmt.Errorf("ico: %dpx exceeds the 256px format limit", size)
		}
		edge := byte(size)
		if size == 256 {
			edge = 0
		}

		buffer.WriteByte(edge) // width
		buffer.WriteByte(edge) // height
		buffer.WriteByte(0)    // palette size (not paletted)
		buffer.WriteByte(0)    // reserved
		writeUint16(&buffer, 1)  // color planes
		writeUint16(&buffer, 32) // bits per pixel
		writeUint32(&buffer, uint32(len(payload)))
		writeUint32(&buffer, uint32(offset))
		offset += len(payload)
	}

	for _, size := range sizes {
		buffer.Write(rendered[size])
	}

	return buffer.Bytes(), nil
}

func writeUint16(buffer *bytes.Buffer, v uint16) {
	var scratch [2]byte
	binary.LittleEndian.PutUint16(scratch[:], v)
	buffer.Write(scratch[:])
}

func writeUint32(buffer *bytes.Buffer, v uint32) {
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], v)
	buffer.Write(scratch[:])
}

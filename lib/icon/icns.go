// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// icnsTypes maps a square pixel size to the icns OSType that carries a
// PNG payload at that size. These are the post-10.7 types; the legacy
// mask-based types are not emitted. The bundle targets current macOS,
// so PNG payloads are accepted for every slot listed here.
var icnsTypes = map[int]string{
	16:   "icp4",
	32:   "icp5",
	64:   "icp6",
	128:  "ic07",
	256:  "ic08",
	512:  "ic09",
	1024: "ic10",
}

// icnsRetinaTypes maps a pixel size to the @2x OSType for that
// density: ic11 is 16pt@2x (32px), ic12 is 32pt@2x (64px), ic13 is
// 128pt@2x (256px), ic14 is 256pt@2x (512px). A retina source adds
// these alongside the standard slots so the Dock picks the
// high-density variant on retina displays.
var icnsRetinaTypes = map[int]string{
	32:  "ic11",
	64:  "ic12",
	256: "ic13",
	512: "ic14",
}

// buildICNS assembles a macOS .icns container from the rendered PNGs.
// Each size maps to its OSType block; a size with no icns type is an
// error (the matrix override allowed something the format cannot
// express). When retina is set, sizes that have an @2x slot are
// emitted twice — once as the standard type, once as the @2x type —
// matching how iconutil packages retina iconsets.
func buildICNS(rendered map[int][]byte, sizes []int, retina bool) ([]byte, error) {
	var body bytes.Buffer

	for _, size := range sizes {
		osType, ok := icnsTypes[size]
		if !ok {
			return nil, fmt.Errorf("icns: no container slot for %dpx (supported: 16, 32, 64, 128, 256, 512, 1024)", size)
		}
		writeIcnsBlock(&body, osType, rendered[size])

		if retina {
			if retinaType, ok := icnsRetinaTypes[size]; ok {
				writeIcnsBlock(&body, retinaType, rendered[size])
			}
		}
	}

	// File header: magic "icns" + big-endian total length including
	// the 8-byte header itself.
	var container bytes.Buffer
	container.WriteString("icns")
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(8+body.Len()))
	container.Write(length[:])
	container.Write(body.Bytes())

	return container.Bytes(), nil
}

// writeIcnsBlock appends one OSType block: 4-byte type, 4-byte
// big-endian length (including this 8-byte block header), payload.
func writeIcnsBlock(buffer *bytes.Buffer, osType string, payload []byte) {
	buffer.WriteString(osType)
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(8+len(payload)))
	buffer.Write(length[:])
	buffer.Write(payload)
}

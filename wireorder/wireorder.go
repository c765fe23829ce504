// Package wireorder implements the reader's byte-order adapter: the
// legacy VTK binary wire format is always big-endian, and every
// multi-byte numeric value read from it must be swapped to host
// order when the host is little-endian.
//
// It extends the standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into one Engine interface, so callers
// get both read/write and zero-allocation append operations from a
// single stateless value.
package wireorder

import (
	"encoding/binary"
	"unsafe"
)

// Engine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.BigEndian and binary.LittleEndian
// both satisfy it.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Wire is the byte order every legacy VTK binary payload is written
// in, regardless of host architecture.
var Wire Engine = binary.BigEndian

// CheckHostEndianness reports the host's native byte order.
func CheckHostEndianness() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsHostLittleEndian reports whether the host is little-endian.
func IsHostLittleEndian() bool {
	return CheckHostEndianness() == binary.LittleEndian
}

// SwapUint16InPlace byte-swaps every uint16 in buf (len(buf) must be
// a multiple of 2) in place. Used after a raw block read of a 16-bit
// wire-endian array when the host is little-endian, avoiding the
// per-element overhead of re-decoding through Wire.Uint16.
func SwapUint16InPlace(buf []byte) {
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i], buf[i+1] = buf[i+1], buf[i]
	}
}

// SwapUint32InPlace byte-swaps every uint32 in buf (len(buf) must be
// a multiple of 4) in place.
func SwapUint32InPlace(buf []byte) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = buf[i+3], buf[i+2], buf[i+1], buf[i]
	}
}

// SwapUint64InPlace byte-swaps every uint64 in buf (len(buf) must be
// a multiple of 8) in place.
func SwapUint64InPlace(buf []byte) {
	for i := 0; i+7 < len(buf); i += 8 {
		buf[i], buf[i+1], buf[i+2], buf[i+3], buf[i+4], buf[i+5], buf[i+6], buf[i+7] =
			buf[i+7], buf[i+6], buf[i+5], buf[i+4], buf[i+3], buf[i+2], buf[i+1], buf[i]
	}
}

// SwapToHost byte-swaps a buffer of elemSize-wide wire-endian (big
// endian) elements into host order in place, when and only when the
// host is little-endian; on a big-endian host it is a no-op. elemSize
// must be 1, 2, 4, or 8.
func SwapToHost(buf []byte, elemSize int) {
	if elemSize == 1 || !IsHostLittleEndian() {
		return
	}

	switch elemSize {
	case 2:
		SwapUint16InPlace(buf)
	case 4:
		SwapUint32InPlace(buf)
	case 8:
		SwapUint64InPlace(buf)
	}
}

// Package sfntio provides big-endian peek/consume primitives over
// non-owning byte slices. Font tables hold raw slices into the file
// image rather than copies; every reader here is zero-copy, mirroring
// the source/view split in golang.org/x/image/font/sfnt.
package sfntio

import "fmt"

// ErrShortBuffer is returned whenever a peek or consume would read past
// the end of the available bytes.
var ErrShortBuffer = fmt.Errorf("sfntio: buffer too short")

// Peek8 returns the byte at offset 0 without advancing.
func Peek8(b []byte) (uint8, error) {
	if len(b) < 1 {
		return 0, ErrShortBuffer
	}
	return b[0], nil
}

// Peek16 returns the big-endian uint16 at offset 0 without advancing.
func Peek16(b []byte) (uint16, error) {
	if len(b) < 2 {
		return 0, ErrShortBuffer
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// Peek24 returns the big-endian 24-bit unsigned integer at offset 0.
func Peek24(b []byte) (uint32, error) {
	if len(b) < 3 {
		return 0, ErrShortBuffer
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// Peek32 returns the big-endian uint32 at offset 0 without advancing.
func Peek32(b []byte) (uint32, error) {
	if len(b) < 4 {
		return 0, ErrShortBuffer
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// Peek64 returns the big-endian uint64 at offset 0 without advancing.
func Peek64(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, ErrShortBuffer
	}
	hi, _ := Peek32(b[:4])
	lo, _ := Peek32(b[4:8])
	return uint64(hi)<<32 | uint64(lo), nil
}

// Consume8 reads a byte and returns the advanced slice alongside it.
func Consume8(b []byte) (uint8, []byte, error) {
	v, err := Peek8(b)
	if err != nil {
		return 0, b, err
	}
	return v, b[1:], nil
}

// Consume16 reads a big-endian uint16 and returns the advanced slice.
func Consume16(b []byte) (uint16, []byte, error) {
	v, err := Peek16(b)
	if err != nil {
		return 0, b, err
	}
	return v, b[2:], nil
}

// Consume24 reads a big-endian 24-bit unsigned integer and returns the
// advanced slice.
func Consume24(b []byte) (uint32, []byte, error) {
	v, err := Peek24(b)
	if err != nil {
		return 0, b, err
	}
	return v, b[3:], nil
}

// Consume32 reads a big-endian uint32 and returns the advanced slice.
func Consume32(b []byte) (uint32, []byte, error) {
	v, err := Peek32(b)
	if err != nil {
		return 0, b, err
	}
	return v, b[4:], nil
}

// Consume64 reads a big-endian uint64 and returns the advanced slice.
func Consume64(b []byte) (uint64, []byte, error) {
	v, err := Peek64(b)
	if err != nil {
		return 0, b, err
	}
	return v, b[8:], nil
}

// Take returns the first n bytes of b, or an error if b is shorter.
// Unlike Consume*, it does not interpret the bytes.
func Take(b []byte, n int) ([]byte, error) {
	if len(b) < n {
		return nil, ErrShortBuffer
	}
	return b[:n], nil
}

// Drop returns b with the first n bytes removed.
func Drop(b []byte, n int) ([]byte, error) {
	if len(b) < n {
		return nil, ErrShortBuffer
	}
	return b[n:], nil
}

// Recast reinterprets b as a slice of fixed-size big-endian elements of
// elemSize bytes, returning the element count. Casting is only valid
// when len(b) is an integer multiple of elemSize; element values are
// read out on demand with ElementAt rather than materialised eagerly, so
// Recast itself never copies.
func Recast(b []byte, elemSize int) (n int, err error) {
	if elemSize <= 0 || len(b)%elemSize != 0 {
		return 0, fmt.Errorf("sfntio: length %d is not a multiple of element size %d", len(b), elemSize)
	}
	return len(b) / elemSize, nil
}

// ElementAt reads the i'th big-endian unsigned element of size elemSize
// (1, 2, 4 or 8 bytes) out of b, as produced by a prior Recast.
func ElementAt(b []byte, elemSize, i int) (uint64, error) {
	off := i * elemSize
	if off < 0 || off+elemSize > len(b) {
		return 0, ErrShortBuffer
	}
	switch elemSize {
	case 1:
		v, err := Peek8(b[off:])
		return uint64(v), err
	case 2:
		v, err := Peek16(b[off:])
		return uint64(v), err
	case 4:
		v, err := Peek32(b[off:])
		return uint64(v), err
	case 8:
		v, err := Peek64(b[off:])
		return uint64(v), err
	default:
		return 0, fmt.Errorf("sfntio: unsupported element size %d", elemSize)
	}
}

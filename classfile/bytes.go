package classfile

import "encoding/binary"

// The read helpers index data directly and panic when the range is out of
// bounds. Decoding steps call need first, so only a programming error can
// reach the panic.

func readU1(data []byte, offset int) uint8 {
	return data[offset]
}

func readU2(data []byte, offset int) uint16 {
	return binary.BigEndian.Uint16(data[offset : offset+2])
}

func readU4(data []byte, offset int) uint32 {
	return binary.BigEndian.Uint32(data[offset : offset+4])
}

// need reports ErrTruncated unless n bytes are available at offset.
func need(data []byte, offset, n int, what string) error {
	if offset < 0 || n < 0 || offset > len(data) || len(data)-offset < n {
		return decodeErrorf(offset, ErrTruncated, "%s needs %d bytes, %d available", what, n, max(len(data)-offset, 0))
	}
	return nil
}

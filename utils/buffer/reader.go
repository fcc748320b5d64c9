package buffer

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// Read reads len(c) bytes from r.
func Read(r Reader, c []byte) (n int64, err error) {
	nint, err := r.Read(c)
	if err == nil && nint != len(c) {
		err = fmt.Errorf("cannot Read: expected %d bytes but got %d", len(c), nint)
	}
	return int64(nint), err
}

// ReadUint8 reads a byte from r.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}

	var bb = [1]byte{}

	if n, err = Read(r, bb[:]); err != nil {
		return
	}

	*c = bb[0]

	return n, nil
}

// ReadUint64 reads a uint64 from r.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb = [8]byte{}

	if n, err = Read(r, bb[:]); err != nil {
		return
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return n, nil
}

// MaxBytesLength bounds the length prefix accepted by ReadBytes.
const MaxBytesLength = 1 << 28

// ReadBytes reads a slice of bytes written by WriteBytes.
func ReadBytes(r Reader) (c []byte, n int64, err error) {

	var size uint64
	if n, err = ReadUint64(r, &size); err != nil {
		return
	}

	if size > MaxBytesLength {
		return nil, n, fmt.Errorf("cannot ReadBytes: length %d exceeds MaxBytesLength=%d", size, MaxBytesLength)
	}

	c = make([]byte, size)

	inc, err := Read(r, c)

	return c, n + inc, err
}

// ReadBigFloat reads on x a value written by WriteBigFloat.
func ReadBigFloat(r Reader, x *big.Float) (n int64, err error) {

	var data []byte
	if data, n, err = ReadBytes(r); err != nil {
		return
	}

	if err = x.GobDecode(data); err != nil {
		return n, fmt.Errorf("cannot ReadBigFloat: %w", err)
	}

	return
}

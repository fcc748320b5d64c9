package ball

import (
	"bufio"
	"fmt"
	"io"
	"math/big"

	"github.com/tuneinsight/hypgeom/utils/buffer"
)

// BinarySize returns the serialized size of the object in bytes.
func (b *Ball) BinarySize() int {
	return buffer.BigFloatBinarySize(&b.mid) + buffer.BigFloatBinarySize(b.rad.Float())
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
//
// Unless w implements the buffer.Writer interface (see hypgeom/utils/buffer/buffer.go),
// it will be wrapped into a bufio.Writer.
func (b *Ball) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteBigFloat(w, &b.mid); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteBigFloat: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteBigFloat(w, b.rad.Float()); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteBigFloat: %w", err)
		}

		return n + inc, w.Flush()

	default:
		return b.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface (see hypgeom/utils/buffer/buffer.go),
// it will be wrapped into a bufio.Reader.
func (b *Ball) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		mid := new(big.Float)
		if inc, err = buffer.ReadBigFloat(r, mid); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadBigFloat: %w", err)
		}

		n += inc

		rad := new(big.Float)
		if inc, err = buffer.ReadBigFloat(r, rad); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadBigFloat: %w", err)
		}

		n += inc

		if mid.IsInf() || rad.Sign() < 0 {
			return n, fmt.Errorf("cannot ReadFrom: invalid ball %v +/- %v", mid, rad)
		}

		b.mid.SetPrec(mid.Prec()).Set(mid)
		b.rad.SetAbsUpper(rad)

		return n, nil

	default:
		return b.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (b *Ball) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(b.BinarySize())
	_, err = b.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (b *Ball) UnmarshalBinary(p []byte) (err error) {
	_, err = b.ReadFrom(buffer.NewBuffer(p))
	return
}

// BinarySize returns the serialized size of the object in bytes.
func (c *Complex) BinarySize() int {
	return c[0].BinarySize() + c[1].BinarySize()
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (c *Complex) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		for i := range c {
			if inc, err = c[i].WriteTo(w); err != nil {
				return n + inc, fmt.Errorf("ball.Ball.WriteTo: %w", err)
			}
			n += inc
		}

		return n, nil

	default:
		return c.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
func (c *Complex) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		for i := range c {
			if c[i] == nil {
				c[i] = new(Ball)
			}
			if inc, err = c[i].ReadFrom(r); err != nil {
				return n + inc, fmt.Errorf("ball.Ball.ReadFrom: %w", err)
			}
			n += inc
		}

		return n, nil

	default:
		return c.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (c *Complex) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(c.BinarySize())
	_, err = c.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (c *Complex) UnmarshalBinary(p []byte) (err error) {
	_, err = c.ReadFrom(buffer.NewBuffer(p))
	return
}

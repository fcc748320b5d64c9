package poly

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/utils/buffer"
)

// BinarySize returns the serialized size of the object in bytes.
func (p *Poly) BinarySize() (size int) {
	size = 16
	for i := range p.Coeffs {
		size += p.Coeffs[i].BinarySize()
	}
	return
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
func (p *Poly) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteUint64(w, uint64(p.Len())); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteUint64(w, uint64(p.prec)); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64: %w", err)
		}

		n += inc

		for i := range p.Coeffs {
			if inc, err = p.Coeffs[i].WriteTo(w); err != nil {
				return n + inc, fmt.Errorf("ball.Complex.WriteTo: %w", err)
			}
			n += inc
		}

		return n, w.Flush()

	default:
		return p.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads on the object from an io.Writer. It implements the
// io.ReaderFrom interface.
func (p *Poly) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64
		var length, prec uint64

		if inc, err = buffer.ReadUint64(r, &length); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadUint64: %w", err)
		}

		n += inc

		if length > buffer.MaxBytesLength {
			return n, fmt.Errorf("cannot ReadFrom: invalid length %d", length)
		}

		if inc, err = buffer.ReadUint64(r, &prec); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadUint64: %w", err)
		}

		n += inc

		p.prec = uint(prec)
		p.Coeffs = make([]*ball.Complex, length)
		for i := range p.Coeffs {
			p.Coeffs[i] = new(ball.Complex)
			if inc, err = p.Coeffs[i].ReadFrom(r); err != nil {
				return n + inc, fmt.Errorf("ball.Complex.ReadFrom: %w", err)
			}
			n += inc
		}

		return n, nil

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (p *Poly) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	_, err = p.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (p *Poly) UnmarshalBinary(data []byte) (err error) {
	_, err = p.ReadFrom(buffer.NewBuffer(data))
	return
}

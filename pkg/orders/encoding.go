package orders

import (
	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
)

// encodingVersion prefixes every encoded list.
const encodingVersion = 1

// MarshalBinary encodes the list as a version byte, a candidate-count byte
// and one byte per candidate per order.
func (l *List) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 2, 2+len(l.orders)*l.candidates)
	buf[0] = encodingVersion
	buf[1] = byte(l.candidates)
	for _, o := range l.orders {
		for _, c := range o {
			buf = append(buf, byte(c))
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes data produced by [List.MarshalBinary].
func (l *List) UnmarshalBinary(data []byte) error {
	if len(data) < 2 || data[0] != encodingVersion {
		return errors.New(errors.ErrCodeInvalidFormat, "unrecognized order list encoding")
	}
	c := int(data[1])
	body := data[2:]
	if c == 0 || len(body)%c != 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "order list body of %d bytes is not a multiple of %d", len(body), c)
	}
	orders := make([]ballot.Order, 0, len(body)/c)
	for off := 0; off < len(body); off += c {
		o := make(ballot.Order, c)
		for i, b := range body[off : off+c] {
			o[i] = ballot.Candidate(b)
		}
		orders = append(orders, o)
	}
	decoded, err := NewList(c, orders)
	if err != nil {
		return err
	}
	*l = *decoded
	return nil
}

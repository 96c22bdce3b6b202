package carrot

import "fmt"

// Type tags for the self-describing header. Only these eight shapes can
// appear in a Header — a row's columns are built from them recursively, but
// Bool, Bytes, Dict, OrderedDict and Struct have no tag of their own and
// cannot be named in a header (a caller wanting one of those composes it
// out of what does have a tag, e.g. a Table column, or encodes it without a
// header at all).
const (
	tagInt byte = iota
	tagFloat
	tagString
	tagList
	tagDate
	tagTime
	tagDateTime
	tagTable
)

// EncodeTypeDescriptor writes c's shape so ReadHeader can later reconstruct
// an identical codec without the reader needing to know the schema in
// advance. List and Table descriptors recurse into their element/column
// types.
func EncodeTypeDescriptor(c Codec) ([]byte, error) {
	switch v := c.(type) {
	case intCodec:
		return []byte{tagInt}, nil
	case floatCodec:
		return []byte{tagFloat}, nil
	case stringCodec:
		return []byte{tagString}, nil
	case dateCodec:
		return []byte{tagDate}, nil
	case timeCodec:
		return []byte{tagTime}, nil
	case dateTimeCodec:
		return []byte{tagDateTime}, nil
	case listCodec:
		elem, err := EncodeTypeDescriptor(v.elem)
		if err != nil {
			return nil, err
		}
		return append([]byte{tagList}, elem...), nil
	case tableCodec:
		out := []byte{tagTable}
		out = append(out, EncodeVarint(uint64(len(v.cols)))...)
		for i, col := range v.cols {
			enc, err := EncodeTypeDescriptor(col)
			if err != nil {
				return nil, fmt.Errorf("Table column %d: %w", i, err)
			}
			out = append(out, enc...)
		}
		return out, nil
	default:
		return nil, &UsageError{Msg: fmt.Sprintf("header: %T has no type descriptor", c)}
	}
}

// DecodeTypeDescriptor reads one type descriptor starting at pos and
// returns the codec it names, along with the position just past it.
func DecodeTypeDescriptor(b []byte, pos int) (int, Codec, error) {
	if pos >= len(b) {
		return 0, nil, &DecodeError{Offset: pos, Msg: ErrTruncated.Error(), Err: ErrTruncated}
	}
	tag := b[pos]
	pos++

	switch tag {
	case tagInt:
		return pos, Int(), nil
	case tagFloat:
		return pos, Float(), nil
	case tagString:
		return pos, String(), nil
	case tagDate:
		return pos, Date(), nil
	case tagTime:
		return pos, Time(), nil
	case tagDateTime:
		return pos, DateTime(), nil
	case tagList:
		pos, elem, err := DecodeTypeDescriptor(b, pos)
		if err != nil {
			return 0, nil, err
		}
		return pos, List(elem), nil
	case tagTable:
		pos, rawN, err := DecodeVarint(b, pos)
		if err != nil {
			return 0, nil, err
		}
		n, err := boundCount(rawN)
		if err != nil {
			return 0, nil, err
		}
		cols := make([]Codec, n)
		for i := uint32(0); i < n; i++ {
			var col Codec
			pos, col, err = DecodeTypeDescriptor(b, pos)
			if err != nil {
				return 0, nil, err
			}
			cols[i] = col
		}
		return pos, Table(cols...), nil
	default:
		return 0, nil, &DecodeError{Offset: pos - 1, Msg: ErrUnknownTag.Error(), Err: ErrUnknownTag}
	}
}

// Header names a stream and its row shape: a name, one type descriptor per
// column, and the number of rows that follow it. Reading a Header is
// everything a consumer needs to build the matching Table codec and decode
// the payload that follows, without any out-of-band schema.
type Header struct {
	Name     string
	Types    []Codec
	RowCount int
}

// WriteHeader encodes h's name, column type descriptors and row count.
func WriteHeader(h Header) ([]byte, error) {
	out, err := String().Encode(h.Name)
	if err != nil {
		return nil, err
	}

	out = append(out, EncodeVarint(uint64(len(h.Types)))...)
	for i, t := range h.Types {
		enc, err := EncodeTypeDescriptor(t)
		if err != nil {
			return nil, fmt.Errorf("header column %d: %w", i, err)
		}
		out = append(out, enc...)
	}

	rc, err := Int().Encode(int64(h.RowCount))
	if err != nil {
		return nil, err
	}
	return append(out, rc...), nil
}

// ReadHeader reads a Header starting at pos and returns the position just
// past it.
func ReadHeader(b []byte, pos int) (int, Header, error) {
	pos, nameAny, err := String().Decode(b, pos)
	if err != nil {
		return 0, Header{}, err
	}

	pos, rawN, err := DecodeVarint(b, pos)
	if err != nil {
		return 0, Header{}, err
	}
	n, err := boundCount(rawN)
	if err != nil {
		return 0, Header{}, err
	}
	types := make([]Codec, n)
	for i := uint32(0); i < n; i++ {
		var t Codec
		pos, t, err = DecodeTypeDescriptor(b, pos)
		if err != nil {
			return 0, Header{}, err
		}
		types[i] = t
	}

	pos, rowCountAny, err := Int().Decode(b, pos)
	if err != nil {
		return 0, Header{}, err
	}

	return pos, Header{
		Name:     nameAny.(string),
		Types:    types,
		RowCount: int(rowCountAny.(int64)),
	}, nil
}

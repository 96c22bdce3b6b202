package carrot

import (
	"fmt"

	"github.com/theblackbeans/nuts/internal/conv"
)

// maxDecodeCount bounds how large a length prefix (List/Dict/Table element
// count) Decode will act on before allocating. It's far larger than any
// legitimate row/element count but keeps a corrupted or adversarial varint
// from triggering a multi-gigabyte allocation before the first decode
// error would otherwise surface.
const maxDecodeCount = 1 << 28

// boundCount validates a just-decoded length prefix before it's used to
// size an allocation, narrowing it to uint32 since every bound this module
// enforces comfortably fits.
func boundCount(n uint64) (uint32, error) {
	bounded, err := conv.BoundUint64(n, maxDecodeCount)
	if err != nil {
		return 0, &DecodeError{Msg: fmt.Sprintf("element count %d exceeds %d", n, maxDecodeCount), Err: conv.ErrTooLarge}
	}
	return conv.Uint64ToUint32(bounded), nil
}

// listCodec encodes a homogeneous sequence as a length-prefixed run of
// Elem-encoded values.
type listCodec struct{ elem Codec }

// List returns a codec for a []any, each element encoded with elem.
func List(elem Codec) Codec { return listCodec{elem: elem} }

func (c listCodec) Encode(v any) ([]byte, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("List: cannot encode %T", v)}
	}
	out := EncodeVarint(uint64(len(items)))
	for i, item := range items {
		enc, err := c.elem.Encode(item)
		if err != nil {
			return nil, fmt.Errorf("List[%d]: %w", i, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}

func (c listCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, rawN, err := DecodeVarint(b, pos)
	if err != nil {
		return 0, nil, err
	}
	n, err := boundCount(rawN)
	if err != nil {
		return 0, nil, err
	}
	items := make([]any, n)
	for i := uint32(0); i < n; i++ {
		var v any
		pos, v, err = c.elem.Decode(b, pos)
		if err != nil {
			return 0, nil, err
		}
		items[i] = v
	}
	return pos, items, nil
}

// KV is one key/value pair of an OrderedDict, kept as an explicit pair
// rather than a map entry so decode can preserve wire order.
type KV struct {
	Key   any
	Value any
}

// dictCodec encodes key/value pairs as a length-prefixed run of
// key-then-value, identical on the wire to OrderedDict.
type dictCodec struct{ key, value Codec }

// Dict returns a codec for a map[any]any. Decode order is whatever Go's map
// iteration gives, which is unspecified — use OrderedDict when order
// matters.
func Dict(key, value Codec) Codec { return dictCodec{key: key, value: value} }

func (c dictCodec) encodePairs(pairs []KV) ([]byte, error) {
	out := EncodeVarint(uint64(len(pairs)))
	for i, p := range pairs {
		k, err := c.key.Encode(p.Key)
		if err != nil {
			return nil, fmt.Errorf("Dict key %d: %w", i, err)
		}
		out = append(out, k...)
		v, err := c.value.Encode(p.Value)
		if err != nil {
			return nil, fmt.Errorf("Dict value %d: %w", i, err)
		}
		out = append(out, v...)
	}
	return out, nil
}

func (c dictCodec) Encode(v any) ([]byte, error) {
	m, ok := v.(map[any]any)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("Dict: cannot encode %T", v)}
	}
	pairs := make([]KV, 0, len(m))
	for k, val := range m {
		pairs = append(pairs, KV{Key: k, Value: val})
	}
	return c.encodePairs(pairs)
}

func (c dictCodec) decodePairs(b []byte, pos int) (int, []KV, error) {
	pos, rawN, err := DecodeVarint(b, pos)
	if err != nil {
		return 0, nil, err
	}
	n, err := boundCount(rawN)
	if err != nil {
		return 0, nil, err
	}
	pairs := make([]KV, n)
	for i := uint32(0); i < n; i++ {
		var k, v any
		pos, k, err = c.key.Decode(b, pos)
		if err != nil {
			return 0, nil, err
		}
		pos, v, err = c.value.Decode(b, pos)
		if err != nil {
			return 0, nil, err
		}
		pairs[i] = KV{Key: k, Value: v}
	}
	return pos, pairs, nil
}

func (c dictCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, pairs, err := c.decodePairs(b, pos)
	if err != nil {
		return 0, nil, err
	}
	m := make(map[any]any, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return pos, m, nil
}

// orderedDictCodec is wire-compatible with Dict but decodes to a []KV that
// preserves the order pairs appeared on the wire, since Go maps don't.
type orderedDictCodec struct{ dictCodec }

// OrderedDict returns an order-preserving variant of Dict: same wire
// format, decodes to []KV instead of map[any]any.
func OrderedDict(key, value Codec) Codec {
	return orderedDictCodec{dictCodec{key: key, value: value}}
}

func (c orderedDictCodec) Encode(v any) ([]byte, error) {
	pairs, ok := v.([]KV)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("OrderedDict: cannot encode %T", v)}
	}
	return c.encodePairs(pairs)
}

func (c orderedDictCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, pairs, err := c.decodePairs(b, pos)
	if err != nil {
		return 0, nil, err
	}
	return pos, pairs, nil
}

// structCodec encodes a fixed-arity heterogeneous tuple: each field's codec
// back to back, with no length prefix since arity is fixed by the codec
// itself.
type structCodec struct{ fields []Codec }

// Struct returns a codec for a fixed-length []any of len(fields), each
// element encoded with the matching field codec. Decode always returns
// every field, not just the last one.
func Struct(fields ...Codec) Codec { return structCodec{fields: fields} }

func (c structCodec) Encode(v any) ([]byte, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("Struct: cannot encode %T", v)}
	}
	if len(items) != len(c.fields) {
		return nil, &UsageError{Msg: fmt.Sprintf("Struct: got %d fields, want %d", len(items), len(c.fields))}
	}
	var out []byte
	for i, field := range c.fields {
		enc, err := field.Encode(items[i])
		if err != nil {
			return nil, fmt.Errorf("Struct field %d: %w", i, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}

func (c structCodec) Decode(b []byte, pos int) (int, any, error) {
	items := make([]any, len(c.fields))
	for i, field := range c.fields {
		var v any
		var err error
		pos, v, err = field.Decode(b, pos)
		if err != nil {
			return 0, nil, err
		}
		items[i] = v
	}
	return pos, items, nil
}

// tableCodec encodes a row count followed by that many Struct-encoded rows,
// all sharing the same column types.
type tableCodec struct{ cols []Codec }

// Table returns a codec for a [][]any of uniformly-shaped rows.
func Table(cols ...Codec) Codec { return tableCodec{cols: cols} }

func (c tableCodec) row() structCodec { return structCodec{fields: c.cols} }

func (c tableCodec) Encode(v any) ([]byte, error) {
	rows, ok := v.([][]any)
	if !ok {
		return nil, &UsageError{Msg: fmt.Sprintf("Table: cannot encode %T", v)}
	}
	out := EncodeVarint(uint64(len(rows)))
	row := c.row()
	for i, r := range rows {
		enc, err := row.Encode(r)
		if err != nil {
			return nil, fmt.Errorf("Table row %d: %w", i, err)
		}
		out = append(out, enc...)
	}
	return out, nil
}

func (c tableCodec) Decode(b []byte, pos int) (int, any, error) {
	pos, rawN, err := DecodeVarint(b, pos)
	if err != nil {
		return 0, nil, err
	}
	n, err := boundCount(rawN)
	if err != nil {
		return 0, nil, err
	}
	row := c.row()
	rows := make([][]any, n)
	for i := uint32(0); i < n; i++ {
		var v any
		pos, v, err = row.Decode(b, pos)
		if err != nil {
			return 0, nil, err
		}
		rows[i] = v.([]any)
	}
	return pos, rows, nil
}

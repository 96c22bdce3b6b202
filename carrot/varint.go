package carrot

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// EncodeVarint writes x as a sequence of 7-bit groups, most-significant
// group first. Every group but the last carries a continuation bit of 1 in
// its low bit; the last group's low bit is 0. Groups are padded on the left
// with a zero group whenever x's bit length is an exact multiple of 7 (so,
// for example, every value from 64 through 127 takes two bytes rather than
// one) — this mirrors the reference wire format bit for bit and downstream
// decoders must tolerate the extra leading zero group.
func EncodeVarint(x uint64) []byte {
	bin := strconv.FormatUint(x, 2)
	pad := 7 - len(bin)%7
	padded := strings.Repeat("0", pad) + bin

	n := len(padded) / 7
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		group := padded[i*7 : i*7+7]
		v, _ := strconv.ParseUint(group, 2, 8)
		cont := byte(1)
		if i == n-1 {
			cont = 0
		}
		out[i] = byte(v<<1) | cont
	}
	return out
}

// DecodeVarint reads a varint starting at pos and returns the position just
// past it along with the decoded value. It fails with ErrTruncated if the
// continuation chain runs past the end of b, and with ErrVarintOverflow if
// the accumulated value doesn't fit in a uint64.
func DecodeVarint(b []byte, pos int) (int, uint64, error) {
	start := pos
	var bits strings.Builder
	for {
		if pos >= len(b) {
			return 0, 0, &DecodeError{Offset: start, Msg: ErrTruncated.Error(), Err: ErrTruncated}
		}
		group := b[pos]
		pos++
		payload := group >> 1
		bits.WriteString(padBinary(payload, 7))
		if group&1 == 0 {
			break
		}
	}
	val, err := strconv.ParseUint(bits.String(), 2, 64)
	if err != nil {
		return 0, 0, &DecodeError{Offset: start, Msg: ErrVarintOverflow.Error(), Err: ErrVarintOverflow}
	}
	return pos, val, nil
}

// EncodeInt32 writes x as a fixed 4-byte big-endian integer, independent of
// the varint format above. It has no header tag of its own and exists for
// callers that need a fixed-width field rather than a self-delimiting one.
func EncodeInt32(x int32) []byte {
	out := make([]byte, 4)
	binary.BigEndian.PutUint32(out, uint32(x))
	return out
}

// DecodeInt32 reads a fixed 4-byte big-endian integer starting at pos.
func DecodeInt32(b []byte, pos int) (int, int32, error) {
	if pos+4 > len(b) {
		return 0, 0, &DecodeError{Offset: pos, Msg: ErrTruncated.Error(), Err: ErrTruncated}
	}
	return pos + 4, int32(binary.BigEndian.Uint32(b[pos : pos+4])), nil
}

func padBinary(v byte, width int) string {
	s := strconv.FormatUint(uint64(v), 2)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}

package carrot

import "testing"

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Name:     "events",
		Types:    []Codec{Int(), String(), List(Int())},
		RowCount: 3,
	}
	enc, err := WriteHeader(h)
	if err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	pos, got, err := ReadHeader(enc, 0)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if pos != len(enc) {
		t.Fatalf("consumed %d, want %d", pos, len(enc))
	}
	if got.Name != "events" || got.RowCount != 3 || len(got.Types) != 3 {
		t.Fatalf("got %+v", got)
	}
	if _, ok := got.Types[2].(listCodec); !ok {
		t.Fatalf("column 2 = %T, want listCodec", got.Types[2])
	}
}

func TestTypeDescriptorNestedTable(t *testing.T) {
	table := Table(Int(), Date())
	enc, err := EncodeTypeDescriptor(table)
	if err != nil {
		t.Fatalf("EncodeTypeDescriptor: %v", err)
	}
	_, got, err := DecodeTypeDescriptor(enc, 0)
	if err != nil {
		t.Fatalf("DecodeTypeDescriptor: %v", err)
	}
	tc, ok := got.(tableCodec)
	if !ok || len(tc.cols) != 2 {
		t.Fatalf("got %T", got)
	}
}

func TestDecodeTypeDescriptorUnknownTag(t *testing.T) {
	if _, _, err := DecodeTypeDescriptor([]byte{99}, 0); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestHeaderThenTablePayload(t *testing.T) {
	cols := []Codec{Int(), String()}
	rows := [][]any{{int64(1), "a"}, {int64(2), "b"}}

	h := Header{Name: "rows", Types: cols, RowCount: len(rows)}
	stream, err := WriteHeader(h)
	if err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	payload, err := Table(cols...).Encode(rows)
	if err != nil {
		t.Fatalf("Table.Encode: %v", err)
	}
	stream = append(stream, payload...)

	pos, gotHeader, err := ReadHeader(stream, 0)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	_, gotRows, err := Table(gotHeader.Types...).Decode(stream, pos)
	if err != nil {
		t.Fatalf("Table.Decode: %v", err)
	}
	got := gotRows.([][]any)
	if len(got) != 2 || got[1][1].(string) != "b" {
		t.Fatalf("got %v", got)
	}
}

package main

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/theblackbeans/nuts/carrot"
)

// codecDoc is the JSON shape nutsctl encode/decode exchange on the side
// that isn't carrot bytes: a column type name per column plus the rows
// themselves, JSON numbers decoding to float64 or int64 depending on the
// declared column type.
type codecDoc struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// columnCodec only accepts int, float and string columns. Bool, Bytes and
// the Dict family have no header tag and so can't be named in a nutsctl
// table column; the other header-describable types (list, date, time,
// datetime, table) are not accepted here either.
func columnCodec(name string) (carrot.Codec, error) {
	switch name {
	case "int":
		return carrot.Int(), nil
	case "float":
		return carrot.Float(), nil
	case "string":
		return carrot.String(), nil
	default:
		return nil, fmt.Errorf("unsupported column type %q", name)
	}
}

// runEncode reads a codecDoc as JSON from r and writes its carrot-encoded
// header+table to w.
func runEncode(r io.Reader, w io.Writer) error {
	var doc codecDoc
	if err := jsonAPI.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decoding json input: %w", err)
	}

	cols := make([]carrot.Codec, len(doc.Columns))
	for i, name := range doc.Columns {
		c, err := columnCodec(name)
		if err != nil {
			return err
		}
		cols[i] = c
	}

	rows, err := jsonRowsToCarrot(doc.Columns, doc.Rows)
	if err != nil {
		return err
	}

	header, err := carrot.WriteHeader(carrot.Header{
		Name:     "nutsctl",
		Types:    cols,
		RowCount: len(rows),
	})
	if err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	payload, err := carrot.Table(cols...).Encode(rows)
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}

	_, err = w.Write(append(header, payload...))
	return err
}

func jsonRowsToCarrot(columns []string, rows [][]any) ([][]any, error) {
	out := make([][]any, len(rows))
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d fields, want %d", i, len(row), len(columns))
		}
		converted := make([]any, len(row))
		for j, v := range row {
			switch columns[j] {
			case "int":
				converted[j] = int64(v.(float64))
			default:
				converted[j] = v
			}
		}
		out[i] = converted
	}
	return out, nil
}

// runDecode reads a carrot header+table from r and writes it back out as a
// codecDoc in JSON to w.
func runDecode(r io.Reader, w io.Writer) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	pos, header, err := carrot.ReadHeader(raw, 0)
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	_, rowsAny, err := carrot.Table(header.Types...).Decode(raw, pos)
	if err != nil {
		return fmt.Errorf("decoding table: %w", err)
	}

	doc := codecDoc{
		Columns: make([]string, len(header.Types)),
		Rows:    rowsAny.([][]any),
	}
	for i, t := range header.Types {
		doc.Columns[i] = describeCodec(t)
	}

	return jsonAPI.NewEncoder(w).Encode(doc)
}

func describeCodec(c carrot.Codec) string {
	enc, err := carrot.EncodeTypeDescriptor(c)
	if err != nil || len(enc) == 0 {
		return "unknown"
	}
	switch enc[0] {
	case 0:
		return "int"
	case 1:
		return "float"
	case 2:
		return "string"
	case 4:
		return "date"
	case 5:
		return "time"
	case 6:
		return "datetime"
	default:
		return "unknown"
	}
}

package parquetio

import (
	"io"
	"os"

	parquet "github.com/segmentio/parquet-go"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

type Reader struct {
	file   *os.File
	reader *parquet.Reader
	schema g.Schema
	names  []string
}

// OpenReader opens a Parquet file and maps its flat schema onto frame
// column kinds. Nested fields are not supported.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := parquet.NewReader(f)
	fields := r.Schema().Fields()
	schema := g.Schema{Columns: make([]g.ColumnSchema, len(fields))}
	names := make([]string, len(fields))
	for i, fd := range fields {
		names[i] = fd.Name()
		schema.Columns[i] = g.ColumnSchema{Name: fd.Name(), Type: kindOf(fd), Nullable: true}
	}
	return &Reader{file: f, reader: r, schema: schema, names: names}, nil
}

func kindOf(fd parquet.Field) g.Kind {
	switch fd.Type().Kind() {
	case parquet.Int32, parquet.Int64:
		return g.KindInt
	case parquet.Float, parquet.Double:
		return g.KindFloat
	default:
		return g.KindString
	}
}

func (r *Reader) Close() error {
	_ = r.reader.Close()
	return r.file.Close()
}

func (r *Reader) Schema() g.Schema { return r.schema }

func (r *Reader) ReadAll() (*g.Frame, error) {
	f := g.NewFrame(r.schema)
	buf := make([]parquet.Row, 256)
	for {
		n, err := r.reader.ReadRows(buf)
		for i := 0; i < n; i++ {
			r.appendRow(f, buf[i])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
	}
	return f, nil
}

// appendRow maps leaf values onto frame cells by column index. For a
// flat schema the leaf index matches the schema field order.
func (r *Reader) appendRow(f *g.Frame, row parquet.Row) {
	f.AppendNullRow()
	idx := f.Rows() - 1
	for _, v := range row {
		c := int(v.Column())
		if c < 0 || c >= len(r.names) || v.IsNull() {
			continue
		}
		name := r.names[c]
		switch v.Kind() {
		case parquet.Double:
			setNumeric(f, idx, name, r.schema.Columns[c].Type, v.Double())
		case parquet.Float:
			setNumeric(f, idx, name, r.schema.Columns[c].Type, float64(v.Float()))
		case parquet.Int64:
			setNumeric(f, idx, name, r.schema.Columns[c].Type, float64(v.Int64()))
		case parquet.Int32:
			setNumeric(f, idx, name, r.schema.Columns[c].Type, float64(v.Int32()))
		case parquet.ByteArray, parquet.FixedLenByteArray:
			_ = f.SetCell(idx, name, string(v.ByteArray()))
		}
	}
}

func setNumeric(f *g.Frame, row int, name string, kind g.Kind, v float64) {
	if kind == g.KindInt {
		_ = f.SetCell(row, name, int64(v))
		return
	}
	_ = f.SetCell(row, name, v)
}

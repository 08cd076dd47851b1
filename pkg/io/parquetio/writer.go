package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

func parquetSchemaJSON(s g.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case g.KindFloat:
			tag += "DOUBLE"
		case g.KindInt:
			tag += "INT64"
		default:
			tag += "UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file. Null cells are omitted from
// the record so they round-trip as nulls.
func WriteAll(path string, f *g.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case g.KindFloat:
				if v, ok := col.(*g.FloatColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case g.KindInt:
				if v, ok := col.(*g.IntColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case g.KindString:
				if v, ok := col.(*g.StringColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			}
		}
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		// JSONWriter consumes one JSON document per row
		if err := writer.Write(string(b)); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}

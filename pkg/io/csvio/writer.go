package csvio

import (
	"encoding/csv"
	"os"
	"strconv"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

type WriterOptions struct {
	Delimiter rune // default ','
	// Missing is written for null cells; default is the empty string.
	Missing string
}

// WriteAll writes a Frame to a CSV file with headers.
func WriteAll(path string, f *g.Frame, opt WriterOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()
	w := csv.NewWriter(out)
	if opt.Delimiter != 0 {
		w.Comma = opt.Delimiter
	}

	hdr := make([]string, len(f.Schema().Columns))
	for i, cs := range f.Schema().Columns {
		hdr[i] = cs.Name
	}
	if err := w.Write(hdr); err != nil {
		return err
	}

	for r := 0; r < f.Rows(); r++ {
		row := make([]string, len(hdr))
		for c, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			row[c] = opt.Missing
			switch cs.Type {
			case g.KindFloat:
				if v, ok := col.(*g.FloatColumn).Get(r); ok {
					row[c] = strconv.FormatFloat(v, 'g', -1, 64)
				}
			case g.KindInt:
				if v, ok := col.(*g.IntColumn).Get(r); ok {
					row[c] = strconv.FormatInt(v, 10)
				}
			case g.KindString:
				if v, ok := col.(*g.StringColumn).Get(r); ok {
					row[c] = v
				}
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

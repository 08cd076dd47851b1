package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// missing markers commonly found in statistical datasets; matched after
// trimming, case-insensitively.
var missingMarkers = map[string]bool{
	"": true, "na": true, "n/a": true, "nan": true, "?": true, "null": true,
}

func isMissing(v string) bool { return missingMarkers[strings.ToLower(v)] }

type ReaderOptions struct {
	HasHeader  bool
	Delimiter  rune // 0 = ','
	SampleRows int  // for inference; default 100
}

type Reader struct {
	r   *csv.Reader
	opt ReaderOptions
	buf [][]string
}

// Open opens a CSV file and returns a Reader plus the underlying file for
// the caller to close.
func Open(path string, opt ReaderOptions) (*Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReaderFrom(f, opt), f, nil
}

// NewReaderFrom constructs a Reader from an arbitrary io.Reader.
func NewReaderFrom(r io.Reader, opt ReaderOptions) *Reader {
	rr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		rr.Comma = opt.Delimiter
	}
	rr.ReuseRecord = false
	return &Reader{r: rr, opt: opt}
}

// InferSchema reads the header (if present) and samples rows to determine
// column kinds. Sampled rows are retained for the subsequent ReadAll.
func (r *Reader) InferSchema() (g.Schema, []string, error) {
	rec, err := r.r.Read()
	if err != nil {
		return g.Schema{}, nil, err
	}
	var names []string
	if r.opt.HasHeader {
		names = make([]string, len(rec))
		for i := range rec {
			names[i] = strings.TrimSpace(rec[i])
		}
		// strip BOM on first header cell if present
		if len(names) > 0 {
			names[0] = strings.TrimPrefix(names[0], "\ufeff")
		}
		rec, err = r.r.Read()
		if err != nil {
			return g.Schema{}, nil, err
		}
	} else {
		names = make([]string, len(rec))
		for i := range names {
			names[i] = "col_" + strconv.Itoa(i)
		}
	}

	sample := [][]string{append([]string(nil), rec...)}
	max := r.opt.SampleRows
	if max <= 0 {
		max = 100
	}
	for i := 1; i < max; i++ {
		rr, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return g.Schema{}, nil, err
		}
		sample = append(sample, append([]string(nil), rr...))
	}

	kinds := inferKinds(sample)
	schema := g.Schema{Columns: make([]g.ColumnSchema, len(names))}
	for i := range names {
		schema.Columns[i] = g.ColumnSchema{Name: names[i], Type: kinds[i], Nullable: true}
	}
	r.buf = append(r.buf, sample...)
	return schema, names, nil
}

// ReadAll loads the remaining records into a Frame. Cells matching a
// missing marker stay null.
func (r *Reader) ReadAll(schema g.Schema) (*g.Frame, error) {
	f := g.NewFrame(schema)
	for _, rec := range r.buf {
		appendRecord(f, schema, rec)
	}
	r.buf = nil
	for {
		rec, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		appendRecord(f, schema, rec)
	}
	return f, nil
}

func appendRecord(f *g.Frame, schema g.Schema, rec []string) {
	f.AppendNullRow()
	row := f.Rows() - 1
	for i, cs := range schema.Columns {
		if i >= len(rec) {
			continue
		}
		val := strings.TrimSpace(rec[i])
		if isMissing(val) {
			continue
		}
		switch cs.Type {
		case g.KindFloat:
			if x, err := strconv.ParseFloat(val, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		case g.KindInt:
			if x, err := strconv.ParseInt(val, 10, 64); err == nil {
				_ = f.SetCell(row, cs.Name, x)
			}
		default:
			_ = f.SetCell(row, cs.Name, val)
		}
	}
}

var numre = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+([eE][-+]?[0-9]+)?$`)

func inferKinds(rows [][]string) []g.Kind {
	if len(rows) == 0 {
		return nil
	}
	ncol := len(rows[0])
	kinds := make([]g.Kind, ncol)
	for c := 0; c < ncol; c++ {
		num, integer, str := 0, 0, 0
		for _, row := range rows {
			if c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if isMissing(v) {
				continue
			}
			if numre.MatchString(v) {
				num++
				if !strings.ContainsAny(v, ".eE") {
					integer++
				}
			} else {
				str++
			}
		}
		switch {
		case num > 0 && str == 0 && integer == num:
			kinds[c] = g.KindInt
		case num > 0 && str == 0:
			kinds[c] = g.KindFloat
		default:
			kinds[c] = g.KindString
		}
	}
	return kinds
}

package gapfill

import "fmt"

// Schema describes the logical shape of a dataset.
type Schema struct {
	Columns []ColumnSchema
}

type ColumnSchema struct {
	Name     string
	Type     Kind
	Nullable bool
}

// Kind enumerates supported logical types.
type Kind int

const (
	KindInvalid Kind = iota
	KindFloat
	KindInt
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Numeric reports whether the kind participates in numeric imputation.
func (k Kind) Numeric() bool { return k == KindFloat || k == KindInt }

// Column is a typed, nullable column abstraction.
type Column interface {
	Name() string
	Kind() Kind
	Len() int
	IsNull(i int) bool
	SetNull(i int)
	// Clone returns an independent deep copy.
	Clone() Column
	// Take returns a new column holding the given rows, in order.
	Take(rows []int) Column
}

type FloatColumn struct {
	name  string
	data  []float64
	nulls []bool
}

func NewFloatColumn(name string, n int) *FloatColumn {
	return &FloatColumn{name: name, data: make([]float64, n), nulls: make([]bool, n)}
}
func (c *FloatColumn) Name() string              { return c.name }
func (c *FloatColumn) Kind() Kind                { return KindFloat }
func (c *FloatColumn) Len() int                  { return len(c.data) }
func (c *FloatColumn) IsNull(i int) bool         { return c.nulls[i] }
func (c *FloatColumn) SetNull(i int)             { c.nulls[i] = true }
func (c *FloatColumn) Get(i int) (float64, bool) { return c.data[i], !c.nulls[i] }
func (c *FloatColumn) Set(i int, v float64)      { c.data[i] = v; c.nulls[i] = false }
func (c *FloatColumn) Append(v float64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *FloatColumn) AppendNull()               { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }

func (c *FloatColumn) Clone() Column {
	out := &FloatColumn{name: c.name, data: make([]float64, len(c.data)), nulls: make([]bool, len(c.nulls))}
	copy(out.data, c.data)
	copy(out.nulls, c.nulls)
	return out
}

func (c *FloatColumn) Take(rows []int) Column {
	out := NewFloatColumn(c.name, len(rows))
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

// Present returns the non-null values in row order.
func (c *FloatColumn) Present() []float64 {
	out := make([]float64, 0, len(c.data))
	for i, v := range c.data {
		if !c.nulls[i] {
			out = append(out, v)
		}
	}
	return out
}

type IntColumn struct {
	name  string
	data  []int64
	nulls []bool
}

func NewIntColumn(name string, n int) *IntColumn {
	return &IntColumn{name: name, data: make([]int64, n), nulls: make([]bool, n)}
}
func (c *IntColumn) Name() string            { return c.name }
func (c *IntColumn) Kind() Kind              { return KindInt }
func (c *IntColumn) Len() int                { return len(c.data) }
func (c *IntColumn) IsNull(i int) bool       { return c.nulls[i] }
func (c *IntColumn) SetNull(i int)           { c.nulls[i] = true }
func (c *IntColumn) Get(i int) (int64, bool) { return c.data[i], !c.nulls[i] }
func (c *IntColumn) Set(i int, v int64)      { c.data[i] = v; c.nulls[i] = false }
func (c *IntColumn) Append(v int64)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *IntColumn) AppendNull()             { c.data = append(c.data, 0); c.nulls = append(c.nulls, true) }

func (c *IntColumn) Clone() Column {
	out := &IntColumn{name: c.name, data: make([]int64, len(c.data)), nulls: make([]bool, len(c.nulls))}
	copy(out.data, c.data)
	copy(out.nulls, c.nulls)
	return out
}

func (c *IntColumn) Take(rows []int) Column {
	out := NewIntColumn(c.name, len(rows))
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

type StringColumn struct {
	name  string
	data  []string
	nulls []bool
}

func NewStringColumn(name string, n int) *StringColumn {
	return &StringColumn{name: name, data: make([]string, n), nulls: make([]bool, n)}
}
func (c *StringColumn) Name() string             { return c.name }
func (c *StringColumn) Kind() Kind               { return KindString }
func (c *StringColumn) Len() int                 { return len(c.data) }
func (c *StringColumn) IsNull(i int) bool        { return c.nulls[i] }
func (c *StringColumn) SetNull(i int)            { c.nulls[i] = true }
func (c *StringColumn) Get(i int) (string, bool) { return c.data[i], !c.nulls[i] }
func (c *StringColumn) Set(i int, v string)      { c.data[i] = v; c.nulls[i] = false }
func (c *StringColumn) Append(v string)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }
func (c *StringColumn) AppendNull()              { c.data = append(c.data, ""); c.nulls = append(c.nulls, true) }

func (c *StringColumn) Clone() Column {
	out := &StringColumn{name: c.name, data: make([]string, len(c.data)), nulls: make([]bool, len(c.nulls))}
	copy(out.data, c.data)
	copy(out.nulls, c.nulls)
	return out
}

func (c *StringColumn) Take(rows []int) Column {
	out := NewStringColumn(c.name, len(rows))
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

// Frame is a columnar container for tabular data. Once built, consumers
// treat a Frame as read-only; transformations return new frames via Clone,
// Take or SelectRows.
type Frame struct {
	schema Schema
	cols   []Column
	index  map[string]int // name -> col index
	nrows  int
}

func NewFrame(s Schema) *Frame {
	f := &Frame{schema: s, cols: make([]Column, len(s.Columns)), index: make(map[string]int)}
	for i, cs := range s.Columns {
		switch cs.Type {
		case KindFloat:
			f.cols[i] = NewFloatColumn(cs.Name, 0)
		case KindInt:
			f.cols[i] = NewIntColumn(cs.Name, 0)
		case KindString:
			f.cols[i] = NewStringColumn(cs.Name, 0)
		default:
			panic("invalid column kind")
		}
		f.index[cs.Name] = i
	}
	return f
}

func (f *Frame) Schema() Schema { return f.schema }
func (f *Frame) Rows() int      { return f.nrows }
func (f *Frame) Cols() int      { return len(f.cols) }

func (f *Frame) ColumnByName(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Float returns the named column as a FloatColumn, or an error if the
// column is absent or not of float kind.
func (f *Frame) Float(name string) (*FloatColumn, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown column: %s", name)
	}
	fc, ok := col.(*FloatColumn)
	if !ok {
		return nil, fmt.Errorf("column %s is %v, not float", name, col.Kind())
	}
	return fc, nil
}

// AppendNullRow appends a row with all-null values.
func (f *Frame) AppendNullRow() {
	for _, c := range f.cols {
		switch col := c.(type) {
		case *FloatColumn:
			col.AppendNull()
		case *IntColumn:
			col.AppendNull()
		case *StringColumn:
			col.AppendNull()
		default:
			panic("unknown column type")
		}
	}
	f.nrows++
}

// Clone returns a deep copy of the frame. Mutating the clone leaves the
// receiver untouched.
func (f *Frame) Clone() *Frame {
	out := &Frame{schema: f.schema, cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.index)), nrows: f.nrows}
	for i, c := range f.cols {
		out.cols[i] = c.Clone()
	}
	for k, v := range f.index {
		out.index[k] = v
	}
	return out
}

// SelectRows returns a new frame holding the given rows, in order.
func (f *Frame) SelectRows(rows []int) *Frame {
	out := &Frame{schema: f.schema, cols: make([]Column, len(f.cols)), index: make(map[string]int, len(f.index)), nrows: len(rows)}
	for i, c := range f.cols {
		out.cols[i] = c.Take(rows)
	}
	for k, v := range f.index {
		out.index[k] = v
	}
	return out
}

// SetCell sets a single cell value by name (row must exist). A nil value
// marks the cell null.
func (f *Frame) SetCell(row int, name string, v any) error {
	i, ok := f.index[name]
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	c := f.cols[i]
	switch col := c.(type) {
	case *FloatColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case float32:
			col.Set(row, float64(t))
		case float64:
			col.Set(row, t)
		case int:
			col.Set(row, float64(t))
		case int64:
			col.Set(row, float64(t))
		default:
			return fmt.Errorf("column %s expects float64", name)
		}
	case *IntColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		switch t := v.(type) {
		case int:
			col.Set(row, int64(t))
		case int64:
			col.Set(row, t)
		case float64:
			col.Set(row, int64(t))
		default:
			return fmt.Errorf("column %s expects int/int64", name)
		}
	case *StringColumn:
		if v == nil {
			col.SetNull(row)
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("column %s expects string", name)
		}
		col.Set(row, s)
	default:
		return fmt.Errorf("unknown column kind")
	}
	return nil
}

// NumericValues returns the named column's values widened to float64 with a
// presence mask. Only float and int columns qualify.
func (f *Frame) NumericValues(name string) ([]float64, []bool, error) {
	col, ok := f.ColumnByName(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown column: %s", name)
	}
	n := col.Len()
	vals := make([]float64, n)
	present := make([]bool, n)
	switch c := col.(type) {
	case *FloatColumn:
		for i := 0; i < n; i++ {
			if v, ok := c.Get(i); ok {
				vals[i] = v
				present[i] = true
			}
		}
	case *IntColumn:
		for i := 0; i < n; i++ {
			if v, ok := c.Get(i); ok {
				vals[i] = float64(v)
				present[i] = true
			}
		}
	default:
		return nil, nil, fmt.Errorf("column %s is %v, not numeric", name, col.Kind())
	}
	return vals, present, nil
}

// SetNumeric writes a float value into a float or int column, rounding to
// nearest for int columns.
func (f *Frame) SetNumeric(name string, row int, v float64) error {
	col, ok := f.ColumnByName(name)
	if !ok {
		return fmt.Errorf("unknown column: %s", name)
	}
	switch c := col.(type) {
	case *FloatColumn:
		c.Set(row, v)
	case *IntColumn:
		if v >= 0 {
			c.Set(row, int64(v+0.5))
		} else {
			c.Set(row, int64(v-0.5))
		}
	default:
		return fmt.Errorf("column %s is %v, not numeric", name, col.Kind())
	}
	return nil
}

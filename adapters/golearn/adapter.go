// Package golearn converts between gapfill frames and
// github.com/sjwhitworth/golearn/base DenseInstances, so imputed frames can
// feed golearn models directly.
package golearn

import (
	"fmt"

	"github.com/sjwhitworth/golearn/base"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

// ToDenseInstances converts a Frame into golearn DenseInstances. The named
// class column becomes the class attribute; pass "" to use the last column.
func ToDenseInstances(f *g.Frame, class string) (*base.DenseInstances, error) {
	cols := f.Schema().Columns
	if len(cols) == 0 {
		return nil, fmt.Errorf("frame has no columns")
	}
	if class == "" {
		class = cols[len(cols)-1].Name
	}
	classIdx := -1
	attrs := make([]base.Attribute, len(cols))
	for i, cs := range cols {
		if cs.Name == class {
			classIdx = i
		}
		if cs.Type.Numeric() {
			attrs[i] = base.NewFloatAttribute(cs.Name)
		} else {
			ca := new(base.CategoricalAttribute)
			ca.SetName(cs.Name)
			attrs[i] = ca
		}
	}
	if classIdx < 0 {
		return nil, fmt.Errorf("unknown class column: %s", class)
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	if err := inst.Extend(f.Rows()); err != nil {
		return nil, err
	}

	for r := 0; r < f.Rows(); r++ {
		for c, cs := range cols {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case g.KindFloat:
				if v, ok := col.(*g.FloatColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(v))
				}
			case g.KindInt:
				if v, ok := col.(*g.IntColumn).Get(r); ok {
					inst.Set(specs[c], r, base.PackFloatToBytes(float64(v)))
				}
			default:
				if v, ok := col.(*g.StringColumn).Get(r); ok {
					inst.Set(specs[c], r, base.Attribute.GetSysValFromString(attrs[c], v))
				}
			}
		}
	}
	if err := inst.AddClassAttribute(attrs[classIdx]); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromDenseInstances converts golearn DenseInstances into a Frame. Float
// attributes map to float columns, everything else to string columns.
func FromDenseInstances(inst *base.DenseInstances) (*g.Frame, error) {
	attrs := inst.AllAttributes()
	schema := g.Schema{Columns: make([]g.ColumnSchema, len(attrs))}
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		k := g.KindString
		if a.GetType() == base.Float64Type {
			k = g.KindFloat
		}
		schema.Columns[i] = g.ColumnSchema{Name: a.GetName(), Type: k, Nullable: true}
		spec, err := inst.GetAttribute(a)
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	f := g.NewFrame(schema)
	_, nrows := inst.Size()
	for r := 0; r < nrows; r++ {
		f.AppendNullRow()
		for c, cs := range schema.Columns {
			switch cs.Type {
			case g.KindFloat:
				v := base.UnpackBytesToFloat(inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			default:
				v := base.Attribute.GetStringFromSysVal(specs[c].GetAttribute(), inst.Get(specs[c], r))
				_ = f.SetCell(r, cs.Name, v)
			}
		}
	}
	return f, nil
}

package parquetio

import (
	"path/filepath"
	"testing"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
)

func mixedFrame(t *testing.T) *g.Frame {
	t.Helper()
	s := g.Schema{Columns: []g.ColumnSchema{
		{Name: "bwt", Type: g.KindFloat, Nullable: true},
		{Name: "age", Type: g.KindInt, Nullable: true},
		{Name: "race", Type: g.KindString, Nullable: true},
	}}
	f := g.NewFrame(s)
	for i := 0; i < 4; i++ {
		f.AppendNullRow()
	}
	_ = f.SetCell(0, "bwt", 2523.0)
	_ = f.SetCell(1, "bwt", 2551.0)
	_ = f.SetCell(3, "bwt", 2557.5)
	_ = f.SetCell(0, "age", 19)
	_ = f.SetCell(1, "age", 33)
	_ = f.SetCell(2, "age", 20)
	_ = f.SetCell(0, "race", "white")
	_ = f.SetCell(2, "race", "black")
	_ = f.SetCell(3, "race", "other")
	return f
}

func TestWriteReadRoundTrip(t *testing.T) {
	f := mixedFrame(t)
	path := filepath.Join(t.TempDir(), "out.parquet")
	if err := WriteAll(path, f); err != nil {
		t.Fatal(err)
	}

	rdr, err := OpenReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rdr.Close() }()

	schema := rdr.Schema()
	kinds := map[string]g.Kind{}
	for _, cs := range schema.Columns {
		kinds[cs.Name] = cs.Type
	}
	if kinds["bwt"] != g.KindFloat {
		t.Fatalf("bwt read back as %v, want float", kinds["bwt"])
	}
	if kinds["age"] != g.KindInt {
		t.Fatalf("age read back as %v, want int", kinds["age"])
	}
	if kinds["race"] != g.KindString {
		t.Fatalf("race read back as %v, want string", kinds["race"])
	}

	out, err := rdr.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != f.Rows() {
		t.Fatalf("row count changed: %d -> %d", f.Rows(), out.Rows())
	}

	bwt, _ := out.ColumnByName("bwt")
	if v, ok := bwt.(*g.FloatColumn).Get(3); !ok || v != 2557.5 {
		t.Fatalf("bwt[3]: got %v present=%v", v, ok)
	}
	if !bwt.IsNull(2) {
		t.Fatal("null float cell did not round-trip")
	}
	age, _ := out.ColumnByName("age")
	if v, ok := age.(*g.IntColumn).Get(1); !ok || v != 33 {
		t.Fatalf("age[1]: got %v present=%v", v, ok)
	}
	if !age.IsNull(3) {
		t.Fatal("null int cell did not round-trip")
	}
	race, _ := out.ColumnByName("race")
	if v, ok := race.(*g.StringColumn).Get(2); !ok || v != "black" {
		t.Fatalf("race[2]: got %q present=%v", v, ok)
	}
	if !race.IsNull(1) {
		t.Fatal("null string cell did not round-trip")
	}
}

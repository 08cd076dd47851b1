package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	g "github.com/wdm0006/gapfill/pkg/gapfill"
	"github.com/wdm0006/gapfill/pkg/impute"
	csvio "github.com/wdm0006/gapfill/pkg/io/csvio"
	parquetio "github.com/wdm0006/gapfill/pkg/io/parquetio"
	"github.com/wdm0006/gapfill/pkg/report"
)

var version = "0.1.0-dev"

type Config struct {
	Input struct {
		Path      string `json:"path" yaml:"path" toml:"path"`
		Type      string `json:"type" yaml:"type" toml:"type"` // csv|parquet (default csv)
		HasHeader bool   `json:"has_header" yaml:"has_header" toml:"has_header"`
		Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	} `json:"input" yaml:"input" toml:"input"`
	Target     string   `json:"target" yaml:"target" toml:"target"`
	Missing    int      `json:"missing" yaml:"missing" toml:"missing"`
	Seed       uint64   `json:"seed" yaml:"seed" toml:"seed"`
	Strategies []string `json:"strategies" yaml:"strategies" toml:"strategies"`
	K          int      `json:"k" yaml:"k" toml:"k"`
	M          int      `json:"m" yaml:"m" toml:"m"`
	Donors     int      `json:"donors" yaml:"donors" toml:"donors"`
	Alpha      float64  `json:"alpha" yaml:"alpha" toml:"alpha"`
	Reduction  string   `json:"reduction" yaml:"reduction" toml:"reduction"` // first|mean
	Parallel   bool     `json:"parallel" yaml:"parallel" toml:"parallel"`
	Output     struct {
		Report string `json:"report" yaml:"report" toml:"report"` // report JSON path
		Dir    string `json:"dir" yaml:"dir" toml:"dir"`          // imputed frame exports
		Format string `json:"format" yaml:"format" toml:"format"` // csv|parquet
	} `json:"output" yaml:"output" toml:"output"`
	Plot struct {
		Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
		Height  int  `json:"height" yaml:"height" toml:"height"`
	} `json:"plot" yaml:"plot" toml:"plot"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	return cfg, err
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to run config (JSON, YAML or TOML by extension)")
	input := flag.String("input", "", "Input dataset path (CSV or Parquet)")
	inputType := flag.String("input-type", "", "Input type: csv|parquet (default by extension)")
	header := flag.Bool("header", true, "CSV input has a header row")
	target := flag.String("target", "", "Target column to blank and impute")
	missing := flag.Int("missing", 0, "Number of target entries to blank")
	seed := flag.Uint64("seed", 1, "Seed for the missingness draw and stochastic strategies")
	strategies := flag.String("strategies", "", "Comma-separated strategy list (default: all)")
	k := flag.Int("k", 0, "Neighbor count for knn (default 5)")
	m := flag.Int("m", 0, "Replicate count for pmm/emb (default 5)")
	donors := flag.Int("donors", 0, "Donor pool size for pmm (default 5)")
	alpha := flag.Float64("alpha", 0, "Significance threshold for regression feature selection (default 0.05)")
	reduction := flag.String("reduction", "", "Multiple-imputation reduction: first|mean (default mean)")
	parallel := flag.Bool("parallel", false, "Run strategies concurrently")
	reportPath := flag.String("report", "", "Write the comparison report as JSON to this path")
	outDir := flag.String("out-dir", "", "Write each imputed frame into this directory")
	outFormat := flag.String("out-format", "csv", "Imputed frame export format: csv|parquet")
	plot := flag.Bool("plot", false, "Render density curves to stdout")
	plotHeight := flag.Int("plot-height", 10, "Density plot height in rows")
	flag.Parse()

	if *showVersion {
		fmt.Println("gapfill", version)
		return
	}

	var cfg Config
	if *configPath != "" {
		c, err := loadConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = c
	} else {
		cfg.Input.Path = *input
		cfg.Input.Type = *inputType
		cfg.Input.HasHeader = *header
		cfg.Target = *target
		cfg.Missing = *missing
		cfg.Seed = *seed
		if *strategies != "" {
			cfg.Strategies = strings.Split(*strategies, ",")
		}
		cfg.K = *k
		cfg.M = *m
		cfg.Donors = *donors
		cfg.Alpha = *alpha
		cfg.Reduction = *reduction
		cfg.Parallel = *parallel
		cfg.Output.Report = *reportPath
		cfg.Output.Dir = *outDir
		cfg.Output.Format = *outFormat
		cfg.Plot.Enabled = *plot
		cfg.Plot.Height = *plotHeight
	}
	if cfg.Input.Path == "" || cfg.Target == "" {
		fmt.Fprintln(os.Stderr, "need an input path and a target column. try --input <file> --target <col>, or --config <file>")
		os.Exit(2)
	}

	frame, err := loadFrame(cfg)
	if err != nil {
		fatal(err)
	}

	// the pre-injection column is the evaluation baseline
	vals, present, err := frame.NumericValues(cfg.Target)
	if err != nil {
		fatal(err)
	}
	original := make([]float64, 0, len(vals))
	for i, ok := range present {
		if ok {
			original = append(original, vals[i])
		}
	}

	injected, mask, err := g.Inject(frame, cfg.Target, cfg.Missing, cfg.Seed)
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "blanked %d of %d rows in %q (seed %d)\n", len(mask), frame.Rows(), cfg.Target, cfg.Seed)

	strats, err := buildStrategies(cfg)
	if err != nil {
		fatal(err)
	}
	runner, err := g.NewRunner(strats...)
	if err != nil {
		fatal(err)
	}
	if cfg.Parallel {
		runner.Parallel()
	}
	set, err := runner.Run(context.Background(), injected, cfg.Target)
	if err != nil {
		fatal(err)
	}

	rep, err := report.Compare(injected, cfg.Target, original, set)
	if err != nil {
		fatal(err)
	}

	printSummary(rep)
	if cfg.Plot.Enabled {
		printDensities(rep, cfg.Plot.Height)
	}
	if cfg.Output.Report != "" {
		b, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			fatal(err)
		}
		if err := os.WriteFile(cfg.Output.Report, b, 0o644); err != nil {
			fatal(err)
		}
	}
	if cfg.Output.Dir != "" {
		if err := exportFrames(cfg, set); err != nil {
			fatal(err)
		}
	}
}

func loadFrame(cfg Config) (*g.Frame, error) {
	typ := cfg.Input.Type
	if typ == "" {
		if strings.EqualFold(filepath.Ext(cfg.Input.Path), ".parquet") {
			typ = "parquet"
		} else {
			typ = "csv"
		}
	}
	switch typ {
	case "csv":
		delim := ','
		if cfg.Input.Delimiter != "" {
			delim = rune(cfg.Input.Delimiter[0])
		}
		rdr, file, err := csvio.Open(cfg.Input.Path, csvio.ReaderOptions{HasHeader: cfg.Input.HasHeader, Delimiter: delim, SampleRows: 100})
		if err != nil {
			return nil, err
		}
		defer func() { _ = file.Close() }()
		schema, _, err := rdr.InferSchema()
		if err != nil {
			return nil, err
		}
		return rdr.ReadAll(schema)
	case "parquet":
		rdr, err := parquetio.OpenReader(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = rdr.Close() }()
		return rdr.ReadAll()
	default:
		return nil, fmt.Errorf("unsupported input type %q", typ)
	}
}

func buildStrategies(cfg Config) ([]g.Strategy, error) {
	names := cfg.Strategies
	if len(names) == 0 {
		names = []string{"drop", "mean", "median", "regression", "knn", "pmm", "emb"}
	}
	red := g.Reduction(cfg.Reduction)
	out := make([]g.Strategy, 0, len(names))
	for _, n := range names {
		switch strings.TrimSpace(n) {
		case "drop":
			out = append(out, &impute.Drop{})
		case "mean":
			out = append(out, &impute.Mean{})
		case "median":
			out = append(out, &impute.Median{})
		case "regression":
			out = append(out, &impute.Regression{Alpha: cfg.Alpha})
		case "knn":
			out = append(out, &impute.KNN{K: cfg.K})
		case "pmm":
			out = append(out, &impute.PMM{M: cfg.M, Donors: cfg.Donors, Seed: cfg.Seed, Reduction: red})
		case "emb":
			out = append(out, &impute.EMB{M: cfg.M, Seed: cfg.Seed, Reduction: red})
		default:
			return nil, fmt.Errorf("unknown strategy %q", n)
		}
	}
	return out, nil
}

func printSummary(rep *report.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Series", "Count", "Mean", "Variance", "Note"})
	for _, s := range rep.Series {
		note := ""
		if s.Reduction != g.ReductionNone {
			note = "reduction=" + string(s.Reduction)
		}
		table.Append([]string{
			s.Name,
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.4f", s.Mean),
			fmt.Sprintf("%.4f", s.Variance),
			note,
		})
	}
	for name, reason := range rep.Failures {
		table.Append([]string{name, "-", "-", "-", "failed: " + reason})
	}
	table.Render()
}

func printDensities(rep *report.Report, height int) {
	if height <= 0 {
		height = 10
	}
	for _, s := range rep.Series {
		caption := fmt.Sprintf("%s (n=%d, x in [%.2f, %.2f])", s.Name, s.Count, rep.XMin, rep.XMax)
		fmt.Println(asciigraph.Plot(s.Density, asciigraph.Height(height), asciigraph.Caption(caption)))
		fmt.Println()
	}
}

func exportFrames(cfg Config, set *g.ResultSet) error {
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return err
	}
	for _, name := range set.Names() {
		res, ok := set.Result(name)
		if !ok {
			continue
		}
		switch cfg.Output.Format {
		case "", "csv":
			path := filepath.Join(cfg.Output.Dir, name+".csv")
			if err := csvio.WriteAll(path, res.Frame, csvio.WriterOptions{}); err != nil {
				return err
			}
		case "parquet":
			path := filepath.Join(cfg.Output.Dir, name+".parquet")
			if err := parquetio.WriteAll(path, res.Frame); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported output format %q", cfg.Output.Format)
		}
	}
	return nil
}

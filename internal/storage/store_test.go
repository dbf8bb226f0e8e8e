package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/study"
)

func sampleResult() *study.Result {
	return &study.Result{
		Study:     "depth-uniform",
		Reference: 35.70796326794897,
		Methods: map[string]convergence.Series{
			"midpoint":           {{N: 3, Error: 0.5}, {N: 5, Error: 1.0 / 3}},
			"interval-trapezoid": {{N: 3, Error: 1e-17}},
		},
		Orders: map[string]float64{"midpoint": 2.01},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.ForStudy("depth-uniform")
	runID, err := st.Save("quick", cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "depth-uniform_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, res, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "quick" || meta.Study != "depth-uniform" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Config == nil || meta.Config.Depth.Amp != 10 {
		t.Errorf("config not persisted: %+v", meta.Config)
	}
	if got := meta.Methods; len(got) != 2 || got[0] != "interval-trapezoid" {
		t.Errorf("expected sorted methods, got %v", got)
	}
	if res.Orders["midpoint"] != 2.01 {
		t.Errorf("expected order 2.01, got %f", res.Orders["midpoint"])
	}

	mid := res.Methods["midpoint"]
	if len(mid) != 2 || mid[1].N != 5 || mid[1].Error != 1.0/3 {
		t.Errorf("series did not round trip exactly: %v", mid)
	}
	if res.Methods["interval-trapezoid"][0].Error != 1e-17 {
		t.Errorf("tiny error lost precision: %v", res.Methods["interval-trapezoid"])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	cfg := config.DefaultConfig()
	first, err := st.Save("", cfg, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save("", cfg, sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("expected oldest first, got %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestNewExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	st, err := New("~/fieldcalc-data")
	if err != nil {
		t.Fatal(err)
	}
	if st.Dir() != filepath.Join(home, "fieldcalc-data") {
		t.Errorf("expected expansion under %s, got %s", home, st.Dir())
	}
}

func TestReadSeriesCSVErrors(t *testing.T) {
	if _, err := ReadSeriesCSV(strings.NewReader("method,n,error\nmid,x,1\n")); err == nil {
		t.Error("expected error for bad resolution")
	}
	if _, err := ReadSeriesCSV(strings.NewReader("method,n,error\nmid,3\n")); err == nil {
		t.Error("expected error for short record")
	}
}

func TestSaveRealStudy(t *testing.T) {
	cfg := config.GetPreset("taylor-green", "lecture")
	cfg.Resolution = config.ResolutionConfig{List: []int{9, 17}}
	res, err := study.NewRegistry().Run(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	st, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	id, err := st.Save("lecture", cfg, res)
	if err != nil {
		t.Fatal(err)
	}
	series, err := st.LoadSeries(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 4 || len(series["vorticity"]) != 2 {
		t.Errorf("unexpected series %v", series)
	}
}

func TestSectionRoundTrip(t *testing.T) {
	in := `{"y": [0, 1, 2], "z": [-2, -1, 0], "u": [[0, 0, 0], [0, 1, 2], [0, 0, 1]]}`
	c, err := DecodeSection(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	depth, err := c.DepthProfile()
	if err != nil {
		t.Fatal(err)
	}
	if depth[0] != 0 || depth[1] != 2 || depth[2] != 1 {
		t.Errorf("unexpected depth %v", depth)
	}

	var buf bytes.Buffer
	if err := EncodeSection(&buf, c); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "section.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	back, err := LoadSection(path)
	if err != nil {
		t.Fatal(err)
	}
	if !back.U.SameShape(c.U) || back.U.At(1, 2) != 2 {
		t.Error("cross-section changed on round trip")
	}
}

func TestDecodeSectionShape(t *testing.T) {
	tests := map[string]string{
		"rows":    `{"y": [0, 1], "z": [0, 1], "u": [[0, 0]]}`,
		"columns": `{"y": [0, 1], "z": [0, 1], "u": [[0, 0], [0]]}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSection(strings.NewReader(in))
			if !errors.Is(err, core.ErrShapeMismatch) {
				t.Errorf("expected shape mismatch, got %v", err)
			}
		})
	}
	if _, err := DecodeSection(strings.NewReader("{")); err == nil {
		t.Error("expected decode error")
	}
}

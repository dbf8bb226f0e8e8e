package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/study"
)

const (
	metadataFile = "metadata.json"
	errorsFile   = "errors.csv"
)

type Store struct {
	baseDir string
}

// New returns a store rooted at baseDir; a leading ~ is expanded.
func New(baseDir string) (*Store, error) {
	dir, err := homedir.Expand(baseDir)
	if err != nil {
		return nil, fmt.Errorf("data dir %q: %w", baseDir, err)
	}
	return &Store{baseDir: dir}, nil
}

func (s *Store) Dir() string { return s.baseDir }

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Study     string             `json:"study"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Elapsed   time.Duration      `json:"elapsed"`
	Reference float64            `json:"reference"`
	Methods   []string           `json:"methods"`
	Orders    map[string]float64 `json:"orders"`
	Config    *config.Config     `json:"config"`
}

func (s *Store) Save(preset string, cfg *config.Config, res *study.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", res.Study, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Study:     res.Study,
		Preset:    preset,
		Timestamp: now,
		Elapsed:   res.Elapsed,
		Reference: res.Reference,
		Methods:   res.MethodNames(),
		Orders:    res.Orders,
		Config:    cfg,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, errorsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSeriesCSV(csvFile, res.Methods); err != nil {
		return "", err
	}
	return runID, nil
}

// WriteSeriesCSV writes one method,n,error row per point, methods sorted.
func WriteSeriesCSV(w io.Writer, methods map[string]convergence.Series) error {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"method", "n", "error"}); err != nil {
		return err
	}
	for _, name := range names {
		for _, p := range methods[name] {
			row := []string{name, strconv.Itoa(p.N), strconv.FormatFloat(p.Error, 'g', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadSeriesCSV parses the output of WriteSeriesCSV.
func ReadSeriesCSV(r io.Reader) (map[string]convergence.Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make(map[string]convergence.Series)
	for i, rec := range records {
		if i == 0 {
			continue
		}
		n, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		e, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out[rec[0]] = append(out[rec[0]], convergence.Point{N: n, Error: e})
	}
	return out, nil
}

// List returns the saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (map[string]convergence.Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, errorsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSeriesCSV(f)
}

// LoadResult rebuilds the study result of a saved run.
func (s *Store) LoadResult(runID string) (*RunMetadata, *study.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &study.Result{
		Study:     meta.Study,
		Reference: meta.Reference,
		Methods:   series,
		Orders:    meta.Orders,
		Elapsed:   meta.Elapsed,
	}, nil
}

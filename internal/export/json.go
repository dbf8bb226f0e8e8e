package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fieldcalc/internal/config"
	"github.com/san-kum/fieldcalc/internal/convergence"
	"github.com/san-kum/fieldcalc/internal/study"
)

type ExportData struct {
	Study     string                        `json:"study"`
	Reference float64                       `json:"reference"`
	Orders    map[string]float64            `json:"orders"`
	Methods   map[string]convergence.Series `json:"methods"`
	Config    *config.Config                `json:"config,omitempty"`
}

// JSON writes res, and cfg when non-nil, as indented JSON.
func JSON(w io.Writer, cfg *config.Config, res *study.Result) error {
	data := ExportData{
		Study:     res.Study,
		Reference: res.Reference,
		Orders:    res.Orders,
		Methods:   res.Methods,
		Config:    cfg,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func JSONFile(path string, cfg *config.Config, res *study.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return JSON(file, cfg, res)
}

package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/san-kum/fieldcalc/internal/core"
	"github.com/san-kum/fieldcalc/internal/section"
)

// sectionFile is the on-disk layout of a measured cross-section; U[i][j] is
// the velocity at (Y[i], Z[j]).
type sectionFile struct {
	Y []float64   `json:"y"`
	Z []float64   `json:"z"`
	U [][]float64 `json:"u"`
}

// LoadSection reads a cross-section JSON file.
func LoadSection(path string) (*section.CrossSection, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeSection(f)
}

func DecodeSection(r io.Reader) (*section.CrossSection, error) {
	var sf sectionFile
	if err := json.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode cross-section: %w", err)
	}

	ny, nz := len(sf.Y), len(sf.Z)
	if len(sf.U) != ny {
		return nil, core.Errorf("DecodeSection", -1, core.ErrShapeMismatch, "u has %d rows for %d y nodes", len(sf.U), ny)
	}
	data := make([]float64, 0, ny*nz)
	for i, row := range sf.U {
		if len(row) != nz {
			return nil, core.Errorf("DecodeSection", i, core.ErrShapeMismatch, "u row has %d values for %d z nodes", len(row), nz)
		}
		data = append(data, row...)
	}
	u, err := core.NewField2D(ny, nz, data)
	if err != nil {
		return nil, err
	}
	return section.New(sf.Y, sf.Z, u)
}

// EncodeSection writes c in the layout LoadSection reads.
func EncodeSection(w io.Writer, c *section.CrossSection) error {
	ny, _ := c.U.Dims()
	sf := sectionFile{Y: c.Y.Points(), Z: c.Z.Points(), U: make([][]float64, ny)}
	for i := range sf.U {
		sf.U[i] = c.U.Row(i)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sf)
}

// Package viz renders study results, grids and fields for the terminal.
//
//   - [Report]: per-method error table plus an asciigraph plot of log errors
//   - [MeshPlot]: node layout of a 2-D grid drawn on a Braille [Canvas]
//   - [Heatmap]: shaded view of a scalar field; NaN (masked) nodes stay blank
package viz

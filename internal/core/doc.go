// Package core provides the shared value types and error kinds used by the
// grid, quadrature and stencil packages.
//
// The package defines:
//
//   - [Field2D]: a scalar field sampled on the nodes of a tensor-product grid
//   - [VectorField]: an ordered pair of Field2D components on the same grid
//   - [OpError]: an error carrying the failing operation and index
//   - [ParallelRows]: a row-partitioned parallel loop for per-node kernels
//
// # Immutability
//
// Every operation in this module borrows its inputs and returns freshly
// allocated outputs. Field2D exposes read accessors only; callers that need to
// build a field use [NewField2D] or [NewField2DFunc].
package core

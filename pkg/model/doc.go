// Package model defines the in-memory snapshot of a parametric design:
// named parameters plus the ordered timeline of modeling features, with
// their sketch profiles and B-rep surface data. The snapshot is read-only
// input to the exporter and carries coordinates in the host's native
// centimeters; conversion to millimeters happens in the analyzers.
package model

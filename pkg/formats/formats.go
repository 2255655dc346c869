// Package formats provides readers and writers for terrain file formats:
// the VXTM snapshot (raw and zstd-compressed) and Wavefront OBJ mesh export.
package formats

// Note: VXTM snapshot layout is implemented in terrain.go, file I/O in terrain_file.go
// Note: OBJ export is implemented in obj.go

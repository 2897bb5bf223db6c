// Package generate orchestrates the full pipeline: classify source content,
// assemble the requested document formats, and stage playlist bundles.
//
// A source directory that contains subdirectories is treated as a playlist;
// each subdirectory becomes one document in a .pro6plx bundle and one run of
// slides in a combined deck. A leaf directory or a single lyrics file
// produces standalone outputs. In playlist mode a broken unit is skipped and
// reported; only packaging failures abort the run.
package generate

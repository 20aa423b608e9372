// Package voxel converts unit-aligned polygon meshes into dense occupancy
// volumes.
//
// Conversion runs in two stages. The Normalizer discovers the mesh's native
// voxel pitch from its distinct vertex coordinates and rescales the mesh until
// one mesh unit equals one voxel on every axis. The filler then selects every
// face lying flat on a plane perpendicular to the scan axis, records each
// face's floored centroid as a crossing, and walks every scan line toggling an
// inside flag at each crossing (parity fill). Cells passed while inside are
// solid, so enclosed interior volume is filled, not just the surface.
//
// A mesh is expected to be built from grid-aligned quads ("blocky" meshes,
// as produced by block remeshers). Non-manifold or self-intersecting input
// gives undefined fill results rather than errors.
package voxel

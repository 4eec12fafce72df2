// Package solve turns correlated sync groups into a linear least-squares
// problem and writes the per-file offset and scale back onto the records.
//
// Each file maps its native clock onto the common timeline as
// event = offset + scale*t. The first file in store order is the reference:
// its offset is pinned to zero and, unless it carries a known scale, its scale
// to one. Every other file gets an offset variable; video files and files
// with a known scale also get a scale variable. Known scales add one
// constraint row each and every member pair of a sync adds one timing row.
//
// Solve uses the normal equations x = (AᵀA)⁻¹Aᵀy. Systems that leave a file
// unconstrained fail with an *UnsolvableError naming the files involved.
package solve

// Package resolver computes the build order of a package's prerequisites.
//
// Resolution walks the requirement graph depth-first in declared order. When
// a dependency that was already found is reached again, its earlier
// occurrence is dropped and it is re-appended, so that a package shared by
// several branches ends up ahead of every package that needs it. The found
// order is reversed at the end to give the build order.
//
// Key properties:
//   - No duplicates; every package precedes all packages that require it
//   - The %README% marker is skipped, unknown names fail the whole resolution
//   - Requirement cycles are detected and reported instead of recursing forever
//   - Deterministic for an unchanged catalog
package resolver

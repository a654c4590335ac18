// Package fold implements nested text folding over a rope buffer.
//
// A fold hides a block of lines behind a single header line. Folds carry
// four pieces of information: the Object being folded (an arbitrary
// selection, or a named text object such as a function or class), the
// Header fragment that stays visible and is used to unfold, the Target
// span that the fold was requested over, and the Block of lines actually
// hidden once the target has been normalized against its surrounding
// whitespace.
//
// Folds are stored as two parallel, independently sorted slices —
// StartFoldPoint entries ordered by target start, EndFoldPoint entries
// ordered by target end — cross-linked by index so a fold's start and end
// can each be found by binary search on whichever axis a query needs.
// Container is the fold manager; it owns both slices and keeps them
// synchronized across inserts, removals, and the super-fold hierarchy
// rebuild that follows every mutation.
package fold

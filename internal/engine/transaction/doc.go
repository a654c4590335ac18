// Package transaction implements the ChangeSet and Transaction types: the
// deterministic edit recipe that transforms one rope into another, and the
// bundling of a ChangeSet with an optional post-application Selection.
//
// A ChangeSet is a sequence of retain/delete/insert operations, built with
// Builder and applied with ChangeSet.Apply. Two ChangeSets compose with
// Compose such that (A.Compose(B)).Apply(r) == B.Apply(A.Apply(r)), and
// every ChangeSet has an Invert relative to the rope it was built against
// such that Invert(A, r).Apply(A.Apply(r)) == r.
package transaction

import "errors"

// ErrLengthMismatch is returned when a ChangeSet is applied to, composed
// with, or inverted against a document whose length does not match the
// length the ChangeSet was built to expect.
var ErrLengthMismatch = errors.New("transaction: length mismatch")

// ErrOverlappingEdits is returned by ChangeByRanges when the edits
// produced by its callback are not sorted and non-overlapping.
var ErrOverlappingEdits = errors.New("transaction: overlapping edits")

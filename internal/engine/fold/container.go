package fold

import (
	"sort"

	"github.com/velum-editor/velum/internal/engine/rope"
	"github.com/velum-editor/velum/internal/engine/selection"
)

// Points is a pair of fold points describing one requested fold, before it
// has been inserted into a Container.
type Points struct {
	Start StartFoldPoint
	End   EndFoldPoint
}

// NewPoints builds the start/end fold points for a fold over the inclusive
// target span [targetStart, targetEnd], with the given header starting at
// headerStart.
func NewPoints(text rope.Rope, object Object, headerStart, targetStart, targetEnd CharOffset) Points {
	return Points{
		Start: newStartFoldPoint(text, object, headerStart, targetStart),
		End:   newEndFoldPoint(text, targetEnd),
	}
}

// Container owns every fold in a document. Folds can nest; Container keeps
// track of which folds are enclosed by which via each start point's
// super-link, recomputed after every mutation.
type Container struct {
	startPoints []StartFoldPoint
	endPoints   []EndFoldPoint
}

// New returns an empty Container.
func New() *Container {
	return &Container{}
}

// FromPoints builds a Container from an initial batch of fold points.
func FromPoints(text rope.Rope, points []Points) *Container {
	c := New()
	c.Add(text, points)
	return c
}

// IsEmpty reports whether the container holds no folds.
func (c *Container) IsEmpty() bool {
	return len(c.startPoints) == 0
}

// Len returns the number of folds in the container.
func (c *Container) Len() int {
	return len(c.startPoints)
}

// Clear removes every fold.
func (c *Container) Clear() {
	c.startPoints = nil
	c.endPoints = nil
}

// StartPoints returns the start points in target order. Callers must treat
// the returned slice as read-only.
func (c *Container) StartPoints() []StartFoldPoint {
	return c.startPoints
}

// Fold returns the fold whose start point is at startIdx.
func (c *Container) Fold(startIdx int) Fold {
	return c.foldAtStart(startIdx)
}

func (c *Container) foldAtStart(i int) Fold {
	sfp := c.startPoints[i]
	return Fold{Start: sfp, End: c.endPoints[sfp.link]}
}

func (c *Container) foldAtEnd(i int) Fold {
	efp := c.endPoints[i]
	return Fold{Start: c.startPoints[efp.link], End: efp}
}

// Add inserts new folds, normalizing and re-linking the super-fold
// hierarchy afterward.
func (c *Container) Add(text rope.Rope, points []Points) {
	for _, p := range points {
		sfp, efp := p.Start, p.End
		idx := len(c.startPoints)
		sfp.link = idx
		efp.link = idx
		c.startPoints = append(c.startPoints, sfp)
		c.endPoints = append(c.endPoints, efp)
	}

	c.sortStartPoints()

	deletables := c.normalize(text)
	c.delete(deletables)

	c.sortEndPoints()
	c.setSuperLinks()
}

// Replace inserts new folds, first removing any existing fold that overlaps
// one of them. Each new fold's target end is extended to cover the last
// (by target order) removed fold it overlapped, so replacing a selection
// that straddled several folds doesn't shrink what ends up hidden.
func (c *Container) Replace(text rope.Rope, points []Points) {
	overlapsLines := func(f1, f2 Fold) bool {
		r1s, _ := text.CharToLine(f1.Start.Header)
		r1e, _ := text.CharToLine(f1.End.Target)
		r2s, _ := text.CharToLine(f2.Start.Header)
		r2e, _ := text.CharToLine(f2.End.Target)
		start := maxU32(r1s, r2s)
		end := minU32(r1e, r2e)
		return start <= end
	}

	for i := range points {
		replacement := Fold{Start: points[i].Start, End: points[i].End}

		var overlappables []int
		for j, sfp := range c.startPoints {
			f := Fold{Start: sfp, End: c.endPoints[sfp.link]}
			if overlapsLines(f, replacement) {
				overlappables = append(overlappables, j)
			}
		}

		if len(overlappables) > 0 {
			last := c.foldAtStart(overlappables[len(overlappables)-1])
			if last.End.Target > points[i].End.Target {
				points[i].End.Target = last.End.Target
			}
		}

		c.Remove(text, overlappables)
	}

	c.Add(text, points)
}

// Remove deletes the folds at the given start indices (sorted, unique),
// then re-normalizes and re-links what remains.
func (c *Container) Remove(text rope.Rope, startIndices []int) {
	c.delete(startIndices)

	removables := c.normalize(text)
	c.delete(removables)

	c.sortEndPoints()
	c.setSuperLinks()
}

// RemoveBySelection removes every fold whose block contains a line touched
// by sel.
func (c *Container) RemoveBySelection(text rope.Rope, sel selection.Selection) {
	var lines []uint32
	for _, r := range sel.Ranges() {
		start, end, err := r.LineRange(text)
		if err != nil {
			continue
		}
		lines = append(lines, start)
		if start != end {
			lines = append(lines, end)
		}
	}

	var removables []int
	for _, line := range lines {
		endIdx := sort.Search(len(c.endPoints), func(i int) bool {
			return c.endPoints[i].Line >= line
		})
		if endIdx >= len(c.endPoints) {
			continue
		}

		top := c.SuperestFold(c.foldAtEnd(endIdx))
		start := top.StartIdx()
		end := start + sort.Search(len(c.startPoints)-start, func(i int) bool {
			return c.startPoints[start+i].Line > line
		})

		for k := start; k < end; k++ {
			f := c.foldAtStart(k)
			if f.Start.Line <= line && line <= f.End.Line {
				removables = append(removables, k)
			}
		}
	}

	sort.Ints(removables)
	removables = dedupInts(removables)

	c.Remove(text, removables)
}

// SuperFold returns the fold that immediately encloses f, if any.
func (c *Container) SuperFold(f Fold) (Fold, bool) {
	if f.Start.superLink == noSuperLink {
		return Fold{}, false
	}
	return c.foldAtStart(f.Start.superLink), true
}

// SuperestFold walks up the super-fold chain and returns the outermost
// enclosing fold, or f itself if f has no enclosing fold.
func (c *Container) SuperestFold(f Fold) Fold {
	for {
		sup, ok := c.SuperFold(f)
		if !ok {
			return f
		}
		f = sup
	}
}

// FoldContaining returns the innermost fold whose getRange contains idx.
func (c *Container) FoldContaining(idx CharOffset, getRange func(Fold) (CharOffset, CharOffset)) (Fold, bool) {
	endIdx := sort.Search(len(c.endPoints), func(i int) bool {
		_, end := getRange(c.foldAtEnd(i))
		return end >= idx
	})
	if endIdx >= len(c.endPoints) {
		return Fold{}, false
	}

	f := c.foldAtEnd(endIdx)
	for {
		start, end := getRange(f)
		if start <= idx && idx <= end {
			return f, true
		}
		sup, ok := c.SuperFold(f)
		if !ok {
			return Fold{}, false
		}
		f = sup
	}
}

// SuperestFoldContaining returns the outermost fold whose getRange contains idx.
func (c *Container) SuperestFoldContaining(idx CharOffset, getRange func(Fold) (CharOffset, CharOffset)) (Fold, bool) {
	f, ok := c.FoldContaining(idx, getRange)
	if !ok {
		return Fold{}, false
	}
	return c.SuperestFold(f), true
}

// ThrowRangeOutOfFolds moves r's endpoints out of any fold they land in:
// a From() inside a fold's block snaps to the fold's header start, and a
// To() inside a fold's block snaps to the fold's header end (or target
// start, whichever comes first), so a selection never straddles hidden
// text invisibly.
func (c *Container) ThrowRangeOutOfFolds(text rope.Rope, r selection.Range) selection.Range {
	block := func(f Fold) (CharOffset, CharOffset) { return f.Start.Char, f.End.Char }

	from := r.From()
	if f, ok := c.SuperestFoldContaining(r.From(), block); ok {
		from = f.Start.Header
	}

	toTarget := r.To()
	if !r.IsEmpty() {
		if b, err := text.CharToByte(toTarget); err == nil {
			if ch, err := text.ByteToChar(text.PrevGraphemeBoundary(b)); err == nil {
				toTarget = ch
			}
		}
	}

	to := r.To()
	if f, ok := c.SuperestFoldContaining(toTarget, block); ok {
		if f.Start.Char > f.Start.Target {
			to = f.Start.Target
		} else {
			to = f.Start.Char
		}
	}

	if r.IsBackward() {
		return r.WithAnchorHead(to, from)
	}
	return r.WithAnchorHead(from, to)
}

func (c *Container) sortStartPoints() {
	sort.SliceStable(c.startPoints, func(i, j int) bool {
		sfp1, sfp2 := &c.startPoints[i], &c.startPoints[j]
		if sfp1.Target != sfp2.Target {
			return sfp1.Target < sfp2.Target
		}
		efp1, efp2 := &c.endPoints[sfp1.link], &c.endPoints[sfp2.link]
		if efp1.Target != efp2.Target {
			return efp1.Target > efp2.Target
		}
		return sfp1.Object.Compare(sfp2.Object) < 0
	})
	for i := range c.startPoints {
		c.endPoints[c.startPoints[i].link].link = i
	}
}

func (c *Container) sortEndPoints() {
	sort.SliceStable(c.endPoints, func(i, j int) bool {
		e1, e2 := &c.endPoints[i], &c.endPoints[j]
		if e1.Target != e2.Target {
			return e1.Target < e2.Target
		}
		return e1.link > e2.link
	})
	for i := range c.endPoints {
		c.startPoints[c.endPoints[i].link].link = i
	}
}

// normalize recomputes each fold's block and returns the start indices of
// folds that must be dropped: folds whose block is empty/inverted after
// normalization, and folds that partially (rather than fully) overlap a
// later fold in target order.
//
// The overlap check compares the current fold's [header, target-end] span
// against each later fold's own span; neither spanning the other means the
// two folds cross without one containing the other, which is forbidden.
func (c *Container) normalize(text rope.Rope) []int {
	rangeOf := func(f Fold) (CharOffset, CharOffset) {
		return f.Start.Header, f.End.Target
	}
	overlap := func(r1s, r1e, r2s, r2e CharOffset) bool {
		return maxCO(r1s, r2s) <= minCO(r1e, r2e)
	}
	span := func(r1s, r1e, r2s, r2e CharOffset) bool {
		return maxCO(r1s, r2s) == r2s && minCO(r1e, r2e) == r2e
	}

	var removables []int
	for i := 0; i < c.Len(); i++ {
		fold := c.foldAtStart(i)

		init := fold.Start.blockLine(text)
		blockStart := init
		for j := i - 1; j >= 0; j-- {
			prev := c.foldAtStart(j)
			if prev.End.Line != init-1 {
				break
			}
			if !containsInt(removables, j) {
				blockStart = init + 1
				break
			}
		}

		overlapsNext := false
		r1s, r1e := rangeOf(fold)
		for j := i + 1; j < c.Len(); j++ {
			next := c.foldAtStart(j)
			r2s, r2e := rangeOf(next)
			if !overlap(r1s, r1e, r2s, r2e) {
				break
			}
			if !span(r1s, r1e, r2s, r2e) && !span(r2s, r2e, r1s, r1e) {
				overlapsNext = true
				break
			}
		}
		if overlapsNext {
			removables = append(removables, i)
			continue
		}

		blockEnd := fold.End.blockLine(text)
		if blockStart > blockEnd {
			removables = append(removables, i)
			continue
		}

		c.startPoints[i].setBlock(text, blockStart)
		c.endPoints[c.startPoints[i].link].setBlock(text, blockEnd)
	}

	return removables
}

// setSuperLinks walks folds in start order, tracking which folds enclose
// which via a recursive range split: a fold's nested range is everything
// between its own start and its end point, and every fold's super-link
// points at the innermost fold whose nested range contains it.
func (c *Container) setSuperLinks() {
	if c.IsEmpty() {
		return
	}
	c.setSuperLinksImpl(0, c.Len()-1, noSuperLink, 0)
}

func (c *Container) setSuperLinksImpl(start, end, superLink, nesting int) {
	idx := start
	for idx <= end {
		c.startPoints[idx].superLink = superLink
		if idx == end {
			return
		}

		fold := c.foldAtStart(idx)
		nestedStart := fold.StartIdx() + 1
		nestedEnd := minInt(end, fold.EndIdx()+nesting)

		if nestedStart > nestedEnd {
			idx++
		} else {
			c.setSuperLinksImpl(nestedStart, nestedEnd, idx, nesting+1)
			idx = nestedEnd + 1
		}
	}
}

// delete removes the folds at startIndices (sorted, unique), fixing up
// every remaining cross-link that pointed past a removed slot.
func (c *Container) delete(startIndices []int) {
	for i := len(startIndices) - 1; i >= 0; i-- {
		startIdx := startIndices[i]
		endIdx := c.startPoints[startIdx].link

		c.startPoints = append(c.startPoints[:startIdx], c.startPoints[startIdx+1:]...)
		for j := startIdx; j < len(c.startPoints); j++ {
			c.endPoints[c.startPoints[j].link].link--
		}

		c.endPoints = append(c.endPoints[:endIdx], c.endPoints[endIdx+1:]...)
		for j := endIdx; j < len(c.endPoints); j++ {
			c.startPoints[c.endPoints[j].link].link--
		}
	}
}

func maxCO(a, b CharOffset) CharOffset {
	if a > b {
		return a
	}
	return b
}

func minCO(a, b CharOffset) CharOffset {
	if a < b {
		return a
	}
	return b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func dedupInts(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

package sat

import (
	"container/heap"

	"github.com/CurtisFenner/cnf-solver/packed"
)

// NewStructuralHeuristic returns the §4.3(a) fallback heuristic: scan any
// non-satisfied bucket, pick any clause in it, and within that clause
// return a free negative literal (polarity false) if the clause has at
// most one free positive literal and at least one free negative one,
// otherwise a free positive literal (polarity true).
func NewStructuralHeuristic() Heuristic { return structuralHeuristic{} }

type structuralHeuristic struct{}

func (structuralHeuristic) observe([]clauseLit) {}
func (structuralHeuristic) decay()              {}

func (structuralHeuristic) pick(db *Database) (packed.Var, bool, bool) {
	for s := clauseStatus(0); s < numStatuses; s++ {
		if s == statusSatisfied || s == statusContradiction {
			continue
		}
		id, ok := db.buckets[s].any()
		if !ok {
			continue
		}
		c := db.clauses[id]
		var freePos, freeNeg []packed.Var
		for _, cl := range c.lits {
			v := litVar(cl)
			if db.terms[v].value != unassigned {
				continue
			}
			if litPositive(cl) {
				freePos = append(freePos, v)
			} else {
				freeNeg = append(freeNeg, v)
			}
		}
		if len(freePos) <= 1 && len(freeNeg) >= 1 {
			return freeNeg[0], false, true
		}
		if len(freePos) >= 1 {
			return freePos[0], true, true
		}
	}
	return 0, false, false
}

// vsidsHeuristic implements the VSIDS-like priority heuristic of
// §4.3(b): every literal accumulates a score each time it appears in a
// newly added clause (input or learned), scores decay by a constant
// factor after each conflict, and pick returns the highest-scoring
// literal whose variable is still free.
//
// Decay is by bump inflation, not per-variable lazy rescaling: rather
// than aging each score down to "now" on access (which would leave
// scores last touched at different generations overestimated by
// different factors, so the heap's stored order would no longer match
// current scores), decay grows the bump added on the next observe
// instead. Every stored score is always exactly "sum of bumps applied
// while it was being observed", all in the same frame, so scores
// compare directly and the heap order is never stale — satisfying
// §4.3(b)'s invariant that pick never skips a higher-scoring free
// variable. bump is rescaled back down (along with every stored score)
// once it grows too large for float64 precision, the standard guard for
// this technique.
type vsidsHeuristic struct {
	decayFactor float64
	bump        float64

	pos, neg []float64
	seen     map[packed.Var]bool

	h vsidsHeap
}

const vsidsRescaleThreshold = 1e100

func newVSIDS() *vsidsHeuristic {
	return &vsidsHeuristic{
		decayFactor: 0.93,
		bump:        1,
		seen:        make(map[packed.Var]bool),
		h:           vsidsHeap{index: make(map[packed.Var]int)},
	}
}

func (vh *vsidsHeuristic) ensure(v packed.Var) {
	for packed.Var(len(vh.pos)) <= v {
		vh.pos = append(vh.pos, 0)
		vh.neg = append(vh.neg, 0)
	}
	if !vh.seen[v] {
		vh.seen[v] = true
		heap.Push(&vh.h, vsidsItem{v: v, score: 0})
	}
}

func (vh *vsidsHeuristic) observe(lits []clauseLit) {
	for _, cl := range lits {
		v := litVar(cl)
		vh.ensure(v)
		if litPositive(cl) {
			vh.pos[v] += vh.bump
		} else {
			vh.neg[v] += vh.bump
		}
		vh.h.update(v, max(vh.pos[v], vh.neg[v]))
		if vh.pos[v] > vsidsRescaleThreshold || vh.neg[v] > vsidsRescaleThreshold {
			vh.rescale()
		}
	}
}

// rescale divides every stored score and the bump itself by the same
// factor, preserving their relative order (and hence the heap's) while
// keeping the numbers within float64's useful range.
func (vh *vsidsHeuristic) rescale() {
	for v := range vh.pos {
		vh.pos[v] /= vsidsRescaleThreshold
		vh.neg[v] /= vsidsRescaleThreshold
		vh.h.update(packed.Var(v), max(vh.pos[v], vh.neg[v]))
	}
	vh.bump /= vsidsRescaleThreshold
}

// decay grows the bump applied to the next observed literals, which is
// equivalent to aging every already-stored score down by decayFactor
// without touching the heap: a later, larger bump outweighs an earlier,
// smaller one by exactly the same ratio a per-access rescale would have
// produced, but every variable stays in the same frame at all times.
func (vh *vsidsHeuristic) decay() {
	vh.bump /= vh.decayFactor
}

func (vh *vsidsHeuristic) pick(db *Database) (packed.Var, bool, bool) {
	var popped []vsidsItem
	result := packed.Var(-1)

	for vh.h.Len() > 0 {
		item := heap.Pop(&vh.h).(vsidsItem)
		popped = append(popped, item)
		if db.terms[item.v].value == unassigned {
			result = item.v
			break
		}
	}
	for _, it := range popped {
		heap.Push(&vh.h, it)
	}
	if result < 0 {
		return 0, false, false
	}
	return result, vh.pos[result] >= vh.neg[result], true
}

type vsidsItem struct {
	v     packed.Var
	score float64
}

// vsidsHeap is a max-heap of variables ordered by activity score, with an
// index map so a variable's entry can be found and fixed in O(log n) when
// its score changes (container/heap.Fix) instead of requiring a full
// rebuild — the same shape as cespare-saturday's litHeap.
type vsidsHeap struct {
	items []vsidsItem
	index map[packed.Var]int
}

func (h vsidsHeap) Len() int { return len(h.items) }

func (h vsidsHeap) Less(i, j int) bool { return h.items[i].score > h.items[j].score }

func (h vsidsHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].v] = i
	h.index[h.items[j].v] = j
}

func (h *vsidsHeap) Push(x interface{}) {
	it := x.(vsidsItem)
	h.index[it.v] = len(h.items)
	h.items = append(h.items, it)
}

func (h *vsidsHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	delete(h.index, it.v)
	return it
}

func (h *vsidsHeap) update(v packed.Var, score float64) {
	i, ok := h.index[v]
	if !ok {
		heap.Push(h, vsidsItem{v: v, score: score})
		return
	}
	h.items[i].score = score
	heap.Fix(h, i)
}

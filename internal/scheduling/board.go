package scheduling

import (
	"fmt"
	"sort"
)

// RankAssignment is one (appointment, rank) pair to be persisted.
type RankAssignment struct {
	ID   string
	Rank int
}

type boardEntry struct {
	id   string
	rank int
}

// Board is an in-memory view of the status columns, each an ordered list of
// appointment ids. A board operates only on what it was given; callers own
// persistence of the returned rank assignments. Not safe for concurrent
// use, which matches the one-board-per-request execution model.
type Board struct {
	columns map[Status][]boardEntry
}

// NewBoard builds a board from templates, grouping by status and ordering
// each column by ascending rank (ties broken by id for determinism).
func NewBoard(templates []Template) *Board {
	b := &Board{columns: make(map[Status][]boardEntry)}
	for _, tpl := range templates {
		b.columns[tpl.Status] = append(b.columns[tpl.Status], boardEntry{id: tpl.ID, rank: tpl.Rank})
	}
	for status := range b.columns {
		col := b.columns[status]
		sort.Slice(col, func(i, j int) bool {
			if col[i].rank != col[j].rank {
				return col[i].rank < col[j].rank
			}
			return col[i].id < col[j].id
		})
	}
	return b
}

// Column returns the ordered appointment ids in a column.
func (b *Board) Column(status Status) []string {
	col := b.columns[status]
	ids := make([]string, len(col))
	for i, e := range col {
		ids[i] = e.id
	}
	return ids
}

// Insert appends id at the end of the column with rank max+1 (0 when the
// column is empty) and returns the assignment to persist.
func (b *Board) Insert(id string, status Status) RankAssignment {
	rank := 0
	if col := b.columns[status]; len(col) > 0 {
		rank = maxRank(col) + 1
	}
	b.columns[status] = append(b.columns[status], boardEntry{id: id, rank: rank})
	return RankAssignment{ID: id, Rank: rank}
}

// MoveWithinColumn removes id from fromIndex in its column and reinserts it
// at toIndex, then renumbers the whole column 0..n-1. The returned
// assignments cover every item in the column and should be persisted as one
// batch.
func (b *Board) MoveWithinColumn(id string, fromIndex, toIndex int) ([]RankAssignment, error) {
	status, col, err := b.locate(id)
	if err != nil {
		return nil, err
	}
	if fromIndex < 0 || fromIndex >= len(col) || col[fromIndex].id != id {
		return nil, fmt.Errorf("appointment %s is not at index %d in column %s", id, fromIndex, status)
	}

	moved := col[fromIndex]
	rest := append(append([]boardEntry{}, col[:fromIndex]...), col[fromIndex+1:]...)
	toIndex = clamp(toIndex, 0, len(rest))
	col = append(rest[:toIndex:toIndex], append([]boardEntry{moved}, rest[toIndex:]...)...)

	b.columns[status] = renumber(col)
	return assignments(b.columns[status]), nil
}

// MoveAcrossColumns removes id from fromStatus and places it in toStatus.
// With a nil targetIndex the item is appended with rank max+1 and the
// returned assignments contain only the moved item; otherwise the item is
// inserted at the clamped index and the whole target column is renumbered.
// The source column is only trimmed in memory; persisting the move is two
// independent writes (status+rank, then the batch) by design — on a partial
// failure callers refetch the full board instead of patching.
func (b *Board) MoveAcrossColumns(id string, fromStatus, toStatus Status, targetIndex *int) ([]RankAssignment, error) {
	if !ValidStatus(toStatus) {
		return nil, fmt.Errorf("unknown status %q", toStatus)
	}
	col := b.columns[fromStatus]
	pos := -1
	for i, e := range col {
		if e.id == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, fmt.Errorf("appointment %s not found in column %s", id, fromStatus)
	}
	b.columns[fromStatus] = append(col[:pos:pos], col[pos+1:]...)

	if targetIndex == nil {
		return []RankAssignment{b.Insert(id, toStatus)}, nil
	}

	target := b.columns[toStatus]
	idx := clamp(*targetIndex, 0, len(target))
	target = append(target[:idx:idx], append([]boardEntry{{id: id}}, target[idx:]...)...)
	b.columns[toStatus] = renumber(target)
	return assignments(b.columns[toStatus]), nil
}

// Renumber reorders a full column by the client-supplied ranks and assigns
// contiguous ranks 0..n-1 by position, so gappy or duplicated input ranks
// still produce a contiguous column.
func Renumber(orders []RankAssignment) []RankAssignment {
	out := append([]RankAssignment{}, orders...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	for i := range out {
		out[i].Rank = i
	}
	return out
}

func (b *Board) locate(id string) (Status, []boardEntry, error) {
	for status, col := range b.columns {
		for _, e := range col {
			if e.id == id {
				return status, col, nil
			}
		}
	}
	return "", nil, fmt.Errorf("appointment %s not found on board", id)
}

func renumber(col []boardEntry) []boardEntry {
	for i := range col {
		col[i].rank = i
	}
	return col
}

func assignments(col []boardEntry) []RankAssignment {
	out := make([]RankAssignment, len(col))
	for i, e := range col {
		out[i] = RankAssignment{ID: e.id, Rank: e.rank}
	}
	return out
}

func maxRank(col []boardEntry) int {
	max := 0
	for _, e := range col {
		if e.rank > max {
			max = e.rank
		}
	}
	return max
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

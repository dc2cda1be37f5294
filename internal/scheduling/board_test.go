package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardTemplate(id string, status Status, rank int) Template {
	return Template{
		ID:        id,
		Status:    status,
		Rank:      rank,
		VisitTime: time.Date(2025, time.March, 10, 9, 0, 0, 0, jakarta),
	}
}

func assertContiguous(t *testing.T, got []RankAssignment) {
	t.Helper()
	seen := make(map[int]bool, len(got))
	for _, a := range got {
		assert.GreaterOrEqual(t, a.Rank, 0)
		assert.Less(t, a.Rank, len(got))
		assert.False(t, seen[a.Rank], "duplicate rank %d", a.Rank)
		seen[a.Rank] = true
	}
}

func TestInsert(t *testing.T) {
	b := NewBoard(nil)
	first := b.Insert("a", StatusScheduled)
	assert.Equal(t, RankAssignment{ID: "a", Rank: 0}, first)

	second := b.Insert("b", StatusScheduled)
	assert.Equal(t, RankAssignment{ID: "b", Rank: 1}, second)
	assert.Equal(t, []string{"a", "b"}, b.Column(StatusScheduled))
}

func TestInsertAfterGappyRanks(t *testing.T) {
	// Persisted ranks may carry gaps after a cross-column removal; append
	// still uses max+1.
	b := NewBoard([]Template{
		boardTemplate("a", StatusScheduled, 0),
		boardTemplate("b", StatusScheduled, 3),
	})
	got := b.Insert("c", StatusScheduled)
	assert.Equal(t, RankAssignment{ID: "c", Rank: 4}, got)
}

func TestMoveWithinColumn(t *testing.T) {
	tests := []struct {
		name      string
		fromIndex int
		toIndex   int
		wantOrder []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a"}},
		{"backward", 2, 0, []string{"c", "a", "b"}},
		{"same position", 1, 1, []string{"a", "b", "c"}},
		{"clamped high", 0, 99, []string{"b", "c", "a"}},
		{"clamped low", 2, -5, []string{"c", "a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard([]Template{
				boardTemplate("a", StatusScheduled, 0),
				boardTemplate("b", StatusScheduled, 1),
				boardTemplate("c", StatusScheduled, 2),
			})
			id := b.Column(StatusScheduled)[tt.fromIndex]

			got, err := b.MoveWithinColumn(id, tt.fromIndex, tt.toIndex)
			require.NoError(t, err)
			assert.Len(t, got, 3, "whole column is renumbered and returned")
			assertContiguous(t, got)
			assert.Equal(t, tt.wantOrder, b.Column(StatusScheduled))
		})
	}
}

func TestMoveWithinColumnErrors(t *testing.T) {
	b := NewBoard([]Template{
		boardTemplate("a", StatusScheduled, 0),
		boardTemplate("b", StatusScheduled, 1),
	})

	_, err := b.MoveWithinColumn("missing", 0, 1)
	assert.Error(t, err)

	_, err = b.MoveWithinColumn("a", 1, 0)
	assert.Error(t, err, "fromIndex must actually hold the appointment")
}

func TestMoveAcrossColumnsAppend(t *testing.T) {
	b := NewBoard([]Template{
		boardTemplate("a", StatusScheduled, 0),
		boardTemplate("b", StatusScheduled, 1),
		boardTemplate("x", StatusCompleted, 0),
	})

	got, err := b.MoveAcrossColumns("a", StatusScheduled, StatusCompleted, nil)
	require.NoError(t, err)
	require.Len(t, got, 1, "append touches only the moved item")
	assert.Equal(t, RankAssignment{ID: "a", Rank: 1}, got[0])

	assert.Equal(t, []string{"b"}, b.Column(StatusScheduled))
	assert.Equal(t, []string{"x", "a"}, b.Column(StatusCompleted))
}

func TestMoveAcrossColumnsToEmptyColumn(t *testing.T) {
	b := NewBoard([]Template{boardTemplate("a", StatusScheduled, 0)})

	got, err := b.MoveAcrossColumns("a", StatusScheduled, StatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, []RankAssignment{{ID: "a", Rank: 0}}, got)
}

func TestMoveAcrossColumnsWithTargetIndex(t *testing.T) {
	b := NewBoard([]Template{
		boardTemplate("a", StatusScheduled, 0),
		boardTemplate("x", StatusCompleted, 0),
		boardTemplate("y", StatusCompleted, 1),
	})

	idx := 1
	got, err := b.MoveAcrossColumns("a", StatusScheduled, StatusCompleted, &idx)
	require.NoError(t, err)
	assert.Len(t, got, 3, "whole target column is renumbered")
	assertContiguous(t, got)
	assert.Equal(t, []string{"x", "a", "y"}, b.Column(StatusCompleted))
}

func TestMoveAcrossColumnsErrors(t *testing.T) {
	b := NewBoard([]Template{boardTemplate("a", StatusScheduled, 0)})

	_, err := b.MoveAcrossColumns("a", StatusCompleted, StatusScheduled, nil)
	assert.Error(t, err, "item is not in the claimed source column")

	_, err = b.MoveAcrossColumns("a", StatusScheduled, Status("Archived"), nil)
	assert.Error(t, err)
}

func TestRenumber(t *testing.T) {
	got := Renumber([]RankAssignment{
		{ID: "c", Rank: 7},
		{ID: "a", Rank: 0},
		{ID: "b", Rank: 3},
	})
	assert.Equal(t, []RankAssignment{{ID: "a", Rank: 0}, {ID: "b", Rank: 1}, {ID: "c", Rank: 2}}, got)
	assertContiguous(t, got)
}

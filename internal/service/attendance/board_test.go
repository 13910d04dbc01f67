package attendance

import (
	"sync"
	"testing"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyConfirmation(t *testing.T) {
	a := &reservation.Reservation{ID: 1, DocumentID: "100", Confirmation: reservation.Pending}
	b := &reservation.Reservation{ID: 2, DocumentID: "200", Confirmation: reservation.Attended}
	c := &reservation.Reservation{ID: 3, DocumentID: "300", Confirmation: reservation.Absent}
	list := []*reservation.Reservation{a, b, c}

	out := ApplyConfirmation(list, 2, reservation.Absent)

	require.Len(t, out, 3)
	assert.Same(t, a, out[0])
	assert.Same(t, c, out[2])
	assert.NotSame(t, b, out[1])
	assert.Equal(t, reservation.Absent, out[1].Confirmation)
	assert.Equal(t, "200", out[1].DocumentID)

	// input untouched
	assert.Same(t, b, list[1])
	assert.Equal(t, reservation.Attended, b.Confirmation)
}

func TestApplyConfirmation_UnknownID(t *testing.T) {
	a := &reservation.Reservation{ID: 1}
	list := []*reservation.Reservation{a}

	out := ApplyConfirmation(list, 99, reservation.Attended)

	require.Len(t, out, 1)
	assert.Same(t, a, out[0])
	assert.Equal(t, reservation.Pending, a.Confirmation)
}

func TestBoard_ReplaceAndPatch(t *testing.T) {
	board := NewBoard()
	loadedAt := time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC)

	before := board.Replace(7, []reservation.Reservation{
		{ID: 1, Confirmation: reservation.Pending},
		{ID: 2, Confirmation: reservation.Pending},
	}, loadedAt)

	after, ok := board.Patch(7, 1, reservation.Attended)
	require.True(t, ok)

	assert.Equal(t, reservation.Attended, after.Reservations[0].Confirmation)
	assert.Same(t, before.Reservations[1], after.Reservations[1])
	assert.Equal(t, loadedAt, after.LoadedAt)

	// A snapshot handed out earlier keeps its contents.
	assert.Equal(t, reservation.Pending, before.Reservations[0].Confirmation)

	current, ok := board.Get(7)
	require.True(t, ok)
	assert.Same(t, after.Reservations[0], current.Reservations[0])
}

func TestBoard_PatchMisses(t *testing.T) {
	board := NewBoard()

	_, ok := board.Patch(1, 1, reservation.Attended)
	assert.False(t, ok)

	snap := board.Replace(1, []reservation.Reservation{{ID: 5}}, time.Now())
	unchanged, ok := board.Patch(1, 6, reservation.Attended)
	assert.False(t, ok)
	assert.Same(t, snap.Reservations[0], unchanged.Reservations[0])

	_, ok = board.Get(2)
	assert.False(t, ok)
}

func TestBoard_EventIDs(t *testing.T) {
	board := NewBoard()
	assert.Empty(t, board.EventIDs())

	board.Replace(9, nil, time.Now())
	board.Replace(3, nil, time.Now())
	board.Replace(9, nil, time.Now())

	assert.Equal(t, []int{3, 9}, board.EventIDs())
}

func TestBoard_CompareAndReplace(t *testing.T) {
	board := NewBoard()
	loaded := time.Date(2025, 11, 4, 8, 0, 0, 0, time.UTC)

	snap, ok := board.CompareAndReplace(1, 0, []reservation.Reservation{{ID: 5}}, loaded)
	require.True(t, ok)
	assert.Equal(t, uint64(1), snap.Revision)

	patched, ok := board.Patch(1, 5, reservation.Attended)
	require.True(t, ok)
	assert.Equal(t, uint64(2), patched.Revision)

	// A fetch that started at revision 1 must not undo the patch.
	current, ok := board.CompareAndReplace(1, 1, []reservation.Reservation{{ID: 5}}, loaded.Add(time.Minute))
	assert.False(t, ok)
	assert.Equal(t, reservation.Attended, current.Reservations[0].Confirmation)
	assert.Equal(t, loaded, current.LoadedAt)

	fresh, ok := board.CompareAndReplace(1, 2, []reservation.Reservation{{ID: 5}, {ID: 6}}, loaded.Add(time.Minute))
	require.True(t, ok)
	assert.Len(t, fresh.Reservations, 2)
	assert.Equal(t, uint64(3), fresh.Revision)
}

func TestBoard_ConcurrentPatches(t *testing.T) {
	board := NewBoard()
	reservations := make([]reservation.Reservation, 50)
	for i := range reservations {
		reservations[i] = reservation.Reservation{ID: i + 1}
	}
	board.Replace(1, reservations, time.Now())

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			board.Patch(1, id, reservation.Attended)
		}(i)
	}
	wg.Wait()

	snap, ok := board.Get(1)
	require.True(t, ok)
	for _, r := range snap.Reservations {
		assert.Equal(t, reservation.Attended, r.Confirmation, "reservation %d", r.ID)
	}
}

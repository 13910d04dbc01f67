package attendance

import (
	"slices"
	"sync"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/attendance"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
)

// Board holds the last loaded reservation list of each event. Snapshots are
// swapped whole under the lock and never edited in place, so a reader keeps
// a consistent list for as long as it holds one.
type Board struct {
	mu        sync.RWMutex
	snapshots map[int]attendance.Snapshot
}

func NewBoard() *Board {
	return &Board{snapshots: make(map[int]attendance.Snapshot)}
}

// Replace installs a freshly fetched list for the event.
func (b *Board) Replace(eventID int, reservations []reservation.Reservation, loadedAt time.Time) attendance.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.install(eventID, reservations, loadedAt)
}

// CompareAndReplace installs the list only if the event's snapshot is still at
// revision, where a missing snapshot counts as revision 0. Callers read the
// revision before fetching so that a toggle patched in the meantime is not
// overwritten by an older fetch.
func (b *Board) CompareAndReplace(eventID int, revision uint64, reservations []reservation.Reservation, loadedAt time.Time) (attendance.Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current := b.snapshots[eventID]; current.Revision != revision {
		return current, false
	}
	return b.install(eventID, reservations, loadedAt), true
}

func (b *Board) install(eventID int, reservations []reservation.Reservation, loadedAt time.Time) attendance.Snapshot {
	list := make([]*reservation.Reservation, len(reservations))
	for i := range reservations {
		r := reservations[i]
		list[i] = &r
	}

	snap := attendance.Snapshot{
		EventID:      eventID,
		Reservations: list,
		LoadedAt:     loadedAt,
		Revision:     b.snapshots[eventID].Revision + 1,
	}
	b.snapshots[eventID] = snap
	return snap
}

func (b *Board) Get(eventID int) (attendance.Snapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap, ok := b.snapshots[eventID]
	return snap, ok
}

// EventIDs lists the events that have a snapshot, in ascending order.
func (b *Board) EventIDs() []int {
	b.mu.RLock()
	ids := make([]int, 0, len(b.snapshots))
	for id := range b.snapshots {
		ids = append(ids, id)
	}
	b.mu.RUnlock()

	slices.Sort(ids)
	return ids
}

// Patch swaps in a snapshot where reservationID carries c. It reports false
// when the event has no snapshot or the reservation is not in it.
func (b *Board) Patch(eventID, reservationID int, c reservation.Confirmation) (attendance.Snapshot, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap, ok := b.snapshots[eventID]
	if !ok {
		return attendance.Snapshot{}, false
	}
	if _, found := snap.Find(reservationID); !found {
		return snap, false
	}

	snap.Reservations = ApplyConfirmation(snap.Reservations, reservationID, c)
	snap.Revision++
	b.snapshots[eventID] = snap
	return snap, true
}

// ApplyConfirmation returns a new list in which the reservation with the
// given id is replaced by a copy carrying c. Every other entry is the same
// pointer as in list; list itself is not modified.
func ApplyConfirmation(list []*reservation.Reservation, id int, c reservation.Confirmation) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(list))
	for i, r := range list {
		if r.ID != id {
			out[i] = r
			continue
		}
		updated := *r
		updated.Confirmation = c
		out[i] = &updated
	}
	return out
}

package roster

import "context"

// RosterRepository is the remote employee roster API.
type RosterRepository interface {
	// ListDepartmentTotals returns the aggregate form: one weighted row per
	// department group.
	ListDepartmentTotals(ctx context.Context) ([]Employee, error)

	// ListEmployees returns the per-person form, every row weighing one.
	ListEmployees(ctx context.Context) ([]Employee, error)
}

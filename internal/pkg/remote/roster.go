package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Siliatu1/dashboard-inscritos/internal/domain/roster"
)

// rosterRow covers both roster forms. The department field name differs
// between them (and between deployments), so all three spellings are read.
type rosterRow struct {
	Department   flexString `json:"department"`
	Departamento flexString `json:"departamento"`
	Departament  flexString `json:"departament"`
	TotalPerson  flexWeight `json:"total_person"`
	Documento    flexString `json:"documento"`
	Nombre       flexString `json:"nombre"`
	Position     flexString `json:"position"`
}

func (r rosterRow) department() string {
	for _, name := range []flexString{r.Department, r.Departamento, r.Departament} {
		if strings.TrimSpace(string(name)) != "" {
			return string(name)
		}
	}
	return ""
}

func (r rosterRow) toDomain() roster.Employee {
	weight := int(r.TotalPerson)
	if weight < 1 {
		weight = 1
	}
	return roster.Employee{
		DocumentID:      string(r.Documento),
		FullName:        string(r.Nombre),
		Position:        string(r.Position),
		Department:      r.department(),
		HeadcountWeight: weight,
	}
}

type rosterRepositoryImpl struct {
	client *Client
}

// NewRosterRepository returns the remote employee roster API.
func NewRosterRepository(client *Client) roster.RosterRepository {
	return &rosterRepositoryImpl{client: client}
}

func (r *rosterRepositoryImpl) ListDepartmentTotals(ctx context.Context) ([]roster.Employee, error) {
	return r.list(ctx, rosterTotalsPath)
}

func (r *rosterRepositoryImpl) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	employees, err := r.list(ctx, rosterPeoplePath)
	if err != nil {
		return nil, err
	}
	// One row is one person in this form, whatever total_person says.
	for i := range employees {
		employees[i].HeadcountWeight = 1
	}
	return employees, nil
}

func (r *rosterRepositoryImpl) list(ctx context.Context, path string) ([]roster.Employee, error) {
	body, err := r.client.do(ctx, http.MethodGet, r.client.rosterBaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roster %s: %w", path, err)
	}

	var rows []rosterRow
	if err := decodeCollection(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode roster %s: %w", path, err)
	}

	employees := make([]roster.Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, row.toDomain())
	}
	return employees, nil
}

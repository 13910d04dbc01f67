package roster

import "strings"

// Employee is one roster row. In the totals form of the roster a row stands
// for HeadcountWeight people of the same department and carries no person data.
type Employee struct {
	DocumentID      string `json:"document_id,omitempty"`
	FullName        string `json:"full_name,omitempty"`
	Position        string `json:"position,omitempty"`
	Department      string `json:"department"`
	HeadcountWeight int    `json:"headcount_weight"`
}

// TrimmedDocumentID is the join key against reservations.
func (e Employee) TrimmedDocumentID() string {
	return strings.TrimSpace(e.DocumentID)
}

// Weight never returns less than one.
func (e Employee) Weight() int {
	if e.HeadcountWeight < 1 {
		return 1
	}
	return e.HeadcountWeight
}

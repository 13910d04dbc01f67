package remote

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Siliatu1/dashboard-inscritos/internal/config"
	"github.com/Siliatu1/dashboard-inscritos/internal/domain/reservation"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithHTTP(config.RemoteConfig{
		ReservationsBaseURL: srv.URL + "/api/",
		RosterBaseURL:       srv.URL,
		PageSize:            200,
	}, srv.Client())
}

func TestReservationRepository_List(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sintonizarte-v2-reservas", r.URL.Path)
		gotQuery = r.URL.Query()
		_, _ = io.WriteString(w, `{"data":[
			{"id":1,"attributes":{"documento":" 1001 ","nombreUsuario":"Ana","pdv_area":"Cocina","confirm":true,
				"sintonizarte_v_2_":{"data":{"id":7,"attributes":{"fecha":"2026-10-01"}}}}},
			{"id":2,"attributes":{"documento":1002,"nombreUsuario":"Luis","pdv_area":"Ventas","confirm":null}},
			{"id":3,"attributes":{"documento":"1003","pdv_area":"Ventas","confirm":false}}
		],"meta":{}}`)
	})

	eventID := 7
	got, err := NewReservationRepository(client).List(context.Background(), reservation.ListFilter{EventID: &eventID})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"200"}, gotQuery["pagination[pageSize]"])
	assert.Equal(t, []string{"7"}, gotQuery["filters[sintonizarte_v_2_][id]"])
	assert.Equal(t, []string{"*"}, gotQuery["populate"])

	assert.Equal(t, " 1001 ", got[0].DocumentID)
	assert.Equal(t, "1001", got[0].TrimmedDocumentID())
	assert.Equal(t, reservation.Attended, got[0].Confirmation)
	assert.Equal(t, 7, got[0].EventDateID)
	assert.Equal(t, "2026-10-01", got[0].EventDate)

	assert.Equal(t, "1002", got[1].DocumentID)
	assert.Equal(t, reservation.Pending, got[1].Confirmation)
	assert.Equal(t, 7, got[1].EventDateID)

	assert.Equal(t, reservation.Absent, got[2].Confirmation)
}

func TestReservationRepository_List_WithoutEventFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("filters[sintonizarte_v_2_][id]"))
		_, _ = io.WriteString(w, `[{"id":9,"attributes":{"pdv_area":"Cocina"}}]`)
	})

	got, err := NewReservationRepository(client).List(context.Background(), reservation.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cocina", got[0].DepartmentArea)
}

func TestReservationRepository_List_RemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := NewReservationRepository(client).List(context.Background(), reservation.ListFilter{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestReservationRepository_List_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html>maintenance</html>`)
	})

	_, err := NewReservationRepository(client).List(context.Background(), reservation.ListFilter{})
	assert.Error(t, err)
}

func TestReservationRepository_UpdateConfirmation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/sintonizarte-v2-reservas/42", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"data":{"confirm":true}}`, string(body))
		_, _ = io.WriteString(w, `{"data":{"id":42,"attributes":{"documento":"55","pdv_area":"Cocina","confirm":true}}}`)
	})

	got, err := NewReservationRepository(client).UpdateConfirmation(context.Background(), 42, true)
	require.NoError(t, err)
	assert.Equal(t, 42, got.ID)
	assert.Equal(t, reservation.Attended, got.Confirmation)
	assert.Equal(t, "55", got.DocumentID)
}

func TestReservationRepository_UpdateConfirmation_UnreadableEcho(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	got, err := NewReservationRepository(client).UpdateConfirmation(context.Background(), 5, false)
	require.NoError(t, err)
	assert.Equal(t, 5, got.ID)
	assert.Equal(t, reservation.Absent, got.Confirmation)
}

func TestReservationRepository_UpdateConfirmation_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
	})

	_, err := NewReservationRepository(client).UpdateConfirmation(context.Background(), 5, true)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestReservationRepository_UpdateConfirmation_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"data":null,"error":{"status":404,"name":"NotFoundError"}}`, http.StatusNotFound)
	})

	_, err := NewReservationRepository(client).UpdateConfirmation(context.Background(), 9, true)
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)
}

func TestEventRepository_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sintonizarte-V2s", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":[{"id":1,"attributes":{"fecha":"Martes 4 de noviembre"}},{"id":2,"attributes":{}}]}`)
	})

	got, err := NewEventRepository(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Martes 4 de noviembre", got[0].Label())
	assert.Equal(t, "Evento 2", got[1].Label())
}

func TestRosterRepository_ListDepartmentTotals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intellinexTot", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"department":"Cocina","total_person":"3"},
			{"departamento":"Ventas","total_person":4},
			{"department":"Bodega"},
			{"department":"Caja","total_person":"n/a"},
			{"department":"Domicilios","total_person":0},
			{"department":"Aseo","total_person":"2 personas"}
		]`)
	})

	got, err := NewRosterRepository(client).ListDepartmentTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, "Cocina", got[0].Department)
	assert.Equal(t, 3, got[0].HeadcountWeight)
	assert.Equal(t, "Ventas", got[1].Department)
	assert.Equal(t, 4, got[1].HeadcountWeight)
	assert.Equal(t, 1, got[2].HeadcountWeight, "missing total_person defaults to 1")
	assert.Equal(t, 1, got[3].HeadcountWeight, "non-numeric total_person defaults to 1")
	assert.Equal(t, 1, got[4].HeadcountWeight, "zero total_person defaults to 1")
	assert.Equal(t, 2, got[5].HeadcountWeight)
}

func TestRosterRepository_ListEmployees(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intellinextAct", r.URL.Path)
		_, _ = io.WriteString(w, `{"data":[
			{"documento":1001,"departament":"Cocina","position":"Chef","nombre":"Ana","total_person":9}
		]}`)
	})

	got, err := NewRosterRepository(client).ListEmployees(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1001", got[0].DocumentID)
	assert.Equal(t, "Cocina", got[0].Department)
	assert.Equal(t, "Chef", got[0].Position)
	assert.Equal(t, "Ana", got[0].FullName)
	assert.Equal(t, 1, got[0].HeadcountWeight)
}

func TestRosterRepository_ObjectWithoutData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})

	got, err := NewRosterRepository(client).ListDepartmentTotals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLeadingInt(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 12 ", 12, true},
		{"3.9", 3, true},
		{"-2", -2, true},
		{"abc", 0, false},
		{"", 0, false},
		{"null", 0, false},
	}
	for _, c := range cases {
		got, ok := leadingInt(c.in)
		assert.Equal(t, c.want, got, c.in)
		assert.Equal(t, c.wantOK, ok, c.in)
	}
}

func TestFlexString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"1001"`, "1001"},
		{`" 1001 "`, " 1001 "},
		{`1001`, "1001"},
		{`1001.0`, "1001"},
		{`1e3`, "1000"},
		{`1.5`, "1.5"},
		{`-7`, "-7"},
		{`null`, ""},
		{`true`, "true"},
	}
	for _, c := range cases {
		var got flexString
		require.NoError(t, json.Unmarshal([]byte(c.in), &got), c.in)
		assert.Equal(t, c.want, string(got), c.in)
	}

	var bad flexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestReservationItem_MissingConfirmIsPending(t *testing.T) {
	var items []reservationItem
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":1,"attributes":{"documento":"1001"}},
		{"id":2,"attributes":{"documento":"1002","confirm":null}},
		{"id":3,"attributes":{"documento":"1003","confirm":false}}
	]`), &items))

	want := []reservation.Confirmation{reservation.Pending, reservation.Pending, reservation.Absent}
	for i, item := range items {
		got := item.toDomain()
		assert.Equal(t, want[i], got.Confirmation, "reservation %d", got.ID)
	}
	assert.False(t, items[0].toDomain().Confirmation.Counted())
}

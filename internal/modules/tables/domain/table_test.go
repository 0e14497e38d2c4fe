package domain

import (
	"encoding/json"
	"testing"
)

func TestTableOccupied(t *testing.T) {
	free := Table{ID: 1, TableName: "Bar #1", Capacity: 2}
	if free.Occupied() {
		t.Fatal("table without reservation should be free")
	}

	reservationID := 3
	seated := Table{ID: 2, TableName: "Patio #4", Capacity: 4, ReservationID: &reservationID}
	if !seated.Occupied() {
		t.Fatal("table with reservation should be occupied")
	}
}

func TestTableFits(t *testing.T) {
	table := Table{Capacity: 4}
	if !table.Fits(4) {
		t.Fatal("party of capacity size should fit")
	}
	if table.Fits(5) {
		t.Fatal("oversized party should not fit")
	}
	if table.Fits(0) {
		t.Fatal("empty party should not fit")
	}
}

func TestTableJSONRoundTrip(t *testing.T) {
	raw := []byte(`{"id":7,"table_name":"Bar #2","capacity":2,"reservation_id":null}`)

	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if table.ID != 7 || table.TableName != "Bar #2" || table.Occupied() {
		t.Fatalf("unexpected table: %+v", table)
	}

	encoded, err := json.Marshal(Table{TableName: "Window", Capacity: 6})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(encoded) != `{"table_name":"Window","capacity":6}` {
		t.Fatalf("unexpected encoding: %s", encoded)
	}
}

package table

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		wantErr bool
	}{
		{"valid", sampleTable(), false},
		{"no columns", New(), false},
		{"nil table", nil, true},
		{"ragged", New(
			Column{Name: "a", Values: []string{"1", "2"}},
			Column{Name: "b", Values: []string{"1"}},
		), true},
		{"unnamed column", New(Column{Values: []string{"1"}}), true},
		{"duplicate name", New(
			Column{Name: "a", Values: []string{"1"}},
			Column{Name: "a", Values: []string{"2"}},
		), true},
		{"unknown kind", New(Column{Name: "a", Kind: ColumnKind(9), Values: []string{"1"}}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.table.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTable) {
				t.Errorf("error %v does not wrap ErrInvalidTable", err)
			}
		})
	}
}

func TestClone_Independent(t *testing.T) {
	in := sampleTable()
	cp := in.Clone()
	cp.Columns[0].Values[0] = "changed"
	cp.Columns[2].Categories[0] = "changed"

	if !Equal(in, sampleTable()) {
		t.Error("mutating a clone changed the original")
	}
}

func TestTableJSON(t *testing.T) {
	data := []byte(`{"columns":[
		{"name":"A","kind":"number","values":["1","2"]},
		{"name":"C","kind":"category","values":["x","y"],"categories":["x","y","z"]},
		{"name":"T","values":["p","q"]}
	]}`)

	var got Table
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	want := New(
		Column{Name: "A", Kind: KindNumber, Values: []string{"1", "2"}},
		Column{Name: "C", Kind: KindCategory, Values: []string{"x", "y"}, Categories: []string{"x", "y", "z"}},
		Column{Name: "T", Kind: KindText, Values: []string{"p", "q"}},
	)
	if !Equal(&got, want) {
		t.Errorf("decoded %+v, want %+v", got, want)
	}

	out, err := json.Marshal(want.Columns[1])
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != `{"name":"C","kind":"category","values":["x","y"],"categories":["x","y","z"]}` {
		t.Errorf("Marshal = %s", out)
	}
}

func TestColumnKind_UnmarshalUnknown(t *testing.T) {
	var k ColumnKind
	if err := k.UnmarshalText([]byte("matrix")); err == nil {
		t.Error("expected error for unknown kind")
	}
}

package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	input := "a,b,c,date\n" +
		"fred,2,3,2018-1-12\n" +
		"frederson,5,,2018-1-12 08:15\n" +
		",,,\n" +
		"maggie,8,10,2015-7-31\n"

	got, err := ReadCSV(strings.NewReader(input), ReadOptions{Categories: []string{"date"}})
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	want := New(
		Column{Name: "a", Kind: KindText, Values: []string{"fred", "frederson", "", "maggie"}},
		Column{Name: "b", Kind: KindNumber, Values: []string{"2", "5", "", "8"}},
		Column{Name: "c", Kind: KindNumber, Values: []string{"3", "", "", "10"}},
		Column{Name: "date", Kind: KindCategory, Values: []string{"2018-1-12", "2018-1-12 08:15", "", "2015-7-31"},
			Categories: []string{"2015-7-31", "2018-1-12", "2018-1-12 08:15"}},
	)
	if !Equal(got, want) {
		t.Errorf("ReadCSV = %+v\nwant %+v", got, want)
	}
}

func TestReadCSV_Cleanup(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "BOM stripped from header",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nx\n")...),
			want:  "name",
		},
		{
			name:  "invalid UTF-8 replaced",
			input: []byte("na\x80me\nx\n"),
			want:  "na\uFFFDme",
		},
		{
			name:  "header whitespace trimmed",
			input: []byte(" name \nx\n"),
			want:  "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadCSV(bytes.NewReader(tt.input), ReadOptions{})
			if err != nil {
				t.Fatalf("ReadCSV error: %v", err)
			}
			if got.Columns[0].Name != tt.want {
				t.Errorf("header = %q, want %q", got.Columns[0].Name, tt.want)
			}
		})
	}
}

func TestReadCSV_ShortRowsPadded(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("a,b\n1\n2,3\n"), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	b, _ := got.Column("b")
	if !equalStrings(b.Values, []string{"", "3"}) {
		t.Errorf("b = %v, want [\"\" 3]", b.Values)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  ReadOptions
	}{
		{"empty file", "", ReadOptions{}},
		{"empty header", "a,,c\n1,2,3\n", ReadOptions{}},
		{"duplicate header", "a,a\n1,2\n", ReadOptions{}},
		{"row too long", "a,b\n1,2,3\n", ReadOptions{}},
		{"unknown category column", "a\n1\n", ReadOptions{Categories: []string{"b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), tt.opts)
			if !errors.Is(err, ErrInvalidCSV) {
				t.Errorf("error = %v, want ErrInvalidCSV", err)
			}
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	in := New(
		Column{Name: "name", Kind: KindText, Values: []string{"a, quoted", "b"}},
		Column{Name: "n", Kind: KindNumber, Values: []string{"1", "2"}},
	)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}
	if want := "name,n\n\"a, quoted\",1\nb,2\n"; buf.String() != want {
		t.Errorf("WriteCSV = %q, want %q", buf.String(), want)
	}

	back, err := ReadCSV(&buf, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if !Equal(back, in) {
		t.Errorf("round trip = %+v, want %+v", back, in)
	}
}

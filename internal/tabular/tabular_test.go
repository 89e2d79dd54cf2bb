package tabular

import "testing"

func TestLinesAlignColumns(t *testing.T) {
	table := Table{
		Headers: []string{"Name", "Exercises", "Source"},
		Rows: [][]string{
			{"alphabet", "12", "builtin"},
			{"my-set", "3", "library"},
		},
		Right: map[int]bool{1: true},
	}

	lines := table.Lines(0)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Name     Exercises Source" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "alphabet        12 builtin" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "my-set           3 library" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestLinesHandleWideRunes(t *testing.T) {
	table := Table{Rows: [][]string{{"字母", "x"}, {"ab", "y"}}}
	lines := table.Lines(0)
	if lines[0] != "字母 x" || lines[1] != "ab   y" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}

func TestLinesTruncate(t *testing.T) {
	table := Table{Rows: [][]string{{"abcdefghij", "klm"}}}
	lines := table.Lines(6)
	if lines[0] != "abcde…" {
		t.Fatalf("unexpected truncation: %q", lines[0])
	}
	if Table.String(Table{}) != "" {
		t.Fatalf("empty table must render nothing")
	}
}

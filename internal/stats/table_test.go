package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Level", "Title", "Accuracy"}
	rows := [][]string{
		{"1", "First Keys", "70%"},
		{"12", "Word Builder", "75%"},
	}
	rightAlign := map[int]bool{0: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Level Title        Accuracy" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "    1 First Keys        70%" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "   12 Word Builder      75%" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableTrimsTrailingPadding(t *testing.T) {
	lines := formatTable([]string{"Badge", "Icon"}, [][]string{{"Seedling", ""}}, nil)
	if lines[1] != "Seedling" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}

package store

import (
	"fmt"
	"testing"
	"time"
)

// fakeRow feeds a fixed column tuple into scanPost. Values line up with
// postColumns.
type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d columns, got %d", len(r.values), len(dest))
	}
	for i, d := range dest {
		switch d := d.(type) {
		case *int:
			*d = r.values[i].(int)
		case *string:
			*d = r.values[i].(string)
		case *[]byte:
			*d = r.values[i].([]byte)
		case *time.Time:
			*d = r.values[i].(time.Time)
		default:
			return fmt.Errorf("unsupported destination %T", d)
		}
	}
	return nil
}

func postRow(categories []byte) fakeRow {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return fakeRow{values: []any{
		1, "Title", "Sapo", "Byline", 42, "http://cdn/thumb.png",
		"tags", "body", "", "normal", categories, "draft", now, now,
	}}
}

func TestScanPostDecodesCategories(t *testing.T) {
	post, err := scanPost(postRow([]byte(`["photo","video"]`)))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(post.Categories) != 2 || post.Categories[0] != "photo" || post.Categories[1] != "video" {
		t.Fatalf("unexpected categories %v", post.Categories)
	}
}

func TestScanPostRejectsCorruptCategories(t *testing.T) {
	if _, err := scanPost(postRow([]byte(`{broken`))); err == nil {
		t.Fatal("expected corrupt categories to surface as a scan error")
	}
}

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}
	for _, tc := range cases {
		if got := escapeLike(tc.in); got != tc.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

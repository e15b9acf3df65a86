package document

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/NickGaultney/elementor-logic-controls/internal/types"
)

type fakeQueries struct {
	rows []elementRow
	err  error
}

func (f *fakeQueries) Select(name string, dest interface{}, args ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	out, ok := dest.(*[]elementRow)
	if !ok {
		return errors.New("unexpected dest type")
	}
	*out = f.rows
	return nil
}

func parentOf(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func TestLoadPage_AssemblesTree(t *testing.T) {
	q := &fakeQueries{rows: []elementRow{
		{ID: "sec-1", Kind: "section", Position: 0},
		{ID: "col-1", ParentID: parentOf("sec-1"), Kind: "column", Position: 0},
		{ID: "w-1", ParentID: parentOf("col-1"), Kind: "widget", Position: 0,
			LogicEnabled: true, RuleText: `s('plan') === "pro"`},
		{ID: "w-2", ParentID: parentOf("col-1"), Kind: "widget", Position: 1},
		{ID: "sec-2", Kind: "section", Position: 1},
	}}

	root, err := NewDBLoader(q).LoadPage(context.Background(), "page-1")
	if err != nil {
		t.Fatalf("LoadPage() error = %v", err)
	}

	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}
	if root.Children[0].ID != "sec-1" || root.Children[1].ID != "sec-2" {
		t.Errorf("top level order = %s, %s, want sec-1, sec-2", root.Children[0].ID, root.Children[1].ID)
	}

	col := root.Children[0].Children[0]
	if col.ID != "col-1" || len(col.Children) != 2 {
		t.Fatalf("col-1 subtree wrong: %+v", col)
	}

	w1 := col.Children[0]
	if w1.Rule == nil {
		t.Fatal("w-1 should carry a rule")
	}
	if !w1.Rule.Enabled || w1.Rule.Source != `s('plan') === "pro"` {
		t.Errorf("w-1 rule = %+v, want enabled with source", w1.Rule)
	}
	if col.Children[1].Rule != nil {
		t.Errorf("w-2 should have no rule, got %+v", col.Children[1].Rule)
	}
}

func TestLoadPage_UnknownParent(t *testing.T) {
	q := &fakeQueries{rows: []elementRow{
		{ID: "w-1", ParentID: parentOf("missing"), Kind: "widget"},
	}}

	if _, err := NewDBLoader(q).LoadPage(context.Background(), "page-1"); err == nil {
		t.Error("LoadPage() with dangling parent reference should fail")
	}
}

func TestLoadPage_TooManyElements(t *testing.T) {
	rows := make([]elementRow, types.MaxElementsPerPage+1)
	for i := range rows {
		rows[i] = elementRow{ID: string(types.NewElementID()), Kind: "widget", Position: i}
	}

	_, err := NewDBLoader(&fakeQueries{rows: rows}).LoadPage(context.Background(), "page-1")
	if !errors.Is(err, types.ErrTooManyElements) {
		t.Errorf("LoadPage() error = %v, want ErrTooManyElements", err)
	}
}

func TestLoadPage_QueryError(t *testing.T) {
	q := &fakeQueries{err: errors.New("db gone")}
	if _, err := NewDBLoader(q).LoadPage(context.Background(), "page-1"); err == nil {
		t.Error("LoadPage() should propagate query errors")
	}
}

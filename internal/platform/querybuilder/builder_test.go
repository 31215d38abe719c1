package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereOrderLimit(t *testing.T) {
	sql, args, err := Select("id", "status").
		From("rounds").
		Where(Eq("owner_profile_id", "prof-1"), IsNull("deleted_at")).
		OrderBy("created_at DESC").
		Limit(20).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT id, status FROM rounds WHERE owner_profile_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC LIMIT 20"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"prof-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_JoinWithArgs(t *testing.T) {
	sql, args, err := Select("fi.id").
		From("feed_items fi").
		Join("JOIN feed_deliveries fd ON fd.item_id = fi.id AND fd.viewer_profile_id = ?", "prof-1").
		Where(Eq("fi.visibility", "visible")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT fi.id FROM feed_items fi JOIN feed_deliveries fd ON fd.item_id = fi.id AND fd.viewer_profile_id = $1 WHERE fi.visibility = $2"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"prof-1", "visible"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_ExprRowValueComparison(t *testing.T) {
	sql, args, err := Select("id").
		From("feed_items").
		Where(Expr("(occurred_at, id) < (?, ?)", int64(100), int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "SELECT id FROM feed_items WHERE (occurred_at, id) < ($1, $2)"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestIn_EmptyValuesNeverMatch(t *testing.T) {
	sql, args, err := Select("id").From("rounds").Where(In("status", nil)).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM rounds WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestNotIn(t *testing.T) {
	sql, args, err := Select("id").
		From("rounds").
		Where(NotIn("status", []any{"draft", "scheduled"})).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM rounds WHERE status NOT IN ($1, $2)" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"draft", "scheduled"}) {
		t.Fatalf("unexpected args: %v", args)
	}

	sql, _, err = Select("id").From("rounds").Where(NotIn("status", nil)).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM rounds WHERE 1=1" {
		t.Fatalf("empty NOT IN must be a tautology, got: %s", sql)
	}
}

func TestInsert_MultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("feed_deliveries").
		Columns("item_id", "viewer_profile_id", "created_at").
		Values(int64(1), "prof-a", int64(10)).
		Values(int64(1), "prof-b", int64(10)).
		Suffix("ON CONFLICT (item_id, viewer_profile_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "INSERT INTO feed_deliveries (item_id, viewer_profile_id, created_at) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT (item_id, viewer_profile_id) DO NOTHING"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if len(args) != 6 {
		t.Fatalf("expected 6 args, got %d", len(args))
	}
}

func TestInsert_RowArityMismatch(t *testing.T) {
	_, _, err := InsertInto("rounds").
		Columns("id", "status").
		Values("r-1").
		ToSQL()
	if err == nil {
		t.Fatalf("expected an error for a short row")
	}
}

func TestUpdate_SetAndSetExpr(t *testing.T) {
	sql, args, err := Update("rounds").
		Set("status", "live").
		SetExpr("updated_at", "GREATEST(updated_at, ?)", int64(42)).
		Where(Eq("public_id", "r-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	want := "UPDATE rounds SET status = $1, updated_at = GREATEST(updated_at, $2) WHERE public_id = $3"
	if sql != want {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"live", int64(42), "r-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDelete_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("rounds").ToSQL(); err == nil {
		t.Fatalf("expected an error for an unscoped delete")
	}

	sql, args, err := DeleteFrom("rounds").Where(Eq("public_id", "r-1")).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "DELETE FROM rounds WHERE public_id = $1" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"r-1"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_RequiresColumnsAndTable(t *testing.T) {
	if _, _, err := Select().From("rounds").ToSQL(); err == nil {
		t.Fatalf("expected an error without columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected an error without a table")
	}
}

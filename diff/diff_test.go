package diff

import (
	"testing"

	"github.com/ridoystarlord/primitivedb/schema"
)

func table(name string, cols ...schema.Column) schema.Table {
	return schema.Table{Name: name, Columns: append([]schema.Column{{Name: schema.IDColumn, Type: schema.TypeInt}}, cols...)}
}

func TestDiffTables(t *testing.T) {
	cat := schema.NewCatalog(
		table("users", schema.Column{Name: "name", Type: schema.TypeStr}, schema.Column{Name: "age", Type: schema.TypeStr}, schema.Column{Name: "legacy", Type: schema.TypeBool}),
		table("audit", schema.Column{Name: "event", Type: schema.TypeStr}),
	)
	declared := []schema.Table{
		table("users", schema.Column{Name: "name", Type: schema.TypeStr}, schema.Column{Name: "age", Type: schema.TypeInt}, schema.Column{Name: "email", Type: schema.TypeStr}),
		table("posts", schema.Column{Name: "title", Type: schema.TypeStr}),
	}

	ops := DiffTables(declared, cat)

	want := []struct {
		typ  OperationType
		text string
	}{
		{ChangeColumnType, "table users: column age:int is cataloged as str"},
		{AddColumn, "table users: column email:str is declared but not cataloged"},
		{DropColumn, "table users: column legacy is cataloged but not declared"},
		{CreateTable, "create table posts (ID:int, title:str)"},
	}
	if len(ops) != len(want) {
		t.Fatalf("expected %d operations, got %d: %v", len(want), len(ops), ops)
	}
	for i, w := range want {
		if ops[i].Type != w.typ || ops[i].String() != w.text {
			t.Errorf("op %d = %s %q, want %s %q", i, ops[i].Type, ops[i].String(), w.typ, w.text)
		}
	}

	specs := ops[3].Specs()
	if len(specs) != 2 || specs[0] != "ID:int" || specs[1] != "title:str" {
		t.Errorf("unexpected specs %v", specs)
	}
}

func TestDiffTablesNoChanges(t *testing.T) {
	users := table("users", schema.Column{Name: "name", Type: schema.TypeStr})
	if ops := DiffTables([]schema.Table{users}, schema.NewCatalog(users)); len(ops) != 0 {
		t.Errorf("expected no operations, got %v", ops)
	}
}

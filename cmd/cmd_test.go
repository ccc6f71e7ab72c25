package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ridoystarlord/primitivedb/introspect"
	"github.com/ridoystarlord/primitivedb/loader"
	"github.com/ridoystarlord/primitivedb/schema"
	"github.com/ridoystarlord/primitivedb/storage"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	color.NoColor = true
	os.Exit(m.Run())
}

func TestREPLSession(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	input := strings.Join([]string{
		"create_table users name:str age:int is_active:bool",
		`insert into users values ("Sergei", 28, true)`,
		"",
		"select from users where age=28",
		"delete from users where ID=1",
		"n",
		"drop_table users",
		"YES",
		"list_tables",
		"exit",
		"list_tables",
	}, "\n")

	var out bytes.Buffer
	if err := repl(strings.NewReader(input), &out, store); err != nil {
		t.Fatalf("repl failed: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"*** primitive-db ***",
		`✅ Table "users" created with columns: ID:int, name:str, age:int, is_active:bool`,
		`✅ Record with ID=1 inserted into "users".`,
		"1   Sergei  28   true",
		"Are you sure you want to delete from users where ID=1? [y/n]: ",
		`⚠️  Operation "delete from users where ID=1" cancelled.`,
		`✅ Table "users" dropped.`,
		"No tables yet.",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "No tables yet.") != 1 {
		t.Errorf("commands after exit were executed:\n%s", got)
	}

	exists, err := store.Exists(store.RecordsPath("users"))
	if err != nil || exists {
		t.Errorf("record file should be gone after drop (exists=%v, err=%v)", exists, err)
	}
}

func TestREPLEndOfInput(t *testing.T) {
	store := storage.NewMemory(storage.Options{})

	var out bytes.Buffer
	if err := repl(strings.NewReader("help\nfrobnicate"), &out, store); err != nil {
		t.Fatalf("repl failed: %v", err)
	}
	if !strings.Contains(out.String(), "create_table <name>") {
		t.Errorf("help text missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "❌ Error: unknown command: frobnicate") {
		t.Errorf("unknown command not reported:\n%s", out.String())
	}
}

func TestREPLRecoversCorruptCatalog(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	f, err := store.Filesystem().Create(store.CatalogPath())
	if err != nil {
		t.Fatalf("create catalog: %v", err)
	}
	f.Write([]byte("{not json"))
	f.Close()

	var out bytes.Buffer
	if err := repl(strings.NewReader("list_tables\n"), &out, store); err != nil {
		t.Fatalf("repl failed: %v", err)
	}
	if !strings.Contains(out.String(), "No tables yet.") {
		t.Errorf("expected empty catalog after recovery:\n%s", out.String())
	}
}

func TestCreateTables(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	defs := []loader.TableDef{
		{Name: "users", Specs: []string{"name:str"}},
		{Name: "posts", Specs: []string{"title:str", "author_id:int"}},
	}

	var out bytes.Buffer
	created, err := createTables(&out, store, defs, false)
	if err != nil || created != 2 {
		t.Fatalf("createTables = %d, %v", created, err)
	}

	out.Reset()
	defs = append(defs, loader.TableDef{Name: "tags", Specs: []string{"label:str"}})
	created, err = createTables(&out, store, defs, false)
	if err != nil || created != 1 {
		t.Fatalf("second createTables = %d, %v", created, err)
	}
	if strings.Count(out.String(), "already exists") != 2 {
		t.Errorf("expected two skipped tables:\n%s", out.String())
	}

	cat, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if got := strings.Join(cat.Names(), ","); got != "users,posts,tags" {
		t.Errorf("unexpected tables %s", got)
	}

	out.Reset()
	created, err = createTables(&out, store, []loader.TableDef{{Name: "bad", Specs: []string{"x:float"}}}, false)
	if err != nil || created != 0 {
		t.Errorf("createTables with a bad column type = %d, %v", created, err)
	}
	if !strings.Contains(out.String(), `Skipping table "bad"`) {
		t.Errorf("bad table not reported:\n%s", out.String())
	}
}

func TestCreateTablesSkipsInvalidTables(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	existing := []introspect.ExistingTable{
		{TableName: "accounts", Columns: []introspect.ExistingColumn{{ColumnName: "id", DataType: "integer", IsPrimaryKey: true}}},
		{TableName: "events", Columns: []introspect.ExistingColumn{{ColumnName: "event-type", DataType: "text"}}},
		{TableName: "routes", Columns: []introspect.ExistingColumn{{ColumnName: "from", DataType: "text"}}},
		{TableName: "audit-log", Columns: []introspect.ExistingColumn{{ColumnName: "note", DataType: "text"}}},
		{TableName: "users", Columns: []introspect.ExistingColumn{{ColumnName: "email", DataType: "character varying"}}},
	}
	defs := make([]loader.TableDef, 0, len(existing))
	for _, e := range existing {
		defs = append(defs, loader.TableDef{Name: e.TableName, Specs: e.ColumnSpecs()})
	}

	var out bytes.Buffer
	created, err := createTables(&out, store, defs, false)
	if err != nil {
		t.Fatalf("createTables failed: %v", err)
	}
	if created != 2 {
		t.Errorf("expected 2 tables created, got %d", created)
	}
	for _, name := range []string{"events", "routes", "audit-log"} {
		if !strings.Contains(out.String(), fmt.Sprintf("Skipping table %q", name)) {
			t.Errorf("%s not reported as skipped:\n%s", name, out.String())
		}
	}
	if !strings.Contains(out.String(), "2 table(s) created, 3 skipped, 2 total") {
		t.Errorf("unexpected summary:\n%s", out.String())
	}

	cat, err := store.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if got := strings.Join(cat.Names(), ","); got != "accounts,users" {
		t.Errorf("unexpected tables %s", got)
	}
}

func TestConfirmed(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"Y", true},
		{"yes", true},
		{"YES", true},
		{" Yes\n", true},
		{"n", false},
		{"", false},
		{"yep", false},
	}
	for _, tt := range tests {
		if got := confirmed(tt.answer); got != tt.want {
			t.Errorf("confirmed(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestCheckStore(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	var out bytes.Buffer
	if _, err := createTables(&out, store, []loader.TableDef{{Name: "users", Specs: []string{"name:str", "age:int"}}}, false); err != nil {
		t.Fatalf("createTables failed: %v", err)
	}

	result, err := checkStore(store)
	if err != nil {
		t.Fatalf("checkStore failed: %v", err)
	}
	if !result.Valid || result.Tables != 1 {
		t.Errorf("expected clean result, got %+v", result)
	}

	records := []schema.Record{
		schema.NewRecord(
			schema.Field{Name: "ID", Value: schema.IntValue(1)},
			schema.Field{Name: "name", Value: schema.TextValue("Anna")},
			schema.Field{Name: "age", Value: schema.IntValue(31)},
		),
		schema.NewRecord(
			schema.Field{Name: "ID", Value: schema.IntValue(1)},
			schema.Field{Name: "name", Value: schema.TextValue("Bo")},
		),
	}
	if err := store.SaveRecords("users", records); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}
	if err := store.SaveRecords("ghosts", nil); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	result, err = checkStore(store)
	if err != nil {
		t.Fatalf("checkStore failed: %v", err)
	}
	if result.Valid {
		t.Error("expected invalid result")
	}
	if result.Records != 2 {
		t.Errorf("expected 2 records checked, got %d", result.Records)
	}
	kinds := map[string]bool{}
	for _, e := range result.Errors {
		kinds[e.Type] = true
	}
	if !kinds["duplicate_id"] || !kinds["missing_field"] {
		t.Errorf("unexpected errors %+v", result.Errors)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Type != "orphan_file" {
		t.Errorf("expected orphan file warning, got %+v", result.Warnings)
	}

	out.Reset()
	outputText(&out, result)
	if !strings.Contains(out.String(), "❌ Check failed!") || !strings.Contains(out.String(), "• Records: 2") {
		t.Errorf("unexpected report:\n%s", out.String())
	}
}

func TestCheckStoreCorruptRecords(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	var out bytes.Buffer
	if _, err := createTables(&out, store, []loader.TableDef{{Name: "users", Specs: []string{"name:str"}}}, false); err != nil {
		t.Fatalf("createTables failed: %v", err)
	}
	f, err := store.Filesystem().Create(store.RecordsPath("users"))
	if err != nil {
		t.Fatalf("create records: %v", err)
	}
	f.Write([]byte("[{"))
	f.Close()

	result, err := checkStore(store)
	if err != nil {
		t.Fatalf("checkStore failed: %v", err)
	}
	if result.Valid || len(result.Errors) != 1 || result.Errors[0].Type != "document" {
		t.Errorf("expected one document error, got %+v", result.Errors)
	}
}

func TestCreateTablesDryRunAndDrift(t *testing.T) {
	store := storage.NewMemory(storage.Options{})
	var out bytes.Buffer

	defs := []loader.TableDef{{Name: "users", Specs: []string{"name:str"}}}
	created, err := createTables(&out, store, defs, true)
	if err != nil || created != 0 {
		t.Fatalf("dry run = %d, %v", created, err)
	}
	if !strings.Contains(out.String(), "📝 Would create table users (ID:int, name:str)") {
		t.Errorf("unexpected dry-run output:\n%s", out.String())
	}
	if exists, _ := store.Exists(store.CatalogPath()); exists {
		t.Error("dry run wrote the catalog")
	}

	if _, err := createTables(&out, store, defs, false); err != nil {
		t.Fatalf("createTables failed: %v", err)
	}

	out.Reset()
	drifted := []loader.TableDef{{Name: "users", Specs: []string{"name:int"}}}
	if _, err := createTables(&out, store, drifted, false); err != nil {
		t.Fatalf("createTables failed: %v", err)
	}
	if !strings.Contains(out.String(), "table users: column name:int is cataloged as str") {
		t.Errorf("drift not reported:\n%s", out.String())
	}
}

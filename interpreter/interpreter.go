package interpreter

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ridoystarlord/primitivedb/catalog"
	"github.com/ridoystarlord/primitivedb/engine"
	"github.com/ridoystarlord/primitivedb/schema"
)

var ErrUnknownCommand = errors.New("unknown command")

type ResultKind int

const (
	ResultEmpty ResultKind = iota
	ResultOK
	ResultList
	ResultRecords
	ResultInfo
	ResultHelp
	ResultCancelled
	ResultError
	ResultQuit
)

// Result is what a command produced, ready for rendering.
type Result struct {
	Kind    ResultKind
	Message string
	Names   []string
	Table   schema.Table
	Records []schema.Record
	Count   int
	Err     error
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(action string) bool
}

type ConfirmFunc func(action string) bool

func (f ConfirmFunc) Confirm(action string) bool { return f(action) }

// AlwaysConfirm approves every action; used for non-interactive runs.
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })

type handler func(cmd Command) (Result, error)

// Interpreter owns the live catalog and dispatches parsed commands to the
// catalog manager and the engine.
type Interpreter struct {
	catalog  schema.Catalog
	tables   *catalog.Manager
	engine   *engine.Engine
	confirm  Confirmer
	handlers map[string]handler
	logger   *log.Logger
}

func New(tables *catalog.Manager, eng *engine.Engine, cat schema.Catalog, confirm Confirmer) *Interpreter {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	in := &Interpreter{
		catalog: cat,
		tables:  tables,
		engine:  eng,
		confirm: confirm,
		logger:  log.Default(),
	}
	in.handlers = map[string]handler{
		CmdCreateTable: in.createTable,
		CmdListTables:  in.listTables,
		CmdDropTable:   in.withConfirmation(describeDrop, in.dropTable),
		CmdInsert:      in.withTiming(CmdInsert, in.insert),
		CmdSelect:      in.withTiming(CmdSelect, in.selectRecords),
		CmdUpdate:      in.update,
		CmdDelete:      in.withConfirmation(describeDelete, in.delete),
		CmdInfo:        in.info,
		CmdHelp:        help,
		CmdExit:        exit,
	}
	return in
}

// SetLogger replaces the logger used for timing diagnostics; nil silences them.
func (in *Interpreter) SetLogger(l *log.Logger) {
	in.logger = l
}

func (in *Interpreter) Catalog() schema.Catalog {
	return in.catalog
}

// Execute parses and runs one line. Errors never escape: they come back as a
// ResultError so the session can continue.
func (in *Interpreter) Execute(line string) Result {
	cmd, err := Parse(line)
	if err != nil {
		return errorResult(err)
	}
	if cmd.Name == "" {
		return Result{Kind: ResultEmpty}
	}

	h, ok := in.handlers[cmd.Name]
	if !ok {
		return errorResult(fmt.Errorf("%w: %s. Type 'help' for the list of commands", ErrUnknownCommand, cmd.Name))
	}
	res, err := h(cmd)
	if err != nil {
		return errorResult(err)
	}
	return res
}

func errorResult(err error) Result {
	return Result{Kind: ResultError, Err: err, Message: err.Error()}
}

func describeDrop(cmd Command) string {
	return fmt.Sprintf("drop table %s", cmd.Table)
}

func describeDelete(cmd Command) string {
	return fmt.Sprintf("delete from %s where %s", cmd.Table, cmd.Where)
}

// withConfirmation runs next only if the user approves the described action.
func (in *Interpreter) withConfirmation(describe func(Command) string, next handler) handler {
	return func(cmd Command) (Result, error) {
		action := describe(cmd)
		if !in.confirm.Confirm(action) {
			return Result{Kind: ResultCancelled, Message: fmt.Sprintf("Operation %q cancelled.", action)}, nil
		}
		return next(cmd)
	}
}

// withTiming logs how long next took.
func (in *Interpreter) withTiming(name string, next handler) handler {
	return func(cmd Command) (Result, error) {
		start := time.Now()
		res, err := next(cmd)
		if in.logger != nil {
			in.logger.Printf("⏱️  %s completed in %.3f seconds", name, time.Since(start).Seconds())
		}
		return res, err
	}
}

func (in *Interpreter) createTable(cmd Command) (Result, error) {
	next, table, err := in.tables.CreateTable(in.catalog, cmd.Table, cmd.Columns)
	if err != nil {
		return Result{}, err
	}
	in.catalog = next
	return Result{
		Kind:    ResultOK,
		Table:   table,
		Message: fmt.Sprintf("Table %q created with columns: %s", table.Name, table),
	}, nil
}

func (in *Interpreter) listTables(Command) (Result, error) {
	names := catalog.ListTables(in.catalog)
	if len(names) == 0 {
		return Result{Kind: ResultList, Message: "No tables yet."}, nil
	}
	return Result{Kind: ResultList, Names: names}, nil
}

func (in *Interpreter) dropTable(cmd Command) (Result, error) {
	next, err := in.tables.DropTable(in.catalog, cmd.Table)
	in.catalog = next
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultOK, Message: fmt.Sprintf("Table %q dropped.", cmd.Table)}, nil
}

func (in *Interpreter) insert(cmd Command) (Result, error) {
	rec, err := in.engine.Insert(in.catalog, cmd.Table, cmd.Values)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Kind:    ResultOK,
		Count:   1,
		Records: []schema.Record{rec},
		Message: fmt.Sprintf("Record with ID=%d inserted into %q.", rec.ID(), cmd.Table),
	}, nil
}

func (in *Interpreter) selectRecords(cmd Command) (Result, error) {
	records, err := in.engine.Select(in.catalog, cmd.Table, cmd.Where)
	if err != nil {
		return Result{}, err
	}
	table, _ := in.catalog.Table(cmd.Table)
	return Result{Kind: ResultRecords, Table: table, Records: records, Count: len(records)}, nil
}

func (in *Interpreter) update(cmd Command) (Result, error) {
	n, err := in.engine.Update(in.catalog, cmd.Table, *cmd.Set, *cmd.Where)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultOK, Count: n, Message: fmt.Sprintf("%d record(s) in %q updated.", n, cmd.Table)}, nil
}

func (in *Interpreter) delete(cmd Command) (Result, error) {
	n, err := in.engine.Delete(in.catalog, cmd.Table, *cmd.Where)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultOK, Count: n, Message: fmt.Sprintf("%d record(s) deleted from %q.", n, cmd.Table)}, nil
}

func (in *Interpreter) info(cmd Command) (Result, error) {
	info, err := in.engine.Info(in.catalog, cmd.Table)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultInfo, Table: info.Table, Count: info.RecordCount}, nil
}

func help(Command) (Result, error) {
	return Result{Kind: ResultHelp, Message: HelpText}, nil
}

func exit(Command) (Result, error) {
	return Result{Kind: ResultQuit, Message: "Goodbye!"}, nil
}

// HelpText lists the command grammar.
var HelpText = strings.TrimSpace(`
Table management:
  create_table <name> <column:type> ...   create a table (types: int, str, bool)
  list_tables                             show all tables
  drop_table <name>                       delete a table and its records
  info <name>                             show a table's columns and record count

Records:
  insert into <name> values (<v1>, <v2>, ...)
  select [*] from <name> [where <column>=<value>]
  update <name> set <column>=<value> where <column>=<value>
  delete from <name> where <column>=<value>

General:
  help                                    show this help
  exit                                    leave the program
`)

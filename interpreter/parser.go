package interpreter

import (
	"strings"

	"github.com/ridoystarlord/primitivedb/engine"
)

const (
	CmdCreateTable = "create_table"
	CmdListTables  = "list_tables"
	CmdDropTable   = "drop_table"
	CmdInsert      = "insert"
	CmdSelect      = "select"
	CmdUpdate      = "update"
	CmdDelete      = "delete"
	CmdInfo        = "info"
	CmdHelp        = "help"
	CmdExit        = "exit"
)

// Command is one parsed line of input.
type Command struct {
	Name    string
	Table   string
	Columns []string // create_table column specs
	Values  []string // insert values
	Set     *engine.Condition
	Where   *engine.Condition
}

// Parse turns a line into a Command. A blank line parses to a Command with an
// empty Name. Unknown command words are returned as-is for the dispatcher to
// report.
func Parse(line string) (Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return Command{}, err
	}
	if len(tokens) == 0 {
		return Command{}, nil
	}

	name, args := tokens[0], tokens[1:]
	switch name {
	case CmdCreateTable:
		if len(args) < 2 {
			return Command{}, malformed("usage: create_table <name> <column:type> [<column:type> ...]")
		}
		return Command{Name: name, Table: args[0], Columns: args[1:]}, nil

	case CmdListTables, CmdHelp, CmdExit:
		if len(args) != 0 {
			return Command{}, malformed("%s takes no arguments", name)
		}
		return Command{Name: name}, nil

	case CmdDropTable, CmdInfo:
		if len(args) != 1 {
			return Command{}, malformed("usage: %s <name>", name)
		}
		return Command{Name: name, Table: args[0]}, nil

	case CmdInsert:
		return parseInsert(line)

	case CmdSelect:
		return parseSelect(args)

	case CmdUpdate:
		return parseUpdate(args)

	case CmdDelete:
		return parseDelete(args)
	}

	return Command{Name: name}, nil
}

// parseInsert works on the raw line so that quoted values may contain commas.
func parseInsert(line string) (Command, error) {
	const usage = "usage: insert into <name> values (<value1>, <value2>, ...)"

	open := strings.IndexByte(line, '(')
	closing := strings.LastIndexByte(line, ')')
	if open < 0 || closing < open || strings.TrimSpace(line[closing+1:]) != "" {
		return Command{}, malformed(usage)
	}

	head, err := tokenize(line[:open])
	if err != nil {
		return Command{}, err
	}
	if len(head) != 4 || head[1] != "into" || head[3] != "values" {
		return Command{}, malformed(usage)
	}

	values, err := splitValues(line[open+1 : closing])
	if err != nil {
		return Command{}, err
	}
	return Command{Name: CmdInsert, Table: head[2], Values: values}, nil
}

func parseSelect(args []string) (Command, error) {
	const usage = "usage: select [*] from <name> [where <column>=<value>]"

	if len(args) > 0 && args[0] == "*" {
		args = args[1:]
	}
	if len(args) < 2 || args[0] != "from" {
		return Command{}, malformed(usage)
	}
	cmd := Command{Name: CmdSelect, Table: args[1]}

	rest := args[2:]
	if len(rest) == 0 {
		return cmd, nil
	}
	if rest[0] != "where" || len(rest) < 2 {
		return Command{}, malformed(usage)
	}
	where, err := parseCondition(rest[1:])
	if err != nil {
		return Command{}, err
	}
	cmd.Where = where
	return cmd, nil
}

func parseUpdate(args []string) (Command, error) {
	const usage = "usage: update <name> set <column>=<value> where <column>=<value>"

	if len(args) < 5 || args[1] != "set" {
		return Command{}, malformed(usage)
	}
	whereAt := -1
	for i := 3; i < len(args); i++ {
		if args[i] == "where" {
			whereAt = i
			break
		}
	}
	if whereAt < 0 || whereAt == len(args)-1 {
		return Command{}, malformed(usage)
	}

	set, err := parseCondition(args[2:whereAt])
	if err != nil {
		return Command{}, err
	}
	where, err := parseCondition(args[whereAt+1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Name: CmdUpdate, Table: args[0], Set: set, Where: where}, nil
}

func parseDelete(args []string) (Command, error) {
	const usage = "usage: delete from <name> where <column>=<value>"

	if len(args) < 4 || args[0] != "from" || args[2] != "where" {
		return Command{}, malformed(usage)
	}
	where, err := parseCondition(args[3:])
	if err != nil {
		return Command{}, err
	}
	return Command{Name: CmdDelete, Table: args[1], Where: where}, nil
}

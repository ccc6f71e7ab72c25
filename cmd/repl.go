package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ridoystarlord/primitivedb/interpreter"
	"github.com/ridoystarlord/primitivedb/storage"
	"github.com/ridoystarlord/primitivedb/utils"
)

const prompt = ">>> "

func runREPL(in io.Reader, out io.Writer, cfg utils.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	return repl(in, out, store)
}

// repl reads commands until exit or end of input. Confirmation answers are
// read from the same input as commands.
func repl(in io.Reader, out io.Writer, store *storage.Store) error {
	scanner := bufio.NewScanner(in)
	confirm := interpreter.ConfirmFunc(func(action string) bool {
		fmt.Fprintf(out, "Are you sure you want to %s? [y/n]: ", action)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return false
		}
		return confirmed(scanner.Text())
	})

	interp, err := newInterpreter(store, confirm)
	if err != nil {
		return err
	}

	printBanner(out)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		res := interp.Execute(scanner.Text())
		interpreter.Render(out, res)
		if res.Kind == interpreter.ResultQuit {
			break
		}
	}
	return scanner.Err()
}

func printBanner(out io.Writer) {
	color.New(color.FgCyan, color.Bold).Fprintln(out, "*** primitive-db ***")
	fmt.Fprintln(out, "Type 'help' for the list of commands, 'exit' to leave.")
}

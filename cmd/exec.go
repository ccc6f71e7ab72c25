package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridoystarlord/primitivedb/interpreter"
)

var execCmd = &cobra.Command{
	Use:   "exec <command>",
	Short: "Run a single command and exit",
	Long: `Run one command non-interactively.

Destructive commands (drop_table, delete) ask for confirmation unless --yes
is given; without a terminal the answer is read from standard input.

Examples:
  primitive-db exec "create_table users name:str age:int"
  primitive-db exec 'insert into users values ("Anna", 31)'
  primitive-db exec "delete from users where age=31" --yes
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := runExec(args[0])
		if err != nil {
			fmt.Println("❌", err)
			os.Exit(1)
		}
		interpreter.Render(os.Stdout, res)
		if res.Kind == interpreter.ResultError {
			os.Exit(1)
		}
	},
}

var execYes bool

func init() {
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "Skip confirmation for destructive commands")
}

func runExec(line string) (interpreter.Result, error) {
	store, err := openStore(loadConfig())
	if err != nil {
		return interpreter.Result{}, err
	}

	var confirm interpreter.Confirmer = interpreter.AlwaysConfirm
	if !execYes {
		confirm = stdinConfirmer()
	}
	interp, err := newInterpreter(store, confirm)
	if err != nil {
		return interpreter.Result{}, err
	}
	return interp.Execute(line), nil
}

func stdinConfirmer() interpreter.Confirmer {
	reader := bufio.NewReader(os.Stdin)
	return interpreter.ConfirmFunc(func(action string) bool {
		fmt.Printf("Are you sure you want to %s? [y/n]: ", action)
		answer, err := reader.ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		return confirmed(answer)
	})
}

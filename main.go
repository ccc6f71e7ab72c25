package main

import "github.com/ridoystarlord/primitivedb/cmd"

func main() {
	cmd.Execute()
}

package cmd

import (
	"strings"

	"github.com/ridoystarlord/primitivedb/catalog"
	"github.com/ridoystarlord/primitivedb/engine"
	"github.com/ridoystarlord/primitivedb/interpreter"
	"github.com/ridoystarlord/primitivedb/storage"
	"github.com/ridoystarlord/primitivedb/utils"
)

func openStore(cfg utils.Config) (*storage.Store, error) {
	return storage.Open(cfg.Root, cfg.StoreOptions())
}

// newInterpreter loads the catalog and wires the catalog manager and engine
// to one store. A corrupt catalog starts the session empty.
func newInterpreter(store *storage.Store, confirm interpreter.Confirmer) (*interpreter.Interpreter, error) {
	tables := catalog.NewManager(store)
	cat, err := tables.LoadOrEmpty()
	if err != nil {
		return nil, err
	}
	return interpreter.New(tables, engine.New(store), cat, confirm), nil
}

// confirmed reports whether a confirmation answer approves the action.
func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

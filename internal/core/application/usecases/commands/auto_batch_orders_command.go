package commands

import (
	"errors"

	"coffeeshop/internal/pkg/guard"
)

var ErrAutoBatchOrdersCommandIsNotConstructed = errors.New(
	"AutoBatchOrdersCommand must be created via NewAutoBatchOrdersCommand constructor",
)

// AutoBatchOrdersCommand represents a request to scan all batchable orders
// and form as many delivery runs as the batching rules allow. It carries no
// parameters; the guard only protects against zero-value construction.
type AutoBatchOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoBatchOrdersCommand creates a command to run the bulk batching policy.
func NewAutoBatchOrdersCommand() AutoBatchOrdersCommand {
	return AutoBatchOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c AutoBatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAutoBatchOrdersCommandIsNotConstructed)
}

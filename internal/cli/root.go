package cli

import (
	"io"

	"github.com/safend/workorders/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	WorkOrders service.WorkOrderService
	Ops        service.OperationalPostService
	Import     service.ImportService

	// IsInteractive reports whether stdin is a terminal. Nil means never;
	// the work order form only opens when it returns true.
	IsInteractive func() bool
	// In and Out back the interactive form. Nil falls back to the command's
	// own streams.
	In  io.Reader
	Out io.Writer
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "safend" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "safend",
		Short:         "Security work orders and operational posts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkOrderCmd(app),
		newOpsCmd(app),
		newDigipinCmd(),
	)

	return root
}

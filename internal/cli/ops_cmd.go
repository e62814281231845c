package cli

import (
	"fmt"

	"github.com/safend/workorders/internal/cli/formatter"
	"github.com/safend/workorders/internal/domain"
	"github.com/spf13/cobra"
)

func newOpsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "Inspect the operations side",
	}

	var workOrder string
	posts := &cobra.Command{
		Use:   "posts",
		Short: "List operational posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				list []domain.OperationalPost
				err  error
			)
			if workOrder != "" {
				w, rErr := resolveWorkOrder(ctx, app, workOrder)
				if rErr != nil {
					return rErr
				}
				list, err = app.Ops.ListByWorkOrder(ctx, w.RecordID)
			} else {
				list, err = app.Ops.List(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No operational posts.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatOperationalPosts(list))
			return nil
		},
	}
	posts.Flags().StringVar(&workOrder, "work-order", "", "Only posts of this work order")

	cmd.AddCommand(posts)
	return cmd
}

func newDigipinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digipin CODE...",
		Short: "Normalize DIGIPIN codes to XXX-XXX-XXXX",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, a := range args {
				code := domain.NormalizeDigipin(a)
				if domain.IsCompleteDigipin(code) {
					fmt.Fprintln(out, code)
				} else {
					fmt.Fprintf(out, "%s %s\n", code, formatter.Dim("(incomplete)"))
				}
			}
			return nil
		},
	}
}

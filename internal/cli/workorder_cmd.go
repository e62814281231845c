package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/safend/workorders/internal/cli/formatter"
	"github.com/safend/workorders/internal/contract"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/workorder"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newWorkOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage work orders",
	}

	cmd.AddCommand(
		newWorkOrderNewCmd(app),
		newWorkOrderListCmd(app),
		newWorkOrderShowCmd(app),
		newWorkOrderSetCmd(app),
		newWorkOrderImportCmd(app),
		newWorkOrderRetrySyncCmd(app),
		newWorkOrderPendingCmd(app),
		newPostCmd(app),
		newStaffCmd(app),
	)

	return cmd
}

// orderFlags are the order-level fields shared by "new" and "set".
type orderFlags struct {
	client, service, quotation, agreement string
	start, end, value, status             string
	billingCycle, billingRate, invoiceDue string
	gstInclusive, opsPosts                bool
}

func (f *orderFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.client, "client", "", "Client name")
	fs.StringVar(&f.service, "service", "", "Service description")
	fs.StringVar(&f.quotation, "quotation", "", "Quotation reference")
	fs.StringVar(&f.agreement, "agreement", "", "Agreement reference")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	fs.StringVar(&f.value, "value", "", "Contract value")
	fs.StringVar(&f.status, "status", "", "Status (Draft, Pending, Approved, In Progress, On Hold, Completed)")
	fs.StringVar(&f.billingCycle, "billing-cycle", "", "Billing cycle (monthly, quarterly, biannually, annually)")
	fs.StringVar(&f.billingRate, "billing-rate", "", "Billing rate (fixed, hourly, headcount, shift)")
	fs.StringVar(&f.invoiceDue, "invoice-due", "", "Invoice due days (15, 30, 45, 60)")
	fs.BoolVar(&f.gstInclusive, "gst-inclusive", false, "Value includes GST")
	fs.BoolVar(&f.opsPosts, "ops-posts", true, "Create operational posts on save")
}

// commands returns one command per flag the user actually set.
func (f *orderFlags) commands(fs *pflag.FlagSet) []workorder.Command {
	var cmds []workorder.Command
	set := func(name string, c workorder.Command) {
		if fs.Changed(name) {
			cmds = append(cmds, c)
		}
	}
	set("client", workorder.SetClient{Value: f.client})
	set("service", workorder.SetService{Value: f.service})
	set("quotation", workorder.SetQuotationRef{Value: f.quotation})
	set("agreement", workorder.SetAgreementRef{Value: f.agreement})
	set("start", workorder.SetStartDate{Value: f.start})
	set("end", workorder.SetEndDate{Value: f.end})
	set("value", workorder.SetValue{Value: f.value})
	set("status", workorder.SetStatus{Value: domain.WorkOrderStatus(f.status)})
	set("billing-cycle", workorder.SetBillingCycle{Value: domain.BillingCycle(f.billingCycle)})
	set("billing-rate", workorder.SetBillingRate{Value: domain.BillingRate(f.billingRate)})
	set("invoice-due", workorder.SetInvoiceDue{Value: domain.InvoiceDueDay(f.invoiceDue)})
	set("gst-inclusive", workorder.SetGSTInclusive{Value: f.gstInclusive})
	set("ops-posts", workorder.SetPostSync{Enabled: f.opsPosts})
	return cmds
}

// postFlags describe one post: the first post of "new", or the post
// appended by "post add".
type postFlags struct {
	name, postType, dutyType, address, digipin string
}

func (f *postFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "post-name", "", "Post name")
	fs.StringVar(&f.postType, "post-type", "", "Post type (permanent, temporary)")
	fs.StringVar(&f.dutyType, "duty-type", "", "Duty type (8H, 12H)")
	fs.StringVar(&f.address, "address", "", "Post address")
	fs.StringVar(&f.digipin, "digipin", "", "Post DIGIPIN")
}

func (f *postFlags) commands(fs *pflag.FlagSet, index int) []workorder.Command {
	var cmds []workorder.Command
	set := func(flag string, field workorder.PostField, value string) {
		if !fs.Changed(flag) {
			return
		}
		if c, ok := workorder.PostFieldCommand(index, field, value); ok {
			cmds = append(cmds, c)
		}
	}
	set("post-name", workorder.PostName, f.name)
	set("post-type", workorder.PostType, f.postType)
	set("duty-type", workorder.PostDutyType, f.dutyType)
	set("address", workorder.PostAddress, f.address)
	set("digipin", workorder.PostDigipin, f.digipin)
	return cmds
}

func newWorkOrderNewCmd(app *App) *cobra.Command {
	var (
		order       orderFlags
		first       postFlags
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a work order",
		Long: "Create a work order with one default post. Pass --interactive (or run\n" +
			"without --client on a terminal) to fill it in with a form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			draft, err := app.WorkOrders.NewDraft(ctx, workorder.Seed{})
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if interactive || (!fs.Changed("client") && app.interactive()) {
				draft, err = runWorkOrderForm(ctx, app, cmd, draft)
				if err != nil {
					return err
				}
			} else {
				draft = workorder.Apply(draft, order.commands(fs)...)
				draft = workorder.Apply(draft, first.commands(fs, 0)...)
			}

			return submitAndReport(ctx, app, cmd, draft)
		},
	}

	order.register(cmd.Flags())
	first.register(cmd.Flags())
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the work order with a form")

	return cmd
}

func newWorkOrderListCmd(app *App) *cobra.Command {
	var status, client string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.WorkOrders.List(cmd.Context(), repository.WorkOrderFilter{
				Status: domain.WorkOrderStatus(status),
				Client: client,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(orders) == 0 {
				fmt.Fprintln(out, "No work orders found.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatWorkOrderList(orders))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only orders with this status")
	cmd.Flags().StringVar(&client, "client", "", "Only orders whose client contains this text")

	return cmd
}

func newWorkOrderShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show a work order with its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWorkOrder(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkOrderDetail(w))
			return nil
		},
	}
}

func newWorkOrderSetCmd(app *App) *cobra.Command {
	var order orderFlags

	cmd := &cobra.Command{
		Use:   "set CODE",
		Short: "Change order-level fields and save",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds := order.commands(cmd.Flags())
			if len(cmds) == 0 {
				return fmt.Errorf("nothing to change: pass at least one field flag")
			}
			return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
				return workorder.Apply(w, cmds...), nil
			})
		},
	}

	order.register(cmd.Flags())

	return cmd
}

func newWorkOrderImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import work orders from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(cmd.Context(), args[0])
			if result != nil && len(result.Submitted) > 0 {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(result.Submitted))
			}
			return err
		},
	}
}

func newWorkOrderRetrySyncCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "retry-sync [CODE]",
		Short: "Retry creating operational posts for a saved work order",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				pending, err := app.WorkOrders.ListPendingSync(ctx)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "Nothing awaiting operational sync.")
					return nil
				}
				failed := 0
				for _, w := range pending {
					r, err := app.WorkOrders.RetrySync(ctx, w.RecordID)
					if err != nil {
						return err
					}
					if r.SyncError != "" {
						failed++
					}
					fmt.Fprint(out, formatter.FormatRetryResult(r))
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d work orders still not synced", failed, len(pending))
				}
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("work order is required (or pass --all)")
			}
			w, err := resolveWorkOrder(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.WorkOrders.RetrySync(ctx, w.RecordID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRetryResult(r))
			if r.SyncError != "" {
				return fmt.Errorf("%s is still not synced", r.Code)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Retry every pending or failed work order")

	return cmd
}

func newWorkOrderPendingCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List work orders awaiting operational sync",
		RunE: func(cmd *cobra.Command, args []string) error {
			orders, err := app.WorkOrders.ListPendingSync(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(orders) == 0 {
				fmt.Fprintln(out, "Nothing awaiting operational sync.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatWorkOrderList(orders))
			return nil
		},
	}
}

// editWorkOrder loads a saved order, applies edit and resubmits it as an
// update.
func editWorkOrder(cmd *cobra.Command, app *App, input string, edit func(*domain.WorkOrder) (*domain.WorkOrder, error)) error {
	ctx := cmd.Context()
	w, err := resolveWorkOrder(ctx, app, input)
	if err != nil {
		return err
	}
	next, err := edit(w)
	if err != nil {
		return err
	}
	return submitAndReport(ctx, app, cmd, next)
}

// submitAndReport saves w and prints the outcome. Validation failures are
// reported field by field.
func submitAndReport(ctx context.Context, app *App, cmd *cobra.Command, w *domain.WorkOrder) error {
	result, err := app.WorkOrders.Submit(ctx, contract.NewSubmitRequest(w))
	if err != nil {
		return describeSubmitError(err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubmitResult(result))
	return nil
}

func describeSubmitError(err error) error {
	var ve workorder.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	lines := make([]string, 0, len(ve))
	for _, fe := range ve {
		lines = append(lines, "  "+fe.Error())
	}
	return fmt.Errorf("work order not saved:\n%s", strings.Join(lines, "\n"))
}

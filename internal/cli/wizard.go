package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/safend/workorders/internal/cli/formatter"
	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/workorder"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// safendHuhTheme returns a custom huh theme using the Gruvbox palette.
func safendHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formKeyMap lets esc cancel the form as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// workOrderForm holds the raw answers of the interactive form.
type workOrderForm struct {
	Client, Service, Start, End, Value string
	Status                             string
	BillingCycle, BillingRate, DueDay  string
	GSTInclusive, OpsPosts             bool

	PostName, PostType, DutyType string
	Address, Digipin             string

	Role, Count, Shift string
	StartTime, EndTime string
	Days               []string
}

func newWorkOrderFormValues(w *domain.WorkOrder) *workOrderForm {
	p := w.Posts[0]
	s := p.RequiredStaff[0]
	days := make([]string, len(s.Days))
	for i, d := range s.Days {
		days[i] = string(d)
	}
	return &workOrderForm{
		Client:       w.Client,
		Service:      w.Service,
		Start:        w.StartDate,
		End:          w.EndDate,
		Value:        w.Value,
		Status:       string(w.Status),
		BillingCycle: string(w.BillingCycle),
		BillingRate:  string(w.BillingRate),
		DueDay:       string(w.InvoiceDueDay),
		GSTInclusive: w.GSTInclusive,
		OpsPosts:     w.CreateOperationalPosts,
		PostName:     p.Name,
		PostType:     string(p.Type),
		DutyType:     string(p.DutyType),
		Address:      p.Location.Address,
		Digipin:      p.Location.Digipin,
		Role:         string(s.Role),
		Count:        fmt.Sprint(s.Count),
		Shift:        string(s.Shift),
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Days:         days,
	}
}

// commands turns the answers into edits of the draft's first post and its
// first staff requirement.
func (f *workOrderForm) commands() []workorder.Command {
	cmds := []workorder.Command{
		workorder.SetClient{Value: f.Client},
		workorder.SetService{Value: f.Service},
		workorder.SetStartDate{Value: f.Start},
		workorder.SetEndDate{Value: f.End},
		workorder.SetValue{Value: f.Value},
		workorder.SetStatus{Value: domain.WorkOrderStatus(f.Status)},
		workorder.SetBillingCycle{Value: domain.BillingCycle(f.BillingCycle)},
		workorder.SetBillingRate{Value: domain.BillingRate(f.BillingRate)},
		workorder.SetInvoiceDue{Value: domain.InvoiceDueDay(f.DueDay)},
		workorder.SetGSTInclusive{Value: f.GSTInclusive},
		workorder.SetPostSync{Enabled: f.OpsPosts},
		workorder.SetPostName{Post: 0, Value: f.PostName},
		workorder.SetPostType{Post: 0, Value: domain.PostType(f.PostType)},
		workorder.SetPostDutyType{Post: 0, Value: domain.DutyType(f.DutyType)},
		workorder.SetPostAddress{Post: 0, Value: f.Address},
		workorder.SetPostDigipin{Post: 0, Value: f.Digipin},
		workorder.SetStaffRole{Post: 0, Staff: 0, Value: domain.StaffRole(f.Role)},
		workorder.SetStaffCount{Post: 0, Staff: 0, Raw: f.Count},
		workorder.SetStaffShift{Post: 0, Staff: 0, Value: domain.Shift(f.Shift)},
		workorder.SetStaffStartTime{Post: 0, Staff: 0, Value: f.StartTime},
		workorder.SetStaffEndTime{Post: 0, Staff: 0, Value: f.EndTime},
	}
	for _, d := range domain.AllWeekdays {
		cmds = append(cmds, workorder.SetStaffDay{
			Post: 0, Staff: 0, Day: d, Selected: slices.Contains(f.Days, string(d)),
		})
	}
	return cmds
}

func (f *workOrderForm) build() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Client").Value(&f.Client).Validate(required("client")),
			huh.NewInput().Title("Service").Value(&f.Service).Validate(required("service")),
			huh.NewInput().Title("Start Date (YYYY-MM-DD)").Placeholder("2025-04-01").
				Value(&f.Start).Validate(validateDate(true)),
			huh.NewInput().Title("End Date (YYYY-MM-DD, blank for open-ended)").
				Value(&f.End).Validate(validateDate(false)),
			huh.NewInput().Title("Contract Value").Placeholder("150000").
				Value(&f.Value).Validate(validateAmount),
			huh.NewSelect[string]().Title("Status").
				Options(stringOptions(domain.StatusDraft, domain.StatusPending, domain.StatusApproved,
					domain.StatusInProgress, domain.StatusOnHold, domain.StatusCompleted)...).
				Value(&f.Status),
		).Title("Work Order"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Billing Cycle").
				Options(stringOptions(domain.BillingMonthly, domain.BillingQuarterly,
					domain.BillingBiannually, domain.BillingAnnually)...).
				Value(&f.BillingCycle),
			huh.NewSelect[string]().Title("Billing Rate").
				Options(stringOptions(domain.RateFixed, domain.RateHourly, domain.RateHeadcount, domain.RateShift)...).
				Value(&f.BillingRate),
			huh.NewSelect[string]().Title("Invoice Due (days)").
				Options(stringOptions(domain.DueDay15, domain.DueDay30, domain.DueDay45, domain.DueDay60)...).
				Value(&f.DueDay),
			huh.NewConfirm().Title("Value includes GST?").Affirmative("Yes").Negative("No").Value(&f.GSTInclusive),
			huh.NewConfirm().Title("Create operational posts on save?").Affirmative("Yes").Negative("No").Value(&f.OpsPosts),
		).Title("Billing"),
		huh.NewGroup(
			huh.NewInput().Title("Post Name").Placeholder("Main Gate").Value(&f.PostName).Validate(required("post name")),
			huh.NewSelect[string]().Title("Post Type").
				Options(stringOptions(domain.PostPermanent, domain.PostTemporary)...).
				Value(&f.PostType),
			huh.NewSelect[string]().Title("Duty Type").
				Options(stringOptions(domain.Duty8H, domain.Duty12H)...).
				Value(&f.DutyType),
			huh.NewInput().Title("Address").Value(&f.Address).Validate(required("address")),
			huh.NewInput().Title("DIGIPIN").Placeholder("XXX-XXX-XXXX").
				Value(&f.Digipin).Validate(validateDigipin),
		).Title("First Post"),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Role").
				Options(stringOptions(domain.RoleSecurityGuard, domain.RoleArmedGuard, domain.RoleSupervisor,
					domain.RolePatrolOfficer, domain.RolePSO)...).
				Value(&f.Role),
			huh.NewInput().Title("Count").Value(&f.Count).Validate(validatePositiveInt),
			huh.NewSelect[string]().Title("Shift").
				OptionsFunc(func() []huh.Option[string] {
					return stringOptions(domain.AllowedShifts(domain.DutyType(f.DutyType))...)
				}, &f.DutyType).
				Value(&f.Shift),
			huh.NewInput().Title("Start Time (HH:MM)").Value(&f.StartTime).Validate(validateClock),
			huh.NewInput().Title("End Time (HH:MM)").Value(&f.EndTime).Validate(validateClock),
			huh.NewMultiSelect[string]().Title("Days").
				Options(stringOptions(domain.AllWeekdays...)...).
				Value(&f.Days),
		).Title("Staff Requirement"),
	).WithTheme(safendHuhTheme()).WithKeyMap(formKeyMap())
}

// runWorkOrderForm fills draft in from the interactive form.
func runWorkOrderForm(ctx context.Context, app *App, cmd *cobra.Command, draft *domain.WorkOrder) (*domain.WorkOrder, error) {
	values := newWorkOrderFormValues(draft)

	var in io.Reader = cmd.InOrStdin()
	if app.In != nil {
		in = app.In
	}
	var out io.Writer = cmd.OutOrStdout()
	if app.Out != nil {
		out = app.Out
	}

	form := values.build().WithProgramOptions(tea.WithInput(in), tea.WithOutput(out))
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, fmt.Errorf("cancelled; %s was not saved", draft.ID)
		}
		return nil, err
	}

	return workorder.Apply(draft, values.commands()...), nil
}

func stringOptions[T ~string](values ...T) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(string(v), string(v))
	}
	return opts
}

func required(label string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// validateDate checks the YYYY-MM-DD layout; blank passes unless mandatory.
func validateDate(mandatory bool) func(string) error {
	return func(s string) error {
		if s == "" {
			if mandatory {
				return fmt.Errorf("date is required")
			}
			return nil
		}
		if _, err := time.Parse(domain.DateLayout, s); err != nil {
			return fmt.Errorf("use YYYY-MM-DD format")
		}
		return nil
	}
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if d.IsNegative() {
		return fmt.Errorf("value cannot be negative")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateClock(s string) error {
	if s == "" {
		return nil
	}
	if !domain.ValidTimeOfDay(s) {
		return fmt.Errorf("use HH:MM")
	}
	return nil
}

func validateDigipin(s string) error {
	if s == "" {
		return nil
	}
	if !domain.IsCompleteDigipin(domain.NormalizeDigipin(s)) {
		return fmt.Errorf("a DIGIPIN has ten letters or digits")
	}
	return nil
}

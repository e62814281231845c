package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/workorder"
	"github.com/spf13/cobra"
)

var postFields = []workorder.PostField{
	workorder.PostName, workorder.PostType, workorder.PostDutyType,
	workorder.PostAddress, workorder.PostDigipin,
}

var staffFields = []workorder.StaffField{
	workorder.StaffRole, workorder.StaffCount, workorder.StaffShift,
	workorder.StaffStartTime, workorder.StaffEndTime,
}

func newPostCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Edit the security posts of a work order",
	}

	cmd.AddCommand(
		newPostAddCmd(app),
		&cobra.Command{
			Use:   "remove CODE POST",
			Short: "Remove a post (the last post cannot be removed)",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
					p, err := parsePostIndex(w, args[1])
					if err != nil {
						return nil, err
					}
					if len(w.Posts) == 1 {
						return nil, fmt.Errorf("%s has a single post; a work order needs at least one", w.ID)
					}
					return workorder.RemovePost(w, p), nil
				})
			},
		},
		&cobra.Command{
			Use:   "set CODE POST FIELD VALUE",
			Short: "Set a post field (" + joinFields(postFields) + ")",
			Args:  cobra.ExactArgs(4),
			RunE: func(cmd *cobra.Command, args []string) error {
				field := workorder.PostField(args[2])
				if !slices.Contains(postFields, field) {
					return fmt.Errorf("unknown post field %q (want one of %s)", args[2], joinFields(postFields))
				}
				return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
					p, err := parsePostIndex(w, args[1])
					if err != nil {
						return nil, err
					}
					return workorder.UpdatePostField(w, p, field, args[3]), nil
				})
			},
		},
	)

	return cmd
}

func newPostAddCmd(app *App) *cobra.Command {
	var post postFlags

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Append a post with one day-shift guard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
				w = workorder.AddPost(w)
				return workorder.Apply(w, post.commands(cmd.Flags(), len(w.Posts)-1)...), nil
			})
		},
	}

	post.register(cmd.Flags())

	return cmd
}

func newStaffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Edit the staff requirements of a post",
	}

	var off bool
	days := &cobra.Command{
		Use:   "days CODE POST STAFF DAY...",
		Short: "Select (or with --off, clear) days on a staff requirement",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := parseWeekdays(args[3:])
			if err != nil {
				return err
			}
			return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
				p, s, err := staffTarget(w, args[1], args[2])
				if err != nil {
					return nil, err
				}
				for _, d := range tokens {
					w = workorder.ToggleStaffDay(w, p, s, d, !off)
				}
				return w, nil
			})
		},
	}
	days.Flags().BoolVar(&off, "off", false, "Clear the given days instead of selecting them")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add CODE POST",
			Short: "Append a night-shift requirement to a post",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
					p, err := parsePostIndex(w, args[1])
					if err != nil {
						return nil, err
					}
					return workorder.AddStaffRequirement(w, p), nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove CODE POST STAFF",
			Short: "Remove a staff requirement (a post keeps at least one)",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
					p, s, err := staffTarget(w, args[1], args[2])
					if err != nil {
						return nil, err
					}
					if len(w.Posts[p].RequiredStaff) == 1 {
						return nil, fmt.Errorf("post %d has a single staff requirement; a post needs at least one", p+1)
					}
					return workorder.RemoveStaffRequirement(w, p, s), nil
				})
			},
		},
		&cobra.Command{
			Use:   "set CODE POST STAFF FIELD VALUE",
			Short: "Set a staff requirement field (" + joinFields(staffFields) + ")",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				field := workorder.StaffField(args[3])
				if !slices.Contains(staffFields, field) {
					return fmt.Errorf("unknown staff field %q (want one of %s)", args[3], joinFields(staffFields))
				}
				return editWorkOrder(cmd, app, args[0], func(w *domain.WorkOrder) (*domain.WorkOrder, error) {
					p, s, err := staffTarget(w, args[1], args[2])
					if err != nil {
						return nil, err
					}
					return workorder.UpdateStaffField(w, p, s, field, args[4]), nil
				})
			},
		},
		days,
	)

	return cmd
}

func staffTarget(w *domain.WorkOrder, post, staff string) (int, int, error) {
	p, err := parsePostIndex(w, post)
	if err != nil {
		return 0, 0, err
	}
	s, err := parseStaffIndex(w, p, staff)
	if err != nil {
		return 0, 0, err
	}
	return p, s, nil
}

// parseWeekdays accepts day tokens plus the shorthands "all", "weekdays"
// and "weekends".
func parseWeekdays(args []string) ([]domain.Weekday, error) {
	var out []domain.Weekday
	for _, a := range args {
		switch t := strings.ToLower(a); t {
		case "all", "daily":
			out = append(out, domain.AllWeekdays...)
		case "weekdays":
			out = append(out, domain.AllWeekdays[:5]...)
		case "weekends":
			out = append(out, domain.AllWeekdays[5:]...)
		default:
			if !domain.ValidWeekdays[domain.Weekday(t)] {
				return nil, fmt.Errorf("unknown day %q (use mon..sun, all, weekdays or weekends)", a)
			}
			out = append(out, domain.Weekday(t))
		}
	}
	return out, nil
}

func joinFields[T ~string](fields []T) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, ", ")
}

package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/safend/workorders/internal/contract"
	"github.com/safend/workorders/internal/domain"
)

// FormatWorkOrderList renders one row per work order.
func FormatWorkOrderList(orders []*domain.WorkOrder) string {
	headers := []string{"CODE", "CLIENT", "SERVICE", "START", "POSTS", "STAFF", "VALUE", "STATUS", "SYNC"}
	rows := make([][]string, 0, len(orders))
	for _, w := range orders {
		rows = append(rows, []string{
			Bold(w.ID),
			w.Client,
			w.Service,
			w.StartDate,
			strconv.Itoa(len(w.Posts)),
			strconv.Itoa(w.TotalHeadcount()),
			orDash(w.DisplayValue),
			StatusPill(w.Status),
			SyncPill(w.SyncStatus),
		})
	}
	return RenderTable(headers, rows)
}

// FormatWorkOrderDetail renders the full aggregate: metadata, billing,
// sync state and every post with its staff requirements.
func FormatWorkOrderDetail(w *domain.WorkOrder) string {
	var b strings.Builder

	b.WriteString(Header(w.ID))
	b.WriteString("\n")

	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-16s", label)), value)
	}
	field("Client", w.Client)
	field("Service", w.Service)
	field("Status", StatusPill(w.Status))
	period := w.StartDate
	if w.EndDate != "" {
		period += " → " + w.EndDate
	}
	field("Period", period)
	field("Value", orDash(w.DisplayValue))
	field("Billing", fmt.Sprintf("%s, %s rate, due in %s days", w.BillingCycle, w.BillingRate, w.InvoiceDueDay))
	gst := "exclusive"
	if w.GSTInclusive {
		gst = "inclusive"
	}
	field("GST", gst)
	if w.QuotationRef != "" {
		field("Quotation", w.QuotationRef)
	}
	if w.AgreementRef != "" {
		field("Agreement", w.AgreementRef)
	}
	if w.DocumentURL != "" {
		field("Document", w.DocumentURL)
	}
	if w.ClientApproval != "" {
		field("Client approval", w.ClientApproval)
	}
	syncLine := SyncPill(w.SyncStatus)
	if w.SyncError != "" {
		syncLine += " " + StyleRed.Render(w.SyncError)
	}
	field("Operational sync", syncLine)
	if w.SyncedAt != nil {
		field("Synced", HumanTimestamp(*w.SyncedAt))
	}
	if w.RecordID != "" {
		field("Record", TruncID(w.RecordID))
		field("Updated", HumanTimestamp(w.UpdatedAt))
	}

	for _, p := range w.Posts {
		b.WriteString("\n")
		b.WriteString(formatPost(p))
	}
	return b.String()
}

func formatPost(p domain.SecurityPost) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s %s\n",
		StylePurple.Render(p.Code),
		Bold(orDash(p.Name)),
		Dim(fmt.Sprintf("(%s, %s, %s)", p.Type, p.DutyType, Plural(p.Headcount(), "guard"))),
	)
	loc := orDash(p.Location.Address)
	if p.Location.Digipin != "" {
		loc += Dim("  DIGIPIN ") + p.Location.Digipin
	}
	fmt.Fprintf(&b, "  %s\n", loc)

	headers := []string{"#", "ROLE", "COUNT", "SHIFT", "HOURS", "DAYS"}
	rows := make([][]string, 0, len(p.RequiredStaff))
	for i, s := range p.RequiredStaff {
		shift := string(s.Shift)
		if !domain.ShiftAllowed(p.DutyType, s.Shift) {
			shift = StyleYellow.Render(shift + "!")
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(s.Role),
			strconv.Itoa(s.Count),
			shift,
			fmt.Sprintf("%s–%s", orDash(s.StartTime), orDash(s.EndTime)),
			FormatDays(s.Days),
		})
	}
	for _, line := range strings.Split(strings.TrimRight(RenderTable(headers, rows), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}

// FormatSubmitResult reports a save. A partial result names the sync
// failure and the command that retries it.
func FormatSubmitResult(r *contract.SubmitResult) string {
	var b strings.Builder

	verb := "Updated"
	if r.Created {
		verb = "Created"
	}
	posts := 0
	if r.Order != nil {
		posts = len(r.Order.Posts)
	}

	if r.Partial() {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			StyleYellow.Render("⚠"), verb, Bold(r.Code),
			Dim(fmt.Sprintf("(%s), but operational posts were not created", Plural(posts, "post"))))
		fmt.Fprintf(&b, "  %s\n", StyleRed.Render(r.SyncError))
		fmt.Fprintf(&b, "  %s\n", Dim("Retry with: safend workorder retry-sync "+r.Code))
	} else {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			StyleGreen.Render("✔"), verb, Bold(r.Code),
			Dim(fmt.Sprintf("(%s, sync %s)", Plural(posts, "post"), r.SyncStatus)))
	}

	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render("warning:"), w)
	}
	return b.String()
}

// FormatRetryResult reports the outcome of a sync retry.
func FormatRetryResult(r *contract.RetrySyncResult) string {
	switch {
	case r.AlreadySynced:
		return fmt.Sprintf("%s %s is already synced; nothing to do.\n", StyleGreen.Render("✔"), Bold(r.Code))
	case r.SyncError != "":
		return fmt.Sprintf("%s Sync of %s failed again: %s\n", StyleRed.Render("✖"), Bold(r.Code), r.SyncError)
	default:
		return fmt.Sprintf("%s Synced %s (%s)\n", StyleGreen.Render("✔"), Bold(r.Code), Plural(r.PostCount, "operational post"))
	}
}

// FormatImportResult summarises an import, one line per order.
func FormatImportResult(results []*contract.SubmitResult) string {
	var b strings.Builder
	partial := 0
	for _, r := range results {
		b.WriteString(FormatSubmitResult(r))
		if r.Partial() {
			partial++
		}
	}
	summary := fmt.Sprintf("Imported %s", Plural(len(results), "work order"))
	if partial > 0 {
		summary += fmt.Sprintf(", %d awaiting operational sync", partial)
	}
	b.WriteString(Bold(summary) + "\n")
	return b.String()
}

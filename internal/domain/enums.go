package domain

type WorkOrderStatus string

const (
	StatusDraft      WorkOrderStatus = "Draft"
	StatusPending    WorkOrderStatus = "Pending"
	StatusApproved   WorkOrderStatus = "Approved"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusOnHold     WorkOrderStatus = "On Hold"
	StatusCompleted  WorkOrderStatus = "Completed"
)

// ValidWorkOrderStatuses is the canonical set of accepted work order statuses.
var ValidWorkOrderStatuses = map[WorkOrderStatus]bool{
	StatusDraft: true, StatusPending: true, StatusApproved: true,
	StatusInProgress: true, StatusOnHold: true, StatusCompleted: true,
}

type BillingCycle string

const (
	BillingMonthly    BillingCycle = "monthly"
	BillingQuarterly  BillingCycle = "quarterly"
	BillingBiannually BillingCycle = "biannually"
	BillingAnnually   BillingCycle = "annually"
)

var ValidBillingCycles = map[BillingCycle]bool{
	BillingMonthly: true, BillingQuarterly: true, BillingBiannually: true, BillingAnnually: true,
}

type BillingRate string

const (
	RateFixed     BillingRate = "fixed"
	RateHourly    BillingRate = "hourly"
	RateHeadcount BillingRate = "headcount"
	RateShift     BillingRate = "shift"
)

var ValidBillingRates = map[BillingRate]bool{
	RateFixed: true, RateHourly: true, RateHeadcount: true, RateShift: true,
}

// InvoiceDueDay is the number of days after invoicing that payment falls due.
type InvoiceDueDay string

const (
	DueDay15 InvoiceDueDay = "15"
	DueDay30 InvoiceDueDay = "30"
	DueDay45 InvoiceDueDay = "45"
	DueDay60 InvoiceDueDay = "60"
)

var ValidInvoiceDueDays = map[InvoiceDueDay]bool{
	DueDay15: true, DueDay30: true, DueDay45: true, DueDay60: true,
}

type PostType string

const (
	PostPermanent PostType = "permanent"
	PostTemporary PostType = "temporary"
)

var ValidPostTypes = map[PostType]bool{PostPermanent: true, PostTemporary: true}

type DutyType string

const (
	Duty8H  DutyType = "8H"
	Duty12H DutyType = "12H"
)

var ValidDutyTypes = map[DutyType]bool{Duty8H: true, Duty12H: true}

type Shift string

const (
	ShiftDay     Shift = "Day"
	ShiftNight   Shift = "Night"
	ShiftEvening Shift = "Evening"
	ShiftMorning Shift = "Morning"
)

// allowedShifts lists the shifts a staff requirement may use under each duty type,
// in display order.
var allowedShifts = map[DutyType][]Shift{
	Duty8H:  {ShiftDay, ShiftNight, ShiftEvening, ShiftMorning},
	Duty12H: {ShiftMorning, ShiftNight},
}

// AllowedShifts returns the shifts valid for the given duty type.
// Unknown duty types allow nothing.
func AllowedShifts(d DutyType) []Shift {
	return append([]Shift(nil), allowedShifts[d]...)
}

// ShiftAllowed reports whether s is a permitted shift under duty type d.
func ShiftAllowed(d DutyType, s Shift) bool {
	for _, allowed := range allowedShifts[d] {
		if allowed == s {
			return true
		}
	}
	return false
}

// ValidShifts is every shift value accepted under any duty type.
var ValidShifts = map[Shift]bool{
	ShiftDay: true, ShiftNight: true, ShiftEvening: true, ShiftMorning: true,
}

type StaffRole string

const (
	RoleSecurityGuard StaffRole = "Security Guard"
	RoleArmedGuard    StaffRole = "Armed Guard"
	RoleSupervisor    StaffRole = "Supervisor"
	RolePatrolOfficer StaffRole = "Patrol Officer"
	RolePSO           StaffRole = "PSO"
)

var ValidStaffRoles = map[StaffRole]bool{
	RoleSecurityGuard: true, RoleArmedGuard: true, RoleSupervisor: true,
	RolePatrolOfficer: true, RolePSO: true,
}

// Weekday is a lowercase three-letter day token.
type Weekday string

const (
	Mon Weekday = "mon"
	Tue Weekday = "tue"
	Wed Weekday = "wed"
	Thu Weekday = "thu"
	Fri Weekday = "fri"
	Sat Weekday = "sat"
	Sun Weekday = "sun"
)

// AllWeekdays is the full week in calendar order.
var AllWeekdays = []Weekday{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

var ValidWeekdays = map[Weekday]bool{
	Mon: true, Tue: true, Wed: true, Thu: true, Fri: true, Sat: true, Sun: true,
}

// SyncStatus records how far the operational-post projection of a saved
// work order has progressed.
type SyncStatus string

const (
	SyncNotRequested SyncStatus = "not_requested"
	SyncPending      SyncStatus = "pending"
	SyncSynced       SyncStatus = "synced"
	SyncFailed       SyncStatus = "failed"
)

type OperationalPostStatus string

const (
	OperationalActive OperationalPostStatus = "active"
)

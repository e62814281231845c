package importer

import (
	"strings"

	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/workorder"
)

// Convert transforms a validated ImportSchema into builder seeds, one per
// work order, in file order. Call ValidateImportSchema first; Convert
// assumes the schema is valid. Fields left empty in the file take the
// builder's defaults.
func Convert(schema *ImportSchema) []workorder.Seed {
	seeds := make([]workorder.Seed, 0, len(schema.WorkOrders))
	for i := range schema.WorkOrders {
		seeds = append(seeds, convertWorkOrder(&schema.WorkOrders[i]))
	}
	return seeds
}

func convertWorkOrder(wo *WorkOrderImport) workorder.Seed {
	seed := workorder.Seed{
		ID:                     strings.ToUpper(wo.Code),
		Client:                 strings.TrimSpace(wo.Client),
		Service:                strings.TrimSpace(wo.Service),
		QuotationRef:           wo.QuotationRef,
		AgreementRef:           wo.AgreementRef,
		StartDate:              wo.StartDate,
		EndDate:                wo.EndDate,
		Value:                  string(wo.Value),
		Status:                 domain.WorkOrderStatus(wo.Status),
		BillingCycle:           domain.BillingCycle(wo.BillingCycle),
		BillingRate:            domain.BillingRate(wo.BillingRate),
		InvoiceDueDay:          domain.InvoiceDueDay(wo.InvoiceDueDay),
		GSTInclusive:           wo.GSTInclusive,
		CreateOperationalPosts: wo.CreateOperationalPosts,
		DocumentURL:            wo.DocumentURL,
		ClientApproval:         wo.ClientApproval,
	}

	for _, p := range wo.Posts {
		post := domain.SecurityPost{
			Name:     strings.TrimSpace(p.Name),
			Type:     domain.PostType(p.Type),
			DutyType: domain.DutyType(p.DutyType),
			Location: domain.Location{
				Address: strings.TrimSpace(p.Address),
				Digipin: domain.NormalizeDigipin(p.Digipin),
			},
		}
		for _, s := range p.Staff {
			post.RequiredStaff = append(post.RequiredStaff, convertStaff(s))
		}
		seed.Posts = append(seed.Posts, post)
	}
	return seed
}

func convertStaff(s StaffImport) domain.StaffRequirement {
	def := workorder.DefaultStaff()

	days := def.Days
	if s.Days != nil {
		days = make([]domain.Weekday, 0, len(s.Days))
		for _, d := range s.Days {
			days = append(days, domain.Weekday(strings.ToLower(d)))
		}
	}

	return domain.StaffRequirement{
		Role:      domain.Coalesce(domain.StaffRole(s.Role), def.Role),
		Count:     workorder.CoerceCount(string(s.Count)),
		Shift:     domain.Coalesce(domain.Shift(s.Shift), def.Shift),
		StartTime: domain.Coalesce(s.StartTime, def.StartTime),
		EndTime:   domain.Coalesce(s.EndTime, def.EndTime),
		Days:      days,
	}
}

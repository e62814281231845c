package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/repository"
)

// resolveWorkOrder loads a work order from an identifier which can be:
//   - A work order code such as WO-2025-0042 (case-insensitive)
//   - A full record UUID
//   - A unique record UUID prefix
func resolveWorkOrder(ctx context.Context, app *App, input string) (*domain.WorkOrder, error) {
	if input == "" {
		return nil, fmt.Errorf("work order is required")
	}

	// 1. Code match
	w, err := app.WorkOrders.GetByCode(ctx, input)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 2. Exact record ID
	w, err = app.WorkOrders.Get(ctx, input)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Record ID prefix
	orders, err := app.WorkOrders.List(ctx, repository.WorkOrderFilter{})
	if err != nil {
		return nil, err
	}
	var matches []*domain.WorkOrder
	for _, o := range orders {
		if strings.HasPrefix(o.RecordID, strings.ToLower(input)) {
			matches = append(matches, o)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("work order not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("record ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parsePostIndex turns a 1-based post number into a slice index.
func parsePostIndex(w *domain.WorkOrder, input string) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(w.Posts) {
		return 0, fmt.Errorf("post %q out of range: %s has %d post(s)", input, w.ID, len(w.Posts))
	}
	return n - 1, nil
}

// parseStaffIndex turns a 1-based requirement number on post p into a
// slice index.
func parseStaffIndex(w *domain.WorkOrder, p int, input string) (int, error) {
	staff := w.Posts[p].RequiredStaff
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(staff) {
		return 0, fmt.Errorf("staff requirement %q out of range: post %d has %d", input, p+1, len(staff))
	}
	return n - 1, nil
}

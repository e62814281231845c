package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/safend/workorders/internal/domain"
	"github.com/safend/workorders/internal/importer"
	"github.com/safend/workorders/internal/repository"
	"github.com/safend/workorders/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImportSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		WorkOrders: []importer.WorkOrderImport{
			{
				Client:    "Acme",
				Service:   "Guarding",
				StartDate: "2025-01-01",
				Value:     "1200",
				Posts: []importer.PostImport{
					{Name: "Gate A", Address: "123 Main St", Digipin: "5c88j97ft7"},
					{Name: "Warehouse", Address: "9 Dock Rd", DutyType: "12H", Staff: []importer.StaffImport{
						{Role: "Armed Guard", Count: "2", Shift: "Night"},
					}},
				},
			},
			{
				Code:      "WO-2024-0500",
				Client:    "Globex",
				Service:   "Patrol",
				StartDate: "2024-06-01",
				Posts:     []importer.PostImport{{Name: "Lobby", Address: "1 Tower Sq"}},
			},
		},
	}
}

func TestImport_SubmitsEveryOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(env.svc)

	result, err := svc.ImportFromSchema(ctx, validImportSchema())
	require.NoError(t, err)
	require.Len(t, result.Submitted, 2)
	assert.Equal(t, 0, result.Partial())

	assert.Equal(t, "WO-2025-0001", result.Submitted[0].Code)
	assert.Equal(t, "WO-2024-0500", result.Submitted[1].Code)

	first, err := env.orders.GetByRecordID(ctx, result.Submitted[0].RecordID)
	require.NoError(t, err)
	require.Len(t, first.Posts, 2)
	assert.Equal(t, "P-0001-01", first.Posts[0].Code)
	assert.Equal(t, "P-0001-02", first.Posts[1].Code)
	assert.Equal(t, "5C8-8J9-7FT7", first.Posts[0].Location.Digipin)
	assert.Equal(t, domain.RoleSecurityGuard, first.Posts[0].RequiredStaff[0].Role, "default staff filled in")
	assert.Equal(t, 2, first.Posts[1].RequiredStaff[0].Count)
	assert.Equal(t, "₹1200.00", first.DisplayValue)

	assert.Equal(t, 3, testutil.CountRows(t, env.db, "operational_posts"))
}

func TestImport_ValidationFailureSavesNothing(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.svc)

	schema := validImportSchema()
	schema.WorkOrders[1].Client = ""
	schema.WorkOrders[1].Posts[0].Address = ""

	_, err := svc.ImportFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "work_orders[1].client is required")

	assert.Equal(t, 0, testutil.CountRows(t, env.db, "work_orders"))
	assert.Equal(t, 0, testutil.CountRows(t, env.db, "work_order_sequences"))
}

func TestImport_CountsPartialSyncs(t *testing.T) {
	env := newTestEnv(t)
	env.syncer.err = errSyncDown
	svc := NewImportService(env.svc)

	result, err := svc.ImportFromSchema(context.Background(), validImportSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Partial())

	pending, err := env.orders.List(context.Background(), repository.WorkOrderFilter{
		SyncStatus: []domain.SyncStatus{domain.SyncFailed},
	})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestImport_StopsAtFirstPersistFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewImportService(env.svc)

	schema := validImportSchema()
	schema.WorkOrders[0].Code = "WO-2024-0500"
	schema.WorkOrders[1].Code = "WO-2024-0501"
	_, err := svc.ImportFromSchema(ctx, schema)
	require.NoError(t, err)

	again := validImportSchema()
	again.WorkOrders[0].Code = "WO-2024-0600"
	result, err := svc.ImportFromSchema(ctx, again)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "work order 2 of 2 (WO-2024-0500)")
	require.Len(t, result.Submitted, 1, "orders before the failure stay saved")
	assert.Equal(t, 3, testutil.CountRows(t, env.db, "work_orders"))
}

func TestImport_File(t *testing.T) {
	env := newTestEnv(t)
	svc := NewImportService(env.svc)

	path := filepath.Join(t.TempDir(), "orders.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
work_orders:
  - client: Initech
    service: Event security
    start_date: "2025-05-01"
    create_operational_posts: false
    posts:
      - name: Stage
        address: Fairground
`), 0o644))

	result, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, result.Submitted, 1)
	assert.Equal(t, domain.SyncNotRequested, result.Submitted[0].SyncStatus)
	assert.Equal(t, 0, env.syncer.calls)
}

func TestImport_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, err := NewImportService(env.svc).ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading import file")
}

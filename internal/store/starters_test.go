package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prlsite/starters/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Starter{}, &models.Client{}))
	return db
}

func testStarter(employee string) models.Starter {
	return models.Starter{
		SupplierName:    "PRL Site Solutions",
		SupplierContact: "Office",
		SupplierAddress: "259 Wallasey village\nWallasey\nCH45 3LR",
		ClientName:      "Acme Ltd",
		ClientContact:   "Jane",
		ClientAddress:   "1 Road",
		EmployeeName:    employee,
		Address:         "2 Lane\nTown",
		RolePosition:    "Labourer",
		Department:      "Site",
		StartDate:       "2025-06-03",
		OfficeLocation:  "Wallasey",
		SalaryDetails:   "£12/h",
		GeneratedDate:   "2025-06-01",
	}
}

func TestInsertAssignsAscendingIDs(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	id1, err := s.Insert(ctx, ptr(testStarter("A")))
	require.NoError(t, err)
	id2, err := s.Insert(ctx, ptr(testStarter("B")))
	require.NoError(t, err)
	assert.Equal(t, id1+1, id2)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].EmployeeName)
	assert.Equal(t, "B", recs[1].EmployeeName)
}

func ptr(s models.Starter) *models.Starter { return &s }

func TestInsertStampsGeneratedDate(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	rec := testStarter("A")
	rec.GeneratedDate = ""
	_, err := s.Insert(context.Background(), &rec)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, rec.GeneratedDate)
}

func TestInsertNormalizesFields(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	rec := testStarter("A")
	rec.Address = "2 Lane\r\nTown"
	rec.StartDate = "03 June 2025"
	id, err := s.Insert(context.Background(), &rec)
	require.NoError(t, err)

	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "2 Lane\nTown", got.Address)
	assert.Equal(t, "2025-06-03", got.StartDate)
}

func TestUpdateReplacesAllFields(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()
	id, err := s.Insert(ctx, ptr(testStarter("A")))
	require.NoError(t, err)

	edited := testStarter("A")
	edited.Department = "Office"
	require.NoError(t, s.Update(ctx, id, edited))

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Office", got.Department)
	assert.Equal(t, id, got.ID)
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	err := s.Update(context.Background(), 999, testStarter("X"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIdempotent(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()
	id, err := s.Insert(ctx, ptr(testStarter("A")))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, 12345))
}

func TestDeduplicateKeepsMinID(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	idA, err := s.Insert(ctx, ptr(testStarter("J. Smith")))
	require.NoError(t, err)
	_, err = s.Insert(ctx, ptr(testStarter("J. Smith")))
	require.NoError(t, err)
	_, err = s.Insert(ctx, ptr(testStarter("Other")))
	require.NoError(t, err)

	removed, err := s.Deduplicate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, idA, recs[0].ID)

	// second run is a no-op
	removed, err = s.Deduplicate(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeduplicateTreatsNullAsEmpty(t *testing.T) {
	db := setupTestDB(t)
	s := NewStarterStore(db, zap.NewNop())
	ctx := context.Background()

	rec := testStarter("A")
	rec.NINumber = ""
	rec.ProbationLength = ""
	id, err := s.Insert(ctx, &rec)
	require.NoError(t, err)

	// legacy row: same values but NULL where the new row has ""
	require.NoError(t, db.Exec(`INSERT INTO starters (
		supplier_name, supplier_contact, supplier_address,
		client_name, client_contact, client_address,
		employee_name, address, ni_number,
		role_position, department, start_date,
		office_location, salary_details, probation_length,
		emergency_contact, additional_info, generated_date
	) VALUES (?,?,?,?,?,?,?,?,NULL,?,?,?,?,?,NULL,?,?,?)`,
		rec.SupplierName, rec.SupplierContact, rec.SupplierAddress,
		rec.ClientName, rec.ClientContact, rec.ClientAddress,
		rec.EmployeeName, rec.Address,
		rec.RolePosition, rec.Department, rec.StartDate,
		rec.OfficeLocation, rec.SalaryDetails,
		rec.EmergencyContact, rec.AdditionalInfo, rec.GeneratedDate,
	).Error)

	removed, err := s.Deduplicate(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, id, recs[0].ID)
}

func TestReconcileDeletesMissingRows(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()

	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		id, err := s.Insert(ctx, ptr(testStarter(name)))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	recs, err := s.List(ctx)
	require.NoError(t, err)
	// keep rows 1 and 3, drop row 2
	edited := []models.Starter{recs[0], recs[2]}
	sum, err := s.Reconcile(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, ReconcileSummary{Updated: 2, Deleted: 1}, sum)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, ids[0], after[0].ID)
	assert.Equal(t, ids[2], after[1].ID)
}

func TestReconcileRoundTripChangesOnlyEditedField(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()
	for _, name := range []string{"A", "B"} {
		_, err := s.Insert(ctx, ptr(testStarter(name)))
		require.NoError(t, err)
	}

	before, err := s.List(ctx)
	require.NoError(t, err)

	edited := append([]models.Starter(nil), before...)
	edited[1].OfficeLocation = "Liverpool"
	_, err = s.Reconcile(ctx, edited)
	require.NoError(t, err)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, "Liverpool", after[1].OfficeLocation)
	after[1].OfficeLocation = before[1].OfficeLocation
	assert.Equal(t, before[1], after[1])
}

func TestReconcileInsertsNewRows(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()
	id, err := s.Insert(ctx, ptr(testStarter("A")))
	require.NoError(t, err)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	rows := append(recs, testStarter("New"))
	sum, err := s.Reconcile(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, ReconcileSummary{Inserted: 1, Updated: 1}, sum)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, id, after[0].ID)
	assert.Greater(t, after[1].ID, id)
}

func TestReconcileSkipsUnknownIDRow(t *testing.T) {
	s := NewStarterStore(setupTestDB(t), zap.NewNop())
	ctx := context.Background()
	id, err := s.Insert(ctx, ptr(testStarter("A")))
	require.NoError(t, err)

	recs, err := s.List(ctx)
	require.NoError(t, err)
	edited := recs[0]
	edited.Department = "Office"
	ghost := testStarter("Ghost")
	ghost.ID = 999

	sum, err := s.Reconcile(ctx, []models.Starter{edited, ghost})
	require.NoError(t, err)
	assert.Equal(t, ReconcileSummary{Updated: 1, Skipped: 1}, sum)

	// the valid edit applied and the ghost row was not resurrected
	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, id, after[0].ID)
	assert.Equal(t, "Office", after[0].Department)
}

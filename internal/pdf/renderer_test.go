package pdf

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prlsite/starters/internal/models"
)

func sampleStarter(id uint, employee string) models.Starter {
	return models.Starter{
		ID:               id,
		SupplierName:     "PRL Site Solutions",
		SupplierContact:  "Office",
		SupplierAddress:  "259 Wallasey village\nWallasey\nCH45 3LR",
		ClientName:       "Acme Ltd",
		ClientContact:    "Jane",
		ClientAddress:    "1 Road",
		EmployeeName:     employee,
		Address:          "2 Lane\nTown",
		NINumber:         "QQ123456C",
		RolePosition:     "Labourer",
		Department:       "Site",
		StartDate:        "2025-06-03",
		OfficeLocation:   "Wallasey",
		SalaryDetails:    "£12/h",
		ProbationLength:  "3 months",
		EmergencyContact: "Pat Smith\n0151 000 000",
		AdditionalInfo:   "PPE provided",
		GeneratedDate:    "2025-06-01",
	}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestNewRendererRejectsBadAssets(t *testing.T) {
	_, err := newRendererWithLogo(nil)
	assert.ErrorIs(t, err, ErrRenderUnavailable)

	_, err = newRendererWithLogo([]byte("not a png"))
	assert.ErrorIs(t, err, ErrRenderUnavailable)
}

func TestUnavailableRendererFailsEveryCall(t *testing.T) {
	r := Unavailable(nil)
	_, err := r.Single(sampleStarter(1, "X"))
	assert.ErrorIs(t, err, ErrRenderUnavailable)
	_, err = r.TabularReport(nil)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
}

func TestSingleProducesPDF(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	b, err := r.Single(sampleStarter(1, "J. Smith"))
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestTabularReportHandlesZeroRecords(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	b, err := r.TabularReport(nil)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestTabularReportManyRecords(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	recs := make([]models.Starter, 0, 40)
	for i := 0; i < 40; i++ {
		recs = append(recs, sampleStarter(uint(i+1), "Employee"))
	}
	b, err := r.TabularReport(recs)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))

	// each extra record must add content to the document
	smaller, err := r.TabularReport(recs[:1])
	require.NoError(t, err)
	assert.Greater(t, len(b), len(smaller))
}

func TestTabularReportOneBodyRowPerRecord(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	recs := make([]models.Starter, 0, 40)
	for i := 0; i < 40; i++ {
		recs = append(recs, sampleStarter(uint(i+1), "Employee"))
	}
	assert.Empty(t, r.bodyRows(nil, reportColumns()))
	assert.Len(t, r.bodyRows(recs, reportColumns()), 40)
}

func TestReportColumnsExcludeSupplier(t *testing.T) {
	for _, c := range reportColumns() {
		assert.False(t, models.SupplierColumns[c], "supplier column %q leaked into the report", c)
	}
	assert.Equal(t, "id", reportColumns()[0])
	// every non-supplier storage column must be present
	assert.Len(t, reportColumns(), 1+len(models.Columns)-len(models.SupplierColumns))
}

func TestRendererIsConcurrencySafe(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if n%2 == 0 {
				_, e := r.Single(sampleStarter(uint(n), "Concurrent"))
				errs <- e
			} else {
				_, e := r.TabularReport([]models.Starter{sampleStarter(uint(n), "Concurrent")})
				errs <- e
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		assert.NoError(t, e)
	}
}

package report_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/report"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// fakeReportRepo captura el filtro recibido para verificar la normalización.
type fakeReportRepo struct {
	gotFilter repository.ReportFilter
}

func (f *fakeReportRepo) Aggregate(_ context.Context, filter repository.ReportFilter) ([]repository.ShipmentAggregate, error) {
	f.gotFilter = filter
	return nil, nil
}

func (f *fakeReportRepo) DistinctPersonnel(context.Context) ([]string, error) {
	return []string{"BEKIR", "CELAL FATIH"}, nil
}

func (f *fakeReportRepo) DistinctItems(context.Context) ([]string, []string, error) {
	return []string{"A-100"}, []string{"TORNILLO"}, nil
}

// El filtro llega a la consulta ya normalizado: un dropdown con otra caja o
// espacios encuentra las mismas filas.
func TestAggregate_NormalizaLosFiltros(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := report.NewUseCase(repo, nil, nil, nil)

	_, err := uc.Aggregate(context.Background(), repository.ReportFilter{
		Personnel: "  bekir ",
		Store:     "central",
		ItemNo:    " a-100",
		ItemName:  "tornillo ",
	})
	require.NoError(t, err)

	assert.Equal(t, "BEKIR", repo.gotFilter.Personnel)
	assert.Equal(t, "CENTRAL", repo.gotFilter.Store)
	assert.Equal(t, "A-100", repo.gotFilter.ItemNo)
	assert.Equal(t, "TORNILLO", repo.gotFilter.ItemName)
}

func TestAggregate_FiltroVacioSigueVacio(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := report.NewUseCase(repo, nil, nil, nil)

	_, err := uc.Aggregate(context.Background(), repository.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, repository.ReportFilter{}, repo.gotFilter, "vacío significa sin filtro, no filtro por cadena vacía")
}

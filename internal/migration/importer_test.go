package migration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"enertika/internal/catalog"
	"enertika/internal/config"
	"enertika/internal/domain"
	"enertika/internal/migration"
	"enertika/mocks"
)

var (
	systemUser = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	anaUser    = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

type importDeps struct {
	catalogs      *mocks.MockCatalogService
	clients       *mocks.MockClientRepo
	opportunities *mocks.MockOpportunityRepo
	created       []*domain.Opportunity
	sites         []*domain.OpportunitySite
}

func newImporter() (*migration.Importer, *importDeps) {
	d := &importDeps{
		catalogs:      new(mocks.MockCatalogService),
		clients:       new(mocks.MockClientRepo),
		opportunities: new(mocks.MockOpportunityRepo),
	}

	snap := catalog.NewSnapshot(map[domain.CatalogKind][]domain.CatalogEntry{
		domain.CatalogTechnologies: {{ID: 1, Name: "Solar FV", Code: "FV"}},
		domain.CatalogRequestTypes: {
			{ID: 10, Name: "COTIZACIÓN", Code: "COT"},
			{ID: 11, Name: "ACTUALIZACIÓN DE OFERTA", Code: "ACT"},
		},
		domain.CatalogStatuses: {
			{ID: 20, Name: "EN PROCESO"},
			{ID: 21, Name: "ENTREGADO"},
		},
		domain.CatalogCloseReasons: {{ID: 30, Name: "PRECIO"}},
	})
	users := catalog.NewUserDirectory([]domain.DirectoryUser{
		{ID: systemUser, Name: "Sistema Migración"},
		{ID: anaUser, Name: "Ana López"},
	}, systemUser)

	d.catalogs.On("Snapshot", mock.Anything).Return(snap, nil)
	d.catalogs.On("Directory", mock.Anything, "Sistema").Return(users, nil)

	cfg := config.MigrationConfig{SystemUserName: "Sistema", Timezone: "UTC"}
	return migration.NewImporter(d.catalogs, d.clients, d.opportunities, &cfg), d
}

func (d *importDeps) captureOpportunities(err error) {
	d.opportunities.On("CreateWithSite", mock.Anything, mock.AnythingOfType("*domain.Opportunity"), mock.AnythingOfType("*domain.OpportunitySite")).
		Run(func(args mock.Arguments) {
			d.created = append(d.created, args.Get(1).(*domain.Opportunity))
			d.sites = append(d.sites, args.Get(2).(*domain.OpportunitySite))
		}).Return(err)
}

func quoteRow() migration.Row {
	return migration.NewRow(0, map[string]string{
		"fecha_solicitud":          "45672",
		"cliente_nombre":           "St. Regis, S.A.",
		"nombre_proyecto":          "Comisariato",
		"id_tecnologia":            "FV",
		"id_tipo_solicitud":        "Cotización",
		"id_estatus_global":        "En proceso",
		"solicitado_por":           "ana lopez",
		"deadline_calculado":       "20/01/2025",
		"fecha_entrega_simulacion": "22/01/2025",
		"es_licitacion":            "Sí",
	})
}

func revisionRow() migration.Row {
	return migration.NewRow(1, map[string]string{
		"fecha_solicitud":        "01/02/2025",
		"cliente_nombre":         "ST REGIS SA",
		"nombre_proyecto":        "COMISARIATO",
		"id_tecnologia":          "fv",
		"id_tipo_solicitud":      "Actualización de oferta",
		"id_estatus_global":      "Entregado",
		"Motivo Cancelacion":     "precio",
		"kpi_status_sla_interno": "ON_TIME",
		"kpi_status_compromiso":  "ON_TIME",
		"prioridad":              "Alta",
	})
}

func TestImporter_Run_ImportsRowsWithParent(t *testing.T) {
	im, d := newImporter()
	d.captureOpportunities(nil)

	var clientID uuid.UUID
	d.clients.On("FindByNormalizedName", mock.Anything, "ST REGIS SA").Return(nil, domain.ErrNotFound).Once()
	d.clients.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.LegalName == "ST REGIS SA"
	})).Run(func(args mock.Arguments) {
		clientID = args.Get(1).(*domain.Client).ID
	}).Return(nil).Once()

	summary, err := im.Run(context.Background(), []migration.Row{quoteRow(), revisionRow()}, migration.Options{})

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 1, summary.ClientsCreated)
	require.Len(t, d.created, 2)

	first := d.created[0]
	assert.Equal(t, "OP-250115-STREGISS-001", first.OpID)
	assert.Equal(t, "[COTIZACIÓN] St. Regis, S.A. - Comisariato", first.Title)
	assert.Equal(t, int64(1), first.TechnologyID)
	assert.Equal(t, int64(10), first.RequestTypeID)
	assert.Equal(t, int64(20), first.StatusID)
	assert.Nil(t, first.CloseReasonID)
	require.NotNil(t, first.ClientID)
	assert.Equal(t, clientID, *first.ClientID)
	assert.Equal(t, systemUser, first.CreatedBy)
	require.NotNil(t, first.RequestedByID)
	assert.Equal(t, anaUser, *first.RequestedByID)
	assert.Nil(t, first.SimulationOwnerID)
	require.NotNil(t, first.KPIInternal)
	assert.Equal(t, domain.KPILate, *first.KPIInternal)
	assert.Equal(t, domain.KPILate, *first.KPICommitment)
	assert.True(t, first.IsTender)
	assert.False(t, first.AfterHours)
	assert.Equal(t, "Normal", first.Priority)
	assert.Equal(t, "NORMAL", first.Classification)
	assert.Equal(t, "ENERTIKA", first.SalesChannel)
	assert.Equal(t, 1, first.SiteCount)
	assert.Nil(t, first.ParentID)

	site := d.sites[0]
	assert.Equal(t, first.ID, site.OpportunityID)
	assert.Equal(t, "Comisariato", site.Name)
	assert.Equal(t, "Sin dirección", site.Address)
	assert.Equal(t, first.DeliveredAt, site.ClosedAt)

	second := d.created[1]
	assert.Equal(t, "OP-250201-STREGISS-002", second.OpID)
	assert.Equal(t, int64(11), second.RequestTypeID)
	require.NotNil(t, second.ParentID)
	assert.Equal(t, first.ID, *second.ParentID)
	require.NotNil(t, second.CloseReasonID)
	assert.Equal(t, int64(30), *second.CloseReasonID)
	assert.Equal(t, "ON_TIME", *second.KPIInternal)
	assert.Equal(t, "Alta", second.Priority)
	assert.Equal(t, clientID, *second.ClientID)

	d.clients.AssertExpectations(t)
}

func TestImporter_Run_FailingRowsDoNotStopTheRun(t *testing.T) {
	im, d := newImporter()

	noDate := migration.NewRow(0, map[string]string{"cliente_nombre": "ACME", "id_tecnologia": "FV"})
	unknownTech := migration.NewRow(1, map[string]string{
		"fecha_solicitud":   "15/01/2025",
		"id_tecnologia":     "Eólica",
		"id_tipo_solicitud": "Cotización",
		"id_estatus_global": "",
	})
	storeFails := quoteRow()

	d.clients.On("FindByNormalizedName", mock.Anything, "ST REGIS SA").Return(&domain.Client{ID: uuid.New()}, nil)
	d.captureOpportunities(errors.New("unique violation"))

	summary, err := im.Run(context.Background(), []migration.Row{noDate, unknownTech, storeFails}, migration.Options{})

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 0, summary.Succeeded)
	assert.Equal(t, 3, summary.Failed)
	require.Len(t, summary.Failures, 3)
	assert.Equal(t, "invalid request date", summary.Failures[0].Reason)
	assert.Equal(t, "unresolved catalogs: technology, status", summary.Failures[1].Reason)
	assert.Equal(t, "unique violation", summary.Failures[2].Reason)
	assert.Equal(t, 0, summary.ClientsCreated)
}

func TestImporter_Run_DryRunWritesNothing(t *testing.T) {
	im, d := newImporter()
	d.clients.On("FindByNormalizedName", mock.Anything, "ST REGIS SA").Return(nil, domain.ErrNotFound).Once()

	summary, err := im.Run(context.Background(), []migration.Row{quoteRow(), revisionRow()}, migration.Options{DryRun: true})

	require.NoError(t, err)
	assert.True(t, summary.DryRun)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.ClientsCreated)
	d.clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.opportunities.AssertNotCalled(t, "CreateWithSite", mock.Anything, mock.Anything, mock.Anything)
}

func TestImporter_Run_ClientLookupError(t *testing.T) {
	im, d := newImporter()
	d.clients.On("FindByNormalizedName", mock.Anything, "ST REGIS SA").Return(nil, errors.New("conn reset"))

	summary, err := im.Run(context.Background(), []migration.Row{quoteRow()}, migration.Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "conn reset", summary.Failures[0].Reason)
}

func TestImporter_Run_BlankClientHasNoClientID(t *testing.T) {
	im, d := newImporter()
	d.captureOpportunities(nil)

	row := migration.NewRow(0, map[string]string{
		"fecha_solicitud":   "15/01/2025",
		"id_tecnologia":     "FV",
		"id_tipo_solicitud": "COT",
		"id_estatus_global": "EN PROCESO",
	})

	summary, err := im.Run(context.Background(), []migration.Row{row}, migration.Options{})

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	require.Len(t, d.created, 1)
	assert.Nil(t, d.created[0].ClientID)
	assert.Equal(t, "OP-250115-CLIENTE-001", d.created[0].OpID)
	assert.Equal(t, "Sitio Principal", d.sites[0].Name)
	assert.Nil(t, d.created[0].KPIInternal)
	d.clients.AssertNotCalled(t, "FindByNormalizedName", mock.Anything, mock.Anything)
}

func TestImporter_Run_CatalogLoadFailureAborts(t *testing.T) {
	d := &importDeps{
		catalogs:      new(mocks.MockCatalogService),
		clients:       new(mocks.MockClientRepo),
		opportunities: new(mocks.MockOpportunityRepo),
	}
	d.catalogs.On("Snapshot", mock.Anything).Return(nil, errors.New("db down"))
	cfg := config.MigrationConfig{SystemUserName: "Sistema", Timezone: "UTC"}
	im := migration.NewImporter(d.catalogs, d.clients, d.opportunities, &cfg)

	_, err := im.Run(context.Background(), []migration.Row{quoteRow()}, migration.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

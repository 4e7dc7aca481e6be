package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"enertika/internal/catalog"
	"enertika/internal/config"
	"enertika/internal/domain"
	"enertika/internal/logger"
	"enertika/internal/port"
	"enertika/internal/service"
	"enertika/internal/textnorm"
)

// Spreadsheet columns, matched case-insensitively.
const (
	colRequestDate     = "fecha_solicitud"
	colClient          = "cliente_nombre"
	colProject         = "nombre_proyecto"
	colTechnology      = "id_tecnologia"
	colRequestType     = "id_tipo_solicitud"
	colStatus          = "id_estatus_global"
	colCloseReason     = "motivo cancelacion"
	colSimulationOwner = "responsable_simulacion_id"
	colRequestedBy     = "solicitado_por"
	colDeadline        = "deadline_calculado"
	colNegotiated      = "deadline_negociado"
	colDelivered       = "fecha_entrega_simulacion"
	colKPIInternal     = "kpi_status_sla_interno"
	colKPICommitment   = "kpi_status_compromiso"
	colAfterHours      = "es_fuera_horario"
	colTender          = "es_licitacion"
	colPriority        = "prioridad"
	colClassification  = "clasificacion_solicitud"
	colSalesChannel    = "canal_venta"
	colAddress         = "direccion_obra"
)

const (
	defaultClient         = "CLIENTE"
	defaultRequestType    = "GENERAL"
	defaultPriority       = "Normal"
	defaultClassification = "NORMAL"
	defaultSalesChannel   = "ENERTIKA"
	defaultSiteName       = "Sitio Principal"
	defaultSiteAddress    = "Sin dirección"
	revisionMarker        = "ACTUALIZACION"
)

var errInvalidRequestDate = errors.New("invalid request date")

// Options controls an import run.
type Options struct {
	// DryRun resolves every row without writing clients or opportunities.
	DryRun bool
}

// RowFailure records why a row was not imported.
type RowFailure struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Summary reports the outcome of an import run.
type Summary struct {
	Total          int          `json:"total"`
	Succeeded      int          `json:"succeeded"`
	Failed         int          `json:"failed"`
	ClientsCreated int          `json:"clients_created"`
	DryRun         bool         `json:"dry_run"`
	Failures       []RowFailure `json:"failures"`
}

// Importer turns spreadsheet rows into opportunities with one site each.
type Importer struct {
	catalogs      service.CatalogService
	clients       port.ClientRepository
	opportunities port.OpportunityRepository
	cfg           *config.MigrationConfig
	log           zerolog.Logger
}

// NewImporter creates an Importer.
func NewImporter(
	catalogs service.CatalogService,
	clients port.ClientRepository,
	opportunities port.OpportunityRepository,
	cfg *config.MigrationConfig,
) *Importer {
	return &Importer{
		catalogs:      catalogs,
		clients:       clients,
		opportunities: opportunities,
		cfg:           cfg,
		log:           logger.WithComponent("opportunity_import"),
	}
}

type importedOpportunity struct {
	id        uuid.UUID
	opID      string
	client    string
	project   string
	requested time.Time
}

// runState is the per-run cache shared by every row.
type runState struct {
	opts     Options
	snap     *catalog.Snapshot
	users    *catalog.UserDirectory
	loc      *time.Location
	clients  map[string]uuid.UUID
	imported []importedOpportunity
	summary  *Summary
}

// Run imports rows in order. A failing row is logged and counted and the run
// continues; only catalog loading or cancellation aborts it.
func (im *Importer) Run(ctx context.Context, rows []Row, opts Options) (*Summary, error) {
	snap, err := im.catalogs.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration.Run catalogs: %w", err)
	}
	users, err := im.catalogs.Directory(ctx, im.cfg.SystemUserName)
	if err != nil {
		return nil, fmt.Errorf("migration.Run users: %w", err)
	}

	st := &runState{
		opts:    opts,
		snap:    snap,
		users:   users,
		loc:     im.cfg.Location(),
		clients: make(map[string]uuid.UUID),
		summary: &Summary{Total: len(rows), DryRun: opts.DryRun, Failures: []RowFailure{}},
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return st.summary, err
		}
		opID, err := im.importRow(ctx, st, row)
		if err != nil {
			st.summary.Failed++
			st.summary.Failures = append(st.summary.Failures, RowFailure{Row: row.Index, Reason: err.Error()})
			im.log.Warn().Int("row", row.Index).Err(err).Msg("row not imported")
			continue
		}
		st.summary.Succeeded++
		im.log.Info().Int("row", row.Index).Str("op_id", opID).Bool("dry_run", opts.DryRun).Msg("row imported")
	}

	im.log.Info().
		Int("total", st.summary.Total).
		Int("succeeded", st.summary.Succeeded).
		Int("failed", st.summary.Failed).
		Int("clients_created", st.summary.ClientsCreated).
		Bool("dry_run", opts.DryRun).
		Msg("opportunity import finished")
	return st.summary, nil
}

func (im *Importer) importRow(ctx context.Context, st *runState, row Row) (string, error) {
	requested := parseDate(row.Get(colRequestDate), st.loc)
	if requested == nil {
		return "", errInvalidRequestDate
	}

	clientName := row.Get(colClient)
	project := row.Get(colProject)
	requestType := row.Get(colRequestType)

	technologyID, _ := st.snap.Resolve(domain.CatalogTechnologies, row.Get(colTechnology))
	requestTypeID, _ := st.snap.Resolve(domain.CatalogRequestTypes, requestType)
	statusID, _ := st.snap.Resolve(domain.CatalogStatuses, row.Get(colStatus))
	var missing []string
	if technologyID == 0 {
		missing = append(missing, "technology")
	}
	if requestTypeID == 0 {
		missing = append(missing, "request type")
	}
	if statusID == 0 {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("unresolved catalogs: %s", strings.Join(missing, ", "))
	}

	var closeReasonID *int64
	if id, tier := st.snap.Resolve(domain.CatalogCloseReasons, row.Get(colCloseReason)); tier != catalog.TierNone {
		closeReasonID = &id
	}

	clientID, err := im.clientFor(ctx, st, clientName)
	if err != nil {
		return "", err
	}

	computed := parseDate(row.Get(colDeadline), st.loc)
	negotiated := parseDate(row.Get(colNegotiated), st.loc)
	delivered := parseDate(row.Get(colDelivered), st.loc)

	kpiInternal := optionalString(row.Get(colKPIInternal))
	kpiCommitment := optionalString(row.Get(colKPICommitment))
	if kpiInternal == nil || kpiCommitment == nil {
		kpiInternal, kpiCommitment = computeKPIs(delivered, computed, negotiated)
	}

	opp := &domain.Opportunity{
		ID:                 uuid.New(),
		OpID:               buildOpID(*requested, orDefault(clientName, defaultClient), row.Index+1),
		Title:              buildTitle(clientName, project, orDefault(requestType, defaultRequestType)),
		ProjectName:        project,
		ClientName:         clientName,
		ClientID:           clientID,
		CreatedBy:          st.users.System(),
		SimulationOwnerID:  st.userRef(row.Get(colSimulationOwner)),
		RequestedByID:      st.userRef(row.Get(colRequestedBy)),
		RequestedByName:    row.Get(colRequestedBy),
		SalesChannel:       orDefault(row.Get(colSalesChannel), defaultSalesChannel),
		TechnologyID:       technologyID,
		RequestTypeID:      requestTypeID,
		StatusID:           statusID,
		CloseReasonID:      closeReasonID,
		RequestedAt:        *requested,
		DeadlineComputed:   computed,
		DeadlineNegotiated: negotiated,
		DeliveredAt:        delivered,
		KPIInternal:        kpiInternal,
		KPICommitment:      kpiCommitment,
		ParentID:           st.parentOf(clientName, project, requestType, *requested),
		AfterHours:         parseBool(row.Get(colAfterHours)),
		IsTender:           parseBool(row.Get(colTender)),
		Priority:           orDefault(row.Get(colPriority), defaultPriority),
		Classification:     orDefault(row.Get(colClassification), defaultClassification),
		SiteCount:          1,
	}
	site := &domain.OpportunitySite{
		ID:            uuid.New(),
		OpportunityID: opp.ID,
		Name:          orDefault(project, defaultSiteName),
		Address:       orDefault(row.Get(colAddress), defaultSiteAddress),
		StatusID:      statusID,
		RequestTypeID: requestTypeID,
		ClosedAt:      delivered,
		KPIInternal:   kpiInternal,
		KPICommitment: kpiCommitment,
	}

	if !st.opts.DryRun {
		if err := im.opportunities.CreateWithSite(ctx, opp, site); err != nil {
			return "", err
		}
	}

	st.imported = append(st.imported, importedOpportunity{
		id:        opp.ID,
		opID:      opp.OpID,
		client:    clientName,
		project:   project,
		requested: *requested,
	})
	return opp.OpID, nil
}

// clientFor returns the client registered under the normalised name,
// creating it on first sight. A blank name yields no client.
func (im *Importer) clientFor(ctx context.Context, st *runState, name string) (*uuid.UUID, error) {
	clean := cleanClientName(name)
	if clean == "" {
		return nil, nil
	}
	if id, ok := st.clients[clean]; ok {
		return &id, nil
	}

	existing, err := im.clients.FindByNormalizedName(ctx, clean)
	if err == nil {
		st.clients[clean] = existing.ID
		return &existing.ID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c := &domain.Client{ID: uuid.New(), LegalName: clean}
	if !st.opts.DryRun {
		if err := im.clients.Create(ctx, c); err != nil {
			return nil, err
		}
	}
	st.clients[clean] = c.ID
	st.summary.ClientsCreated++
	im.log.Info().Str("input", name).Str("client", clean).Msg("client created")
	return &c.ID, nil
}

// userRef resolves a person name; blank names stay unassigned.
func (st *runState) userRef(name string) *uuid.UUID {
	id, tier := st.users.Resolve(name)
	if tier == catalog.TierNone {
		return nil
	}
	return &id
}

// parentOf finds an earlier opportunity of this run for the same client and
// project when the request type marks a revision.
func (st *runState) parentOf(client, project, requestType string, requested time.Time) *uuid.UUID {
	if client == "" || project == "" || !strings.Contains(textnorm.Fold(requestType), revisionMarker) {
		return nil
	}
	clientKey, projectKey := textnorm.Fold(cleanClientName(client)), textnorm.Fold(project)
	for i := range st.imported {
		prev := &st.imported[i]
		if textnorm.Fold(cleanClientName(prev.client)) == clientKey &&
			textnorm.Fold(prev.project) == projectKey &&
			prev.requested.Before(requested) {
			return &prev.id
		}
	}
	return nil
}

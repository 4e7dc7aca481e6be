package domain

import (
	"time"

	"github.com/google/uuid"
)

// Delivery KPI outcomes.
const (
	KPIOnTime = "ON_TIME"
	KPILate   = "LATE"
)

// Client is a customer identified by its normalised legal name.
type Client struct {
	ID        uuid.UUID `db:"id"`
	LegalName string    `db:"legal_name"`
}

// Opportunity is a commercial opportunity imported from the legacy spreadsheet.
type Opportunity struct {
	ID                 uuid.UUID  `db:"id"`
	OpID               string     `db:"op_id"`
	Title              string     `db:"title"`
	ProjectName        string     `db:"project_name"`
	ClientName         string     `db:"client_name"`
	ClientID           *uuid.UUID `db:"client_id"`
	CreatedBy          uuid.UUID  `db:"created_by"`
	SimulationOwnerID  *uuid.UUID `db:"simulation_owner_id"`
	RequestedByID      *uuid.UUID `db:"requested_by_id"`
	RequestedByName    string     `db:"requested_by_name"`
	SalesChannel       string     `db:"sales_channel"`
	TechnologyID       int64      `db:"technology_id"`
	RequestTypeID      int64      `db:"request_type_id"`
	StatusID           int64      `db:"status_id"`
	CloseReasonID      *int64     `db:"close_reason_id"`
	RequestedAt        time.Time  `db:"requested_at"`
	DeadlineComputed   *time.Time `db:"deadline_computed"`
	DeadlineNegotiated *time.Time `db:"deadline_negotiated"`
	DeliveredAt        *time.Time `db:"delivered_at"`
	KPIInternal        *string    `db:"kpi_internal"`
	KPICommitment      *string    `db:"kpi_commitment"`
	ParentID           *uuid.UUID `db:"parent_id"`
	AfterHours         bool       `db:"after_hours"`
	IsTender           bool       `db:"is_tender"`
	Priority           string     `db:"priority"`
	Classification     string     `db:"classification"`
	SiteCount          int        `db:"site_count"`
}

// OpportunitySite is the single site created alongside an imported opportunity.
type OpportunitySite struct {
	ID            uuid.UUID  `db:"id"`
	OpportunityID uuid.UUID  `db:"opportunity_id"`
	Name          string     `db:"name"`
	Address       string     `db:"address"`
	StatusID      int64      `db:"status_id"`
	RequestTypeID int64      `db:"request_type_id"`
	ClosedAt      *time.Time `db:"closed_at"`
	KPIInternal   *string    `db:"kpi_internal"`
	KPICommitment *string    `db:"kpi_commitment"`
}

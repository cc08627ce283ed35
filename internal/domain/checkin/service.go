package checkin

import "context"

type CheckinService interface {
	// IngestEvent records a raw checkin log: resolves the covering shift
	// occurrence, enforces the geofence and duplicate guards, and tags the
	// event. Ingestion for the same employee is serialized. The event's
	// company is taken from the employee record, since punch devices
	// authenticate with a pre-shared key rather than a tenant token.
	IngestEvent(ctx context.Context, req CreateEventRequest) (EventResponse, error)

	GetEvent(ctx context.Context, id string, companyID string) (EventResponse, error)

	ListEvents(ctx context.Context, filter EventFilter, companyID string) (ListEventResponse, error)
}

package ingest

import "context"

type Repository interface {
	Insert(ctx context.Context, ing *Ingestion) error
	Get(ctx context.Context, id int) (*Ingestion, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Ingestion, error)
	FetchPending(ctx context.Context) (*Ingestion, error)
	SetStatus(ctx context.Context, id int, status, errorReason string) error
	SaveResult(ctx context.Context, ing *Ingestion) error
	Retry(ctx context.Context, id int) error
}

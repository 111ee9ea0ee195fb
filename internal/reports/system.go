package reports

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/pkg/pagination"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

// System defines the public contract for report domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	// Submit publishes sub and records it, replacing any earlier report
	// for the same team and period.
	Submit(ctx context.Context, sub form.Submission) (*Report, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Report], error)

	Find(ctx context.Context, id uuid.UUID) (*Report, error)
	FindByKey(ctx context.Context, key string) (*Report, error)

	// Download returns the stored document of the report with id.
	// The caller must close the blob body.
	Download(ctx context.Context, id uuid.UUID) (*Report, *storage.Blob, error)

	Preview(sub form.Submission) (*Preview, error)
}

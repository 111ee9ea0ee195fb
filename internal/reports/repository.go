package reports

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/spotlight/internal/form"
	"github.com/JaimeStill/spotlight/pkg/pagination"
	"github.com/JaimeStill/spotlight/pkg/pdf"
	"github.com/JaimeStill/spotlight/pkg/query"
	"github.com/JaimeStill/spotlight/pkg/repository"
	"github.com/JaimeStill/spotlight/pkg/storage"
)

const upsertReport = `
	INSERT INTO reports(id, team, period, filename, storage_key, url, content_type, size_bytes, page_count, submission)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (storage_key) DO UPDATE SET
		team = EXCLUDED.team,
		period = EXCLUDED.period,
		filename = EXCLUDED.filename,
		url = EXCLUDED.url,
		content_type = EXCLUDED.content_type,
		size_bytes = EXCLUDED.size_bytes,
		page_count = EXCLUDED.page_count,
		submission = EXCLUDED.submission,
		published_at = NOW()
	RETURNING id, team, period, filename, storage_key, url, content_type, size_bytes, page_count, submission, created_at, published_at`

type repo struct {
	db         *sql.DB
	storage    storage.System
	pipeline   *Pipeline
	folder     string
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a report repository implementing the System interface.
// Documents are published by pipeline into folder of store.
func New(
	db *sql.DB,
	store storage.System,
	pipeline *Pipeline,
	folder string,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		pipeline:   pipeline,
		folder:     folder,
		logger:     logger.With("system", "reports"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) Submit(ctx context.Context, sub form.Submission) (*Report, error) {
	pub, err := r.pipeline.Publish(ctx, sub)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}

	key := storage.Key(r.folder, pub.Filename)
	args := []any{
		uuid.New(),
		pub.Team,
		pub.Period,
		pub.Filename,
		key,
		pub.Link,
		pdf.ContentType,
		int64(len(pub.Data)),
		pub.PageCount,
		string(raw),
	}

	rpt, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Report, error) {
		return repository.QueryOne(ctx, tx, upsertReport, args, scanReport)
	})
	// The blob at key already holds the new document; a retry overwrites it
	// and upserts the same row.
	if err != nil {
		r.logger.Error("report uploaded but not recorded", "key", key, "link", pub.Link, "error", err)
		return nil, fmt.Errorf(
			"%w: %s at %s: %w",
			ErrUnrecorded, key, pub.Link,
			repository.MapError(err, ErrNotFound, ErrDuplicate),
		)
	}

	r.logger.Info("report recorded", "id", rpt.ID, "filename", rpt.Filename)
	return &rpt, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Report], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Team", "Period", "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.Count(ctx, r.db, countSQL, countArgs)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanReport)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	rpt, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rpt, nil
}

func (r *repo) FindByKey(ctx context.Context, key string) (*Report, error) {
	q, args := query.NewBuilder(projection).BuildSingle("StorageKey", key)

	rpt, err := repository.QueryOne(ctx, r.db, q, args, scanReport)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &rpt, nil
}

func (r *repo) Download(ctx context.Context, id uuid.UUID) (*Report, *storage.Blob, error) {
	rpt, err := r.Find(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	blob, err := r.storage.Download(ctx, rpt.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: document %s missing from storage", ErrNotFound, rpt.StorageKey)
		}
		return nil, nil, fmt.Errorf("download report: %w", err)
	}

	return rpt, blob, nil
}

func (r *repo) Preview(sub form.Submission) (*Preview, error) {
	return r.pipeline.Preview(sub)
}

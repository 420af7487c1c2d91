// Package ingest turns uploaded CSV text into a persisted batch of sales.
package ingest

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Veraticus/bizmetrics/internal/common"
	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/Veraticus/bizmetrics/internal/salescsv"
	"github.com/Veraticus/bizmetrics/internal/service"
	"github.com/shopspring/decimal"
)

const (
	// DefaultChunkSize is the number of sales inserted per statement batch.
	DefaultChunkSize = 500
	// RejectedSampleSize caps the rejected lines returned with a successful import.
	RejectedSampleSize = 50
)

// ProgressFunc is called after each chunk with the number of sales inserted so far.
type ProgressFunc func(inserted, total int)

// Result summarizes a successful import.
type Result struct {
	RevenueTotal    decimal.Decimal      `json:"revenue_total"`
	BatchID         string               `json:"batch_id"`
	RejectedSample  []model.RejectedLine `json:"rejected_sample"`
	RecordsImported int                  `json:"records_imported"`
	RecordsRejected int                  `json:"records_rejected"`
}

// MarshalJSON writes the revenue total with exactly two decimal places.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		plain
		RevenueTotal string `json:"revenue_total"`
	}{plain: plain(r), RevenueTotal: r.RevenueTotal.StringFixed(2)})
}

// Service imports CSV uploads and manages the resulting batches.
type Service struct {
	store     service.Storage
	parser    *salescsv.Parser
	progress  ProgressFunc
	logger    *slog.Logger
	chunkSize int
}

// Option configures a Service.
type Option func(*Service)

// WithChunkSize sets how many sales are inserted per chunk. Non-positive values are ignored.
func WithChunkSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithProgress registers a callback invoked after every inserted chunk.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Service) {
		s.progress = fn
	}
}

// WithLogger sets the logger used for import events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates an ingestion service. A nil parser uses the default line ceiling.
func NewService(store service.Storage, parser *salescsv.Parser, opts ...Option) *Service {
	if parser == nil {
		parser = salescsv.NewParser(salescsv.DefaultMaxLines)
	}
	s := &Service{
		store:     store,
		parser:    parser,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = common.LoggerOrDefault(s.logger)
	return s
}

// Ingest parses csvText and stores the accepted sales as one completed batch.
// When no line is accepted nothing is written and the returned validation error
// carries every rejected line as its details.
func (s *Service) Ingest(ctx context.Context, ownerID, csvText, fileName string) (*Result, error) {
	if ownerID == "" {
		return nil, common.Validation("owner is required")
	}

	parsed, err := s.parser.Parse(csvText)
	if err != nil {
		return nil, err
	}

	if len(parsed.Records) == 0 {
		return nil, common.Validation("no valid records in upload: %d lines rejected", len(parsed.Rejected)).
			WithDetails(parsed.Rejected)
	}

	total := decimal.Zero
	for i := range parsed.Records {
		parsed.Records[i].OwnerID = ownerID
		total = total.Add(parsed.Records[i].Amount)
	}

	batch := &model.UploadBatch{
		OwnerID:      ownerID,
		FileName:     fileName,
		Status:       model.BatchCompleted,
		RecordCount:  len(parsed.Records),
		TotalRevenue: model.RoundMoney(total),
	}

	if err := s.writeBatch(ctx, batch, parsed.Records); err != nil {
		return nil, err
	}

	s.logger.Info("Imported sales batch",
		"owner_id", ownerID,
		"batch_id", batch.ID,
		"file", fileName,
		"imported", len(parsed.Records),
		"rejected", len(parsed.Rejected))

	sample := parsed.Rejected
	if len(sample) > RejectedSampleSize {
		sample = sample[:RejectedSampleSize]
	}

	return &Result{
		BatchID:         batch.ID,
		RecordsImported: len(parsed.Records),
		RecordsRejected: len(parsed.Rejected),
		RejectedSample:  sample,
		RevenueTotal:    batch.TotalRevenue,
	}, nil
}

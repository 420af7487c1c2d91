package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Veraticus/bizmetrics/internal/model"
	"github.com/google/uuid"
)

const analysisColumns = `id, owner_id, data_hash, prompt_used, analysis_text, model_used, tokens_input, tokens_output, created_at`

// SaveAnalysis stores a generated analysis. Entries are never updated.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, entry *model.AnalysisCacheEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAnalysis(entry); err != nil {
		return err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	var createdAt string
	entry.CreatedAt, createdAt = s.timestamp(entry.CreatedAt)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ai_analyses (`+analysisColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.OwnerID,
		entry.DataHash,
		entry.PromptText,
		entry.ResultText,
		entry.Model,
		entry.TokenUsage.Input,
		entry.TokenUsage.Output,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetLatestAnalysis returns the most recently created entry for (ownerID, dataHash),
// or nil when there is none.
func (s *SQLiteStorage) GetLatestAnalysis(ctx context.Context, ownerID, dataHash string) (*model.AnalysisCacheEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if err := validateString(dataHash, "dataHash"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+analysisColumns+`
		FROM ai_analyses
		WHERE owner_id = ? AND data_hash = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, ownerID, dataHash)

	entry, err := scanAnalysis(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return entry, err
}

// ListAnalyses returns up to limit of the owner's analyses, newest first.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, ownerID string, limit int) ([]model.AnalysisCacheEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(ownerID, "ownerID"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+analysisColumns+`
		FROM ai_analyses
		WHERE owner_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.AnalysisCacheEntry
	for rows.Next() {
		entry, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}
	return entries, nil
}

func scanAnalysis(row rowScanner) (*model.AnalysisCacheEntry, error) {
	var (
		entry        model.AnalysisCacheEntry
		tokensInput  sql.NullInt64
		tokensOutput sql.NullInt64
		createdAt    string
	)

	err := row.Scan(&entry.ID, &entry.OwnerID, &entry.DataHash, &entry.PromptText, &entry.ResultText,
		&entry.Model, &tokensInput, &tokensOutput, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	entry.TokenUsage = model.TokenUsage{
		Input:  int(tokensInput.Int64),
		Output: int(tokensOutput.Int64),
	}
	if entry.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at for analysis %s: %w", entry.ID, err)
	}
	return &entry, nil
}

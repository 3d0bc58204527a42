package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/casetrack/internal/ports/secondary"
)

// StageInfoRepository implements secondary.StageInfoMirror with SQLite.
type StageInfoRepository struct {
	db *sql.DB
}

// NewStageInfoRepository creates a new SQLite stage information mirror repository.
func NewStageInfoRepository(db *sql.DB) *StageInfoRepository {
	return &StageInfoRepository{db: db}
}

// GetByBuilding retrieves all stage information rows for a building.
func (r *StageInfoRepository) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.StageInfoMirrorRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, building_id, title, detail FROM stage_information WHERE building_id = ? ORDER BY id",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage information: %w", err)
	}
	defer rows.Close()

	var records []*secondary.StageInfoMirrorRecord
	for rows.Next() {
		var detail sql.NullString
		rec := &secondary.StageInfoMirrorRecord{}
		if err := rows.Scan(&rec.ID, &rec.BuildingID, &rec.Title, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan stage information: %w", err)
		}
		rec.DetailJSON = detail.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create inserts a new stage information row.
func (r *StageInfoRepository) Create(ctx context.Context, rec *secondary.StageInfoMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO stage_information (id, building_id, title, detail) VALUES (?, ?, ?, ?)",
		rec.ID, rec.BuildingID, rec.Title, nullable(rec.DetailJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to create stage information: %w", err)
	}
	return nil
}

// Upsert inserts or fully replaces a stage information row by id.
func (r *StageInfoRepository) Upsert(ctx context.Context, rec *secondary.StageInfoMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stage_information (id, building_id, title, detail) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			building_id = excluded.building_id,
			title = excluded.title,
			detail = excluded.detail,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.BuildingID, rec.Title, nullable(rec.DetailJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert stage information: %w", err)
	}
	return nil
}

// Delete removes a stage information row.
func (r *StageInfoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM stage_information WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete stage information: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("stage information %s not found", id)
	}
	return nil
}

// Ensure StageInfoRepository implements the interface
var _ secondary.StageInfoMirror = (*StageInfoRepository)(nil)

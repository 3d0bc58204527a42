package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/casetrack/internal/ports/secondary"
)

// TemplateRepository implements secondary.TemplateMirror with SQLite.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new SQLite email template mirror repository.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateColumns = "id, building_id, name, subject, body, stage_id, recipients"

// GetByBuilding retrieves all template rows for a building.
func (r *TemplateRepository) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.TemplateMirrorRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+templateColumns+" FROM email_templates WHERE building_id = ? ORDER BY name",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TemplateMirrorRecord
	for rows.Next() {
		var subject, body, stageID, recipients sql.NullString
		rec := &secondary.TemplateMirrorRecord{}
		if err := rows.Scan(&rec.ID, &rec.BuildingID, &rec.Name, &subject, &body, &stageID, &recipients); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		rec.Subject = subject.String
		rec.Body = body.String
		rec.StageID = stageID.String
		rec.RecipientsJSON = recipients.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create inserts a new template row.
func (r *TemplateRepository) Create(ctx context.Context, rec *secondary.TemplateMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO email_templates ("+templateColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.BuildingID, rec.Name,
		nullable(rec.Subject), nullable(rec.Body), nullable(rec.StageID), nullable(rec.RecipientsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// Upsert inserts or fully replaces a template row by id.
func (r *TemplateRepository) Upsert(ctx context.Context, rec *secondary.TemplateMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO email_templates (`+templateColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			building_id = excluded.building_id,
			name = excluded.name,
			subject = excluded.subject,
			body = excluded.body,
			stage_id = excluded.stage_id,
			recipients = excluded.recipients,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.BuildingID, rec.Name,
		nullable(rec.Subject), nullable(rec.Body), nullable(rec.StageID), nullable(rec.RecipientsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert template: %w", err)
	}
	return nil
}

// Delete removes a template row.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM email_templates WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("template %s not found", id)
	}
	return nil
}

// Ensure TemplateRepository implements the interface
var _ secondary.TemplateMirror = (*TemplateRepository)(nil)

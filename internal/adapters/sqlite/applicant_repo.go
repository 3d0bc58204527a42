// Package sqlite contains SQLite implementations of the remote mirror
// repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/casetrack/internal/ports/secondary"
)

// ApplicantRepository implements secondary.ApplicantMirror with SQLite.
type ApplicantRepository struct {
	db *sql.DB
}

// NewApplicantRepository creates a new SQLite applicant mirror repository.
func NewApplicantRepository(db *sql.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

const applicantColumns = "id, building_id, name, current_stage, unit, hmis_number, phone, email, case_manager, documents, family_members, stage_history, manual_notes, completed_action_items, date_created"

// GetByBuilding retrieves all applicant rows for a building, newest first.
func (r *ApplicantRepository) GetByBuilding(ctx context.Context, buildingID string) ([]*secondary.ApplicantMirrorRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+applicantColumns+" FROM applicants WHERE building_id = ? ORDER BY created_at DESC",
		buildingID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ApplicantMirrorRecord
	for rows.Next() {
		rec, err := scanApplicant(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Create inserts a new applicant row.
func (r *ApplicantRepository) Create(ctx context.Context, rec *secondary.ApplicantMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO applicants ("+applicantColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.BuildingID, rec.Name, rec.CurrentStage,
		nullable(rec.Unit), nullable(rec.HMISNumber), nullable(rec.Phone), nullable(rec.Email), nullable(rec.CaseManager),
		nullable(rec.DocumentsJSON), nullable(rec.FamilyJSON), nullable(rec.HistoryJSON), nullable(rec.NotesJSON), nullable(rec.ActionsJSON),
		dateCreated(rec.DateCreated),
	)
	if err != nil {
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

// Upsert inserts or fully replaces an applicant row by id.
func (r *ApplicantRepository) Upsert(ctx context.Context, rec *secondary.ApplicantMirrorRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applicants (`+applicantColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			building_id = excluded.building_id,
			name = excluded.name,
			current_stage = excluded.current_stage,
			unit = excluded.unit,
			hmis_number = excluded.hmis_number,
			phone = excluded.phone,
			email = excluded.email,
			case_manager = excluded.case_manager,
			documents = excluded.documents,
			family_members = excluded.family_members,
			stage_history = excluded.stage_history,
			manual_notes = excluded.manual_notes,
			completed_action_items = excluded.completed_action_items,
			updated_at = CURRENT_TIMESTAMP`,
		rec.ID, rec.BuildingID, rec.Name, rec.CurrentStage,
		nullable(rec.Unit), nullable(rec.HMISNumber), nullable(rec.Phone), nullable(rec.Email), nullable(rec.CaseManager),
		nullable(rec.DocumentsJSON), nullable(rec.FamilyJSON), nullable(rec.HistoryJSON), nullable(rec.NotesJSON), nullable(rec.ActionsJSON),
		dateCreated(rec.DateCreated),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert applicant: %w", err)
	}
	return nil
}

// Delete removes an applicant row.
func (r *ApplicantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM applicants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete applicant: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("applicant %s not found", id)
	}
	return nil
}

func scanApplicant(rows *sql.Rows) (*secondary.ApplicantMirrorRecord, error) {
	var (
		unit, hmis, phone, email, caseManager         sql.NullString
		documents, family, history, notes, actionItem sql.NullString
		created                                       time.Time
	)
	rec := &secondary.ApplicantMirrorRecord{}
	err := rows.Scan(&rec.ID, &rec.BuildingID, &rec.Name, &rec.CurrentStage,
		&unit, &hmis, &phone, &email, &caseManager,
		&documents, &family, &history, &notes, &actionItem, &created)
	if err != nil {
		return nil, fmt.Errorf("failed to scan applicant: %w", err)
	}
	rec.Unit = unit.String
	rec.HMISNumber = hmis.String
	rec.Phone = phone.String
	rec.Email = email.String
	rec.CaseManager = caseManager.String
	rec.DocumentsJSON = documents.String
	rec.FamilyJSON = family.String
	rec.HistoryJSON = history.String
	rec.NotesJSON = notes.String
	rec.ActionsJSON = actionItem.String
	rec.DateCreated = created.Format(time.RFC3339)
	return rec, nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func dateCreated(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Now().UTC()
}

// Ensure ApplicantRepository implements the interface
var _ secondary.ApplicantMirror = (*ApplicantRepository)(nil)

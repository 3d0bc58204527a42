package db

// SchemaSQL is the complete schema for the remote mirror database. Nested
// collections (documents, family members, histories) are stored as JSON text
// columns: the local store stays authoritative and the mirror only needs to
// round-trip rows, not query inside them.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS buildings (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS applicants (
	id TEXT PRIMARY KEY,
	building_id TEXT NOT NULL,
	name TEXT NOT NULL,
	current_stage TEXT NOT NULL,
	unit TEXT,
	hmis_number TEXT,
	phone TEXT,
	email TEXT,
	case_manager TEXT,
	documents TEXT,
	family_members TEXT,
	stage_history TEXT,
	manual_notes TEXT,
	completed_action_items TEXT,
	date_created DATETIME DEFAULT CURRENT_TIMESTAMP,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (building_id) REFERENCES buildings(id)
);

CREATE TABLE IF NOT EXISTS email_templates (
	id TEXT PRIMARY KEY,
	building_id TEXT NOT NULL,
	name TEXT NOT NULL,
	subject TEXT,
	body TEXT,
	stage_id TEXT,
	recipients TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (building_id) REFERENCES buildings(id)
);

CREATE TABLE IF NOT EXISTS stage_information (
	id TEXT PRIMARY KEY,
	building_id TEXT NOT NULL,
	title TEXT NOT NULL,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (building_id) REFERENCES buildings(id)
);

CREATE INDEX IF NOT EXISTS idx_applicants_building ON applicants(building_id);
CREATE INDEX IF NOT EXISTS idx_templates_building ON email_templates(building_id);
CREATE INDEX IF NOT EXISTS idx_stage_info_building ON stage_information(building_id);
`

// GetSchemaSQL returns the authoritative mirror schema. Tests load the schema
// through this function so they cannot drift from production.
func GetSchemaSQL() string {
	return SchemaSQL
}

package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests
// use it via GetSchemaSQL(), so repository code that references a column
// missing here fails immediately with "no such column" at test time
// rather than in production.
const SchemaSQL = `
-- Projects
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	owner_id TEXT NOT NULL,
	current_phase TEXT NOT NULL CHECK(current_phase IN ('REQUIREMENTS', 'DESIGN', 'TASKS', 'IMPLEMENTATION')) DEFAULT 'REQUIREMENTS',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Team memberships (one row per project/user pair)
CREATE TABLE IF NOT EXISTS team_members (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	role TEXT NOT NULL CHECK(role IN ('LEAD', 'MEMBER')) DEFAULT 'MEMBER',
	status TEXT NOT NULL CHECK(status IN ('ACTIVE', 'INACTIVE')) DEFAULT 'ACTIVE',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	UNIQUE(project_id, user_id)
);

-- Specification documents (one per project/phase pair)
CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	phase TEXT NOT NULL CHECK(phase IN ('REQUIREMENTS', 'DESIGN', 'TASKS', 'IMPLEMENTATION')),
	content TEXT NOT NULL DEFAULT '',
	version INTEGER NOT NULL DEFAULT 1,
	status TEXT NOT NULL CHECK(status IN ('DRAFT', 'REVIEW', 'APPROVED')) DEFAULT 'DRAFT',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	UNIQUE(project_id, phase)
);

-- Version history snapshots (pre-update state, append-only)
CREATE TABLE IF NOT EXISTS document_versions (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	version INTEGER NOT NULL,
	content TEXT NOT NULL,
	created_by TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE,
	UNIQUE(document_id, version)
);

-- Phase transitions (append-only history)
CREATE TABLE IF NOT EXISTS phase_transitions (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	from_phase TEXT NOT NULL,
	to_phase TEXT NOT NULL,
	user_id TEXT NOT NULL,
	approval_comment TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
);

-- Phase approvals (one live record per project/phase/user)
CREATE TABLE IF NOT EXISTS approvals (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	phase TEXT NOT NULL CHECK(phase IN ('REQUIREMENTS', 'DESIGN', 'TASKS', 'IMPLEMENTATION')),
	user_id TEXT NOT NULL,
	comment TEXT,
	approved INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	UNIQUE(project_id, phase, user_id)
);

-- Persisted AI reviews
CREATE TABLE IF NOT EXISTS ai_reviews (
	id TEXT PRIMARY KEY,
	document_id TEXT NOT NULL,
	overall_score INTEGER NOT NULL,
	payload TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (document_id) REFERENCES documents(id) ON DELETE CASCADE
);

-- Audit log (append-only, best-effort)
CREATE TABLE IF NOT EXISTS audit_log (
	id TEXT PRIMARY KEY,
	actor_id TEXT,
	action TEXT NOT NULL,
	resource TEXT NOT NULL,
	resource_id TEXT NOT NULL,
	details TEXT,
	success INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_project_phase ON documents(project_id, phase);
CREATE INDEX IF NOT EXISTS idx_transitions_project ON phase_transitions(project_id, created_at);
CREATE INDEX IF NOT EXISTS idx_approvals_project_phase ON approvals(project_id, phase);
CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_log(resource, resource_id, created_at);
`

// GetSchemaSQL returns the authoritative schema. Tests must use this
// instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}

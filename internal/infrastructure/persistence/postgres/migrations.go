package postgres

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetMigrations returns all embedded migrations in order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_applications",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_candidates",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_interns",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
		{
			Version: 4,
			Name:    "create_submissions",
			UpSQL:   migration004Up,
			DownSQL: migration004Down,
		},
	}
}

const migration001Up = `
CREATE TABLE IF NOT EXISTS applications (
	id               UUID PRIMARY KEY,
	university_id    TEXT NOT NULL,
	name             TEXT NOT NULL,
	academic_year    TEXT NOT NULL,
	letter_ref       TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	rejection_reason TEXT NOT NULL DEFAULT '',
	reviewed_by      TEXT NOT NULL DEFAULT '',
	reviewed_at      TIMESTAMP WITH TIME ZONE,
	created_at       TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at       TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_applications_university ON applications (university_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_applications_status ON applications (status, created_at DESC);
`

const migration001Down = `
DROP TABLE IF EXISTS applications;
`

const migration002Up = `
CREATE TABLE IF NOT EXISTS candidates (
	id               UUID PRIMARY KEY,
	application_id   UUID NOT NULL REFERENCES applications (id),
	full_name        TEXT NOT NULL,
	student_id       TEXT NOT NULL,
	field_of_study   TEXT NOT NULL,
	academic_year    TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	rejection_reason TEXT NOT NULL DEFAULT '',
	cv_ref           TEXT NOT NULL DEFAULT '',
	transcript_ref   TEXT NOT NULL DEFAULT '',
	deleted          BOOLEAN NOT NULL DEFAULT FALSE,
	created_at       TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at       TIMESTAMP WITH TIME ZONE NOT NULL
);

-- Student identifiers are unique system-wide, not per application.
CREATE UNIQUE INDEX IF NOT EXISTS uq_candidates_student_id ON candidates (student_id);
CREATE INDEX IF NOT EXISTS idx_candidates_application ON candidates (application_id);
`

const migration002Down = `
DROP TABLE IF EXISTS candidates;
`

const migration003Up = `
CREATE TABLE IF NOT EXISTS interns (
	id                 UUID PRIMARY KEY,
	intern_id          TEXT NOT NULL,
	candidate_id       UUID NOT NULL REFERENCES candidates (id),
	account_id         TEXT NOT NULL DEFAULT '',
	supervisor_id      TEXT NOT NULL DEFAULT '',
	department_id      TEXT NOT NULL DEFAULT '',
	start_date         TIMESTAMP WITH TIME ZONE NOT NULL,
	end_date           TIMESTAMP WITH TIME ZONE,
	status             TEXT NOT NULL,
	is_active          BOOLEAN NOT NULL DEFAULT TRUE,
	is_suspended       BOOLEAN NOT NULL DEFAULT FALSE,
	suspension_reason  TEXT NOT NULL DEFAULT '',
	skills             TEXT[] NOT NULL DEFAULT '{}',
	interview_notes    TEXT NOT NULL DEFAULT '',
	final_evaluation   NUMERIC(4,2),
	certificate_ref    TEXT NOT NULL DEFAULT '',
	certificate_issued BOOLEAN NOT NULL DEFAULT FALSE,
	completion_notes   TEXT NOT NULL DEFAULT '',
	termination_reason TEXT NOT NULL DEFAULT '',
	created_at         TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at         TIMESTAMP WITH TIME ZONE NOT NULL
);

-- At most one intern per candidate; closes the duplicate-promotion race.
CREATE UNIQUE INDEX IF NOT EXISTS uq_interns_candidate ON interns (candidate_id);
CREATE UNIQUE INDEX IF NOT EXISTS uq_interns_intern_id ON interns (intern_id);
CREATE INDEX IF NOT EXISTS idx_interns_status ON interns (status, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_interns_supervisor ON interns (supervisor_id) WHERE supervisor_id <> '';
`

const migration003Down = `
DROP TABLE IF EXISTS interns;
`

const migration004Up = `
CREATE TABLE IF NOT EXISTS submissions (
	id          UUID PRIMARY KEY,
	intern_id   UUID NOT NULL REFERENCES interns (id),
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	file_ref    TEXT NOT NULL,
	status      TEXT NOT NULL,
	feedback    TEXT NOT NULL DEFAULT '',
	reviewed_by TEXT NOT NULL DEFAULT '',
	reviewed_at TIMESTAMP WITH TIME ZONE,
	created_at  TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at  TIMESTAMP WITH TIME ZONE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_intern ON submissions (intern_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions (status);
`

const migration004Down = `
DROP TABLE IF EXISTS submissions;
`

package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// timeLayout has a fixed-width fraction so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `SELECT id, created_at, input_name, input_digest, status, error_message,
    file_count, sync_count, ambiguity_count, unassigned_count,
    equations, variables, duration_ms FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		createdAt  string
		status     string
		errMessage sql.NullString
		durationMS int64
	)
	if err := row.Scan(
		&run.ID,
		&createdAt,
		&run.InputName,
		&run.InputDigest,
		&status,
		&errMessage,
		&run.Files,
		&run.Syncs,
		&run.Ambiguities,
		&run.Unassigned,
		&run.Equations,
		&run.Variables,
		&durationMS,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	parsed, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = parsed
	run.Status = Status(status)
	run.Error = errMessage.String
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

// escapeLike drops LIKE wildcards from a user-supplied prefix.
func escapeLike(value string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(value)
}

package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// queryBuilder accumulates a SQL statement with positional arguments.
type queryBuilder struct {
	sb   strings.Builder
	args []any
}

func newQuery(base string, args ...any) *queryBuilder {
	q := &queryBuilder{args: args}
	q.sb.WriteString(base)
	return q
}

// arg appends v to the argument list and returns its placeholder.
func (q *queryBuilder) arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

func (q *queryBuilder) write(format string, a ...any) {
	fmt.Fprintf(&q.sb, format, a...)
}

// page appends OFFSET and, for a positive limit, LIMIT.
func (q *queryBuilder) page(offset, limit int) {
	if offset > 0 {
		q.write(" OFFSET %s", q.arg(offset))
	}
	if limit > 0 {
		q.write(" LIMIT %s", q.arg(limit))
	}
}

func (q *queryBuilder) String() string {
	return q.sb.String()
}

// jsonArg encodes v for a JSONB column, replacing null with empty.
func jsonArg(v any, empty string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	if string(b) == "null" {
		return empty, nil
	}
	return string(b), nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}

// likePattern escapes s for a substring ILIKE match.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func intArg(v *int) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*v), Valid: true}
}

func intPtr(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int32)
	return &n
}

func uuidArg(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func uuidPtr(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}

func dateArg(d *model.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func datePtr(t sql.NullTime) *model.Date {
	if !t.Valid {
		return nil
	}
	d := model.NewDate(t.Time)
	return &d
}

func stringArg(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func timeOf(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

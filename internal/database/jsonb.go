package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONB stores any JSON-encodable value in a PostgreSQL JSONB column.
type JSONB[T any] struct {
	V T
}

// Scan implements sql.Scanner. NULL leaves the zero value.
func (j *JSONB[T]) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		var zero T
		j.V = zero
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for JSONB column", value)
	}
	return json.Unmarshal(data, &j.V)
}

// Value implements driver.Valuer. The JSON is sent as text so lib/pq does
// not encode it as bytea.
func (j JSONB[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("marshal JSONB column: %w", err)
	}
	return string(data), nil
}

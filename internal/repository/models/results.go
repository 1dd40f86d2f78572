package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"saathi/internal/domain"
)

// QuestionResults stores per-question grading as a JSON array.
type QuestionResults []domain.QuestionResult

// Value implements the driver.Valuer interface
func (q QuestionResults) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	data, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	// go-ora binds string to CLOB; []byte would become RAW.
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (q *QuestionResults) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*q = QuestionResults{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("QuestionResults Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(raw) == 0 || string(raw) == "null" {
		*q = QuestionResults{}
		return nil
	}
	return json.Unmarshal(raw, q)
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringArray is a custom type for handling string slices as JSONB in GORM
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	var result StringArray
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*a = result
	return nil
}

// Contains reports whether the array holds the given value
func (a StringArray) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

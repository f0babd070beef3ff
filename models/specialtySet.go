package models

import (
	"database/sql/driver"
	"encoding/json"
)

// SpecialtySet is a candidate's set of role specialties. It is stored as
// a JSON text column; membership is order-insensitive. Decode failures
// at the storage boundary yield an empty set instead of propagating a
// parse error into business logic, so one candidate's malformed data
// degrades that candidate to "no match" rather than failing a query.
type SpecialtySet []string

func (s SpecialtySet) Contains(category string) bool {
	for _, v := range s {
		if v == category {
			return true
		}
	}
	return false
}

func (s SpecialtySet) Value() (driver.Value, error) {
	if s == nil {
		s = SpecialtySet{}
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SpecialtySet) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*s = SpecialtySet{}
		return nil
	default:
		*s = SpecialtySet{}
		return nil
	}

	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		*s = SpecialtySet{}
		return nil
	}
	*s = SpecialtySet(parsed)
	return nil
}

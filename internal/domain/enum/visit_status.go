package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// VisitStatus represents the state of a scheduled site visit
type VisitStatus int

const (
	VisitStatusScheduled VisitStatus = 0
	VisitStatusCompleted VisitStatus = 1
	VisitStatusCancelled VisitStatus = 2
)

func (s VisitStatus) String() string {
	return [...]string{"SCHEDULED", "COMPLETED", "CANCELLED"}[s]
}

// ParseVisitStatus converts a status name into a VisitStatus
func ParseVisitStatus(name string) (VisitStatus, error) {
	switch name {
	case "SCHEDULED":
		return VisitStatusScheduled, nil
	case "COMPLETED":
		return VisitStatusCompleted, nil
	case "CANCELLED":
		return VisitStatusCancelled, nil
	}
	return VisitStatusScheduled, fmt.Errorf("unknown visit status %q", name)
}

func (s VisitStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *VisitStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = VisitStatus(i)
		return nil
	}
	switch str {
	case "SCHEDULED":
		*s = VisitStatusScheduled
	case "COMPLETED":
		*s = VisitStatusCompleted
	case "CANCELLED":
		*s = VisitStatusCancelled
	}
	return nil
}

func (s VisitStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *VisitStatus) Scan(value interface{}) error {
	if value == nil {
		*s = VisitStatusScheduled
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = VisitStatus(v)
	case int:
		*s = VisitStatus(v)
	}
	return nil
}

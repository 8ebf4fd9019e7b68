package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PreBudgetStatus represents the lifecycle state of a pre-budget
type PreBudgetStatus int

const (
	PreBudgetStatusDraft    PreBudgetStatus = 0
	PreBudgetStatusSent     PreBudgetStatus = 1
	PreBudgetStatusApproved PreBudgetStatus = 2
	PreBudgetStatusRejected PreBudgetStatus = 3
)

func (s PreBudgetStatus) String() string {
	return [...]string{"DRAFT", "SENT", "APPROVED", "REJECTED"}[s]
}

// ParsePreBudgetStatus converts a status name into a PreBudgetStatus
func ParsePreBudgetStatus(name string) (PreBudgetStatus, error) {
	switch name {
	case "DRAFT":
		return PreBudgetStatusDraft, nil
	case "SENT":
		return PreBudgetStatusSent, nil
	case "APPROVED":
		return PreBudgetStatusApproved, nil
	case "REJECTED":
		return PreBudgetStatusRejected, nil
	}
	return PreBudgetStatusDraft, fmt.Errorf("unknown pre-budget status %q", name)
}

func (s PreBudgetStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PreBudgetStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PreBudgetStatus(i)
		return nil
	}
	switch str {
	case "DRAFT":
		*s = PreBudgetStatusDraft
	case "SENT":
		*s = PreBudgetStatusSent
	case "APPROVED":
		*s = PreBudgetStatusApproved
	case "REJECTED":
		*s = PreBudgetStatusRejected
	}
	return nil
}

func (s PreBudgetStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PreBudgetStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PreBudgetStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PreBudgetStatus(v)
	case int:
		*s = PreBudgetStatus(v)
	}
	return nil
}

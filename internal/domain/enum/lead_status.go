package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LeadStatus represents the position of a lead in the sales pipeline
type LeadStatus int

const (
	LeadStatusNew          LeadStatus = 0
	LeadStatusContacted    LeadStatus = 1
	LeadStatusQualified    LeadStatus = 2
	LeadStatusProposalSent LeadStatus = 3
	LeadStatusNegotiation  LeadStatus = 4
	LeadStatusConverted    LeadStatus = 5
	LeadStatusLost         LeadStatus = 6
	LeadStatusOnHold       LeadStatus = 7
	LeadStatusArchived     LeadStatus = 8
)

var leadStatusNames = [...]string{
	"NEW",
	"CONTACTED",
	"QUALIFIED",
	"PROPOSAL_SENT",
	"NEGOTIATION",
	"CONVERTED",
	"LOST",
	"ON_HOLD",
	"ARCHIVED",
}

func (s LeadStatus) String() string {
	if s < 0 || int(s) >= len(leadStatusNames) {
		return "NEW"
	}
	return leadStatusNames[s]
}

// IsValid reports whether s is one of the known pipeline statuses
func (s LeadStatus) IsValid() bool {
	return s >= LeadStatusNew && int(s) < len(leadStatusNames)
}

// ParseLeadStatus converts a status name into a LeadStatus
func ParseLeadStatus(name string) (LeadStatus, error) {
	for i, n := range leadStatusNames {
		if n == name {
			return LeadStatus(i), nil
		}
	}
	return LeadStatusNew, fmt.Errorf("unknown lead status %q", name)
}

func (s LeadStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *LeadStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = LeadStatus(i)
		return nil
	}
	parsed, err := ParseLeadStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s LeadStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *LeadStatus) Scan(value interface{}) error {
	if value == nil {
		*s = LeadStatusNew
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = LeadStatus(v)
	case int:
		*s = LeadStatus(v)
	}
	return nil
}

package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus int

const (
	InvoiceStatusPending       InvoiceStatus = 0
	InvoiceStatusPartiallyPaid InvoiceStatus = 1
	InvoiceStatusPaid          InvoiceStatus = 2
	InvoiceStatusCancelled     InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	return [...]string{"PENDING", "PARTIALLY_PAID", "PAID", "CANCELLED"}[s]
}

// ParseInvoiceStatus converts a status name into an InvoiceStatus
func ParseInvoiceStatus(name string) (InvoiceStatus, error) {
	switch name {
	case "PENDING":
		return InvoiceStatusPending, nil
	case "PARTIALLY_PAID":
		return InvoiceStatusPartiallyPaid, nil
	case "PAID":
		return InvoiceStatusPaid, nil
	case "CANCELLED":
		return InvoiceStatusCancelled, nil
	}
	return InvoiceStatusPending, fmt.Errorf("unknown invoice status %q", name)
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "PENDING":
		*s = InvoiceStatusPending
	case "PARTIALLY_PAID":
		*s = InvoiceStatusPartiallyPaid
	case "PAID":
		*s = InvoiceStatusPaid
	case "CANCELLED":
		*s = InvoiceStatusCancelled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}

package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is the subset of a platform order the assistant talks about.
// Optional fields are empty when the platform did not send them.
type Record struct {
	ID             string
	Status         string
	PaymentStatus  string
	ShippingStatus string
	TrackingNumber string
	DateCreated    time.Time // zero when missing or unparseable
}

// HasDate reports whether a creation date is known.
func (r Record) HasDate() bool {
	return !r.DateCreated.IsZero()
}

// Date layouts seen from the v2 (RFC 1123) and v3 (RFC 3339) APIs.
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.DateOnly,
}

var errUnexpectedBody = errors.New("unexpected response body")

// rawOrder is one order object with loosely typed fields.
type rawOrder map[string]any

// decodeOrders accepts a bare object, a bare array, or either wrapped in a
// {"data": ...} envelope. An empty body yields no orders.
func decodeOrders(body []byte) ([]rawOrder, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var orders []rawOrder
		if err := unmarshalNumbers(trimmed, &orders); err != nil {
			return nil, err
		}
		return orders, nil
	case '{':
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		if data := bytes.TrimSpace(envelope.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			return decodeOrders(data)
		}
		var single rawOrder
		if err := unmarshalNumbers(trimmed, &single); err != nil {
			return nil, err
		}
		return []rawOrder{single}, nil
	default:
		return nil, fmt.Errorf("%w: starts with %q", errUnexpectedBody, trimmed[0])
	}
}

func unmarshalNumbers(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(target)
}

// normalize maps platform field names onto Record, applying the fallbacks
// the v2 and v3 APIs need.
func (o rawOrder) normalize() Record {
	r := Record{
		ID:             o.firstString("id"),
		Status:         o.firstString("status", "status_id"),
		PaymentStatus:  o.firstString("payment_status"),
		ShippingStatus: o.firstString("shipping_status", "fulfillment_status"),
		TrackingNumber: o.firstString("tracking_number"),
	}
	if r.Status == "" {
		r.Status = "unknown"
	}
	if created := o.firstString("date_created", "date_created_utc", "date_modified"); created != "" {
		r.DateCreated = parseDate(created)
	}
	return r
}

func (o rawOrder) firstString(keys ...string) string {
	for _, key := range keys {
		if s := scalarString(o[key]); s != "" {
			return s
		}
	}
	return ""
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// parseDate returns the zero time when no known layout matches.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

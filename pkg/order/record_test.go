package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrders(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantIDs []string
		wantErr bool
	}{
		{name: "bare object", body: `{"id": 1}`, wantIDs: []string{"1"}},
		{name: "bare array", body: `[{"id": 1}, {"id": 2}]`, wantIDs: []string{"1", "2"}},
		{name: "data object", body: `{"data": {"id": 3}, "meta": {}}`, wantIDs: []string{"3"}},
		{name: "data array", body: `{"data": [{"id": 4}]}`, wantIDs: []string{"4"}},
		{name: "null data falls back to object", body: `{"data": null, "id": 5}`, wantIDs: []string{"5"}},
		{name: "empty array", body: `[]`, wantIDs: nil},
		{name: "empty body", body: "  ", wantIDs: nil},
		{name: "scalar body", body: `"nope"`, wantErr: true},
		{name: "truncated", body: `[{"id": 1}`, wantErr: true},
		{name: "array of scalars", body: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := decodeOrders([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var ids []string
			for _, o := range orders {
				ids = append(ids, o.firstString("id"))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		order    rawOrder
		expected Record
	}{
		{
			name:     "status falls back to status_id",
			order:    rawOrder{"id": "7", "status_id": "11"},
			expected: Record{ID: "7", Status: "11"},
		},
		{
			name:     "status defaults to unknown",
			order:    rawOrder{"id": "7"},
			expected: Record{ID: "7", Status: "unknown"},
		},
		{
			name:     "blank status treated as missing",
			order:    rawOrder{"id": "7", "status": "  ", "status_id": "2"},
			expected: Record{ID: "7", Status: "2"},
		},
		{
			name: "shipping falls back to fulfillment",
			order: rawOrder{
				"id":                 "7",
				"status":             "Shipped",
				"fulfillment_status": "partially_shipped",
				"tracking_number":    "1Z999",
			},
			expected: Record{ID: "7", Status: "Shipped", ShippingStatus: "partially_shipped", TrackingNumber: "1Z999"},
		},
		{
			name:     "date falls back to utc then modified",
			order:    rawOrder{"id": "7", "status": "Pending", "date_modified": "2024-03-09T12:00:00Z"},
			expected: Record{ID: "7", Status: "Pending", DateCreated: time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)},
		},
		{
			name:     "unparseable date dropped",
			order:    rawOrder{"id": "7", "status": "Pending", "date_created": "yesterday"},
			expected: Record{ID: "7", Status: "Pending"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.order.normalize())
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
		day   int
	}{
		{input: "Tue, 20 Nov 2012 00:00:00 +0000", year: 2012, month: time.November, day: 20},
		{input: "Tue, 20 Nov 2012 00:00:00 GMT", year: 2012, month: time.November, day: 20},
		{input: "2025-06-30T23:10:00-05:00", year: 2025, month: time.June, day: 30},
		{input: "2025-01-01", year: 2025, month: time.January, day: 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseDate(tt.input)
			require.False(t, got.IsZero())
			assert.Equal(t, tt.year, got.Year())
			assert.Equal(t, tt.month, got.Month())
			assert.Equal(t, tt.day, got.Day())
		})
	}

	assert.True(t, parseDate("01/02/2025").IsZero())
}

func TestRecord_HasDate(t *testing.T) {
	assert.False(t, Record{}.HasDate())
	assert.True(t, Record{DateCreated: time.Now()}.HasDate())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNotConfigured, KindOf(&NotConfigured{}))
	assert.Equal(t, KindNotFound, KindOf(&NotFound{}))
	assert.Equal(t, KindTransportError, KindOf(&TransportError{}))
	assert.Equal(t, KindFound, KindOf(&Found{}))
}

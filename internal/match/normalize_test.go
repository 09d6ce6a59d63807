package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Order", []string{"order"}},
		{"OrderItem", []string{"order", "item"}},
		{"store.OrderID", []string{"store", "order", "id"}},
		{"HTTPHeader", []string{"http", "header"}},
		{"order_item", []string{"order", "item"}},
		{"__Order--Item  ", []string{"order", "item"}},
		{"Span2D", []string{"span2", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TokenizeIdent(tt.in))
		})
	}
}

func TestNormalizeTypeName(t *testing.T) {
	assert.Equal(t, "storeorderitem", NormalizeTypeName("structview/store.OrderItem"))
	assert.Equal(t, "storeorderitem", NormalizeTypeName("store.order_item"))
	assert.Equal(t, "customer", NormalizeTypeName("Customer"))
	assert.Equal(t, "", NormalizeTypeName(""))
}

func TestStripTypeSuffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"OrderRecord", "order"},
		{"store.AuditInfo", "storeaudit"},
		{"OrderIds", "order"},
		{"Record", "record"},
		{"Envelope", "envelope"},
		{"RecordData", "record"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripTypeSuffix(tt.in))
		})
	}
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "PAID", "SHIPPED", "CANCELED"} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "SHIPPED ", "TELEPORTED"} {
		_, err := ParseStatus(invalid)
		assert.Error(t, err)
	}
}

func TestItems_ColumnRoundTrip(t *testing.T) {
	items := Items{{"sku": "A1", "qty": "2"}, {"sku": "B7"}}

	raw, err := items.Value()
	assert.NoError(t, err)

	var scanned Items
	assert.NoError(t, scanned.Scan(raw))
	assert.Equal(t, items, scanned)

	// MySQL drivers may hand JSON columns back as strings.
	var fromString Items
	assert.NoError(t, fromString.Scan(`[{"sku":"A1"}]`))
	assert.Equal(t, Items{{"sku": "A1"}}, fromString)

	var empty Items
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)

	assert.Error(t, empty.Scan(42))

	raw, err = Items(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), raw)
}

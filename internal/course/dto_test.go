// AngelaMos | 2026
// dto_test.go

package course

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberAcceptsJSONNumber(t *testing.T) {
	var req CreateCourseRequest
	err := json.Unmarshal([]byte(`{"price": 49.99}`), &req)
	require.NoError(t, err)

	assert.True(t, req.Price.Present())
	assert.True(t, req.Price.Valid())
	assert.Equal(t, 49.99, req.Price.Float64())
}

func TestNumberAcceptsNumericString(t *testing.T) {
	var req CreateCourseRequest
	err := json.Unmarshal([]byte(`{"price": "49.99"}`), &req)
	require.NoError(t, err)

	assert.True(t, req.Price.Present())
	assert.True(t, req.Price.Valid())
	assert.Equal(t, 49.99, req.Price.Float64())
}

func TestNumberRecordsNonNumericStringAsInvalid(t *testing.T) {
	var req CreateCourseRequest
	err := json.Unmarshal([]byte(`{"price": "free"}`), &req)
	require.NoError(t, err, "a bad field must not fail the whole decode")

	assert.True(t, req.Price.Present())
	assert.False(t, req.Price.Valid())
}

func TestNumberAbsentAndNull(t *testing.T) {
	var req CreateCourseRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.False(t, req.Price.Present())

	req = CreateCourseRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"price": null}`), &req))
	assert.False(t, req.Price.Present())
}

func TestDiscountedPrice(t *testing.T) {
	c := Course{Price: 100, Discount: 25}
	assert.Equal(t, 75.0, c.DiscountedPrice())

	c = Course{Price: 100, Discount: 0}
	assert.Equal(t, 100.0, c.DiscountedPrice())
}

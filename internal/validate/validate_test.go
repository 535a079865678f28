package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobileRule(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"9876543210", true},
		{"6000000000", true},
		{"12345", false},
		{"1234567890", false}, // starts below 6
		{"98765432101", false},
		{"98765abc10", false},
	}
	for _, tc := range cases {
		v := New()
		v.Mobile("mobile", tc.value)
		if tc.ok {
			assert.NoError(t, v.Err(), tc.value)
		} else {
			err := v.Err()
			require.Error(t, err, tc.value)
			var fields Errors
			require.ErrorAs(t, err, &fields)
			assert.Equal(t, "Mobile number must be a 10-digit number starting with 6-9", fields["mobile"])
		}
	}
}

func TestMobileEmptyPasses(t *testing.T) {
	v := New()
	v.Mobile("mobile", "")
	assert.NoError(t, v.Err())
}

func TestRequireAndMinLen(t *testing.T) {
	v := New()
	v.Require("name", "  ", "Name")
	v.Require("password", "abc", "Password")
	v.MinLen("password", "abc", 6, "Password")

	err := v.Err()
	require.Error(t, err)
	var fields Errors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Password must be at least 6 characters", fields["password"])
}

func TestFirstFailureWinsPerField(t *testing.T) {
	v := New()
	v.Require("name", "", "Name")
	v.MinLen("name", "", 3, "Name")
	assert.Equal(t, "Name is required", v.Fields()["name"])
}

func TestNumericRules(t *testing.T) {
	v := New()
	v.Positive("price", 0, "Price")
	v.NonNegative("paid", -1, "Paid amount")

	fields := v.Fields()
	assert.Equal(t, "Price must be greater than 0", fields["price"])
	assert.Equal(t, "Paid amount cannot be negative", fields["paid"])
}

func TestEmailRule(t *testing.T) {
	v := New()
	v.Email("email", "not-an-email")
	assert.Error(t, v.Err())

	v = New()
	v.Email("email", "staff@shop.test")
	assert.NoError(t, v.Err())
}

func TestErrorStringIsDeterministic(t *testing.T) {
	v := New()
	v.Require("b", "", "B")
	v.Require("a", "", "A")
	assert.Equal(t, "validation failed: a: A is required; b: B is required", v.Err().Error())
}

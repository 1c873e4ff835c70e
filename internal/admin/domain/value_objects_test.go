package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateNameCanonicalizesCase(t *testing.T) {
	state, err := NewStateName("  california ")
	require.NoError(t, err)
	assert.Equal(t, "California", state.String())
}

func TestNewStateNameRejectsUnknown(t *testing.T) {
	_, err := NewStateName("Atlantis")
	assert.Error(t, err)

	_, err = NewStateName("")
	assert.Error(t, err)
}

func TestNewZipCode(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
	}{
		{"", true},
		{"95112", true},
		{"95112-1234", true},
		{"9511", false},
		{"95112-12", false},
		{"ABCDE", false},
	}
	for _, tc := range cases {
		_, err := NewZipCode(tc.input)
		if tc.ok {
			assert.NoError(t, err, "input %q", tc.input)
		} else {
			assert.Error(t, err, "input %q", tc.input)
		}
	}
}

func TestNewPhoneRequiresTenDigits(t *testing.T) {
	_, err := NewPhone("(408) 555-1234")
	assert.NoError(t, err)

	_, err = NewPhone("555-1234")
	assert.Error(t, err)

	_, err = NewPhone("call me maybe")
	assert.Error(t, err)

	phone, err := NewPhone("")
	require.NoError(t, err)
	assert.Empty(t, phone.String())
}

func TestNewURLRequiresHTTPScheme(t *testing.T) {
	_, err := NewURL("https://phosaigon.example.com")
	assert.NoError(t, err)

	_, err = NewURL("ftp://phosaigon.example.com")
	assert.Error(t, err)

	_, err = NewURL("not a url at all://")
	assert.Error(t, err)
}

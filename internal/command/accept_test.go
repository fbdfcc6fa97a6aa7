package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccept(t *testing.T) {
	tests := []struct {
		name     string
		spec     string
		accepted []int
		rejected []int
		str      string
	}{
		{
			name:     "empty accepts only zero",
			spec:     "",
			accepted: []int{0},
			rejected: []int{1, -1, 255},
			str:      "0",
		},
		{
			name:     "explicit zero accepts only zero",
			spec:     "0",
			accepted: []int{0},
			rejected: []int{1, 2},
			str:      "0",
		},
		{
			name:     "star accepts everything",
			spec:     "*",
			accepted: []int{0, 1, 42, 255, -9},
			str:      "*",
		},
		{
			name:     "single integer is an upper bound",
			spec:     "2",
			accepted: []int{0, 1, 2},
			rejected: []int{3, 255},
			str:      "2",
		},
		{
			name:     "list accepts exactly the listed codes",
			spec:     "0,2,5",
			accepted: []int{0, 2, 5},
			rejected: []int{1, 3, 4, 6},
			str:      "0,2,5",
		},
		{
			name:     "surrounding whitespace is ignored",
			spec:     " 1, 3 ",
			accepted: []int{1, 3},
			rejected: []int{0, 2},
			str:      "1,3",
		},
		{
			name:     "bounded zero includes signal statuses",
			spec:     "<=0",
			accepted: []int{0, -1, -9},
			rejected: []int{1},
			str:      "<=0",
		},
		{
			name:     "equals sign accepts a single code",
			spec:     "=3",
			accepted: []int{3},
			rejected: []int{0, 2, 4},
			str:      "=3",
		},
		{
			name:     "trailing comma makes a one-element list",
			spec:     "3,",
			accepted: []int{3},
			rejected: []int{0, 2, -1},
			str:      "3,",
		},
		{
			name:     "lone comma accepts nothing",
			spec:     ",",
			rejected: []int{0, 1, -9},
			str:      ",",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: parsing the acceptance spec
			policy, err := ParseAccept(tt.spec)

			// Then: the policy should accept and reject the expected statuses
			require.NoError(t, err)
			for _, status := range tt.accepted {
				assert.True(t, policy.Acceptable(status), "status %d should be accepted", status)
			}
			for _, status := range tt.rejected {
				assert.False(t, policy.Acceptable(status), "status %d should be rejected", status)
			}
			assert.Equal(t, tt.str, policy.String())
		})
	}
}

func TestParseAccept_Invalid(t *testing.T) {
	for _, spec := range []string{"x", "1,a", "1,,2", "**", "yes", "=", "<=x", ",,", "=1,2"} {
		t.Run(spec, func(t *testing.T) {
			// When: parsing a malformed spec
			_, err := ParseAccept(spec)

			// Then: a configuration error should be returned
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.ErrorIs(t, err, ErrInvalidAccept)
			assert.Contains(t, err.Error(), spec)
		})
	}
}

func TestAcceptAtMost_Range(t *testing.T) {
	for n := 0; n <= 10; n++ {
		policy := AcceptAtMost(n)
		for status := 0; status <= 12; status++ {
			assert.Equal(t, status <= n, policy.Acceptable(status), "AtMost(%d) status %d", n, status)
		}
	}
}

func TestAcceptSet_Exactness(t *testing.T) {
	pairs := [][2]int{{0, 1}, {2, 7}, {1, 255}, {3, 3}}
	for _, pair := range pairs {
		policy := AcceptSet(pair[0], pair[1])
		for status := 0; status <= 255; status++ {
			want := status == pair[0] || status == pair[1]
			assert.Equal(t, want, policy.Acceptable(status), "Set(%v) status %d", pair, status)
		}
	}
}

func TestAcceptPolicy_Constructors(t *testing.T) {
	t.Run("zero value accepts only zero", func(t *testing.T) {
		var policy AcceptPolicy
		assert.True(t, policy.Acceptable(0))
		assert.False(t, policy.Acceptable(1))
	})

	t.Run("bool maps to all or default", func(t *testing.T) {
		assert.True(t, AcceptBool(true).Acceptable(99))
		assert.True(t, AcceptBool(false).Acceptable(0))
		assert.False(t, AcceptBool(false).Acceptable(99))
	})

	t.Run("exactly a nonzero code", func(t *testing.T) {
		policy := AcceptExactly(3)
		assert.True(t, policy.Acceptable(3))
		assert.False(t, policy.Acceptable(0))
		assert.Equal(t, "=3", policy.String())
	})

	t.Run("set does not alias the caller's slice", func(t *testing.T) {
		codes := []int{1, 2}
		policy := AcceptSet(codes...)
		codes[0] = 9
		assert.True(t, policy.Acceptable(1))
		assert.False(t, policy.Acceptable(9))
	})
}

func TestAcceptPolicy_StringRoundTrip(t *testing.T) {
	policies := []AcceptPolicy{
		AcceptAll(),
		AcceptExactly(0),
		AcceptExactly(3),
		AcceptExactly(-9),
		AcceptAtMost(0),
		AcceptAtMost(2),
		AcceptAtMost(-1),
		AcceptSet(),
		AcceptSet(3),
		AcceptSet(-1),
		AcceptSet(0, 2, 5),
		AcceptBool(false),
	}

	for _, policy := range policies {
		t.Run(policy.String(), func(t *testing.T) {
			// When: rendering a constructed policy and parsing it back
			again, err := ParseAccept(policy.String())

			// Then: the same policy comes back
			require.NoError(t, err)
			assert.Equal(t, policy, again)
			for status := -10; status <= 10; status++ {
				assert.Equal(t, policy.Acceptable(status), again.Acceptable(status), "status %d", status)
			}
		})
	}
}

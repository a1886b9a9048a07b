package jobsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/jobsec/pkg/jobsec"
)

func Test_Pools_Validate_Returns_Config_Error_When_A_Pool_Is_Empty(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		pools jobsec.Pools
		want  error
	}{
		{
			name:  "NoStrings",
			pools: jobsec.Pools{Labels: []string{"x"}},
			want:  jobsec.ErrNoStrings,
		},
		{
			name:  "NoLabels",
			pools: jobsec.Pools{Strings: []string{"x"}},
			want:  jobsec.ErrNoLabels,
		},
		{
			name:  "Neither",
			pools: jobsec.Pools{},
			want:  jobsec.ErrNoStrings,
		},
		{
			name:  "EmptySlices",
			pools: jobsec.Pools{Strings: []string{}, Labels: []string{}},
			want:  jobsec.ErrNoStrings,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.pools.Validate()
			require.ErrorIs(t, err, jobsec.ErrConfig)
			assert.ErrorIs(t, err, testCase.want)
		})
	}
}

func Test_Pools_Validate_Returns_Nil_When_Both_Pools_Have_Entries(t *testing.T) {
	t.Parallel()

	pools := jobsec.Pools{Strings: []string{"a"}, Labels: []string{"b"}}

	assert.NoError(t, pools.Validate())
}

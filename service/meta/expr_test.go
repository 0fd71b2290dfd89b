package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		input       string
		expected    string
	}{
		{
			description: "no expressions",
			input:       "just a plain string",
			expected:    "just a plain string",
		},
		{
			description: "single expression",
			env:         map[string]string{"FOO": "bar"},
			input:       "value is ${env.FOO}",
			expected:    "value is bar",
		},
		{
			description: "multiple expressions",
			env:         map[string]string{"A": "1", "B": "2"},
			input:       "${env.A}-${env.B}-${env.A}",
			expected:    "1-2-1",
		},
		{
			description: "unset variable becomes empty",
			input:       "unset=${env.NOTSET_TASKRES}-end",
			expected:    "unset=-end",
		},
		{
			description: "missing closing brace stays literal",
			input:       "start ${env.X and more",
			expected:    "start ${env.X and more",
		},
	}

	for _, testCase := range testCases {
		for k, v := range testCase.env {
			t.Setenv(k, v)
		}
		assert.Equal(t, testCase.expected, expandEnvExpr(testCase.input), testCase.description)
	}
}

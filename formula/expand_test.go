// SPDX-License-Identifier: MIT

package formula_test

import (
	"testing"

	"github.com/katalvlaran/designmat/formula"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_Algebra(t *testing.T) {
	cases := []struct {
		name       string
		text       string
		terms      []formula.Term
		predictors []string
		intercept  bool
	}{
		{"InterceptOnly", "y~1", nil, []string{}, true},
		{"MainEffect", "y~x", []formula.Term{{"x"}}, []string{"x"}, true},
		{"Sum", "y~a+b", []formula.Term{{"a"}, {"b"}}, []string{"a", "b"}, true},
		{"Cross", "y~a*b", []formula.Term{{"a"}, {"b"}, {"a", "b"}}, []string{"a", "b"}, true},
		{"InteractionOnly", "y~a:b", []formula.Term{{"a", "b"}}, []string{"a", "b"}, true},
		{"ThreeWay", "y~a*b*c", []formula.Term{
			{"a"}, {"b"}, {"c"}, {"a", "b"}, {"a", "c"}, {"b", "c"}, {"a", "b", "c"},
		}, []string{"a", "b", "c"}, true},
		{"Grouping", "y~(a+b)*c", []formula.Term{
			{"a"}, {"b"}, {"c"}, {"a", "c"}, {"b", "c"},
		}, []string{"a", "b", "c"}, true},
		{"NoInterceptZero", "y~0+x", []formula.Term{{"x"}}, []string{"x"}, false},
		{"NoInterceptMinusOne", "y~x-1", []formula.Term{{"x"}}, []string{"x"}, false},
		{"RemoveTerm", "y~a*b-a:b", []formula.Term{{"a"}, {"b"}}, []string{"a", "b"}, true},
		{"DedupSwapped", "y~a:b+b:a", []formula.Term{{"a", "b"}}, []string{"a", "b"}, true},
		{"DegreeOrder", "y~a:b+c", []formula.Term{{"c"}, {"a", "b"}}, []string{"a", "b", "c"}, true},
		{"Whitespace", " y ~ a  +\tb ", []formula.Term{{"a"}, {"b"}}, []string{"a", "b"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exp, err := formula.Expand(tc.text)
			require.NoError(t, err)
			assert.Equal(t, "y", exp.Response)
			assert.Equal(t, tc.terms, exp.Terms)
			assert.Equal(t, tc.predictors, exp.Predictors)
			assert.Equal(t, tc.intercept, exp.Intercept)
		})
	}
}

func TestExpand_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"NoTilde", "x+y"},
		{"TwoTildes", "y~x~z"},
		{"NoResponse", "~x"},
		{"EmptyRHS", "y~"},
		{"BadConstant", "y~2+x"},
		{"CrossConstant", "y~1*x"},
		{"InteractConstant", "y~x:0"},
		{"Unbalanced", "y~(a+b"},
		{"DanglingOp", "y~a+"},
		{"BadChar", "y~a^2"},
		{"Trailing", "y~a)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := formula.Expand(tc.text)
			assert.ErrorIs(t, err, formula.ErrFormula)
		})
	}
}

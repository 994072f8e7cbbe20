// SPDX-License-Identifier: MIT

package coding_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/designmat/coding"
	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/formula"
	"github.com/katalvlaran/designmat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// table builds a masked, projected table from (type, x, cond) rows.
func table(t *testing.T, keepTypes []string, rows ...[3]interface{}) (*events.Table, []bool) {
	t.Helper()
	evts := make([]events.Event, len(rows))
	for i, r := range rows {
		evts[i] = events.NewEvent(r[0].(string), map[string]interface{}{"x": r[1], "cond": r[2]})
	}
	masked, keep := events.NewTable(evts).Mask(keepTypes)
	proj, err := masked.Select([]string{"x", "cond"})
	require.NoError(t, err)
	return proj, keep
}

func colNames(res *coding.Result) []string {
	out := make([]string, len(res.Columns))
	for i, c := range res.Columns {
		out[i] = c.Name()
	}
	return out
}

func varNames(res *coding.Result) []string {
	out := make([]string, len(res.Variables))
	for i, v := range res.Variables {
		out[i] = v.Name()
	}
	return out
}

func TestCode_ReferenceCoding(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", 2.0, "B"},
		[3]interface{}{"e", 3.0, "C"},
		[3]interface{}{"e", 4.0, "A"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"cond"}},
		Intercept:   true,
		Categorical: []string{"cond"},
	})
	require.NoError(t, err)

	// L=3 levels → L-1 = 2 columns, "A" is the reference.
	assert.Equal(t, []string{"(intercept)", "cond_B", "cond_C"}, colNames(res))
	assert.Equal(t, []string{"(intercept)", "cond"}, varNames(res))
	assert.Equal(t, []model.VarType{model.InterceptVar, model.Categorical},
		[]model.VarType{res.Variables[0].Type, res.Variables[1].Type})
	assert.Equal(t, []float64{0, 1, 0, 0}, mat.Col(nil, 1, res.X))
	assert.Equal(t, []float64{0, 0, 1, 0}, mat.Col(nil, 2, res.X))
	assert.Equal(t, []coding.LevelSet{{Predictor: "cond", Levels: []string{"A", "B", "C"}}}, res.Levels)
}

func TestCode_EffectsCodingSumsToZero(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", 2.0, "B"},
		[3]interface{}{"e", 6.0, "C"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x"}, {"cond"}},
		Intercept:   true,
		Categorical: []string{"cond"},
		Schema:      coding.Effects,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"(intercept)", "x", "cond_B", "cond_C"}, colNames(res))

	// One row per level: each contrast column sums to zero across levels.
	for j := 2; j < 4; j++ {
		col := mat.Col(nil, j, res.X)
		assert.InDelta(t, 0, col[0]+col[1]+col[2], 1e-12)
		assert.Equal(t, -1.0, col[0], "reference level is coded -1")
	}

	// Continuous predictors are centered and the mean is reported.
	assert.Equal(t, []coding.CenteredMean{{Predictor: "x", Mean: 3}}, res.Means)
	assert.Equal(t, []float64{-2, -1, 3}, mat.Col(nil, 1, res.X))
}

func TestCode_EffectsStatisticsUseModeledRowsOnly(t *testing.T) {
	tbl, keep := table(t, []string{"fix"},
		[3]interface{}{"fix", 1.0, "A"},
		[3]interface{}{"fix", 3.0, "B"},
		[3]interface{}{"stim", 100.0, "0"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x"}, {"cond"}},
		Intercept:   true,
		Categorical: []string{"cond"},
		Schema:      coding.Effects,
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, res.Means[0].Mean)
	assert.Equal(t, []string{"A", "B"}, res.Levels[0].Levels, "excluded rows must not add levels")
	assert.Equal(t, []float64{0, 0, 0}, mat.Row(nil, 2, res.X), "excluded row must be zero")
}

func TestCode_Interaction(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", 2.0, "B"},
		[3]interface{}{"e", 3.0, "B"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x"}, {"cond"}, {"x", "cond"}},
		Intercept:   true,
		Categorical: []string{"cond"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"(intercept)", "x", "cond_B", "x:cond_B"}, colNames(res))
	assert.Equal(t, []string{"(intercept)", "x", "cond", "x:cond"}, varNames(res))
	assert.Equal(t, model.Interaction, res.Variables[3].Type)
	assert.Equal(t, []float64{0, 2, 3}, mat.Col(nil, 3, res.X))
	assert.Empty(t, res.MissingMainEffects)

	var mapping []int
	for _, c := range res.Columns {
		mapping = append(mapping, c.Var)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, mapping)
}

// TestCode_InteractionWithoutMainEffects checks that predictors used only
// inside interactions get no variable and are reported.
func TestCode_InteractionWithoutMainEffects(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", 2.0, "B"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x", "cond"}, {"cond", "x"}},
		Intercept:   false,
		Categorical: []string{"cond"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"x:cond"}, varNames(res), "duplicate interaction must be added once")
	assert.Equal(t, []string{"x:cond_B"}, colNames(res))
	assert.Equal(t, []string{"x", "cond"}, res.MissingMainEffects)
}

func TestCode_SingleLevelIsDegenerate(t *testing.T) {
	tbl, keep := table(t, []string{"fix"},
		[3]interface{}{"fix", 1.0, "A"},
		[3]interface{}{"fix", 2.0, "A"},
		[3]interface{}{"stim", 3.0, "B"},
	)
	_, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"cond"}},
		Intercept:   true,
		Categorical: []string{"cond"},
	})
	require.ErrorIs(t, err, coding.ErrDegenerateColumn)
	assert.Contains(t, err.Error(), `"cond"`)
}

func TestCode_NumericCategoricalSortsNumerically(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 10.0, "A"},
		[3]interface{}{"e", 2.0, "A"},
		[3]interface{}{"e", 1.0, "A"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x"}},
		Intercept:   false,
		Categorical: []string{"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"x_2", "x_10"}, colNames(res))
}

func TestCode_MissingValuesBecomeNaN(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", nil, nil},
		[3]interface{}{"e", 3.0, "B"},
	)
	res, err := coding.Code(coding.Input{
		Table: tbl, Keep: keep,
		Terms:       []formula.Term{{"x"}, {"cond"}},
		Categorical: []string{"cond"},
	})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.X.At(1, 0)))
	assert.True(t, math.IsNaN(res.X.At(1, 1)))
}

func TestCode_StringContinuousRejected(t *testing.T) {
	tbl, keep := table(t, nil,
		[3]interface{}{"e", 1.0, "A"},
		[3]interface{}{"e", 2.0, "B"},
	)
	_, err := coding.Code(coding.Input{Table: tbl, Keep: keep, Terms: []formula.Term{{"cond"}}})
	assert.ErrorIs(t, err, coding.ErrNotNumeric)
}

func TestCode_NoColumns(t *testing.T) {
	tbl, keep := table(t, nil, [3]interface{}{"e", 1.0, "A"})
	res, err := coding.Code(coding.Input{Table: tbl, Keep: keep})
	require.NoError(t, err)
	assert.Nil(t, res.X)
	assert.Empty(t, res.Columns)
}

func TestParseSchema(t *testing.T) {
	s, err := coding.ParseSchema("Effects")
	require.NoError(t, err)
	assert.Equal(t, coding.Effects, s)

	s, err = coding.ParseSchema("")
	require.NoError(t, err)
	assert.Equal(t, coding.Reference, s)

	_, err = coding.ParseSchema("helmert")
	assert.ErrorIs(t, err, coding.ErrUnknownSchema)
}

func TestCheckNames(t *testing.T) {
	level := model.Column{Factors: []model.Factor{{Predictor: "c", Level: "b"}}, Var: 1}
	attr := model.Column{Factors: []model.Factor{{Predictor: "c_b"}}, Var: 2}
	other := model.Column{Factors: []model.Factor{{Predictor: "x"}}, Var: 3}

	assert.NoError(t, coding.CheckNames([]model.Column{level, other}))

	err := coding.CheckNames([]model.Column{level, other, attr})
	assert.ErrorIs(t, err, coding.ErrNameClash)
	assert.Contains(t, err.Error(), "columns 1 and 3")
}

// SPDX-License-Identifier: MIT

package design_test

import (
	"testing"

	"github.com/katalvlaran/designmat/design"
	"github.com/katalvlaran/designmat/events"
	"github.com/katalvlaran/designmat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAppendColumn(t *testing.T) {
	evts := []events.Event{ev("e", "x", 1), ev("e", "x", 2), ev("f", "x", 3)}
	rec, err := design.Build(evts, "y~x", []string{"e"}, design.WithLogger(logger(nil)))
	require.NoError(t, err)

	values := []float64{7, 8, 9}
	require.NoError(t, rec.AppendColumn(values, "drift"))
	values[0] = -1 // the record keeps its own copy

	assert.Equal(t, []string{"(intercept)", "x", "drift"}, rec.ColumnNames())
	assert.Equal(t, []int{1, 2, 3}, rec.ColumnToVariable())
	assert.Equal(t, []int{1, 1, model.NoGroup}, rec.ColumnToEventGroup())
	assert.Equal(t, []model.VarType{model.InterceptVar, model.Continuous, model.Unknown}, rec.VariableTypes())
	assert.Equal(t, []float64{7, 8, 9}, mat.Col(nil, 2, rec.Matrix()))
	require.NoError(t, rec.Validate())
}

func TestAppendColumn_Errors(t *testing.T) {
	var empty design.Record
	assert.ErrorIs(t, empty.AppendColumn([]float64{1}, "a"), design.ErrPrecondition)

	rec, err := design.Build([]events.Event{ev("e", "x", 1), ev("e", "x", 2)}, "y~x", nil, design.WithLogger(logger(nil)))
	require.NoError(t, err)

	assert.ErrorIs(t, rec.AppendColumn([]float64{1}, "a"), design.ErrShapeMismatch)
	assert.ErrorIs(t, rec.AppendColumn([]float64{1, 2}, ""), design.ErrInvalidLabel)
	assert.ErrorIs(t, rec.AppendColumn([]float64{1, 2}, "x"), design.ErrInvalidLabel)

	// Failed appends leave the record untouched.
	assert.Equal(t, 2, rec.Cols())
	_, c := rec.Matrix().Dims()
	assert.Equal(t, 2, c)
}

func TestRecord_AccessorsCopy(t *testing.T) {
	rec, err := design.Build([]events.Event{ev("e", "x", 1), ev("e", "x", 2)}, "y~x", nil, design.WithLogger(logger(nil)))
	require.NoError(t, err)

	cols := rec.Columns()
	cols[1].Factors[0].Predictor = "changed"
	assert.Equal(t, "x", rec.ColumnNames()[1])

	d := rec.Dense()
	d.Set(0, 0, 42)
	assert.Equal(t, 1.0, rec.Matrix().At(0, 0))

	i, ok := rec.ColumnIndex("x")
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = rec.ColumnIndex("nope")
	assert.False(t, ok)
}

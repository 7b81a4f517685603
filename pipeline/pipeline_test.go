package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/intcode/intcode"
)

var (
	seriesA = []int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	seriesB = []int64{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}
	seriesC = []int64{3, 31, 3, 32, 1002, 32, 10, 32, 1001, 31, -2, 31, 1007, 31, 0, 33, 1002, 33, 7, 33, 1, 33, 31, 31, 1, 32, 31, 31, 4, 31, 99, 0, 0, 0}

	feedbackA = []int64{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26, 27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	feedbackB = []int64{3, 52, 1001, 52, -5, 52, 3, 53, 1, 52, 56, 54, 1007, 54, 5, 55, 1005, 55, 26, 1001, 54, -5, 54, 1105, 1, 12, 1, 53, 54, 53, 1008, 54, 0, 55, 1001, 55, 1, 55, 2, 53, 55, 53, 4, 53, 1001, 56, -1, 56, 1005, 56, 6, 99, 0, 0, 0, 0, 10}
)

func TestSeries(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []int64
		phases  []int64
		signal  int64
	}){
		{seriesA, []int64{4, 3, 2, 1, 0}, 43210},
		{seriesB, []int64{0, 1, 2, 3, 4}, 54321},
		{seriesC, []int64{1, 0, 4, 3, 2}, 65210},
	}

	for _, entry := range table {
		signal, err := Series(entry.program, entry.phases)
		assert.NoError(err)
		assert.Equal(entry.signal, signal)
	}
}

func TestSeries_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Series(seriesA, nil)
	assert.Equal(ErrPhases, err)

	_, err = Series([]int64{99}, []int64{0, 1})
	var stage *ErrStage
	if assert.True(errors.As(err, &stage)) {
		assert.Equal(0, stage.Stage)
	}
	assert.True(errors.Is(err, ErrNoOutput))

	// Second stage faults on its input.
	_, err = Series([]int64{3, 0, 1005, 0, 8, 104, 1, 99, 42}, []int64{0, 1})
	if assert.True(errors.As(err, &stage)) {
		assert.Equal(1, stage.Stage)
	}
	assert.True(errors.Is(err, intcode.ErrOpcodeInvalid))
}

func TestBestSeries(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []int64
		phases  []int64
		signal  int64
	}){
		{seriesA, []int64{4, 3, 2, 1, 0}, 43210},
		{seriesB, []int64{0, 1, 2, 3, 4}, 54321},
		{seriesC, []int64{1, 0, 4, 3, 2}, 65210},
	}

	for _, entry := range table {
		signal, phases, err := BestSeries(entry.program, 0, 5)
		assert.NoError(err)
		assert.Equal(entry.signal, signal)
		assert.Equal(entry.phases, phases)
	}

	_, _, err := BestSeries(seriesA, 0, 0)
	assert.Equal(ErrPhases, err)
}

func TestFeedback(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program []int64
		phases  []int64
		signal  int64
	}){
		{feedbackA, []int64{9, 8, 7, 6, 5}, 139629729},
		{feedbackB, []int64{9, 7, 8, 5, 6}, 18216},
	}

	for _, entry := range table {
		signal, err := Feedback(entry.program, entry.phases)
		assert.NoError(err)
		assert.Equal(entry.signal, signal)

		signal, phases, err := BestFeedback(entry.program, 5, 5)
		assert.NoError(err)
		assert.Equal(entry.signal, signal)
		assert.Equal(entry.phases, phases)
	}
}

func TestFeedback_Series(t *testing.T) {
	assert := assert.New(t)

	// Programs that halt after one output behave as a series.
	signal, err := Feedback(seriesA, []int64{4, 3, 2, 1, 0})
	assert.NoError(err)
	assert.Equal(int64(43210), signal)
}

func TestFeedback_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := Feedback(feedbackA, []int64{})
	assert.Equal(ErrPhases, err)

	// in [10]; jmp 0
	_, err = Feedback([]int64{3, 10, 1105, 1, 0}, []int64{5, 6})
	assert.Equal(ErrStalled, err)

	_, err = Feedback([]int64{3, 10, 99}, []int64{5, 6})
	assert.True(errors.Is(err, ErrNoOutput))

	pl := &Pipeline{StepLimit: 100}
	_, err = pl.Feedback([]int64{1105, 1, 0}, []int64{5})
	assert.True(errors.Is(err, intcode.ErrStepLimit))
}

func TestSearch(t *testing.T) {
	assert := assert.New(t)

	// cell[0] = cell[noun] + cell[verb]
	program := []int64{1, 0, 0, 0, 99, 7, 11, 13}

	noun, verb, err := Search(program, 24, 8)
	assert.NoError(err)
	assert.Equal(int64(6), noun)
	assert.Equal(int64(7), verb)

	_, _, err = Search(program, 5000, 8)
	assert.Equal(ErrNotFound, err)

	// Out of range cells fault, and are skipped.
	pl := &Pipeline{MemorySize: 8}
	noun, verb, err = pl.Search(program, 24, 100)
	assert.NoError(err)
	assert.Equal(int64(6), noun)
	assert.Equal(int64(7), verb)
}

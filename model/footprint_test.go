package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindow_Validate(t *testing.T) {
	// Mock
	start := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	valid := TimeWindow{Start: start, End: start.Add(30 * 24 * time.Hour)}
	instant := TimeWindow{Start: start, End: start}
	backwards := TimeWindow{Start: start, End: start.Add(-time.Hour)}
	tooLong := TimeWindow{Start: start, End: start.Add(61 * 24 * time.Hour)}

	// Tested code / Asserts
	assert.Nil(t, valid.Validate())
	assert.Nil(t, instant.Validate())
	assert.NotNil(t, backwards.Validate())
	assert.NotNil(t, tooLong.Validate())
}

func TestTimeWindow_ContainsInclusiveBounds(t *testing.T) {
	// Mock
	start := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	window := TimeWindow{Start: start, End: start.Add(10 * 24 * time.Hour)}

	// Tested code / Asserts
	assert.True(t, window.Contains(window.Start))
	assert.True(t, window.Contains(window.End))
	assert.True(t, window.Contains(start.Add(5*24*time.Hour)))
	assert.False(t, window.Contains(start.Add(-time.Second)))
	assert.False(t, window.Contains(window.End.Add(time.Second)))
}

func TestParseFlightDirection(t *testing.T) {
	// Tested code
	ascending, ascendingErr := ParseFlightDirection("ASCENDING")
	descending, descendingErr := ParseFlightDirection("DESCENDING")
	_, sidewaysErr := ParseFlightDirection("SIDEWAYS")
	_, emptyErr := ParseFlightDirection("")

	// Asserts
	assert.Nil(t, ascendingErr)
	assert.Equal(t, Ascending, ascending)
	assert.Nil(t, descendingErr)
	assert.Equal(t, Descending, descending)
	assert.NotNil(t, sidewaysErr)
	assert.NotNil(t, emptyErr)
}

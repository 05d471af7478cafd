package model_test

import (
	"testing"

	"github.com/momeni/vehicles-api/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	c, err := model.ParseCondition("USED")
	require.NoError(t, err)
	assert.Equal(t, model.ConditionUsed, c)
	assert.Equal(t, "USED", c.String())
	assert.NoError(t, c.Validate())

	c, err = model.ParseCondition("NEW")
	require.NoError(t, err)
	assert.Equal(t, model.ConditionNew, c)
	assert.Equal(t, "NEW", c.String())
	assert.NoError(t, c.Validate())
}

func TestParseConditionUnknown(t *testing.T) {
	for _, s := range []string{"", "used", "New", "SCRAP"} {
		c, err := model.ParseCondition(s)
		assert.ErrorIs(t, err, model.ErrUnknownCondition, "input %q", s)
		assert.Equal(t, model.ConditionInvalid, c)
	}
}

func TestConditionValidate(t *testing.T) {
	err := model.ConditionInvalid.Validate()
	var ce model.ConditionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, model.ConditionError(0), ce)
}

func TestLocationWithAddress(t *testing.T) {
	l := model.Location{Lat: 40.730610, Lon: -73.935242}
	r := model.Location{
		Lat: 1, Lon: 2,
		Address: "291 Broadway", City: "New York", State: "NY",
		Zip: "10007",
	}
	d := l.WithAddress(r)
	assert.Equal(t, l.Lat, d.Lat)
	assert.Equal(t, l.Lon, d.Lon)
	assert.Equal(t, "291 Broadway", d.Address)
	assert.Equal(t, "New York", d.City)
	assert.Equal(t, "NY", d.State)
	assert.Equal(t, "10007", d.Zip)
}

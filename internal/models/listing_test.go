package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/styoin/styo-server/internal/models"
)

func TestNextPropertyStatus(t *testing.T) {
	next, err := models.NextPropertyStatus(models.StatusAvailable)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusVisitCompleted, next)

	next, err = models.NextPropertyStatus(models.StatusVisitCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusUnderConfirmation, next)

	next, err = models.NextPropertyStatus(models.StatusUnderConfirmation)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusBookedViaSTYO, next)

	_, err = models.NextPropertyStatus(models.StatusBookedViaSTYO)
	assert.Error(t, err, "terminal state has no successor")

	_, err = models.NextPropertyStatus("underReview")
	assert.Error(t, err, "unknown state has no successor")
}

func TestAvailabilityNormalize(t *testing.T) {
	a := models.AvailabilityStatus{Status: models.AvailabilityBooked, AvailableUnits: 5}
	a.Normalize()
	assert.Zero(t, a.AvailableUnits, "booked listings hold no units")

	a = models.AvailabilityStatus{Status: models.AvailabilityAvailable, AvailableUnits: 0}
	a.Normalize()
	assert.Equal(t, models.AvailabilityBooked, a.Status, "zero units reads as booked")

	a = models.AvailabilityStatus{Status: models.AvailabilityPartiallyAvailable, AvailableUnits: 2}
	a.Normalize()
	assert.Equal(t, models.AvailabilityPartiallyAvailable, a.Status)
	assert.Equal(t, uint(2), a.AvailableUnits)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range models.Categories {
		assert.True(t, c.Valid(), "category %s", c)
	}
	assert.False(t, models.ListingCategory("castle").Valid())
	assert.False(t, models.ListingCategory("").Valid())
}

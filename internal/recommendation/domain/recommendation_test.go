package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayIsUTCMidnight(t *testing.T) {
	today := Today()

	assert.Equal(t, time.UTC, today.Location())
	h, m, s := today.Clock()
	assert.Zero(t, h)
	assert.Zero(t, m)
	assert.Zero(t, s)
	assert.Zero(t, today.Nanosecond())

	y, mo, d := time.Now().UTC().Date()
	wy, wmo, wd := today.Date()
	assert.Equal(t, y, wy)
	assert.Equal(t, mo, wmo)
	assert.Equal(t, d, wd)
}

func TestBeforeCreateDefaultsDateAndID(t *testing.T) {
	rec := &Recommendation{}

	err := rec.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, Today(), rec.PublicationDate)
}

func TestBeforeCreateKeepsExplicitValues(t *testing.T) {
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	rec := &Recommendation{ID: "fixed-id", PublicationDate: date}

	err := rec.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "fixed-id", rec.ID)
	assert.Equal(t, date, rec.PublicationDate)
}

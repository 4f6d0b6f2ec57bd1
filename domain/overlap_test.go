package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		aStart   string
		aEnd     string
		bStart   string
		bEnd     string
		expected bool
	}{
		{"identical ranges", "2024-01-15", "2024-01-17", "2024-01-15", "2024-01-17", true},
		{"contained range", "2024-01-10", "2024-01-20", "2024-01-12", "2024-01-14", true},
		{"partial overlap left", "2024-01-10", "2024-01-16", "2024-01-15", "2024-01-20", true},
		{"partial overlap right", "2024-01-15", "2024-01-20", "2024-01-10", "2024-01-16", true},
		{"one night shared", "2024-01-15", "2024-01-17", "2024-01-16", "2024-01-18", true},
		{"back to back, a before b", "2024-01-15", "2024-01-17", "2024-01-17", "2024-01-19", false},
		{"back to back, b before a", "2024-01-17", "2024-01-19", "2024-01-15", "2024-01-17", false},
		{"fully disjoint", "2024-01-01", "2024-01-05", "2024-02-01", "2024-02-05", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(date("2024-01-15"), date("2024-01-17")))
	assert.Equal(t, 1, Nights(date("2024-01-15"), date("2024-01-16")))

	// a stay crossing a fractional day boundary counts as a full extra night
	checkIn := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 1, 17, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(checkIn, checkOut))

	checkOutLate := time.Date(2024, 1, 17, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, Nights(checkIn, checkOutLate))
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 300.0, TotalPrice(date("2024-01-15"), date("2024-01-17"), 150))
	assert.Equal(t, 89.99, TotalPrice(date("2024-01-15"), date("2024-01-16"), 89.99))
}

package domain

import (
	"math"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Back-to-back ranges where one checkout
// equals the other checkin do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights returns the stay duration rounded up to whole days. A stay that
// crosses a fractional day boundary counts as a full extra night.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func TotalPrice(checkIn, checkOut time.Time, nightlyPrice float64) float64 {
	return float64(Nights(checkIn, checkOut)) * nightlyPrice
}

package feed

import "time"

// sampleDayOffset moves the daily sample boundary to midnight UTC+9
const sampleDayOffset = 9 * time.Hour

// DayIndex returns number of whole days since epoch, days starting at midnight UTC+9
func DayIndex(t time.Time) int64 {
	secs := t.Unix() + int64(sampleDayOffset/time.Second)
	day := secs / 86400
	if secs < 0 && secs%86400 != 0 {
		day-- // floor for times before epoch
	}
	return day
}

// SampleDaily deterministically picks size consecutive items for the day of now.
// The window starts at day index times size modulo len(items) and wraps around the list,
// so the same day always gives the same pick.
func SampleDaily[T any](items []T, size int, now time.Time) []T {
	if len(items) == 0 || size <= 0 {
		return nil
	}
	if size > len(items) {
		size = len(items)
	}
	n := int64(len(items))
	start := (DayIndex(now) * int64(size)) % n
	if start < 0 {
		start += n
	}
	res := make([]T, 0, size)
	for i := int64(0); i < int64(size); i++ {
		res = append(res, items[(start+i)%n])
	}
	return res
}

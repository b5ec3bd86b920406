package format

import (
	"time"
)

const (
	filetimeOffset = 116444736000000000 // difference between FILETIME epoch and Unix epoch in 100ns units
	filetimeUnit   = 100                // FILETIME units are 100ns
)

// FiletimeToTime converts a Windows FILETIME value to a UTC time.Time.
// Values at or before the Unix epoch clamp to it.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeOffset {
		return time.Unix(0, 0).UTC()
	}
	ns := int64((v - filetimeOffset) * filetimeUnit)
	sec := ns / int64(time.Second)
	nsec := ns % int64(time.Second)
	return time.Unix(sec, nsec).UTC()
}

// TimeToFiletime converts a time.Time to a Windows FILETIME value. Times
// before the Unix epoch, including the zero Time, clamp to it.
func TimeToFiletime(t time.Time) uint64 {
	if t.Unix() < 0 {
		return filetimeOffset
	}
	return uint64(t.UnixNano())/filetimeUnit + filetimeOffset
}

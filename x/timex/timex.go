package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz converts a requested frequency to a tick period.
// freqHz==0 is coerced to 1 to avoid a zero period.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Second / time.Duration(freqHz)
}

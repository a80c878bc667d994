package gen

import (
	"fmt"
	"time"

	"goprop/tree"
)

// Generate times within the window around the provided epoch, at one second
// granularity. Shrinks toward the epoch itself.
func TimeAround(epoch time.Time, window time.Duration) Gen[time.Time] {
	return New(func(p Params) (*tree.Tree[time.Time], error) {
		if window < 0 {
			return nil, fmt.Errorf("%w: negative time window %v", ArgumentError, window)
		}
		secs := int(window / time.Second)
		g := Map(IntRange(-secs, secs), func(s int) time.Time {
			return epoch.Add(time.Duration(s) * time.Second)
		})
		return g.f(p)
	})
}

// Generate times around the configured epoch, within a window of size days.
// The epoch is taken from Params and falls back to DefaultEpoch.
func Time() Gen[time.Time] {
	return New(func(p Params) (*tree.Tree[time.Time], error) {
		epoch := p.Epoch
		if epoch.IsZero() {
			epoch = DefaultEpoch
		}
		return TimeAround(epoch, time.Duration(p.Size)*24*time.Hour).f(p)
	})
}

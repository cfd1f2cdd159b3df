package es

import "time"

// Timeframe is the ordered sequence of discrete evaluation instants the
// system is optimized over: Periods points starting at Start, spaced by a
// uniform Step.
type Timeframe struct {
	Start   time.Time
	Periods int
	Step    time.Duration
}

// HourlyTimeframe returns a timeframe of n hourly points starting at start.
func HourlyTimeframe(start time.Time, n int) Timeframe {
	return Timeframe{Start: start, Periods: n, Step: time.Hour}
}

// Len returns the number of evaluation instants.
func (tf Timeframe) Len() int {
	return tf.Periods
}

// Points materializes the time axis.
func (tf Timeframe) Points() []time.Time {
	pts := make([]time.Time, tf.Periods)
	for i := range pts {
		pts[i] = tf.Start.Add(time.Duration(i) * tf.Step)
	}
	return pts
}

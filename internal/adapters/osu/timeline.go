package osu

import "time"

// MaxMapsetID is the newest beatmapset id covered by the submit-time curve.
// Random draws above it would land past the curve and return near-empty
// windows.
const MaxMapsetID = 1656675

// sinceLayout is the datetime format the v1 API expects for since=, in UTC.
const sinceLayout = "2006-01-02 15:04:05"

// timelineAnchor pins a beatmapset id to its approximate submit time.
// Mapset ids are issued sequentially, so interpolating between sampled
// anchors approximates the id->date curve closely enough to turn a uniform
// id draw into a submit-date-distributed window start.
type timelineAnchor struct {
	id int
	at time.Time
}

var timeline = []timelineAnchor{
	{1, date(2007, 10, 6)},
	{7000, date(2009, 1, 1)},
	{25000, date(2010, 6, 1)},
	{50000, date(2011, 12, 1)},
	{100000, date(2013, 6, 1)},
	{200000, date(2014, 10, 1)},
	{300000, date(2015, 7, 1)},
	{450000, date(2016, 5, 1)},
	{600000, date(2017, 4, 1)},
	{800000, date(2018, 6, 1)},
	{1000000, date(2019, 8, 1)},
	{1200000, date(2020, 7, 1)},
	{1400000, date(2021, 4, 1)},
	{MaxMapsetID, date(2022, 1, 1)},
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// submitTimeForID linearly interpolates the submit time of a mapset id
// between the surrounding anchors. Ids outside the curve clamp to its ends.
func submitTimeForID(id int) time.Time {
	first := timeline[0]
	if id <= first.id {
		return first.at
	}
	last := timeline[len(timeline)-1]
	if id >= last.id {
		return last.at
	}

	for i := 1; i < len(timeline); i++ {
		lo, hi := timeline[i-1], timeline[i]
		if id > hi.id {
			continue
		}
		span := hi.at.Sub(lo.at)
		frac := float64(id-lo.id) / float64(hi.id-lo.id)
		return lo.at.Add(time.Duration(frac * float64(span)))
	}
	return last.at
}

func sinceParam(id int) string {
	return submitTimeForID(id).UTC().Format(sinceLayout)
}

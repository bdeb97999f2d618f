package video

import "time"

// Location is a clip covering a match second and the playback second inside it.
type Location struct {
	Clip       Video
	ClipSecond int64
}

// MatchSeconds converts an absolute instant into whole seconds since kickoff,
// rounded down so any instant before kickoff is negative.
func MatchSeconds(at, kickoff time.Time) int64 {
	elapsed := at.Sub(kickoff)
	seconds := int64(elapsed / time.Second)
	if elapsed < 0 && elapsed%time.Second != 0 {
		seconds--
	}
	return seconds
}

// Locate returns every clip whose span contains matchSecond. A clip spans
// [Offset+GameStart, Offset+GameStart+Length], bounds inclusive. Spans may
// overlap because GameStart is set per clip; all matches are returned in
// track order.
func (t Track) Locate(matchSecond int64) []Location {
	if matchSecond < 0 {
		return nil
	}

	var out []Location
	for _, entry := range t.Entries {
		start := entry.Offset + entry.Clip.GameStart
		end := start + entry.Clip.Length
		if matchSecond < start || matchSecond > end {
			continue
		}
		out = append(out, Location{
			Clip:       entry.Clip,
			ClipSecond: matchSecond - entry.Offset + entry.Clip.GameStart,
		})
	}
	return out
}

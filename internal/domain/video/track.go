package video

import (
	"sort"
	"strings"
)

// TrackEntry places one clip on its camera's virtual timeline. Offset is the
// sum of the lengths of every clip before it on the same camera.
type TrackEntry struct {
	Clip   Video
	Offset int64
}

// Track is the gap-free concatenation of one camera's clips for one game.
type Track struct {
	CameraID string
	Entries  []TrackEntry
}

// BuildTracks partitions clips by camera, orders each camera by sort index
// and accumulates offsets. Clips without a camera are dropped. Cameras are
// returned ordered by id.
func BuildTracks(clips []Video) []Track {
	byCamera := make(map[string][]Video)
	for _, clip := range clips {
		cameraID := strings.TrimSpace(clip.CameraID)
		if cameraID == "" {
			continue
		}
		byCamera[cameraID] = append(byCamera[cameraID], clip)
	}

	cameraIDs := make([]string, 0, len(byCamera))
	for cameraID := range byCamera {
		cameraIDs = append(cameraIDs, cameraID)
	}
	sort.Strings(cameraIDs)

	out := make([]Track, 0, len(cameraIDs))
	for _, cameraID := range cameraIDs {
		out = append(out, buildTrack(cameraID, byCamera[cameraID]))
	}
	return out
}

func buildTrack(cameraID string, clips []Video) Track {
	ordered := append([]Video(nil), clips...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortIndex < ordered[j].SortIndex
	})

	entries := make([]TrackEntry, 0, len(ordered))
	var offset int64
	for _, clip := range ordered {
		entries = append(entries, TrackEntry{Clip: clip, Offset: offset})
		offset += clip.Length
	}

	return Track{CameraID: cameraID, Entries: entries}
}

// Duration is the total virtual length of the track in seconds.
func (t Track) Duration() int64 {
	var total int64
	for _, entry := range t.Entries {
		total += entry.Clip.Length
	}
	return total
}

// FilterViewable keeps the clips accepted by canView. The predicate is
// consulted exactly once per clip.
func FilterViewable(clips []Video, canView func(Video) bool) []Video {
	out := make([]Video, 0, len(clips))
	for _, clip := range clips {
		if canView == nil || canView(clip) {
			out = append(out, clip)
		}
	}
	return out
}

package video

import (
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"
)

// DefaultPreroll starts playback one minute before the event.
const DefaultPreroll = 60 * time.Second

// EventPosition is an event expressed in match seconds.
type EventPosition struct {
	EventID     string
	MatchSecond int64
}

// Links maps event id to camera id to playback URLs.
type Links map[string]map[string][]string

// ComposeURL appends the playback start to a clip URL, floored at zero.
func ComposeURL(clipURL string, clipSecond int64, preroll time.Duration) string {
	start := clipSecond - int64(preroll/time.Second)
	if start < 0 {
		start = 0
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(clipURL)
	_, _ = buf.WriteString("&t=")
	buf.B = strconv.AppendInt(buf.B, start, 10)
	_ = buf.WriteByte('s')

	return buf.String()
}

// Linker composes deep links for events against a set of camera tracks.
type Linker struct {
	preroll time.Duration
}

func NewLinker(preroll time.Duration) Linker {
	if preroll < 0 {
		preroll = 0
	}
	return Linker{preroll: preroll}
}

func (l Linker) Preroll() time.Duration {
	return l.preroll
}

// Compose returns links for every event located on at least one camera.
// Events without any covering clip are absent from the result.
func (l Linker) Compose(tracks []Track, events []EventPosition) Links {
	out := make(Links)
	for _, event := range events {
		for _, track := range tracks {
			locations := track.Locate(event.MatchSecond)
			if len(locations) == 0 {
				continue
			}

			byCamera, ok := out[event.EventID]
			if !ok {
				byCamera = make(map[string][]string)
				out[event.EventID] = byCamera
			}
			for _, location := range locations {
				byCamera[track.CameraID] = append(byCamera[track.CameraID], ComposeURL(location.Clip.URL, location.ClipSecond, l.preroll))
			}
		}
	}
	return out
}

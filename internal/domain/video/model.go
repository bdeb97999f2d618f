package video

import "fmt"

const (
	VisibilityPublic = "public"
	VisibilityClub   = "club"
	VisibilityStaff  = "staff"
)

// Camera is a physical recording device owned by a club.
type Camera struct {
	ID     string
	Name   string
	ClubID string
}

// Video is one contiguous clip recorded by one camera for one game.
// Length and GameStart are whole seconds.
type Video struct {
	ID         string
	GameID     string
	CameraID   string
	SortIndex  int
	Length     int64
	GameStart  int64
	URL        string
	Visibility string
}

func (v Video) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("video id is required")
	}
	if v.GameID == "" {
		return fmt.Errorf("video game id is required")
	}
	if v.CameraID == "" {
		return fmt.Errorf("video camera id is required")
	}
	if v.Length < 0 {
		return fmt.Errorf("video length must be >= 0")
	}

	return nil
}

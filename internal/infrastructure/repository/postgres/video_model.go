package postgres

import "github.com/riskibarqy/club-manager/internal/domain/video"

const videoColumns = "id, public_id, game_public_id, camera_public_id, sort_index, length_seconds, " +
	"game_start_seconds, url, visibility"

type videoTableModel struct {
	ID               int64  `db:"id"`
	PublicID         string `db:"public_id"`
	GameID           string `db:"game_public_id"`
	CameraID         string `db:"camera_public_id"`
	SortIndex        int    `db:"sort_index"`
	LengthSeconds    int64  `db:"length_seconds"`
	GameStartSeconds int64  `db:"game_start_seconds"`
	URL              string `db:"url"`
	Visibility       string `db:"visibility"`
}

func (m videoTableModel) toDomain() video.Video {
	return video.Video{
		ID:         m.PublicID,
		GameID:     m.GameID,
		CameraID:   m.CameraID,
		SortIndex:  m.SortIndex,
		Length:     m.LengthSeconds,
		GameStart:  m.GameStartSeconds,
		URL:        m.URL,
		Visibility: m.Visibility,
	}
}

const cameraColumns = "id, public_id, club_id, name"

type cameraTableModel struct {
	ID       int64  `db:"id"`
	PublicID string `db:"public_id"`
	ClubID   string `db:"club_id"`
	Name     string `db:"name"`
}

func (m cameraTableModel) toDomain() video.Camera {
	return video.Camera{
		ID:     m.PublicID,
		ClubID: m.ClubID,
		Name:   m.Name,
	}
}

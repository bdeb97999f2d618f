package video

import "context"

// Repository exposes clip read operations.
type Repository interface {
	ListByGame(ctx context.Context, gameID string) ([]Video, error)
}

// CameraRepository exposes camera read operations.
type CameraRepository interface {
	ListByIDs(ctx context.Context, cameraIDs []string) ([]Camera, error)
}

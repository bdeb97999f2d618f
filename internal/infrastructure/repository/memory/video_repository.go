package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/club-manager/internal/domain/video"
)

type VideoRepository struct {
	mu     sync.RWMutex
	videos map[string][]video.Video
}

func NewVideoRepository(videos []video.Video) *VideoRepository {
	byGame := make(map[string][]video.Video)
	for _, item := range videos {
		if item.Validate() != nil {
			continue
		}
		byGame[item.GameID] = append(byGame[item.GameID], item)
	}

	return &VideoRepository{videos: byGame}
}

func (r *VideoRepository) ListByGame(_ context.Context, gameID string) ([]video.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.videos[strings.TrimSpace(gameID)]
	return append(make([]video.Video, 0, len(items)), items...), nil
}

type CameraRepository struct {
	mu      sync.RWMutex
	cameras map[string]video.Camera
}

func NewCameraRepository(cameras []video.Camera) *CameraRepository {
	byID := make(map[string]video.Camera, len(cameras))
	for _, item := range cameras {
		byID[item.ID] = item
	}

	return &CameraRepository{cameras: byID}
}

func (r *CameraRepository) ListByIDs(_ context.Context, cameraIDs []string) ([]video.Camera, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]video.Camera, 0, len(cameraIDs))
	for _, id := range cameraIDs {
		if item, ok := r.cameras[strings.TrimSpace(id)]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

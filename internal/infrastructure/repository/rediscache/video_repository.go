package rediscache

import (
	"context"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

const (
	keyPrefix      = "club-manager:videos:game:"
	payloadVersion = 1
)

// VideoRepository is a read-through cache for per-game clip lists shared by
// all API replicas. Redis failures fall back to the wrapped repository.
type VideoRepository struct {
	next   video.Repository
	client goredis.Cmdable
	ttl    time.Duration
	logger *logging.Logger
}

func NewVideoRepository(next video.Repository, client goredis.Cmdable, ttl time.Duration, logger *logging.Logger) *VideoRepository {
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &VideoRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *VideoRepository) ListByGame(ctx context.Context, gameID string) ([]video.Video, error) {
	key := videoKey(gameID)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		items, decodeErr := decodeVideos(raw)
		if decodeErr == nil {
			return items, nil
		}
		r.logger.WarnContext(ctx, "discard undecodable video cache entry", "key", key, "error", decodeErr)
	case errors.Is(err, goredis.Nil):
	default:
		r.logger.WarnContext(ctx, "video cache read failed", "key", key, "error", err)
	}

	items, err := r.next.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	payload, err := encodeVideos(items)
	if err != nil {
		r.logger.WarnContext(ctx, "encode video cache entry failed", "key", key, "error", err)
		return items, nil
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "video cache write failed", "key", key, "error", err)
	}

	return items, nil
}

// invalidate drops the cached clip list of a game.
func (r *VideoRepository) invalidate(ctx context.Context, gameID string) error {
	if err := r.client.Del(ctx, videoKey(gameID)).Err(); err != nil {
		return crerr.Wrapf(err, "delete video cache for game %s", gameID)
	}
	return nil
}

func videoKey(gameID string) string {
	return keyPrefix + gameID
}

type videoPayload struct {
	Version int             `json:"v"`
	Items   []videoCacheDTO `json:"items"`
}

type videoCacheDTO struct {
	ID         string `json:"id"`
	GameID     string `json:"game_id"`
	CameraID   string `json:"camera_id"`
	SortIndex  int    `json:"sort_index"`
	Length     int64  `json:"length"`
	GameStart  int64  `json:"game_start"`
	URL        string `json:"url"`
	Visibility string `json:"visibility"`
}

func encodeVideos(items []video.Video) ([]byte, error) {
	payload := videoPayload{Version: payloadVersion, Items: make([]videoCacheDTO, 0, len(items))}
	for _, item := range items {
		payload.Items = append(payload.Items, videoCacheDTO{
			ID:         item.ID,
			GameID:     item.GameID,
			CameraID:   item.CameraID,
			SortIndex:  item.SortIndex,
			Length:     item.Length,
			GameStart:  item.GameStart,
			URL:        item.URL,
			Visibility: item.Visibility,
		})
	}
	return sonic.Marshal(payload)
}

func decodeVideos(raw []byte) ([]video.Video, error) {
	var payload videoPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrap(err, "unmarshal video cache payload")
	}
	if payload.Version != payloadVersion {
		return nil, crerr.Newf("unsupported video cache payload version %d", payload.Version)
	}

	out := make([]video.Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		out = append(out, video.Video{
			ID:         item.ID,
			GameID:     item.GameID,
			CameraID:   item.CameraID,
			SortIndex:  item.SortIndex,
			Length:     item.Length,
			GameStart:  item.GameStart,
			URL:        item.URL,
			Visibility: item.Visibility,
		})
	}
	return out, nil
}

package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/club-manager/internal/domain/video"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

type VideoRepository struct {
	db *sqlx.DB
}

func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

func (r *VideoRepository) ListByGame(ctx context.Context, gameID string) ([]video.Video, error) {
	query, args, err := qb.Select(videoColumns).From("videos").
		Where(
			qb.Eq("game_public_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("camera_public_id ASC", "sort_index ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select videos by game query")
	}

	var rows []videoTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select videos for game %s", gameID)
	}

	out := make([]video.Video, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type CameraRepository struct {
	db *sqlx.DB
}

func NewCameraRepository(db *sqlx.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

func (r *CameraRepository) ListByIDs(ctx context.Context, cameraIDs []string) ([]video.Camera, error) {
	cameraIDs = normalizeIDs(cameraIDs)
	if len(cameraIDs) == 0 {
		return []video.Camera{}, nil
	}

	query, args, err := qb.Select(cameraColumns).From("cameras").
		Where(
			qb.Any("public_id", pq.Array(cameraIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select cameras by ids query")
	}

	var rows []cameraTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select cameras by ids")
	}

	out := make([]video.Camera, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

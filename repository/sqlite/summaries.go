package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/nijaru/yt-digest/errors"
	"github.com/nijaru/yt-digest/models"
)

type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Put(ctx context.Context, record *models.SummaryRecord) error {
	const op = "SQLiteRepository.Put"

	thumbnails, err := json.Marshal(record.Thumbnails)
	if err != nil {
		return errors.Internal(op, err, "Failed to encode thumbnails")
	}

	err = withRetry(ctx, r.db.config, func() error {
		_, err := r.db.statements.insert.ExecContext(ctx,
			record.Hashtag,
			record.ProcessedAt,
			record.VideoID,
			record.Title,
			record.ChannelTitle,
			record.PublishedAt,
			string(thumbnails),
			int64(record.ViewCount),
			int64(record.LikeCount),
			record.Summary,
		)
		return err
	})
	if err != nil {
		return errors.Internal(op, err, "Failed to save summary")
	}
	return nil
}

func (r *Repository) ExistsByVideoID(ctx context.Context, videoID string) (bool, error) {
	const op = "SQLiteRepository.ExistsByVideoID"

	var one int
	err := r.db.statements.existsByVideo.QueryRowContext(ctx, videoID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal(op, err, "Failed to query video")
	}
	return true, nil
}

func (r *Repository) ListByHashtag(ctx context.Context, hashtag string, limit int) ([]models.SummaryRecord, error) {
	const op = "SQLiteRepository.ListByHashtag"

	// SQLite treats a negative LIMIT as unbounded.
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.statements.listByHashtag.QueryContext(ctx, hashtag, limit)
	if err != nil {
		return nil, errors.Internal(op, err, "Failed to query summaries")
	}
	defer rows.Close()

	records := []models.SummaryRecord{}
	for rows.Next() {
		var (
			rec        models.SummaryRecord
			thumbnails string
			views      int64
			likes      int64
		)
		if err := rows.Scan(
			&rec.Hashtag,
			&rec.ProcessedAt,
			&rec.VideoID,
			&rec.Title,
			&rec.ChannelTitle,
			&rec.PublishedAt,
			&thumbnails,
			&views,
			&likes,
			&rec.Summary,
		); err != nil {
			return nil, errors.Internal(op, err, "Failed to scan summary")
		}

		if err := json.Unmarshal([]byte(thumbnails), &rec.Thumbnails); err != nil {
			return nil, errors.Internal(op, err, "Failed to decode thumbnails")
		}
		rec.ViewCount = uint64(views)
		rec.LikeCount = uint64(likes)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Internal(op, err, "Failed to iterate summaries")
	}

	return records, nil
}

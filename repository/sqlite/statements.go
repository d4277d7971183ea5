package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nijaru/yt-digest/errors"
)

const (
	insertSummaryQuery = `
        INSERT INTO summaries (
            hashtag, processed_at, video_id, title, channel_title,
            published_at, thumbnails, view_count, like_count, summary
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(hashtag, processed_at) DO UPDATE SET
            video_id = excluded.video_id,
            title = excluded.title,
            channel_title = excluded.channel_title,
            published_at = excluded.published_at,
            thumbnails = excluded.thumbnails,
            view_count = excluded.view_count,
            like_count = excluded.like_count,
            summary = excluded.summary
    `

	existsByVideoIDQuery = `
        SELECT 1 FROM summaries WHERE video_id = ? LIMIT 1
    `

	listByHashtagQuery = `
        SELECT hashtag, processed_at, video_id, title, channel_title,
               published_at, thumbnails, view_count, like_count, summary
        FROM summaries
        WHERE hashtag = ?
        ORDER BY processed_at DESC
        LIMIT ?
    `
)

type PreparedStatements struct {
	insert        *sql.Stmt
	existsByVideo *sql.Stmt
	listByHashtag *sql.Stmt
}

func (stmts *PreparedStatements) Prepare(ctx context.Context, conn *sql.DB) error {
	const op = "PreparedStatements.Prepare"

	var err error

	if stmts.insert, err = conn.PrepareContext(ctx, insertSummaryQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare insert statement")
	}

	if stmts.existsByVideo, err = conn.PrepareContext(ctx, existsByVideoIDQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare existsByVideo statement")
	}

	if stmts.listByHashtag, err = conn.PrepareContext(ctx, listByHashtagQuery); err != nil {
		return errors.Internal(op, err, "failed to prepare listByHashtag statement")
	}

	return nil
}

func (stmts *PreparedStatements) Close() error {
	var errs []error

	statements := [...]*sql.Stmt{
		stmts.insert,
		stmts.existsByVideo,
		stmts.listByHashtag,
	}

	for _, stmt := range statements {
		if stmt != nil {
			if err := stmt.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to close prepared statements: %v", errs)
	}

	return nil
}

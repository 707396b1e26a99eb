package sqlc

import (
	"context"
)

const createNote = `-- name: CreateNote :execlastid
INSERT INTO notes (user_id, content, category, tags)
VALUES (?, ?, ?, ?)
`

type CreateNoteParams struct {
	UserID   int64
	Content  string
	Category string
	Tags     string
}

func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createNote,
		arg.UserID,
		arg.Content,
		arg.Category,
		arg.Tags,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const listNotesByUser = `-- name: ListNotesByUser :many
SELECT id, user_id, content, category, tags, created_at FROM notes
WHERE user_id = ?
ORDER BY id ASC
`

func (q *Queries) ListNotesByUser(ctx context.Context, userID int64) ([]Note, error) {
	rows, err := q.db.QueryContext(ctx, listNotesByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Note
	for rows.Next() {
		var i Note
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Content,
			&i.Category,
			&i.Tags,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteNote = `-- name: DeleteNote :execrows
DELETE FROM notes
WHERE user_id = ? AND id = ?
`

type DeleteNoteParams struct {
	UserID int64
	ID     int64
}

func (q *Queries) DeleteNote(ctx context.Context, arg DeleteNoteParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteNote, arg.UserID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteNotesByContent = `-- name: DeleteNotesByContent :execrows
DELETE FROM notes
WHERE user_id = ? AND content = ?
`

type DeleteNotesByContentParams struct {
	UserID  int64
	Content string
}

func (q *Queries) DeleteNotesByContent(ctx context.Context, arg DeleteNotesByContentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteNotesByContent, arg.UserID, arg.Content)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listReportRows = `-- name: ListReportRows :many
SELECT COALESCE(u.username, '') AS username, n.content, n.category, n.tags, u.id IS NOT NULL AS has_user
FROM notes n
LEFT JOIN users u ON u.id = n.user_id
ORDER BY n.id ASC
`

type ListReportRowsRow struct {
	Username string
	Content  string
	Category string
	Tags     string
	HasUser  bool
}

func (q *Queries) ListReportRows(ctx context.Context) ([]ListReportRowsRow, error) {
	rows, err := q.db.QueryContext(ctx, listReportRows)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListReportRowsRow
	for rows.Next() {
		var i ListReportRowsRow
		if err := rows.Scan(
			&i.Username,
			&i.Content,
			&i.Category,
			&i.Tags,
			&i.HasUser,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getNote = `-- name: GetNote :one
SELECT id, user_id, content, category, tags, created_at FROM notes
WHERE id = ?
`

func (q *Queries) GetNote(ctx context.Context, id int64) (Note, error) {
	row := q.db.QueryRowContext(ctx, getNote, id)
	var i Note
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Content,
		&i.Category,
		&i.Tags,
		&i.CreatedAt,
	)
	return i, err
}

package sqlc

import (
	"context"
)

const createTask = `-- name: CreateTask :execlastid
INSERT INTO tasks (user_id, content, due_date, priority)
VALUES (?, ?, ?, ?)
`

type CreateTaskParams struct {
	UserID   int64
	Content  string
	DueDate  string
	Priority int64
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createTask,
		arg.UserID,
		arg.Content,
		arg.DueDate,
		arg.Priority,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const listTasksByUser = `-- name: ListTasksByUser :many
SELECT id, user_id, content, due_date, priority, completed, created_at FROM tasks
WHERE user_id = ?
ORDER BY id ASC
`

func (q *Queries) ListTasksByUser(ctx context.Context, userID int64) ([]Task, error) {
	rows, err := q.db.QueryContext(ctx, listTasksByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Task
	for rows.Next() {
		var i Task
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Content,
			&i.DueDate,
			&i.Priority,
			&i.Completed,
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

const completeTask = `-- name: CompleteTask :execrows
UPDATE tasks SET completed = 1
WHERE user_id = ? AND id = ?
`

type CompleteTaskParams struct {
	UserID int64
	ID     int64
}

func (q *Queries) CompleteTask(ctx context.Context, arg CompleteTaskParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, completeTask, arg.UserID, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const completeTasksByContent = `-- name: CompleteTasksByContent :execrows
UPDATE tasks SET completed = 1
WHERE user_id = ? AND content = ?
`

type CompleteTasksByContentParams struct {
	UserID  int64
	Content string
}

func (q *Queries) CompleteTasksByContent(ctx context.Context, arg CompleteTasksByContentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, completeTasksByContent, arg.UserID, arg.Content)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getTask = `-- name: GetTask :one
SELECT id, user_id, content, due_date, priority, completed, created_at FROM tasks
WHERE id = ?
`

func (q *Queries) GetTask(ctx context.Context, id int64) (Task, error) {
	row := q.db.QueryRowContext(ctx, getTask, id)
	var i Task
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Content,
		&i.DueDate,
		&i.Priority,
		&i.Completed,
		&i.CreatedAt,
	)
	return i, err
}

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const projectColumns = `id, title, description, location, status, category, image_url, area,
	bedrooms, bathrooms, price, completion_date, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Status,
		&p.Category,
		&p.ImageURL,
		&p.Area,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Price,
		&p.CompletionDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// ProjectFilter narrows ListProjects. Empty fields do not filter.
type ProjectFilter struct {
	Status   string
	Category string
}

// ListProjects returns matching projects, newest first.
func (q *Queries) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	var p predicates
	p.eq("status", filter.Status)
	p.eq("category", filter.Category)
	where, args := p.where()

	query := `SELECT ` + projectColumns + ` FROM projects` + where + ` ORDER BY created_at DESC, id DESC`
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []Project{}
	for rows.Next() {
		i, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getProject = `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

// GetProject returns sql.ErrNoRows when the project does not exist.
func (q *Queries) GetProject(ctx context.Context, id int64) (Project, error) {
	return scanProject(q.db.QueryRowContext(ctx, getProject, id))
}

const countProjects = `SELECT COUNT(*) FROM projects`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countProjects).Scan(&n)
	return n, err
}

// ProjectParams holds the writable columns of a project.
type ProjectParams struct {
	Title          sql.NullString
	Description    sql.NullString
	Location       sql.NullString
	Status         sql.NullString
	Category       sql.NullString
	ImageURL       sql.NullString
	Area           sql.NullString
	Bedrooms       sql.NullInt64
	Bathrooms      sql.NullInt64
	Price          decimal.NullDecimal
	CompletionDate sql.NullTime
}

// CreateProjectParams adds the timestamps of a new row.
type CreateProjectParams struct {
	ProjectParams
	CreatedAt time.Time
	UpdatedAt time.Time
}

const createProject = `INSERT INTO projects (
	title, description, location, status, category, image_url, area,
	bedrooms, bathrooms, price, completion_date, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// CreateProject inserts a project and returns its id.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, createProject,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Status,
		arg.Category,
		arg.ImageURL,
		arg.Area,
		arg.Bedrooms,
		arg.Bathrooms,
		arg.Price,
		arg.CompletionDate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateProjectParams replaces every writable column of the row. A NULL
// ImageURL keeps the stored image.
type UpdateProjectParams struct {
	ID int64
	ProjectParams
	UpdatedAt time.Time
}

const updateProject = `UPDATE projects SET
	title = ?, description = ?, location = ?, status = ?, category = ?,
	image_url = COALESCE(?, image_url), area = ?, bedrooms = ?, bathrooms = ?,
	price = ?, completion_date = ?, updated_at = ?
WHERE id = ?`

// UpdateProject returns the number of rows matched.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateProject,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Status,
		arg.Category,
		arg.ImageURL,
		arg.Area,
		arg.Bedrooms,
		arg.Bathrooms,
		arg.Price,
		arg.CompletionDate,
		arg.UpdatedAt,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteProject = `DELETE FROM projects WHERE id = ?`

// DeleteProject returns the number of rows removed.
func (q *Queries) DeleteProject(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteProject, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// SeedProjectParams inserts a project under a fixed id.
type SeedProjectParams struct {
	ID int64
	CreateProjectParams
}

// CreateProjectIfAbsent inserts the project unless its id is taken.
func (q *Queries) CreateProjectIfAbsent(ctx context.Context, arg SeedProjectParams) (bool, error) {
	query := q.insertIgnore() + ` projects (
	id, title, description, location, status, category, image_url, area,
	bedrooms, bathrooms, price, completion_date, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := q.db.ExecContext(ctx, query,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Status,
		arg.Category,
		arg.ImageURL,
		arg.Area,
		arg.Bedrooms,
		arg.Bathrooms,
		arg.Price,
		arg.CompletionDate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

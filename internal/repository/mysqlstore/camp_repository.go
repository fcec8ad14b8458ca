package mysqlstore

import (
	"context"
	"database/sql"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.CampStore = (*CampRepo)(nil)

const campColumns = "id,camp_name,camp_fees,date_time,location,healthcare_professional,description,image,created_at"

type CampRepo struct{ db *sql.DB }

func NewCampRepo(db *sql.DB) *CampRepo { return &CampRepo{db: db} }

func scanCamp(row rowScanner) (model.Camp, error) {
	var c model.Camp
	err := row.Scan(&c.ID, &c.CampName, &c.CampFees, &c.DateTime, &c.Location,
		&c.HealthcareProfessional, &c.Description, &c.Image, &c.CreatedAt)
	return c, err
}

func (r *CampRepo) List(ctx context.Context) ([]model.Camp, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+campColumns+" FROM camps ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Camp, 0)
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CampRepo) Get(ctx context.Context, id model.ID) (model.Camp, error) {
	c, err := scanCamp(r.db.QueryRowContext(ctx, "SELECT "+campColumns+" FROM camps WHERE id=?", id))
	if err != nil {
		return model.Camp{}, notFound(err)
	}
	return c, nil
}

func (r *CampRepo) Insert(ctx context.Context, c model.Camp) (model.InsertResult, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO camps ("+campColumns+") VALUES (?,?,?,?,?,?,?,?,?)",
		c.ID, c.CampName, c.CampFees, c.DateTime, c.Location,
		c.HealthcareProfessional, c.Description, c.Image, c.CreatedAt)
	if err != nil {
		return model.InsertResult{}, err
	}
	return inserted(c.ID), nil
}

func (r *CampRepo) Update(ctx context.Context, id model.ID, upd model.CampUpdate) (model.UpdateResult, error) {
	return updateOne(ctx, r.db,
		"SELECT COUNT(*) FROM camps WHERE id=? FOR UPDATE", []any{id},
		`UPDATE camps SET camp_name=?, camp_fees=?, date_time=?, location=?,
		        healthcare_professional=?, description=?, image=? WHERE id=?`,
		upd.CampName, upd.CampFees, upd.DateTime, upd.Location,
		upd.HealthcareProfessional, upd.Description, upd.Image, id)
}

func (r *CampRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return deleteWhere(ctx, r.db, "DELETE FROM camps WHERE id=?", id)
}

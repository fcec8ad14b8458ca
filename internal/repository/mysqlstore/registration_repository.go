package mysqlstore

import (
	"context"
	"database/sql"

	"github.com/iliyamo/medicamp-server/internal/model"
	"github.com/iliyamo/medicamp-server/internal/service"
)

var _ service.RegistrationStore = (*RegistrationRepo)(nil)

const registrationColumns = "id,email,participant_name,camp_id,camp_name,camp_fees,location,healthcare_professional,created_at"

type RegistrationRepo struct{ db *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

func scanRegistration(row rowScanner) (model.Registration, error) {
	var g model.Registration
	err := row.Scan(&g.ID, &g.Email, &g.ParticipantName, &g.CampID, &g.CampName,
		&g.CampFees, &g.Location, &g.HealthcareProfessional, &g.CreatedAt)
	return g, err
}

func (r *RegistrationRepo) query(ctx context.Context, q string, args ...any) ([]model.Registration, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Registration, 0)
	for rows.Next() {
		g, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *RegistrationRepo) Insert(ctx context.Context, g model.Registration) (model.InsertResult, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO registrations ("+registrationColumns+") VALUES (?,?,?,?,?,?,?,?,?)",
		g.ID, g.Email, g.ParticipantName, g.CampID, g.CampName,
		g.CampFees, g.Location, g.HealthcareProfessional, g.CreatedAt)
	if err != nil {
		return model.InsertResult{}, err
	}
	return inserted(g.ID), nil
}

func (r *RegistrationRepo) List(ctx context.Context) ([]model.Registration, error) {
	return r.query(ctx, "SELECT "+registrationColumns+" FROM registrations ORDER BY created_at, id")
}

func (r *RegistrationRepo) ListByEmail(ctx context.Context, email string) ([]model.Registration, error) {
	return r.query(ctx, "SELECT "+registrationColumns+" FROM registrations WHERE email=? ORDER BY created_at, id", email)
}

func (r *RegistrationRepo) Get(ctx context.Context, id model.ID) (model.Registration, error) {
	g, err := scanRegistration(r.db.QueryRowContext(ctx,
		"SELECT "+registrationColumns+" FROM registrations WHERE id=?", id))
	if err != nil {
		return model.Registration{}, notFound(err)
	}
	return g, nil
}

func (r *RegistrationRepo) Delete(ctx context.Context, id model.ID) (model.DeleteResult, error) {
	return deleteWhere(ctx, r.db, "DELETE FROM registrations WHERE id=?", id)
}

// DeleteMany removes exactly the rows whose id is in ids in one statement.
func (r *RegistrationRepo) DeleteMany(ctx context.Context, ids []model.ID) (model.DeleteResult, error) {
	if len(ids) == 0 {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return deleteWhere(ctx, r.db, "DELETE FROM registrations WHERE id IN ("+placeholders(len(ids))+")", args...)
}

package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"hr-dashboard-api/core/database"
	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/logger"
	"hr-dashboard-api/modules/profile/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error)
}

type profileRepository struct {
	db database.IDatabase
}

func NewProfileRepository(db database.IDatabase) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, full_name, COALESCE(email, '') AS email, role, created_at, updated_at`

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var p entity.Profile
	err := r.db.GetContext(ctx, &p, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewAppError(errors.ErrNotFound, "profile not found", err)
		}
		logger.Error("ProfileRepository:GetByID:Error", "id", id, "error", err)
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+profileColumns+` FROM profiles WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var profiles []entity.Profile
	if err := r.db.SelectContext(ctx, &profiles, r.db.SQLx().Rebind(query), args...); err != nil {
		logger.Error("ProfileRepository:GetByIDs:Error", "error", err)
		return nil, err
	}
	return profiles, nil
}

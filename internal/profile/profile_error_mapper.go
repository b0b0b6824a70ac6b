package profile

import (
	"errors"
	"strings"

	profileerrors "dayflow/internal/profile/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return profileerrors.ErrProfileNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == "uq_profiles_email":
			return profileerrors.ErrEmailTaken
		case pgErr.Code == "23514":
			return profileerrors.ErrLeaveBalanceOutOfRange
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_profiles_email") {
		return profileerrors.ErrEmailTaken
	}

	return err
}

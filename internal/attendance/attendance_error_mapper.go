package attendance

import (
	"errors"

	attendanceerrors "dayflow/internal/attendance/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_user_date" {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return err
}

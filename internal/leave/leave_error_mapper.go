package leave

import (
	"errors"
	"strings"

	leaveerrors "github.com/preyapanngam2004-art/leave-project/internal/leave/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError translates constraint violations from the insert into
// the business taxonomy; anything else stays a persistence error.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23503" {
			// FK violation: leave_type_id or approver_id points nowhere
			return leaveerrors.ErrUnknownReference
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return leaveerrors.ErrUnknownReference
	}

	return err
}

package postgres

import (
	"testing"

	domainerrors "taskdeck/internal/domain/errors"
	"taskdeck/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// The driver reports a duplicate with the violated index's name in the
// message; that name is the only thing separating the two conflict kinds.
func TestMapUserConstraintError_SplitsDuplicateKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{
			name:    "email index named in message",
			err:     errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`),
			wantErr: repository.ErrDuplicateEmail,
		},
		{
			name:    "external uid index named in message",
			err:     errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_external_uid" (SQLSTATE 23505)`),
			wantErr: repository.ErrDuplicateExternalUID,
		},
		{
			name:    "duplicate without an index name falls back to the uid sentinel",
			err:     errors.New("ERROR: duplicate key value (SQLSTATE 23505)"),
			wantErr: repository.ErrDuplicateExternalUID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapUserConstraintError(tt.err)

			assert.ErrorIs(t, mapped, tt.wantErr)
		})
	}
}

func TestMapUserConstraintError_NotNullViolation(t *testing.T) {
	err := errors.New(`ERROR: null value in column "external_uid" of relation "users" violates not-null constraint (SQLSTATE 23502)`)

	mapped := mapUserConstraintError(err)

	assert.ErrorIs(t, mapped, domainerrors.ErrUserCreationFailed)
}

func TestMapUserConstraintError_UnrecognizedErrorPassesThrough(t *testing.T) {
	err := errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")

	assert.Nil(t, mapUserConstraintError(err))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	pgErr := errors.New(`ERROR: insert or update on table "tasks" violates foreign key constraint "fk_users_tasks" (SQLSTATE 23503)`)

	assert.True(t, isForeignKeyConstraintViolation(pgErr))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("connection refused")))
}

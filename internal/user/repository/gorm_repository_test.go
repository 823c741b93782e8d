package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "translated gorm sentinel",
			err:  gorm.ErrDuplicatedKey,
			want: true,
		},
		{
			name: "wrapped gorm sentinel",
			err:  fmt.Errorf("create: %w", gorm.ErrDuplicatedKey),
			want: true,
		},
		{
			name: "raw pgx unique violation",
			err:  &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "idx_users_username"},
			want: true,
		},
		{
			name: "wrapped pgx unique violation",
			err:  fmt.Errorf("create: %w", &pgconn.PgError{Code: pgUniqueViolation}),
			want: true,
		},
		{
			name: "other pgx error",
			err:  &pgconn.PgError{Code: "23503"},
			want: false,
		},
		{
			name: "not found",
			err:  gorm.ErrRecordNotFound,
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKey(tt.err))
		})
	}
}

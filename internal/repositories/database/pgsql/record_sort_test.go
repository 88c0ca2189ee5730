package pgsql

import (
	"testing"

	"github.com/SscSPs/banking_backoffice_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecordOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		orderBy string
		want    string
	}{
		{"empty falls back to id", "", "ORDER BY r.id ASC"},
		{"default key", "IsPending", "ORDER BY r.is_pending ASC, r.id ASC"},
		{"case insensitive with desc", "amount DESC", "ORDER BY r.amount DESC, r.id ASC"},
		{"multiple keys", "IsPending desc, TimeStamp", "ORDER BY r.is_pending DESC, r.time_stamp ASC, r.id ASC"},
		{"blank segments skipped", " , userId ,", "ORDER BY r.user_id ASC, r.id ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildRecordOrderBy(tt.orderBy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildRecordOrderBy_RejectsUnknownInput(t *testing.T) {
	_, err := buildRecordOrderBy("Password")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = buildRecordOrderBy("amount; DROP TABLE records")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = buildRecordOrderBy("amount sideways")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

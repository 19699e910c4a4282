package repository

import (
	"errors"
	"testing"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil error returns nil",
			input:    nil,
			expected: nil,
		},
		{
			name:     "duplicate key error maps to ErrAlreadyExists",
			input:    gorm.ErrDuplicatedKey,
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "record not found error maps to ErrNotFound",
			input:    gorm.ErrRecordNotFound,
			expected: domain.ErrNotFound,
		},
		{
			name:     "foreign key violation maps to ErrNotFound",
			input:    gorm.ErrForeignKeyViolated,
			expected: domain.ErrNotFound,
		},
		{
			name:     "check constraint maps to ErrInsufficientFunds",
			input:    gorm.ErrCheckConstraintViolated,
			expected: domain.ErrInsufficientFunds,
		},
		{
			name:     "unmapped error becomes ErrPersistence",
			input:    errors.New("connection reset by peer"),
			expected: domain.ErrPersistence,
		},
		{
			name:     "wrapped duplicate key error maps correctly",
			input:    errors.Join(errors.New("outer error"), gorm.ErrDuplicatedKey),
			expected: domain.ErrAlreadyExists,
		},
		{
			name:     "domain error passes through",
			input:    domain.ErrAccountNotFound,
			expected: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)

			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestMapGormErrorToDomain_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("driver: bad connection")
	result := MapGormErrorToDomain(cause)

	assert.ErrorIs(t, result, domain.ErrPersistence)
	assert.ErrorIs(t, result, cause)
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrDuplicatedKey }), domain.ErrAlreadyExists)
	assert.ErrorIs(t, WrapError(func() error { return errors.New("custom error") }), domain.ErrPersistence)
}

func TestWrapError_Panics(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic to propagate")
		}
	}()

	_ = WrapError(func() error {
		panic("test panic")
	})
}

func TestNotFoundAs(t *testing.T) {
	t.Parallel()

	err := notFoundAs(gorm.ErrRecordNotFound, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = notFoundAs(errors.New("timeout"), domain.ErrCustomerNotFound)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

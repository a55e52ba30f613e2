package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.New(`duplicate key value violates unique constraint "idx_locations_address"`)))
	assert.True(t, isUniqueConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23505)")))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection reset")))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(errors.New(`insert or update on table "order_items" violates foreign key constraint "fk_order_items_product"`)))
	assert.True(t, isForeignKeyConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23503)")))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("connection reset")))
}

func TestIsNotNullConstraintViolation(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "lastname" violates not-null constraint`)))
	assert.True(t, isNotNullConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23502)")))
	assert.False(t, isNotNullConstraintViolation(errors.New("connection reset")))
}

func TestIsCheckConstraintViolation(t *testing.T) {
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.True(t, isCheckConstraintViolation(errors.New(`new row for relation "order_items" violates check constraint "chk_order_items_quantity"`)))
	assert.True(t, isCheckConstraintViolation(errors.New("ERROR: some failure (SQLSTATE 23514)")))
	assert.False(t, isCheckConstraintViolation(errors.New("connection reset")))
}

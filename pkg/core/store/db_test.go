package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitDB_RequiresURL(t *testing.T) {
	err := InitDB(context.Background(), "")

	assert.ErrorIs(t, err, ErrNoDatabaseURL)
	assert.Nil(t, GetPool())
}

func TestInitDB_BadURLLeavesNoPool(t *testing.T) {
	err := InitDB(context.Background(), "postgres://%zz")

	assert.Error(t, err)
	assert.Nil(t, GetPool())
	Close()
}

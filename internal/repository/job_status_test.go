package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	assert.Equal(t, "draft", DeriveStatus(false, future, now))
	assert.Equal(t, "draft", DeriveStatus(false, past, now))
	assert.Equal(t, "expire", DeriveStatus(true, past, now))
	assert.Equal(t, "active", DeriveStatus(true, future, now))
}

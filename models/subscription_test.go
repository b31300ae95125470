package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelAt_ActiveWithinWindow(t *testing.T) {
	now := time.Now()
	sub := Subscription{
		Level:     2,
		Status:    SubscriptionActive,
		StartDate: now.AddDate(0, 0, -10),
		EndDate:   now.AddDate(0, 0, 20),
	}

	assert.Equal(t, 2, sub.LevelAt(now))
}

// Une ligne ACTIVE dont la date de fin est passée ne donne plus rien, même
// si le sweep ne l'a pas encore étiquetée EXPIRED.
func TestLevelAt_StaleActivePastEndDate(t *testing.T) {
	now := time.Now()
	sub := Subscription{
		Level:     3,
		Status:    SubscriptionActive,
		StartDate: now.AddDate(0, 0, -40),
		EndDate:   now.AddDate(0, 0, -10),
	}

	assert.Equal(t, 0, sub.LevelAt(now))
}

func TestLevelAt_ExactlyAtEndDate(t *testing.T) {
	now := time.Now()
	sub := Subscription{
		Level:   1,
		Status:  SubscriptionActive,
		EndDate: now,
	}

	assert.Equal(t, 1, sub.LevelAt(now))
}

func TestLevelAt_CanceledGivesZero(t *testing.T) {
	now := time.Now()
	sub := Subscription{
		Level:   3,
		Status:  SubscriptionCanceled,
		EndDate: now.AddDate(0, 0, 20),
	}

	assert.Equal(t, 0, sub.LevelAt(now))
}

func TestLevelAt_ExpiredGivesZero(t *testing.T) {
	now := time.Now()
	sub := Subscription{
		Level:   2,
		Status:  SubscriptionExpired,
		EndDate: now.AddDate(0, 0, -1),
	}

	assert.Equal(t, 0, sub.LevelAt(now))
}

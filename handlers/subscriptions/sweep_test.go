package subscriptions

import (
	"testing"
	"time"

	"creatorhub-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestMarkExpired_RelabelsStaleActiveRows(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "subscriptions" SET`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	count, err := MarkExpired(time.Now())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

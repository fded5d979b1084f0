package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalices/backend/pkg/equipment"
	"github.com/crystalices/backend/pkg/inquiry"
	"github.com/crystalices/backend/pkg/newsletter"
	"github.com/crystalices/backend/pkg/staff"
)

func TestEquipmentRepository_GetMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewEquipmentRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM equipment WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "brand", "region", "daily_rate", "description", "image_url", "is_available", "created_at"}))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, equipment.ErrNotFound)
}

func TestEquipmentRepository_List(t *testing.T) {
	mock := newMock(t)
	repo := NewEquipmentRepository(mock)
	rate := 150000.0
	img := "/uploads/1-2.png"

	mock.ExpectQuery(regexp.QuoteMeta("FROM equipment ORDER BY created_at DESC")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "category", "brand", "region", "daily_rate", "description", "image_url", "is_available", "created_at"}).
			AddRow(uuid.New(), "Forklift", "Lifting", nil, "Lagos", &rate, nil, &img, true, time.Now()))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Forklift", items[0].Name)
	assert.Equal(t, 150000.0, *items[0].DailyRate)
	assert.Equal(t, img, *items[0].ImageURL)
}

func TestStaffRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewStaffRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM staff WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(staffCols))
	_, err := repo.Delete(context.Background(), id)
	assert.ErrorIs(t, err, staff.ErrNotFound)
}

func TestStaffRepository_DeleteReturnsRow(t *testing.T) {
	mock := newMock(t)
	repo := NewStaffRepository(mock)
	id := uuid.New()
	img := "/uploads/1-ada.png"

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM staff WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(staffCols).AddRow(id, "Ada", nil, nil, nil, nil, &img, time.Now()))
	m, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m.ImageURL)
	assert.Equal(t, img, *m.ImageURL)
}

var staffCols = []string{"id", "name", "position", "email", "phone", "bio", "image_url", "created_at"}

func TestNewsletterRepository_Duplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewNewsletterRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO newsletter_subscribers")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := repo.Create(context.Background(), newsletter.Subscriber{ID: uuid.New(), Email: "a@x.io", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, newsletter.ErrAlreadySubscribed)
}

func TestInquiryRepository_ListByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewInquiryRepository(mock)
	cols := []string{"id", "full_name", "email", "service", "requirements", "status", "user_id", "created_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM inquiries WHERE email = $1 ORDER BY created_at DESC")).
		WithArgs("c@x.io").
		WillReturnRows(pgxmock.NewRows(cols).AddRow(uuid.New(), "Chi", "c@x.io", nil, "2 cranes", "PENDING", nil, time.Now()))

	list, err := repo.List(context.Background(), "c@x.io")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inquiry.StatusPending, list[0].Status)
	assert.Nil(t, list[0].UserID)
}

func TestInquiryRepository_UpdateStatusMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewInquiryRepository(mock)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE inquiries SET status = $2 WHERE id = $1")).
		WithArgs(id, "COMPLETED").
		WillReturnRows(pgxmock.NewRows([]string{"id", "full_name", "email", "service", "requirements", "status", "user_id", "created_at"}))

	_, err := repo.UpdateStatus(context.Background(), id, inquiry.StatusCompleted)
	assert.ErrorIs(t, err, inquiry.ErrNotFound)
}

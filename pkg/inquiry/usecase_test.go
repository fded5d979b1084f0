package inquiry

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/mail"
)

type memRepo struct {
	items    []Inquiry
	lastList string
}

func (r *memRepo) Create(_ context.Context, in Inquiry) error {
	r.items = append(r.items, in)
	return nil
}

func (r *memRepo) List(_ context.Context, email string) ([]Inquiry, error) {
	r.lastList = email
	var out []Inquiry
	for _, in := range r.items {
		if email == "" || in.Email == email {
			out = append(out, in)
		}
	}
	return out, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, id uuid.UUID, st Status) (Inquiry, error) {
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Status = st
			return r.items[i], nil
		}
	}
	return Inquiry{}, ErrNotFound
}

type receipts struct {
	to  []string
	err error
}

func (n *receipts) SendInquiryReceipt(_ context.Context, to, _, _ string) mail.Delivery {
	n.to = append(n.to, to)
	return mail.Delivery{Err: n.err}
}

func newTestService(n *receipts) (UseCase, *memRepo) {
	repo := &memRepo{}
	return NewService(repo, n, zerolog.New(io.Discard)), repo
}

func TestSubmit(t *testing.T) {
	n := &receipts{}
	svc, repo := newTestService(n)

	inq, err := svc.Submit(context.Background(), SubmitInput{
		FullName:     "Chi",
		Email:        "Chi@X.io",
		Service:      " ",
		Requirements: "2 forklifts for a week",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, inq.Status)
	assert.Equal(t, "chi@x.io", inq.Email)
	assert.Nil(t, inq.Service)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, []string{"chi@x.io"}, n.to)
}

func TestSubmitSucceedsWhenReceiptFails(t *testing.T) {
	svc, repo := newTestService(&receipts{err: errors.New("smtp down")})

	_, err := svc.Submit(context.Background(), SubmitInput{FullName: "Chi", Email: "c@x.io", Requirements: "crane"})
	require.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestSubmitValidation(t *testing.T) {
	n := &receipts{}
	svc, repo := newTestService(n)

	_, err := svc.Submit(context.Background(), SubmitInput{FullName: "Chi", Email: "c@x.io"})
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, repo.items)
	assert.Empty(t, n.to)
}

func TestListByViewer(t *testing.T) {
	svc, repo := newTestService(&receipts{})
	for _, email := range []string{"a@x.io", "b@x.io", "a@x.io"} {
		_, err := svc.Submit(context.Background(), SubmitInput{FullName: "N", Email: email, Requirements: "r"})
		require.NoError(t, err)
	}

	all, err := svc.List(context.Background(), Viewer{Role: auth.RoleStaff, Email: "s@x.io"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "", repo.lastList)

	own, err := svc.List(context.Background(), Viewer{Role: auth.RoleClient, Email: "A@x.io"})
	require.NoError(t, err)
	assert.Len(t, own, 2)

	none, err := svc.List(context.Background(), Viewer{Role: auth.RoleClient})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService(&receipts{})
	inq, err := svc.Submit(context.Background(), SubmitInput{FullName: "N", Email: "n@x.io", Requirements: "r"})
	require.NoError(t, err)

	got, err := svc.UpdateStatus(context.Background(), inq.ID, "contacted")
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)

	_, err = svc.UpdateStatus(context.Background(), inq.ID, "LOST")
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "COMPLETED")
	assert.ErrorIs(t, err, ErrNotFound)
}

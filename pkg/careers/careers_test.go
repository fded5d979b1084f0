package careers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct{ apps []Application }

func (r *memRepo) Create(_ context.Context, a Application) error {
	r.apps = append(r.apps, a)
	return nil
}

func (r *memRepo) List(context.Context) ([]Application, error) { return r.apps, nil }

func TestApply(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo)

	a, err := svc.Apply(context.Background(), Application{
		ApplicantName:  " Tolu ",
		ApplicantEmail: "Tolu@X.io",
		CVLink:         "https://cv.example/tolu.pdf",
		RoleApplied:    "Operator",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tolu", a.ApplicantName)
	assert.Equal(t, "tolu@x.io", a.ApplicantEmail)
	assert.False(t, a.CreatedAt.IsZero())

	_, err = svc.Apply(context.Background(), Application{ApplicantName: "Tolu"})
	var verr ErrValidation
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, repo.apps, 1)
}

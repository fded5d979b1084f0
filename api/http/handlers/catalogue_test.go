package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/careers"
	"github.com/crystalices/backend/pkg/equipment"
	"github.com/crystalices/backend/pkg/inquiry"
	"github.com/crystalices/backend/pkg/mail"
	"github.com/crystalices/backend/pkg/newsletter"
	"github.com/crystalices/backend/pkg/security/jwt"
	"github.com/crystalices/backend/pkg/staff"
	"github.com/crystalices/backend/pkg/upload"
)

type fakeImages struct {
	saved   []string
	removed []string
	err     error
}

func (f *fakeImages) Save(fh *multipart.FileHeader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	p := upload.PublicPrefix + strconv.Itoa(len(f.saved)) + "-" + fh.Filename
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *fakeImages) Remove(p string) error {
	f.removed = append(f.removed, p)
	return nil
}

type equipmentStore struct {
	mu    sync.Mutex
	items map[uuid.UUID]equipment.Equipment
}

func (s *equipmentStore) Create(_ context.Context, e equipment.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = e
	return nil
}

func (s *equipmentStore) GetByID(_ context.Context, id uuid.UUID) (equipment.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return equipment.Equipment{}, equipment.ErrNotFound
	}
	return e, nil
}

func (s *equipmentStore) List(context.Context) ([]equipment.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]equipment.Equipment, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	return out, nil
}

func (s *equipmentStore) Update(_ context.Context, e equipment.Equipment) (equipment.Equipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[e.ID] = e
	return e, nil
}

func (s *equipmentStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return equipment.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func newEquipmentEnv(images *fakeImages) (testEnv, *equipmentStore) {
	env := newTestEnv()
	store := &equipmentStore{items: map[uuid.UUID]equipment.Equipment{}}
	h := NewEquipmentHandler(equipment.NewService(store), images, "https://api.crystalices.site/", quiet)
	admin := jwt.RequireRoles(auth.RoleAdmin)
	g := env.app.Group("/api/equipment")
	g.Get("/all", h.List)
	g.Post("/add", env.session(), admin, h.Create)
	g.Put("/update/:id", env.session(), admin, h.Update)
	g.Delete("/delete/:id", env.session(), admin, h.Delete)
	return env, store
}

func TestEquipmentLifecycle(t *testing.T) {
	images := &fakeImages{}
	env, store := newEquipmentEnv(images)
	admin := env.token(t, uuid.New(), auth.RoleAdmin)

	req := multipartRequest(t, http.MethodPost, "/api/equipment/add",
		map[string]string{"name": "Forklift", "category": "Lifting", "dailyRate": "150000"}, []byte("png"))
	req.Header.Set("Authorization", "Bearer "+admin)
	res := env.send(t, req)
	require.Equal(t, http.StatusCreated, res.status, res.raw)
	data := res.body["data"].(map[string]any)
	assert.Equal(t, "Lagos", data["region"])
	assert.Equal(t, true, data["isAvailable"])
	assert.Equal(t, "https://api.crystalices.site/uploads/0-photo.png", data["imageUrl"])
	require.Len(t, store.items, 1)

	var id uuid.UUID
	for k, e := range store.items {
		id = k
		assert.Equal(t, "/uploads/0-photo.png", *e.ImageURL, "stored path stays relative")
	}

	// update without a new file keeps the image
	req = multipartRequest(t, http.MethodPut, "/api/equipment/update/"+id.String(),
		map[string]string{"isAvailable": "false"}, nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	res = env.send(t, req)
	require.Equal(t, http.StatusOK, res.status, res.raw)
	assert.Equal(t, false, res.body["data"].(map[string]any)["isAvailable"])
	assert.Equal(t, "/uploads/0-photo.png", *store.items[id].ImageURL)
	assert.Empty(t, images.removed)

	// a new file replaces the old one on disk
	req = multipartRequest(t, http.MethodPut, "/api/equipment/update/"+id.String(), nil, []byte("png"))
	req.Header.Set("Authorization", "Bearer "+admin)
	res = env.send(t, req)
	require.Equal(t, http.StatusOK, res.status, res.raw)
	assert.Equal(t, "/uploads/1-photo.png", *store.items[id].ImageURL)
	assert.Equal(t, []string{"/uploads/0-photo.png"}, images.removed)

	res = env.do(t, http.MethodGet, "/api/equipment/all", nil, "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.body["data"], 1)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodDelete, "/api/equipment/delete/"+id.String(), nil, admin).status)
	assert.Equal(t, []string{"/uploads/0-photo.png", "/uploads/1-photo.png"}, images.removed)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodDelete, "/api/equipment/delete/"+id.String(), nil, admin).status)

	// an upload to a missing item is never stored
	req = multipartRequest(t, http.MethodPut, "/api/equipment/update/"+id.String(), nil, []byte("png"))
	req.Header.Set("Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusNotFound, env.send(t, req).status)
	assert.Len(t, images.saved, 2)
}

func TestEquipmentCreateRejected(t *testing.T) {
	images := &fakeImages{}
	env, store := newEquipmentEnv(images)
	admin := env.token(t, uuid.New(), auth.RoleAdmin)

	// missing category: the uploaded file is cleaned up
	req := multipartRequest(t, http.MethodPost, "/api/equipment/add", map[string]string{"name": "Forklift"}, []byte("png"))
	req.Header.Set("Authorization", "Bearer "+admin)
	res := env.send(t, req)
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "Name and Category are required!", res.body["message"])
	assert.Equal(t, images.saved, images.removed)
	assert.Empty(t, store.items)

	req = multipartRequest(t, http.MethodPost, "/api/equipment/add",
		map[string]string{"name": "Forklift", "category": "Lifting", "dailyRate": "cheap"}, nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusBadRequest, env.send(t, req).status)

	images.err = upload.ErrUnsupportedType
	req = multipartRequest(t, http.MethodPost, "/api/equipment/add",
		map[string]string{"name": "Forklift", "category": "Lifting"}, []byte("exe"))
	req.Header.Set("Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusBadRequest, env.send(t, req).status)

	client := env.token(t, uuid.New(), auth.RoleClient)
	res = env.do(t, http.MethodPost, "/api/equipment/add", map[string]string{"name": "x", "category": "y"}, client)
	assert.Equal(t, http.StatusForbidden, res.status)
	assert.Empty(t, store.items)
}

type staffStore struct{ members []staff.Member }

func (s *staffStore) Create(_ context.Context, m staff.Member) error {
	s.members = append(s.members, m)
	return nil
}

func (s *staffStore) List(context.Context) ([]staff.Member, error) {
	out := append([]staff.Member(nil), s.members...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *staffStore) Delete(_ context.Context, id uuid.UUID) (staff.Member, error) {
	for i, m := range s.members {
		if m.ID == id {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return m, nil
		}
	}
	return staff.Member{}, staff.ErrNotFound
}

func TestStaffHandler(t *testing.T) {
	env := newTestEnv()
	images := &fakeImages{}
	h := NewStaffHandler(staff.NewService(&staffStore{}), images, "http://localhost:5000", quiet)
	g := env.app.Group("/api/admin", env.session(), jwt.RequireRoles(auth.RoleAdmin))
	g.Get("/staff/all", h.List)
	g.Post("/staff/add", h.Add)
	g.Delete("/staff/delete/:id", h.Delete)
	admin := env.token(t, uuid.New(), auth.RoleAdmin)

	for _, name := range []string{"Zainab", "Ade"} {
		req := multipartRequest(t, http.MethodPost, "/api/admin/staff/add",
			map[string]string{"name": name, "position": "Operator"}, []byte("png"))
		req.Header.Set("Authorization", "Bearer "+admin)
		res := env.send(t, req)
		require.Equal(t, http.StatusCreated, res.status, res.raw)
	}

	res := env.do(t, http.MethodGet, "/api/admin/staff/all", nil, admin)
	require.Equal(t, http.StatusOK, res.status)
	list := res.body["data"].([]any)
	require.Len(t, list, 2)
	first := list[0].(map[string]any)
	assert.Equal(t, "Ade", first["name"])
	assert.Equal(t, "http://localhost:5000/uploads/1-photo.png", first["imageUrl"])

	res = env.do(t, http.MethodPost, "/api/admin/staff/add", map[string]string{"position": "Operator"}, admin)
	assert.Equal(t, http.StatusBadRequest, res.status)

	staffTok := env.token(t, uuid.New(), auth.RoleStaff)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/api/admin/staff/all", nil, staffTok).status)
	assert.Equal(t, http.StatusNotFound,
		env.do(t, http.MethodDelete, "/api/admin/staff/delete/"+uuid.NewString(), nil, admin).status)
	assert.Empty(t, images.removed)

	res = env.do(t, http.MethodDelete, "/api/admin/staff/delete/"+first["id"].(string), nil, admin)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, []string{"/uploads/1-photo.png"}, images.removed)
}

type inquiryStore struct{ items []inquiry.Inquiry }

func (s *inquiryStore) Create(_ context.Context, in inquiry.Inquiry) error {
	s.items = append(s.items, in)
	return nil
}

func (s *inquiryStore) List(_ context.Context, email string) ([]inquiry.Inquiry, error) {
	out := []inquiry.Inquiry{}
	for _, in := range s.items {
		if email == "" || in.Email == email {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *inquiryStore) UpdateStatus(_ context.Context, id uuid.UUID, st inquiry.Status) (inquiry.Inquiry, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = st
			return s.items[i], nil
		}
	}
	return inquiry.Inquiry{}, inquiry.ErrNotFound
}

type noReceipt struct{}

func (noReceipt) SendInquiryReceipt(context.Context, string, string, string) mail.Delivery {
	return mail.Delivery{}
}

func TestInquiryHandler(t *testing.T) {
	env := newTestEnv()
	store := &inquiryStore{}
	h := NewInquiryHandler(inquiry.NewService(store, noReceipt{}, quiet), quiet)
	g := env.app.Group("/api/inquiry")
	g.Post("/submit", h.Submit)
	g.Get("/all", env.session(), h.List)
	g.Put("/update-status/:id", env.session(), jwt.RequireRoles(auth.RoleStaff, auth.RoleAdmin), h.UpdateStatus)

	for _, email := range []string{"u@x.io", "other@x.io"} {
		res := env.do(t, http.MethodPost, "/api/inquiry/submit", map[string]string{
			"fullName": "Chi", "email": email, "service": "Crane hire", "requirements": "2 cranes",
		}, "")
		require.Equal(t, http.StatusCreated, res.status, res.raw)
		assert.Equal(t, "Inquiry submitted successfully!", res.body["message"])
		assert.Equal(t, "PENDING", res.body["data"].(map[string]any)["status"])
	}

	res := env.do(t, http.MethodPost, "/api/inquiry/submit", map[string]string{
		"fullName": "Chi", "email": "u@x.io", "requirements": "r", "userId": "nope",
	}, "")
	assert.Equal(t, http.StatusBadRequest, res.status)

	// env.token issues sessions for u@x.io
	client := env.token(t, uuid.New(), auth.RoleClient)
	res = env.do(t, http.MethodGet, "/api/inquiry/all", nil, client)
	require.Equal(t, http.StatusOK, res.status)
	assert.Len(t, res.body["data"], 1)

	staffTok := env.token(t, uuid.New(), auth.RoleStaff)
	res = env.do(t, http.MethodGet, "/api/inquiry/all", nil, staffTok)
	assert.Len(t, res.body["data"], 2)

	id := store.items[0].ID.String()
	res = env.do(t, http.MethodPut, "/api/inquiry/update-status/"+id, map[string]string{"status": "processing"}, client)
	assert.Equal(t, http.StatusForbidden, res.status)
	res = env.do(t, http.MethodPut, "/api/inquiry/update-status/"+id, map[string]string{"status": "processing"}, staffTok)
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, inquiry.StatusProcessing, store.items[0].Status)
	res = env.do(t, http.MethodPut, "/api/inquiry/update-status/"+id, map[string]string{"status": "archived"}, staffTok)
	assert.Equal(t, http.StatusBadRequest, res.status)
}

type subscriberStore struct{ emails map[string]bool }

func (s *subscriberStore) Create(_ context.Context, sub newsletter.Subscriber) error {
	if s.emails[sub.Email] {
		return newsletter.ErrAlreadySubscribed
	}
	s.emails[sub.Email] = true
	return nil
}

func (s *subscriberStore) List(context.Context) ([]newsletter.Subscriber, error) {
	return []newsletter.Subscriber{}, nil
}

func TestNewsletterHandler(t *testing.T) {
	env := newTestEnv()
	h := NewNewsletterHandler(newsletter.NewService(&subscriberStore{emails: map[string]bool{}}), quiet)
	env.app.Post("/subscribe", h.Subscribe)
	env.app.Get("/all", env.session(), jwt.RequireRoles(auth.RoleStaff, auth.RoleAdmin), h.List)

	res := env.do(t, http.MethodPost, "/subscribe", map[string]string{"email": "fan@x.io"}, "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "Successfully joined the newsletter!", res.body["message"])

	res = env.do(t, http.MethodPost, "/subscribe", map[string]string{"email": "FAN@x.io"}, "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "You are already subscribed!", res.body["message"])

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/all", nil, env.token(t, uuid.New(), auth.RoleClient)).status)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/all", nil, env.token(t, uuid.New(), auth.RoleStaff)).status)
}

type applicationStore struct{ apps []careers.Application }

func (s *applicationStore) Create(_ context.Context, a careers.Application) error {
	s.apps = append(s.apps, a)
	return nil
}

func (s *applicationStore) List(context.Context) ([]careers.Application, error) { return s.apps, nil }

func TestCareersHandler(t *testing.T) {
	env := newTestEnv()
	store := &applicationStore{}
	h := NewCareersHandler(careers.NewService(store), quiet)
	env.app.Post("/apply", h.Apply)

	res := env.do(t, http.MethodPost, "/apply", map[string]string{
		"name": "Tolu", "email": "tolu@x.io", "cvLink": "https://cv.example/tolu.pdf", "roleTitle": "Operator",
	}, "")
	assert.Equal(t, http.StatusCreated, res.status)
	assert.Equal(t, "Application received!", res.body["message"])
	require.Len(t, store.apps, 1)
	assert.Equal(t, "Operator", store.apps[0].RoleApplied)

	res = env.do(t, http.MethodPost, "/apply", map[string]string{"name": "Tolu", "email": "tolu@x.io", "cvLink": "not a url", "roleTitle": "Operator"}, "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Equal(t, "cvLink must be a valid URL", res.body["message"])
}

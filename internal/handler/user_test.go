package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bistroboss/bistroboss/internal/model"
	"github.com/bistroboss/bistroboss/internal/repository"
)

type fakeUserStore struct {
	users     []*model.User
	upsertErr error
	roleSet   map[string]model.Role
	deleted   []string
}

func (s *fakeUserStore) UpsertUser(ctx context.Context, user *model.User) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.users, nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range s.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) SetUserRole(ctx context.Context, id string, role model.Role) error {
	for _, u := range s.users {
		if u.ID.Hex() == id {
			if s.roleSet == nil {
				s.roleSet = make(map[string]model.Role)
			}
			s.roleSet[id] = role
			u.Role = role
			return nil
		}
	}
	return repository.ErrUserNotFound
}

func (s *fakeUserStore) DeleteUser(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type adminCheckerStub struct {
	admins map[string]bool
	err    error
}

func (s *adminCheckerStub) IsAdmin(ctx context.Context, email string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.admins[email], nil
}

type invalidatorSpy struct {
	emails []string
}

func (s *invalidatorSpy) InvalidateRole(ctx context.Context, email string) error {
	s.emails = append(s.emails, email)
	return nil
}

func TestUserHandler_Create(t *testing.T) {
	store := &fakeUserStore{}
	h := NewUserHandler(store, &adminCheckerStub{}, &invalidatorSpy{}, discardLogger())

	body := `{"email":"new@example.com","name":"New User"}`
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(store.users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(store.users))
	}
	if got := store.users[0]; got.Email != "new@example.com" || got.Role != model.RoleDefault {
		t.Errorf("stored user = %+v", got)
	}
}

func TestUserHandler_Create_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		upsertErr error
		wantCode  int
	}{
		{name: "invalid json", body: `not json`, wantCode: http.StatusBadRequest},
		{name: "missing email", body: `{"name":"x"}`, wantCode: http.StatusBadRequest},
		{name: "store failure", body: `{"email":"a@x.com"}`, upsertErr: errors.New("down"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{upsertErr: tt.upsertErr}
			h := NewUserHandler(store, &adminCheckerStub{}, &invalidatorSpy{}, discardLogger())

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
		})
	}
}

func TestUserHandler_IsAdmin(t *testing.T) {
	checker := &adminCheckerStub{admins: map[string]bool{"boss@example.com": true}}
	h := NewUserHandler(&fakeUserStore{}, checker, &invalidatorSpy{}, discardLogger())

	for email, want := range map[string]bool{
		"boss@example.com":  true,
		"guest@example.com": false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/users/admin/"+email, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("email", email)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rec := httptest.NewRecorder()
		h.IsAdmin(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d", email, rec.Code)
		}
		var resp map[string]bool
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["admin"] != want {
			t.Errorf("%s: admin = %v, want %v", email, resp["admin"], want)
		}
	}
}

func TestUserHandler_Promote_InvalidatesCachedRole(t *testing.T) {
	u := &model.User{Email: "promote@example.com", Role: model.RoleDefault}
	store := &fakeUserStore{users: []*model.User{u}}
	spy := &invalidatorSpy{}
	h := NewUserHandler(store, &adminCheckerStub{}, spy, discardLogger())

	id := u.ID.Hex()
	req := httptest.NewRequest(http.MethodPatch, "/users/admin/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.Promote(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if u.Role != model.RoleAdmin {
		t.Errorf("role = %s, want admin", u.Role)
	}
	if len(spy.emails) != 1 || spy.emails[0] != "promote@example.com" {
		t.Errorf("invalidated emails = %v", spy.emails)
	}
}

func TestUserHandler_Promote_UnknownUser(t *testing.T) {
	h := NewUserHandler(&fakeUserStore{}, &adminCheckerStub{}, &invalidatorSpy{}, discardLogger())

	req := httptest.NewRequest(http.MethodPatch, "/users/admin/000000000000000000000000", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "000000000000000000000000")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.Promote(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	u := &model.User{Email: "gone@example.com", Role: model.RoleDefault}
	store := &fakeUserStore{users: []*model.User{u}}
	spy := &invalidatorSpy{}
	h := NewUserHandler(store, &adminCheckerStub{}, spy, discardLogger())

	id := u.ID.Hex()
	req := httptest.NewRequest(http.MethodDelete, "/users/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != id {
		t.Errorf("deleted ids = %v", store.deleted)
	}
	if len(spy.emails) != 1 || spy.emails[0] != "gone@example.com" {
		t.Errorf("invalidated emails = %v", spy.emails)
	}
}

package adaptor_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"users-api/internal/adaptor"
	"users-api/internal/dto/request"
	"users-api/internal/dto/response"
	"users-api/internal/usecase"
	"users-api/internal/usecase/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) (*chi.Mux, *mocks.MockUserService, *observer.ObservedLogs) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)

	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	h := adaptor.NewUserHandler(svc, log)

	r := chi.NewRouter()
	r.Get("/users", adaptor.Handle(log, "list users", h.ListUsers))
	r.Post("/users", adaptor.Handle(log, "create user", h.CreateUser))
	r.Get("/users/{user_id}", adaptor.Handle(log, "get user", h.GetUser))
	r.Put("/users/{user_id}", adaptor.Handle(log, "update user", h.UpdateUser))
	r.Delete("/users/{user_id}", adaptor.Handle(log, "delete user", h.DeleteUser))

	return r, svc, logs
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUserHandler_ListUsers(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().ListUsers(gomock.Any()).Return([]response.UserResponse{{ID: 1}, {ID: 2}}, nil)

	rec := do(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []response.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
}

func TestUserHandler_ListUsers_Empty(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().ListUsers(gomock.Any()).Return([]response.UserResponse{}, nil)

	rec := do(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestUserHandler_StorageErrorIsGeneric500(t *testing.T) {
	r, svc, logs := newTestRouter(t)

	svc.EXPECT().ListUsers(gomock.Any()).
		Return(nil, errors.New(`pq: relation "users" does not exist`))

	rec := do(r, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
	require.NotContains(t, rec.Body.String(), "relation")

	entries := logs.FilterMessage("Failed to list users").All()
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].ContextMap()["error"], "relation")
}

func TestUserHandler_GetUser_WrapsInArray(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().GetUser(gomock.Any(), "5").Return(&response.UserResponse{ID: 5, Email: "e@x.com"}, nil)

	rec := do(r, http.MethodGet, "/users/5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []response.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, int64(5), got[0].ID)
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().GetUser(gomock.Any(), "999999").Return(nil, usecase.ErrUserNotFound)

	rec := do(r, http.MethodGet, "/users/999999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"status":false,"message":"User not found"}`, rec.Body.String())
}

func TestUserHandler_GetUser_InvalidID(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().GetUser(gomock.Any(), "abc").Return(nil, usecase.ErrInvalidUserID)

	rec := do(r, http.MethodGet, "/users/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_CreateUser(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req *request.CreateUserRequest) (*response.UserResponse, error) {
			require.Equal(t, "a@x.com", req.Email)
			require.Equal(t, "secret", req.Password)
			require.NotNil(t, req.IsActive)
			require.True(t, *req.IsActive)
			return &response.UserResponse{ID: 1, Email: req.Email, PasswordHash: "$2a$hash"}, nil
		})

	rec := do(r, http.MethodPost, "/users",
		`{"email":"a@x.com","password":"secret","first_name":"A","last_name":"B","role":"user","is_active":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, int64(1), got.ID)
}

func TestUserHandler_CreateUser_BadJSON(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := do(r, http.MethodPost, "/users", `{"email":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestUserHandler_CreateUser_ValidationError(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		Return(nil, &usecase.ValidationError{Fields: map[string]string{"role": "Must be one of: user, admin"}})

	rec := do(r, http.MethodPost, "/users", `{"role":"root"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t,
		`{"status":false,"message":"Validation failed","errors":{"role":"Must be one of: user, admin"}}`,
		rec.Body.String())
}

func TestUserHandler_CreateUser_Conflict(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, usecase.ErrEmailTaken)

	rec := do(r, http.MethodPost, "/users", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserHandler_CreateUser_StorageErrorIs500(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(nil, errors.New("insert failed"))

	rec := do(r, http.MethodPost, "/users", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "insert failed")
}

func TestUserHandler_UpdateUser_MissingFields(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().UpdateUser(gomock.Any(), "1", gomock.Any()).Return(nil, usecase.ErrMissingFields)

	rec := do(r, http.MethodPut, "/users/1", `{"email":"a@x.com","first_name":"A","last_name":"B"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, usecase.ErrMissingFields.Error(), body["error"])
	require.Equal(t, "Missing required fields", body["message"])
}

func TestUserHandler_UpdateUser_PassesPathAndBody(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().UpdateUser(gomock.Any(), "12", gomock.Any()).
		DoAndReturn(func(_ any, _ string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
			require.Empty(t, req.Password)
			require.Nil(t, req.IsActive)
			return &response.UserResponse{ID: 12, Email: req.Email}, nil
		})

	rec := do(r, http.MethodPut, "/users/12", `{"email":"n@x.com","first_name":"A","last_name":"B","role":"user"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"email":"n@x.com"`)
}

func TestUserHandler_UpdateUser_NotFound(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().UpdateUser(gomock.Any(), "77", gomock.Any()).Return(nil, usecase.ErrUserNotFound)

	rec := do(r, http.MethodPut, "/users/77", `{}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().DeleteUser(gomock.Any(), "3").Return(&response.UserResponse{ID: 3, Email: "c@x.com"}, nil)

	rec := do(r, http.MethodDelete, "/users/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got response.DeleteUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "User deleted successfully", got.Message)
	require.Equal(t, int64(3), got.User.ID)
}

func TestUserHandler_DeleteUser_NotFound(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().DeleteUser(gomock.Any(), "999999").Return(nil, usecase.ErrUserNotFound)

	rec := do(r, http.MethodDelete, "/users/999999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserHandler_DeleteUser_StorageErrorIs500(t *testing.T) {
	r, svc, _ := newTestRouter(t)

	svc.EXPECT().DeleteUser(gomock.Any(), "3").Return(nil, errors.New("lock timeout"))

	rec := do(r, http.MethodDelete, "/users/3", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "lock timeout")
}

package request

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

func newValidate() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

func ptr[T any](v T) *T { return &v }

func TestCreateUserRequest_Validation(t *testing.T) {
	v := newValidate()
	valid := CreateUserRequest{Name: "Ana", Email: "ana@example.com", Department: "IT", Role: "Developer"}

	tests := []struct {
		name    string
		mutate  func(*CreateUserRequest)
		wantErr bool
	}{
		{"valid", func(*CreateUserRequest) {}, false},
		{"name too short", func(r *CreateUserRequest) { r.Name = "A" }, true},
		{"name too long", func(r *CreateUserRequest) { r.Name = strings.Repeat("a", 51) }, true},
		{"bad email", func(r *CreateUserRequest) { r.Email = "not-an-email" }, true},
		{"missing department", func(r *CreateUserRequest) { r.Department = "" }, true},
		{"missing role", func(r *CreateUserRequest) { r.Role = "" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateUserRequest_Validation(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(UpdateUserRequest{}))
	assert.NoError(t, v.Struct(UpdateUserRequest{Email: ptr("new@example.com"), Active: ptr(false)}))
	assert.Error(t, v.Struct(UpdateUserRequest{Email: ptr("nope")}))
	assert.Error(t, v.Struct(UpdateUserRequest{Name: ptr("x")}))
}

func TestUpdateUserRequest_ToPatch(t *testing.T) {
	patch := UpdateUserRequest{Role: ptr("Lead")}.ToPatch()
	assert.Nil(t, patch.Name)
	assert.Equal(t, "Lead", *patch.Role)
	assert.True(t, UpdateUserRequest{}.ToPatch().IsEmpty())
}

func TestSearchUsersRequest_Validation(t *testing.T) {
	v := newValidate()

	assert.NoError(t, v.Struct(SearchUsersRequest{}))
	assert.NoError(t, v.Struct(SearchUsersRequest{Page: ptr(0), Size: ptr(100), SortBy: "createdAt", SortDirection: "desc"}))
	assert.Error(t, v.Struct(SearchUsersRequest{Page: ptr(-1)}))
	assert.Error(t, v.Struct(SearchUsersRequest{Size: ptr(0)}))
	assert.Error(t, v.Struct(SearchUsersRequest{Size: ptr(101)}))
	assert.Error(t, v.Struct(SearchUsersRequest{SortBy: "password"}))
	assert.Error(t, v.Struct(SearchUsersRequest{SortDirection: "up"}))
}

func TestSearchUsersRequest_ToQuery(t *testing.T) {
	assert.Equal(t, entity.UserQuery{}, SearchUsersRequest{}.ToQuery())

	q := SearchUsersRequest{
		Department:    ptr("IT"),
		Page:          ptr(2),
		Size:          ptr(5),
		SortBy:        "email",
		SortDirection: "desc",
	}.ToQuery()
	assert.Equal(t, "IT", *q.Department)
	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 5, q.Size)
	assert.Equal(t, "email", q.SortBy)
	assert.Equal(t, entity.SortDesc, q.SortDirection)
}

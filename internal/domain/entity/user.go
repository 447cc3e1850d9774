package entity

import "time"

// User is a person record held in the users collection.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewUser builds an active user stamped with the same creation and update time.
func NewUser(name, email, department, role string, now time.Time) *User {
	ts := Timestamp(now)
	return &User{
		Name:       name,
		Email:      email,
		Department: department,
		Role:       role,
		Active:     true,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

// Touch refreshes UpdatedAt, keeping it strictly after the previous value
// even when the clock has not advanced past the store's millisecond precision.
func (u *User) Touch(now time.Time) {
	ts := Timestamp(now)
	if !ts.After(u.UpdatedAt) {
		ts = u.UpdatedAt.Add(time.Millisecond)
	}
	u.UpdatedAt = ts
}

// Timestamp normalises t to UTC at millisecond precision, the resolution
// MongoDB stores dates with.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// UserPatch is a partial update. Nil fields are left unchanged.
type UserPatch struct {
	Name       *string
	Email      *string
	Department *string
	Role       *string
	Active     *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Department == nil && p.Role == nil && p.Active == nil
}

// ApplyTo copies the set fields onto u.
func (p UserPatch) ApplyTo(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Active != nil {
		u.Active = *p.Active
	}
}

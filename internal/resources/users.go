package resources

import (
	"context"

	"pannel_backoffice/internal/client"
	"pannel_backoffice/internal/models"
)

// Account endpoint paths.
const (
	pathListUsers  = "/auth/user/list_user/"
	pathRegister   = "/auth/user/register/"
	pathUpdateUser = "/auth/user/update_user/"
	pathDeleteUser = "/auth/user/delete/"
	pathMe         = "/auth/user/me/"
)

// Users accesses the account endpoints. Unlike the CRUD entities these use
// fixed action paths: updates carry the target id in the body and deletion
// requires the caller's password.
type Users struct {
	c *client.Client
}

// NewUsers binds the account accessor to a client.
func NewUsers(c *client.Client) *Users {
	return &Users{c: c}
}

// Login authenticates and returns the token pair with the account profile.
// It does not store the token; the session layer owns that decision.
func (u *Users) Login(ctx context.Context, payload models.LoginPayload) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := u.c.Post(ctx, client.LoginPath, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List fetches every account.
func (u *Users) List(ctx context.Context) (*ListResult[models.User], error) {
	var out ListResult[models.User]
	if err := u.c.Get(ctx, pathListUsers, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new account.
func (u *Users) Register(ctx context.Context, payload models.RegisterPayload) error {
	return u.c.Post(ctx, pathRegister, payload, nil)
}

// Update edits an account. The target id travels in the body.
func (u *Users) Update(ctx context.Context, payload models.UpdateUserPayload) error {
	return u.c.Put(ctx, pathUpdateUser, payload, nil)
}

// Delete removes an account. The backend re-authenticates the caller with
// the password in the payload before honoring the request.
func (u *Users) Delete(ctx context.Context, payload models.DeleteUserPayload) error {
	return u.c.Delete(ctx, pathDeleteUser, payload)
}

// Me fetches the authenticated account's profile.
func (u *Users) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := u.c.Get(ctx, pathMe, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

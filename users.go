package szurubooru

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// ListUsers searches for users. Anonymous tokens match user names; see
// the UserToken* and UserSort constants for named tokens.
func (r *Request) ListUsers(ctx context.Context, query []QueryToken) (*PagedResult[User], error) {
	var result PagedResult[User]
	if err := r.do(ctx, http.MethodGet, "/api/users", query, nil, &result); err != nil {
		return nil, err
	}
	base := r.client.BaseURL()
	for i := range result.Results {
		result.Results[i].propagateURLs(base)
	}
	return &result, nil
}

// CreateUser creates a new user. Must be anonymous or privileged to
// create other users.
func (r *Request) CreateUser(ctx context.Context, user *CreateUpdateUser) (*User, error) {
	return r.userRequest(ctx, http.MethodPost, "/api/users", user, nil)
}

// CreateUserWithAvatar creates a new user with a manual avatar read
// from a reader.
func (r *Request) CreateUserWithAvatar(ctx context.Context, avatar io.Reader, filename string, user *CreateUpdateUser) (*User, error) {
	files := []filePart{{field: "avatar", filename: filename, reader: avatar}}
	return r.userRequest(ctx, http.MethodPost, "/api/users", user, files)
}

// CreateUserWithAvatarPath creates a new user with a manual avatar
// from a file on disk.
func (r *Request) CreateUserWithAvatarPath(ctx context.Context, avatarPath string, user *CreateUpdateUser) (*User, error) {
	f, err := os.Open(avatarPath)
	if err != nil {
		return nil, fmt.Errorf("opening avatar file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.CreateUserWithAvatar(ctx, f, filepath.Base(avatarPath), user)
}

// UpdateUser updates an existing user. Only the provided fields
// change; user.Version must match the current one.
func (r *Request) UpdateUser(ctx context.Context, name string, user *CreateUpdateUser) (*User, error) {
	return r.userRequest(ctx, http.MethodPut, "/api/user/"+url.PathEscape(name), user, nil)
}

// UpdateUserWithAvatar updates an existing user and replaces their
// avatar from a reader.
func (r *Request) UpdateUserWithAvatar(ctx context.Context, name string, avatar io.Reader, filename string, user *CreateUpdateUser) (*User, error) {
	files := []filePart{{field: "avatar", filename: filename, reader: avatar}}
	return r.userRequest(ctx, http.MethodPut, "/api/user/"+url.PathEscape(name), user, files)
}

// UpdateUserWithAvatarPath updates an existing user and replaces
// their avatar from a file on disk.
func (r *Request) UpdateUserWithAvatarPath(ctx context.Context, name, avatarPath string, user *CreateUpdateUser) (*User, error) {
	f, err := os.Open(avatarPath)
	if err != nil {
		return nil, fmt.Errorf("opening avatar file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.UpdateUserWithAvatar(ctx, name, f, filepath.Base(avatarPath), user)
}

func (r *Request) userRequest(ctx context.Context, method, path string, user *CreateUpdateUser, files []filePart) (*User, error) {
	var result User
	if err := r.doMultipart(ctx, method, path, user, files, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// GetUser retrieves an existing user.
func (r *Request) GetUser(ctx context.Context, name string) (*User, error) {
	var result User
	if err := r.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(name), nil, nil, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// DeleteUser deletes an existing user.
func (r *Request) DeleteUser(ctx context.Context, name string, version int) error {
	return r.do(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(name), nil, &ResourceVersion{Version: version}, nil)
}

// ListUserTokens lists the given user's authentication tokens.
func (r *Request) ListUserTokens(ctx context.Context, name string) (*UnpagedResult[UserToken], error) {
	var result UnpagedResult[UserToken]
	if err := r.do(ctx, http.MethodGet, "/api/user-tokens/"+url.PathEscape(name), nil, nil, &result); err != nil {
		return nil, err
	}
	base := r.client.BaseURL()
	for i := range result.Results {
		result.Results[i].propagateURLs(base)
	}
	return &result, nil
}

// CreateUserToken creates an authentication token usable in place of
// the user's password.
func (r *Request) CreateUserToken(ctx context.Context, name string, token *CreateUpdateUserToken) (*UserToken, error) {
	var result UserToken
	if err := r.do(ctx, http.MethodPost, "/api/user-token/"+url.PathEscape(name), nil, token, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// UpdateUserToken updates an existing authentication token. Only the
// provided fields change; update.Version must match the current one.
func (r *Request) UpdateUserToken(ctx context.Context, name, token string, update *CreateUpdateUserToken) (*UserToken, error) {
	path := "/api/user-token/" + url.PathEscape(name) + "/" + url.PathEscape(token)
	var result UserToken
	if err := r.do(ctx, http.MethodPut, path, nil, update, &result); err != nil {
		return nil, err
	}
	result.propagateURLs(r.client.BaseURL())
	return &result, nil
}

// DeleteUserToken revokes an authentication token.
func (r *Request) DeleteUserToken(ctx context.Context, name, token string, version int) error {
	path := "/api/user-token/" + url.PathEscape(name) + "/" + url.PathEscape(token)
	return r.do(ctx, http.MethodDelete, path, nil, &ResourceVersion{Version: version}, nil)
}

// PasswordResetRequest asks the server to email a password reset
// token to the given user. emailOrName is the user's name or email
// address.
func (r *Request) PasswordResetRequest(ctx context.Context, emailOrName string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(emailOrName))
	return r.do(ctx, http.MethodGet, "/api/password-reset/"+encoded, nil, nil, nil)
}

// PasswordResetConfirm exchanges an emailed reset token for a
// temporary password.
func (r *Request) PasswordResetConfirm(ctx context.Context, emailOrName, token string) (*TemporaryPassword, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(emailOrName))
	var result TemporaryPassword
	if err := r.do(ctx, http.MethodPost, "/api/password-reset/"+encoded, nil, &passwordResetRequest{Token: token}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

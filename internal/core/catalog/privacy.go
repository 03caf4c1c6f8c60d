package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// DeleteConfirmPhrase must be typed by the user to delete their account.
const DeleteConfirmPhrase = "SUPPRIMER MON COMPTE"

// ErrConfirmPhrase is returned before any request when the phrase does not match.
var ErrConfirmPhrase = errors.New("confirmation phrase does not match")

// DeleteAccountRequest is the body of an account deletion.
type DeleteAccountRequest struct {
	Password      string `json:"password"`
	ConfirmPhrase string `json:"confirmPhrase"`
}

// ExportUserData returns everything the server holds about the logged-in
// user as the raw JSON document it sends.
func (c *Client) ExportUserData(ctx context.Context) ([]byte, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "user/mobile/export", nil, true, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// DeleteAccount permanently deletes the logged-in user's account. The server
// answers 400 for a wrong phrase and 401 for a wrong password; callers should
// clear the stored session on success.
func (c *Client) DeleteAccount(ctx context.Context, password, confirmPhrase string) error {
	if confirmPhrase != DeleteConfirmPhrase {
		return ErrConfirmPhrase
	}
	req := DeleteAccountRequest{Password: password, ConfirmPhrase: confirmPhrase}
	return c.doJSON(ctx, http.MethodDelete, "user/mobile", nil, true, req, nil)
}

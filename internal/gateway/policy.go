package gateway

import "context"

// fail runs the single side effect owed to a failure class and returns the error.
func (c *Client) fail(ctx context.Context, method, path, token string, e *Error) error {
	c.log.Warn().
		Err(e.Err).
		Str("method", method).
		Str("path", path).
		Str("class", string(e.Class)).
		Int("status", e.Status).
		Msg("api request failed")

	switch e.Class {
	case ClassUnauthorized:
		c.unauthorized(ctx, token)
	case ClassForbidden:
		c.notifier.Error(MsgForbidden)
	case ClassNotFound:
		c.notifier.Error(MsgNotFound)
	case ClassServer:
		c.notifier.Error(MsgServer)
	case ClassHTTP:
		msg := e.Message
		if msg == "" {
			msg = MsgUnknown
		}
		c.notifier.Error(msg)
	case ClassNetwork:
		c.notifier.Error(MsgNetwork)
	case ClassRequest:
		c.notifier.Error(MsgRequest)
	case ClassValidation, ClassCanceled:
		// the caller renders these
	}
	return e
}

// unauthorized clears the session the request was sent with. When several
// requests are rejected for the same token only the first one notifies and
// redirects; the rest find the session empty and are sent to login by the
// route guard. A rejection of a token that a newer login already replaced
// keeps the session and tells the operator to retry.
func (c *Client) unauthorized(ctx context.Context, token string) {
	ctx = context.WithoutCancel(ctx)
	cleared, err := c.creds.Revoke(ctx, token)
	if err != nil {
		c.log.Error().Err(err).Msg("clear rejected session")
	}
	if !cleared {
		if c.creds.Token() != "" {
			c.notifier.Error(MsgLoginChanged)
		}
		return
	}
	c.notifier.Error(MsgLoginRequired)
	c.navigator.Navigate(ctx, LoginPath)
}

package core

import (
	"context"
	"fmt"
)

// PropertyPreview renders social-preview HTML for crawler traffic on a
// property path. ok=false means pass-through: serve the SPA shell.
func (c *Core) PropertyPreview(ctx context.Context, path, userAgent string) (string, bool, error) {
	if c.preview == nil {
		return "", false, fmt.Errorf("preview responder not available")
	}
	return c.preview.Respond(ctx, path, userAgent)
}

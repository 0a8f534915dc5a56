package cli

import (
	"time"

	"prodhub/internal/constants"
	"prodhub/internal/session"
	"prodhub/internal/storage"
)

// Context carries the shared collaborators for every command. The logged-in
// user is always resolved from the session file and passed down explicitly.
type Context struct {
	Store    storage.Provider
	Sessions *session.Manager
	Debug    bool
}

// requireUser loads the store and resolves the current identity. Commands
// that operate on user data call this first.
func (ctx *Context) requireUser() (session.Identity, error) {
	if err := ctx.Store.Load(); err != nil {
		return session.Identity{}, err
	}
	return ctx.Sessions.Current()
}

func today() string {
	return time.Now().Format(constants.DateFormat)
}

// Package session tracks which account, if any, is currently acting.
package session

import (
	"sync"

	"socialhub/internal/models"
	"socialhub/internal/repository"
)

// Context is the process-wide record of the active identity. It starts with
// nobody logged in; the active username is set on successful authentication or
// an explicit switch, and cleared on logout. It is a narrow piece of state
// passed to the components that need it, never ambient.
type Context struct {
	mu       sync.RWMutex
	active   string
	loggedIn bool
	accounts repository.AccountDirectory
}

// NewContext creates a session context with no active identity.
func NewContext(accounts repository.AccountDirectory) *Context {
	return &Context{accounts: accounts}
}

// Login sets the active identity unconditionally. The caller has already
// authenticated through the account directory.
func (c *Context) Login(username string) {
	c.mu.Lock()
	c.active = username
	c.loggedIn = true
	c.mu.Unlock()
}

// SwitchTo sets the active identity to any registered username without
// verifying credentials. That is a deliberate convenience of this system, not
// an oversight. It fails with UNKNOWN_ACCOUNT for unregistered usernames and
// leaves the session unchanged in that case.
func (c *Context) SwitchTo(username string) error {
	if _, ok := c.accounts.Get(username); !ok {
		return models.NewUnknownAccountError(username)
	}

	c.mu.Lock()
	c.active = username
	c.loggedIn = true
	c.mu.Unlock()
	return nil
}

// Logout clears the active identity.
func (c *Context) Logout() {
	c.mu.Lock()
	c.active = ""
	c.loggedIn = false
	c.mu.Unlock()
}

// Current returns the active username, if any. Every mutating operation in
// the interaction engine consults it to determine the acting identity.
func (c *Context) Current() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active, c.loggedIn
}

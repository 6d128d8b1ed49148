// Package repository provides the in-memory stores that own all application
// state. There is no database behind them: every entity lives in process
// memory and is gone on restart.
package repository

import (
	"sync"
	"time"

	"socialhub/internal/models"
)

// AccountDirectory owns the set of registered accounts. It enforces username
// uniqueness and verifies credentials. Usernames are case-sensitive.
type AccountDirectory interface {
	// Signup registers a new account. It fails with DUPLICATE_USERNAME if an
	// account with that exact username already exists. The check and the
	// insert happen under one lock, so concurrent signups for the same
	// username cannot both succeed.
	Signup(username, password string) (*models.Account, error)

	// Authenticate returns the account matching both username and password,
	// or INVALID_CREDENTIALS. Comparison is plain string equality; there is
	// no lockout and no rate limiting at this level.
	Authenticate(username, password string) (*models.Account, error)

	// Get looks up an account by username.
	Get(username string) (*models.Account, bool)

	// List returns all accounts in registration order.
	List() []*models.Account

	// Count returns the number of registered accounts.
	Count() int
}

type accountDirectory struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	order    []string
}

// NewAccountDirectory creates an empty account directory.
func NewAccountDirectory() AccountDirectory {
	return &accountDirectory{
		accounts: make(map[string]*models.Account),
	}
}

func (d *accountDirectory) Signup(username, password string) (*models.Account, error) {
	if username == "" || password == "" {
		return nil, models.NewValidationError("username and password are required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.accounts[username]; exists {
		return nil, models.NewDuplicateUsernameError(username)
	}

	account := &models.Account{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	d.accounts[username] = account
	d.order = append(d.order, username)
	return account, nil
}

func (d *accountDirectory) Authenticate(username, password string) (*models.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok || account.Password != password {
		return nil, models.NewInvalidCredentialsError()
	}
	return account, nil
}

func (d *accountDirectory) Get(username string) (*models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	return account, ok
}

func (d *accountDirectory) List() []*models.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	accounts := make([]*models.Account, 0, len(d.order))
	for _, username := range d.order {
		accounts = append(accounts, d.accounts[username])
	}
	return accounts
}

func (d *accountDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

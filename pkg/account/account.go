package account

import (
	"errors"
	"strings"
	"sync"

	"github.com/badoux/checkmail"
	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
)

var (
	// ErrInvalidEmailOrPassword is an error if the email and/or password is invalid
	ErrInvalidEmailOrPassword = errors.New("invalid email address or password")

	// ErrInvalidEmail is an error if the email address is malformed
	ErrInvalidEmail = errors.New("missing or invalid email address")

	// ErrPasswordTooShort is an error if the password is below the minimum length
	ErrPasswordTooShort = errors.New("password must be 6 or more characters")

	// ErrAlreadyOnline is an error if the account has a live session and the
	// table enforces one session per account
	ErrAlreadyOnline = errors.New("account is already logged in")
)

// Account is one registered player identity
type Account struct {
	Email string
	Stack int

	passwordHash string
	online       bool
	sessionID    string
}

// Options configures a Manager
type Options struct {
	// StartingStack is the chip count granted on first login
	StartingStack int

	// SingleSession rejects logins for accounts with a live session
	SingleSession bool
}

// DefaultOptions returns the standard account options
func DefaultOptions() Options {
	return Options{StartingStack: 1000}
}

// Manager keeps the accounts for a server in memory. An unknown email
// logging in registers a new account on the spot.
type Manager struct {
	mu       sync.Mutex
	log      logrus.FieldLogger
	options  Options
	accounts map[string]*Account
}

// NewManager returns an empty account manager
func NewManager(log logrus.FieldLogger, opts Options) *Manager {
	return &Manager{
		log:      log,
		options:  opts,
		accounts: make(map[string]*Account),
	}
}

// Login authenticates an account, creating it first if the email has never
// been seen. The returned account is a copy; mutations do not stick.
func (m *Manager) Login(email, password, sessionID string) (Account, error) {
	if err := checkmail.ValidateFormat(email); err != nil {
		return Account{}, ErrInvalidEmail
	}

	if len(password) < 6 {
		return Account{}, ErrPasswordTooShort
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	acct, ok := m.accounts[key]
	if !ok {
		hash, err := argon2id.DefaultHashPassword(password)
		if err != nil {
			return Account{}, err
		}

		acct = &Account{
			Email:        email,
			Stack:        m.options.StartingStack,
			passwordHash: hash,
		}
		m.accounts[key] = acct
		m.log.WithField("email", email).Info("account registered")
	} else if err := argon2id.Compare(acct.passwordHash, password); err != nil {
		return Account{}, ErrInvalidEmailOrPassword
	}

	if m.options.SingleSession && acct.online && acct.sessionID != sessionID {
		return Account{}, ErrAlreadyOnline
	}

	acct.online = true
	acct.sessionID = sessionID
	return *acct, nil
}

// Logout releases the live session with the given id
func (m *Manager) Logout(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, acct := range m.accounts {
		if acct.sessionID == sessionID {
			acct.online = false
			acct.sessionID = ""
			return
		}
	}
}

// UpdateStack records a new chip count for the account, typically after a
// hand settles. Returns false if the email is not registered.
func (m *Manager) UpdateStack(email string, stack int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return false
	}

	acct.Stack = stack
	return true
}

// Stack returns the account's chip count
func (m *Manager) Stack(email string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acct, ok := m.accounts[strings.ToLower(email)]
	if !ok {
		return 0, false
	}

	return acct.Stack, true
}

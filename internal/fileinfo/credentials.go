package fileinfo

import (
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"fileref/internal/secret"
)

// Credentials represents SMB authentication parameters.
type Credentials struct {
	Domain   string
	Username string
	Password string
	Persist  bool // store in the secret store after a successful mount
}

func (c Credentials) empty() bool {
	return c.Domain == "" && c.Username == "" && c.Password == ""
}

// CredentialChain resolves SMB credentials from, in order: credentials put
// in memory this session (e.g. parsed from a URL), the secret store, and a
// fallback provider. A nil chain yields anonymous credentials.
type CredentialChain struct {
	mu       sync.RWMutex
	memory   map[string]Credentials
	store    secret.Store
	fallback CredentialsProvider
}

// NewCredentialChain creates a chain; store and fallback may be nil.
func NewCredentialChain(store secret.Store, fallback CredentialsProvider) *CredentialChain {
	return &CredentialChain{
		memory:   make(map[string]Credentials),
		store:    store,
		fallback: fallback,
	}
}

func credKey(host, share string) string {
	return strings.ToLower(host) + "\x00" + strings.ToLower(share)
}

// Put seeds in-memory credentials for host/share.
func (c *CredentialChain) Put(host, share string, cred Credentials) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.memory[credKey(host, share)] = cred
	c.mu.Unlock()
}

// Forget drops the credentials held for host/share, in memory and in the
// secret store, typically after an authentication failure.
func (c *CredentialChain) Forget(host, share string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.memory, credKey(host, share))
	c.mu.Unlock()
	if c.store == nil {
		return
	}
	if err := c.store.Delete(host, share); err != nil {
		log.WithError(err).WithField("share", host+"/"+share).Warn("could not delete stored SMB credentials")
	}
}

// Lookup returns the credentials to try for host/share.
func (c *CredentialChain) Lookup(host, share, rel string) Credentials {
	if c == nil {
		return Credentials{}
	}
	c.mu.RLock()
	cred, ok := c.memory[credKey(host, share)]
	c.mu.RUnlock()
	if ok && !cred.empty() {
		return cred
	}
	if c.store != nil {
		e, found, err := c.store.Get(host, share)
		if err != nil {
			log.WithError(err).WithField("share", host+"/"+share).Debug("secret store lookup failed")
		}
		if found && !e.Empty() {
			cred = Credentials{Domain: e.Domain, Username: e.Username, Password: e.Password}
			c.Put(host, share, cred)
			return cred
		}
	}
	if c.fallback == nil {
		return Credentials{}
	}
	cred, err := c.fallback.Get(host, share, rel)
	if err != nil {
		return Credentials{}
	}
	c.Put(host, share, cred)
	return cred
}

// Remember persists credentials that just worked when they ask for it.
func (c *CredentialChain) Remember(host, share string, cred Credentials) {
	if c == nil || !cred.Persist || c.store == nil {
		return
	}
	err := c.store.Set(host, share, secret.Entry{Domain: cred.Domain, Username: cred.Username, Password: cred.Password})
	if err != nil {
		log.WithError(err).WithField("share", host+"/"+share).Warn("could not persist SMB credentials")
	}
}

package bridge

import "sync"

// Credential is the output of a successful OAuth exchange. A later exchange
// overwrites the whole value; there is no merge.
type Credential struct {
	AccessToken string
	MerchantID  string
}

// CredentialStore holds at most one credential. Absence is the normal
// Unauthorized state. Written by the token exchange, read by the poller;
// a reader observing a value one cycle stale is fine.
type CredentialStore struct {
	mu   sync.RWMutex
	cred *Credential
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

func (s *CredentialStore) Set(c Credential) {
	s.mu.Lock()
	s.cred = &c
	s.mu.Unlock()
}

// Get returns a copy of the stored credential, or false if none is stored.
func (s *CredentialStore) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

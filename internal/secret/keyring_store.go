package secret

import (
	"errors"
	"strings"

	"github.com/99designs/keyring"

	"fileref/internal/constants"
	apperrors "fileref/internal/errors"
)

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore tries to open the OS keyring via 99designs/keyring.
// If it fails, returns an error so callers can fallback to memory.
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: constants.KeyringServiceName})
	if err != nil {
		return nil, apperrors.NewCredentialsError("open_keyring", "cannot open OS keyring", err)
	}
	return &keyringStore{ring: r}, nil
}

func (s *keyringStore) Get(host, share string) (Entry, bool, error) {
	item, err := s.ring.Get(key(host, share))
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Entry{}, false, nil
		}
		return Entry{}, false, apperrors.NewCredentialsError("get", "keyring lookup failed", err)
	}
	e := decodeDescription(item.Description)
	e.Password = string(item.Data)
	return e, true, nil
}

func (s *keyringStore) Set(host, share string, e Entry) error {
	err := s.ring.Set(keyring.Item{
		Key:         key(host, share),
		Data:        []byte(e.Password),
		Description: encodeDescription(e),
		Label:       constants.KeyringServiceName,
	})
	if err != nil {
		return apperrors.NewCredentialsError("set", "keyring write failed", err)
	}
	return nil
}

func (s *keyringStore) Delete(host, share string) error {
	err := s.ring.Remove(key(host, share))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return apperrors.NewCredentialsError("delete", "keyring delete failed", err)
	}
	return nil
}

// The item description holds "domain\user" (or just "user"); the password
// goes in the item data.
func encodeDescription(e Entry) string {
	if e.Domain == "" {
		return e.Username
	}
	return e.Domain + `\` + e.Username
}

func decodeDescription(desc string) Entry {
	if i := strings.IndexAny(desc, `\;`); i >= 0 {
		return Entry{Domain: desc[:i], Username: desc[i+1:]}
	}
	return Entry{Username: desc}
}

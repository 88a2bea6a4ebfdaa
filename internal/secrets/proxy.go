package secrets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "upwork-scraper"

func proxyAccount(user string) string {
	return fmt.Sprintf("proxy:%s", user)
}

// ResolveProxy fills in the proxy password from the OS keychain when the
// configured URL names a user but carries no password. Config files stay
// credential-free that way. A missing keychain entry is not an error; the
// URL is used as given.
func ResolveProxy(rawURL string) (string, error) {
	if strings.TrimSpace(rawURL) == "" {
		return "", nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse proxy url: %w", err)
	}
	if u.User == nil {
		return rawURL, nil
	}
	if _, has := u.User.Password(); has {
		return rawURL, nil
	}

	user := u.User.Username()
	pw, err := keyring.Get(KeyringService, proxyAccount(user))
	if err != nil || strings.TrimSpace(pw) == "" {
		return rawURL, nil
	}
	u.User = url.UserPassword(user, pw)
	return u.String(), nil
}

func SetProxyPassword(user string, password string) error {
	if strings.TrimSpace(user) == "" {
		return errors.New("proxy user name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, proxyAccount(user), password)
}

func DeleteProxyPassword(user string) error {
	if strings.TrimSpace(user) == "" {
		return errors.New("proxy user name is empty")
	}
	return keyring.Delete(KeyringService, proxyAccount(user))
}

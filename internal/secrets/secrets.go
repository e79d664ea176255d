// Package secrets keeps credentials in the OS keychain so neither the YC
// session nor the IMAP password ever lands in a config file.
package secrets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "find-my-next-job"

const ycSessionAccount = "yc:session"

// GetYCSession returns the saved Work at a Startup session cookie header.
func GetYCSession() (string, error) {
	v, err := keyring.Get(KeyringService, ycSessionAccount)
	if err != nil || strings.TrimSpace(v) == "" {
		return "", errors.New("YC session not found in keychain")
	}
	return v, nil
}

func SetYCSession(cookie string) error {
	if strings.TrimSpace(cookie) == "" {
		return errors.New("session cookie is empty")
	}
	return keyring.Set(KeyringService, ycSessionAccount, cookie)
}

func DeleteYCSession() error {
	return keyring.Delete(KeyringService, ycSessionAccount)
}

func GetIMAPPassword(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", errors.New("keyring account name is empty")
	}
	pw, err := keyring.Get(KeyringService, account)
	if err != nil || strings.TrimSpace(pw) == "" {
		return "", errors.New("IMAP password not found in keychain")
	}
	return pw, nil
}

func SetIMAPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

// IMAPAccount derives the keychain account name for a mailbox login.
func IMAPAccount(username, host string) string {
	return fmt.Sprintf("imap:%s@%s", username, host)
}

// Package directory - справочник счетов: короткие коды (username) по имени владельца и поиск по ним.
package directory

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/denmor86/ya-bankist/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrEmptyOwner        = errors.New("owner name is empty")
)

// Username - первые буквы всех слов имени владельца в нижнем регистре: "Jonas Schmedtmann" -> "js"
func Username(owner string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(cases.Lower(language.Und).String(owner)) {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(r)
	}
	return sb.String()
}

// BuildUsernames - однократное присвоение кодов всем счетам, выполняется до любого поиска.
// Коды должны быть уникальны в пределах справочника.
func BuildUsernames(accounts []models.Account) error {
	seen := make(map[string]string, len(accounts))
	for i := range accounts {
		username := Username(accounts[i].Owner)
		if username == "" {
			return fmt.Errorf("account #%d: %w", i, ErrEmptyOwner)
		}
		if owner, ok := seen[username]; ok {
			return fmt.Errorf("%w %q: %q and %q", ErrDuplicateUsername, username, owner, accounts[i].Owner)
		}
		seen[username] = accounts[i].Owner
		accounts[i].Username = username
	}
	return nil
}

// FindByUsername - счёт по коду
func FindByUsername(accounts []models.Account, username string) (*models.Account, bool) {
	idx := FindIndexByUsername(accounts, username)
	if idx < 0 {
		return nil, false
	}
	return &accounts[idx], true
}

// FindIndexByUsername - позиция счёта в справочнике, -1 если не найден
func FindIndexByUsername(accounts []models.Account, username string) int {
	for i := range accounts {
		if accounts[i].Username == username {
			return i
		}
	}
	return -1
}

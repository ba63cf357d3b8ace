package db

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

func HandleNotFound(err error, errMsg ...string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", strings.Join(errMsg, " "), ErrNotFound)
	}
	return err
}

// HandleDuplicate maps unique constraint violations from any supported
// driver onto ErrDuplicate. TranslateError covers mysql and postgres; the
// pure-go sqlite driver is matched on its message.
func HandleDuplicate(err error, errMsg ...string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return fmt.Errorf("%s %w: %v", strings.Join(errMsg, " "), ErrDuplicate, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

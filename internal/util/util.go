package util

import (
	"github.com/google/uuid"
)

// GenUUID generates a new UUID string. Used as the stable identity for
// assignments and office-hour blocks.
func GenUUID() string {
	return uuid.New().String()
}

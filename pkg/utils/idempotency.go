package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewIdempotencyKey returns a per-call token of the form <unix-millis>-<random>
func NewIdempotencyKey(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix[:12])
}

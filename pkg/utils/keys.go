package utils

import (
	"fmt"
	"strings"
)

// SessionKey builds the cache key for one session. The result must be
// filesystem safe since it doubles as file name in the artifact store.
func SessionKey(eventName string, round int, sessionType string) string {
	r := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return fmt.Sprintf("race_%s_%d_%s", r.Replace(eventName), round, sessionType)
}

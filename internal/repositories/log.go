package repositories

import (
	"strings"

	"github.com/sbilibin2017/echo/internal/logger"
)

// logQuery logs a statement on a single line with its args and outcome.
// Callers must redact secrets from args before passing them.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("db query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

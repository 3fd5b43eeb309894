package session

import (
	"os"

	"github.com/matheus3301/chatlens/internal/config"
)

const DefaultSessionName = "main"

// SessionEnv names the session when no --session flag is given.
const SessionEnv = "CHATLENS_SESSION"

// Resolve picks the active session name: the --session flag, then
// $CHATLENS_SESSION, then default_session from config.toml, then "main".
// The result is not validated.
func Resolve(flagOverride string) string {
	if flagOverride != "" {
		return flagOverride
	}
	if name := os.Getenv(SessionEnv); name != "" {
		return name
	}
	cfg, err := config.Load(ConfigPath())
	if err == nil && cfg.DefaultSession != "" {
		return cfg.DefaultSession
	}
	return DefaultSessionName
}

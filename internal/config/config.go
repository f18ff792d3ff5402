package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Port string

	DBDSN string

	SessionKey   []byte
	CSRFKey      []byte
	CookieSecure bool

	StorageDir string
	ThemesDir  string
	StaticDir  string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBDSN:        os.Getenv("DB_DSN"),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		StorageDir:   getEnv("STORAGE_DIR", "uploads"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
	}
	cfg.ThemesDir = getEnv("THEMES_DIR", cfg.StaticDir+"/css/themes")

	if cfg.DBDSN == "" {
		cfg.DBDSN = "host=" + getEnv("DB_HOST", "localhost") +
			" user=" + getEnv("DB_USER", "postgres") +
			" password=" + getEnv("DB_PASSWORD", "postgres") +
			" dbname=" + getEnv("DB_NAME", "hotelsite") +
			" port=" + getEnv("DB_PORT", "5432") +
			" sslmode=" + getEnv("DB_SSLMODE", "disable")
	}

	cfg.SessionKey = keyFromEnv("SESSION_KEY")
	cfg.CSRFKey = keyFromEnv("CSRF_KEY")
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// keyFromEnv decodes a base64 key of at least 32 bytes, generating a random
// one when unset or invalid. Generated keys change on restart, which logs a
// warning since it invalidates live sessions.
func keyFromEnv(name string) []byte {
	raw := os.Getenv(name)
	if raw != "" {
		if k, err := base64.StdEncoding.DecodeString(raw); err == nil && len(k) >= 32 {
			return k
		}
		log.Warn().Str("var", name).Msg("key invalid or too short, generating a random one")
	} else {
		log.Warn().Str("var", name).Msg("key unset, generating a random one for this process")
	}
	k := make([]byte, 32)
	if _, err := rand.Read(k); err != nil {
		log.Fatal().Err(err).Msg("read random key material")
	}
	return k
}

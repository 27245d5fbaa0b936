package config // package config loads application configuration from environment variables

import (
	"crypto/rand"  // rand generates a signing secret when none is configured
	"encoding/hex" // hex encodes the generated secret
	"log"          // log is used to report configuration errors and halt execution
	"os"           // os provides access to environment variables
	"strconv"      // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The token TTLs default to the values the rest of
// the system assumes (15 minute access tokens, 7 day refresh tokens) and only
// need to be overridden in test or staging environments.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	DBMaxConns        int    // connection pool size (open and idle)
	DBConnLifetimeMin int    // maximum connection lifetime in minutes
	JWTSecret         string // secret used to sign JWTs
	AccessTTLMin      int    // access token time-to-live in minutes
	RefreshTTLDays    int    // refresh token time-to-live in days
	BcryptCost        int    // bcrypt cost for password hashing
	StaticDir         string // directory holding the static HTML pages
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  JWT_SECRET is the
// exception: when unset, a random process-lifetime secret is generated so
// the server still boots, at the cost of invalidating sessions on restart.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		DBMaxConns:        envInt("DB_MAX_CONNS", 25),
		DBConnLifetimeMin: envInt("DB_CONN_LIFETIME_MIN", 30),
		JWTSecret:         secretOrGenerate("JWT_SECRET"),
		AccessTTLMin:      envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays:    envInt("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:        envInt("BCRYPT_COST", 10),
		StaticDir:         envStr("STATIC_DIR", "web/static"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// secretOrGenerate returns the configured signing secret or, when the
// variable is empty, a fresh random one.  Tokens signed with a generated
// secret do not survive a process restart.
func secretOrGenerate(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate signing secret: %v", err)
	}
	log.Printf("%s not set; generated a process-lifetime secret (sessions will not survive restart)", key)
	return hex.EncodeToString(buf)
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

// MySQLDSN builds the go-sql-driver DSN from the DB_* environment variables.
// DB_HOST, DB_USER, DB_PASS and DB_NAME are required.
func MySQLDSN(config map[string]string) (string, error) {
	host := GetString(config, "DB_HOST", "")
	user := GetString(config, "DB_USER", "")
	pass := GetString(config, "DB_PASS", "")
	name := GetString(config, "DB_NAME", "")
	port := GetString(config, "DB_PORT", "3306")

	if host == "" || user == "" || pass == "" || name == "" {
		return "", fmt.Errorf("database environment variables are not set correctly")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name), nil
}

// ReplicaDSN returns the optional read-replica DSN, empty when not configured.
func ReplicaDSN(config map[string]string) string {
	return GetString(config, "DB_REPLICA_DSN", "")
}

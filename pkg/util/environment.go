package util

import (
	"os"
	"strings"
)

func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		if name, value, found := strings.Cut(variable, "="); found {
			environmentVariables[name] = value
		}
	}

	return environmentVariables
}

// EnvironmentFlag reports whether a switch variable such as TRAVIGO_DEBUG is turned on
func EnvironmentFlag(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(os.Getenv(name))) {
	case "YES", "TRUE", "1":
		return true
	}

	return false
}

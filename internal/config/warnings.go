package config

import "fmt"

// Example values shipped in .env.example that must not reach a deployment
const (
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
	ExampleDBPassword = "change_this_secure_password"
	minAPIKeyLength   = 16
)

// Warnings reports settings that are valid but likely mistakes. Callers log them at startup.
func (c *Config) Warnings() []string {
	var warnings []string

	if c.APIKey == ExampleAPIKey {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	} else if len(c.APIKey) < minAPIKeyLength {
		warnings = append(warnings, fmt.Sprintf("API_KEY is shorter than %d characters", minAPIKeyLength))
	}

	if c.StoreBackend == StoreBackendPostgres && (c.DBPassword == ExampleDBPassword || c.DBPassword == "postgres") {
		warnings = append(warnings, "DB_PASSWORD appears to be using a default value - please use a secure password")
	}

	if c.StoreBackend == StoreBackendMemory {
		warnings = append(warnings, "STORE_BACKEND is memory - game state is lost on restart")
	}

	if c.PetServiceURL == "" && c.Environment == EnvironmentProduction {
		warnings = append(warnings, "PET_SERVICE_URL is empty in production - pets live in the in-process simulator")
	}

	if c.DiscordToken != "" && c.DiscordAppID == "" {
		warnings = append(warnings, "DISCORD_APP_ID is empty - slash commands will not be registered")
	}

	return warnings
}

package config

import (
	"errors"
	"fmt"
	"time"
)

// Validation constants define acceptable bounds for configuration values
const (
	// Token validation
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minTemperature = 0.0
	maxTemperature = 2.0

	minMaxTokens = 1
	maxMaxTokens = 4096

	// Discord interaction tokens expire after 15 minutes
	minTimeout = 1 * time.Second
	maxTimeout = 14 * time.Minute

	minTopK = 0
	maxTopK = 20

	// Snowflakes are 17-20 digit decimal numbers
	minSnowflakeLength = 17
	maxSnowflakeLength = 20
)

// Validate checks if the configuration values are valid and within acceptable ranges.
// It returns all validation errors at once using errors.Join. Load only logs
// them; see applyDefaults.
//
// Validated fields:
//   - Token: Must be at least 50 characters (Discord token format)
//   - ApplicationID / GuildIDs: Must be Discord snowflakes when set
//   - Temperature: Must be between 0 and 2
//   - MaxTokens: Must be between 1 and 4096
//   - Timeout: Must be between 1s and 14m
//   - RetrievalTopK: Must be between 0 and 20
//   - RulesPath: Cannot be empty
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateSnowflakes(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateCompletion(); err != nil {
		errs = append(errs, err)
	}

	if c.RetrievalTopK < minTopK || c.RetrievalTopK > maxTopK {
		errs = append(errs, fmt.Errorf(
			"RULES_TOP_K must be between %d and %d, got %d",
			minTopK, maxTopK, c.RetrievalTopK,
		))
	}

	if c.RulesPath == "" {
		errs = append(errs, errors.New("RULES_PATH cannot be empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

// validateToken ensures the Discord token is present and has valid length
func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateSnowflakes() error {
	var errs []error

	if c.ApplicationID != "" {
		if err := validateSnowflake("DISCORD_APPLICATION_ID", c.ApplicationID); err != nil {
			errs = append(errs, err)
		}
	}

	for _, id := range c.GuildIDs {
		if err := validateSnowflake("DISCORD_GUILD_IDS", id); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// validateCompletion checks the sampling and timeout settings of the completion call
func (c *Config) validateCompletion() error {
	var errs []error

	if c.Temperature < minTemperature || c.Temperature > maxTemperature {
		errs = append(errs, fmt.Errorf(
			"OPENAI_TEMPERATURE must be between %v and %v, got %v",
			minTemperature, maxTemperature, c.Temperature,
		))
	}

	if c.MaxTokens < minMaxTokens || c.MaxTokens > maxMaxTokens {
		errs = append(errs, fmt.Errorf(
			"OPENAI_MAX_TOKENS must be between %d and %d, got %d",
			minMaxTokens, maxMaxTokens, c.MaxTokens,
		))
	}

	if c.Timeout < minTimeout || c.Timeout > maxTimeout {
		errs = append(errs, fmt.Errorf(
			"OPENAI_TIMEOUT must be between %v and %v, got %v (hint: the interaction token expires after 15m)",
			minTimeout, maxTimeout, c.Timeout,
		))
	}

	if c.ChatModel == "" {
		errs = append(errs, errors.New("OPENAI_MODEL cannot be empty"))
	}

	return errors.Join(errs...)
}

func validateSnowflake(fieldName, id string) error {
	if len(id) < minSnowflakeLength || len(id) > maxSnowflakeLength {
		return fmt.Errorf("%s contains invalid id %q (expected %d-%d digits)", fieldName, id, minSnowflakeLength, maxSnowflakeLength)
	}

	for _, r := range id {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s contains invalid id %q (non-digit characters)", fieldName, id)
		}
	}

	return nil
}

// applyDefaults replaces every out-of-range value with its default. Guild ids
// are kept as configured: Discord rejects a bad one during registration of
// that guild only. A short token is kept too and fails at login.
func (c *Config) applyDefaults() {
	if c.ApplicationID != "" && validateSnowflake("DISCORD_APPLICATION_ID", c.ApplicationID) != nil {
		c.ApplicationID = ""
	}

	if c.Temperature < minTemperature || c.Temperature > maxTemperature {
		c.Temperature = defaultTemperature
	}

	if c.MaxTokens < minMaxTokens || c.MaxTokens > maxMaxTokens {
		c.MaxTokens = defaultMaxTokens
	}

	if c.Timeout < minTimeout || c.Timeout > maxTimeout {
		c.Timeout = defaultTimeout
	}

	if c.ChatModel == "" {
		c.ChatModel = defaultChatModel
	}

	if c.RetrievalTopK < minTopK || c.RetrievalTopK > maxTopK {
		c.RetrievalTopK = defaultTopK
	}

	if c.RulesPath == "" {
		c.RulesPath = defaultRulesPath
	}
}

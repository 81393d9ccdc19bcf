package settings

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultContextTimeout = 31 * time.Second
const defaultMaxChangesWarningThreshold = 100

type Settings struct {
	TeamsChannelURL            string        `mapstructure:"TeamsChannelUrl"`
	TimeZone                   string        `mapstructure:"TimeZone"`
	MaxChangesWarningThreshold int           `mapstructure:"MaxChangesWarningThreshold"`
	ContextTimeout             time.Duration `mapstructure:"CONTEXT_TIMEOUT"`
	DoLogToStdout              bool          `mapstructure:"LOG_TO_STDOUT"`
	LocalEndpoint              *string       `mapstructure:"LOCAL_ENDPOINT"`
}

func GetSettings() (*Settings, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("settings")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	// the relay variables keep their documented mixed-case names
	viper.BindEnv("TeamsChannelUrl", "TeamsChannelUrl")
	viper.BindEnv("TimeZone", "TimeZone")
	viper.BindEnv("MaxChangesWarningThreshold", "MaxChangesWarningThreshold")
	viper.SetDefault("MaxChangesWarningThreshold", defaultMaxChangesWarningThreshold)
	viper.SetDefault("CONTEXT_TIMEOUT", defaultContextTimeout)
	viper.SetDefault("LOG_TO_STDOUT", true)

	if err := viper.ReadInConfig(); err != nil {
		// no settings.env in the lambda environment, env vars are enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading in config: %v", err)
		}
	}

	var settings Settings
	if err := viper.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshalling settings: %v", err)
	}
	return &settings, nil
}

// ChannelURLs splits TeamsChannelUrl on commas or semicolons and validates
// every entry. An empty result or an error means the relay stays disabled.
func (settings *Settings) ChannelURLs() ([]string, error) {
	raw := strings.TrimSpace(settings.TeamsChannelURL)
	if len(raw) == 0 {
		return nil, nil
	}
	splitter := func(r rune) bool { return r == ',' || r == ';' }
	channelURLs := make([]string, 0)
	for _, entry := range strings.FieldsFunc(raw, splitter) {
		entry = strings.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		parsed, err := url.Parse(entry)
		if err != nil {
			return nil, fmt.Errorf("error parsing channel url '%s': %v", entry, err)
		}
		if (parsed.Scheme != "http" && parsed.Scheme != "https") || len(parsed.Host) == 0 {
			return nil, fmt.Errorf("channel url '%s' is not an http(s) url", entry)
		}
		channelURLs = append(channelURLs, entry)
	}
	return channelURLs, nil
}

// Location resolves TimeZone, falling back to UTC alongside the error so the
// caller can log and keep going.
func (settings *Settings) Location() (*time.Location, error) {
	timeZone := strings.TrimSpace(settings.TimeZone)
	if len(timeZone) == 0 {
		return time.UTC, nil
	}
	location, err := time.LoadLocation(timeZone)
	if err != nil {
		return time.UTC, fmt.Errorf("error loading time zone '%s': %v", timeZone, err)
	}
	return location, nil
}

package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/dmitrijs2005/daybook/internal/flagx"
)

// parseFile overlays Config with values from a ".daybook" config file
// (yaml/json/toml, resolved by viper) and DAYBOOK_* environment variables.
//
// Lookup order for the file: an explicit -c/-config flag, then the current
// directory, then the user's home directory. A missing file is not an error;
// an unreadable or unparseable one panics (caller may recover).
func parseFile(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("DAYBOOK")
	v.AutomaticEnv()

	if path := flagx.ConfigFileFlag(); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".daybook")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			panic(err)
		}
	}

	if s := v.GetString("storage_path"); s != "" {
		cfg.StoragePath = s
	}
	if s := v.GetString("key_prefix"); s != "" {
		cfg.KeyPrefix = s
	}
	if s := v.GetString("server_endpoint_addr"); s != "" {
		cfg.ServerEndpointAddr = s
	}
	if s := v.GetString("secret_key"); s != "" {
		cfg.SecretKey = s
	}
	if d := v.GetDuration("http_timeout"); d > 0 {
		cfg.HTTPTimeout = d
	}
}

package configx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/marcodd23/go-duckdb-core/pkg/dbx"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultConfigBaseName = "property"

func LoadConfigForEnv(config Config) error {
	return ReadConfiguration(getEnvPropertyFileName(defaultConfigBaseName), config)
}

// LoadConfigFromPathForEnv - search the property-<ENV> properties in the given search path (for ex. "./config" )
func LoadConfigFromPathForEnv(searchPath string, config Config) error {
	if searchPath == "" {
		return LoadConfigForEnv(config)
	}

	searchPath = strings.TrimSuffix(searchPath, "/")
	return ReadConfiguration(getEnvPropertyFileName(fmt.Sprintf("%s/%s", searchPath, defaultConfigBaseName)), config)
}

// ReadConfiguration reads the configuration from the file and environment variables.
// Every duckdb key has a default so that DUCKDB_* variables are honoured even without a file.
func ReadConfiguration(configFilePath string, config Config) error {
	log.Println("config filepath: ", configFilePath)

	v := viper.New()
	v.SetConfigFile(configFilePath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	// Replace dots in keys with underscores in environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDuckDbDefaults(v)

	if err := v.ReadInConfig(); err == nil {
		log.Printf("Reading configuration from config file: %s\nSet environment variables will OVERRIDE these values, as the environment takes precedent.", configFilePath)
	} else {
		log.Println("No configuration file found, reading configuration from environment variables.")
	}

	if err := v.Unmarshal(config); err != nil {
		return errors.Wrap(err, "unable to decode into config struct")
	}

	return nil
}

func setDuckDbDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("duckdb.target", dbx.InMemoryTarget)
	v.SetDefault("duckdb.threads", dbx.DefaultThreads)
	v.SetDefault("duckdb.maxAttempts", dbx.DefaultMaxAttempts)
	v.SetDefault("duckdb.backoffUnit", dbx.DefaultBackoffUnit.String())
	v.SetDefault("duckdb.cacheSelect", false)
}

func getEnvPropertyFileName(baseFileName string) string {
	env := os.Getenv("ENVIRONMENT")
	if !checkIfLocalEnv(env) {
		return fmt.Sprintf("%s-%s.yaml", baseFileName, strings.ToLower(env))
	}

	return fmt.Sprintf("%s.yaml", baseFileName)
}

func checkIfLocalEnv(env string) bool {
	switch strings.ToUpper(env) {
	case "DEV", "STAGE", "PROD":
		return false
	}

	return true
}

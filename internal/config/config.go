package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config contient toute la configuration du serveur
type Config struct {
	Port string `yaml:"port"`
	URL  string `yaml:"url"`

	DBHost     string `yaml:"dbHost"`
	DBPort     string `yaml:"dbPort"`
	DBUser     string `yaml:"dbUser"`
	DBPassword string `yaml:"dbPassword"`
	DBName     string `yaml:"dbName"`

	// Cache Redis optionnel (désactivé si vide)
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	CloudinaryCloudName string `yaml:"cloudinaryCloudName"`
	CloudinaryAPIKey    string `yaml:"cloudinaryApiKey"`
	CloudinaryAPISecret string `yaml:"cloudinaryApiSecret"`

	// Intervalle de rafraîchissement du snapshot en secondes
	SnapshotRefreshSeconds int `yaml:"snapshotRefreshSeconds"`
}

// LoadConfig charge la configuration depuis les variables d'environnement,
// avec un overlay YAML optionnel via CONFIG_FILE
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                   getEnv("PORT", "5000"),
		URL:                    getEnv("APP_URL", "http://localhost:5000"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "5432"),
		DBUser:                 getEnv("DB_USER", "postgres"),
		DBPassword:             getEnv("DB_PASSWORD", "postgres"),
		DBName:                 getEnv("DB_NAME", "ambassador_dashboard"),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		CloudinaryCloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:       getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
		SnapshotRefreshSeconds: 180,
	}

	// Overlay YAML optionnel (utilisé en développement local)
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse config file %s: %w", path, err)
		}
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("missing database name")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

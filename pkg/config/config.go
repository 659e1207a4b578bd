package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Hema-02/intent-cloud-project/pkg/logger"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Logger    logger.Config   `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	JWTExpiry   int    `mapstructure:"jwt_expiry"` // seconds
	Issuer      string `mapstructure:"issuer"`
	LoginWindow int    `mapstructure:"login_window"` // seconds, login rate limit window
	LoginLimit  int    `mapstructure:"login_limit"`
}

func (c AuthConfig) Expiry() time.Duration {
	return time.Duration(c.JWTExpiry) * time.Second
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// Configured reports whether a backing database was supplied. Without one the
// server keeps users and command history in memory (demo mode).
func (c DatabaseConfig) Configured() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Configured() bool { return c.Host != "" }

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type ProvidersConfig struct {
	AWS   AWSConfig   `mapstructure:"aws"`
	GCP   GCPConfig   `mapstructure:"gcp"`
	Azure AzureConfig `mapstructure:"azure"`
	IBM   IBMConfig   `mapstructure:"ibm"`
}

type AWSConfig struct {
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

func (c AWSConfig) Configured() bool { return c.AccessKeyID != "" && c.SecretAccessKey != "" }

type GCPConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	Region          string `mapstructure:"region"`
	Zone            string `mapstructure:"zone"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

func (c GCPConfig) Configured() bool { return c.ProjectID != "" }

type AzureConfig struct {
	SubscriptionID string `mapstructure:"subscription_id"`
	TenantID       string `mapstructure:"tenant_id"`
	ClientID       string `mapstructure:"client_id"`
	ClientSecret   string `mapstructure:"client_secret"`
	ResourceGroup  string `mapstructure:"resource_group"`
	Location       string `mapstructure:"location"`
}

func (c AzureConfig) Configured() bool {
	return c.SubscriptionID != "" && c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

type IBMConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Region          string `mapstructure:"region"`
	ResourceGroupID string `mapstructure:"resource_group_id"`
	VPCID           string `mapstructure:"vpc_id"`
}

func (c IBMConfig) Configured() bool { return c.APIKey != "" }

func Load() (*Config, error) {
	viper.SetConfigName("server")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/intentcloud")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("INTENTCLOUD")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults and env vars carry a demo setup.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.shutdown_timeout", 30)

	viper.SetDefault("auth.jwt_secret", "development-secret-key-change-in-production")
	viper.SetDefault("auth.jwt_expiry", 86400)
	viper.SetDefault("auth.issuer", "intentcloud")
	viper.SetDefault("auth.login_window", 60)
	viper.SetDefault("auth.login_limit", 5)

	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 25)

	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("providers.aws.region", "us-east-1")
	viper.SetDefault("providers.gcp.region", "us-central1")
	viper.SetDefault("providers.gcp.zone", "us-central1-a")
	viper.SetDefault("providers.azure.location", "eastus")
	viper.SetDefault("providers.ibm.region", "us-south")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "json")
	viper.SetDefault("logger.output", "stdout")
	viper.SetDefault("logger.add_caller", true)
}

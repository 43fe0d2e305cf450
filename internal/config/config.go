package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Directories DirectoriesConfig
	SMTP        SMTPConfig
	Appointment AppointmentConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type JWTConfig struct {
	Secret             string `mapstructure:"secret"`
	RefreshSecret      string `mapstructure:"refresh_secret"`
	ExpiryHours        int    `mapstructure:"expiry_hours"`
	RefreshExpiryHours int    `mapstructure:"refresh_expiry_hours"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// DirectoriesConfig points the orchestrator at the sibling directory
// services. In a single-binary deployment they all point at this server.
type DirectoriesConfig struct {
	ClientsURL     string `mapstructure:"clients_url"`
	PetsURL        string `mapstructure:"pets_url"`
	StaffURL       string `mapstructure:"staff_url"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds"`
}

func (d DirectoriesConfig) Timeout() time.Duration {
	if d.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	From string `mapstructure:"from"`
}

// Enabled reports whether SMTP delivery is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

type AppointmentConfig struct {
	// TransitionPolicy selects how status changes are checked:
	// "allow_all" (default) or "strict".
	TransitionPolicy string `mapstructure:"transition_policy"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "SHOP_CONFIG_FILE"
	envPrefix         = "SHOP"
)

type topics struct {
	Orders       string `mapstructure:"orders"`
	ClientEvents string `mapstructure:"client_events"`
}

type brokerTLS struct {
	CAFile   string `mapstructure:"ca_file"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	TLS                brokerTLS `mapstructure:"tls"`
}

// Enabled reports whether notifications should be published.
func (b broker) Enabled() bool {
	return len(b.SeedBrokers) != 0
}

type admin struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type advisory struct {
	APIKey      string `mapstructure:"api_key"`
	TextModel   string `mapstructure:"text_model"`
	ImageModel  string `mapstructure:"image_model"`
	MaxAttempts int    `mapstructure:"max_attempts"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	Admin          admin      `mapstructure:"admin"`
	Advisory       advisory   `mapstructure:"advisory"`
	Broker         broker     `mapstructure:"broker"`
}

func Load() Config {
	cfg, err := LoadFile(getConfigFilepath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFile reads the config file at path. An empty path loads defaults
// only. Environment variables prefixed with SHOP_ override file values.
func LoadFile(path string) (Config, error) {
	const op = "config.LoadFile"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", int(slog.LevelInfo))
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("admin.email", "admin@lumiere.com")
	v.SetDefault("admin.password", "admin")
	v.SetDefault("advisory.api_key", "")
	v.SetDefault("advisory.text_model", "gemini-2.5-flash")
	v.SetDefault("advisory.image_model", "imagen-3.0-generate-001")
	v.SetDefault("advisory.max_attempts", 3)
	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.topics.orders", "orders")
	v.SetDefault("broker.topics.client_events", "client-events")
	v.SetDefault("broker.tls.ca_file", "")
	v.SetDefault("broker.tls.cert_file", "")
	v.SetDefault("broker.tls.key_file", "")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	c.Fprint(os.Stdout)
}

func (c Config) Fprint(w io.Writer) {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	AdminEmail=%q

	Advisory:
	APIKey=%q
	TextModel=%q
	ImageModel=%q
	MaxAttempts=%d

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		Orders=%q
		ClientEvents=%q
	TLS:
		CAFile=%q
		CertFile=%q
		KeyFile=%q

`
	fmt.Fprintln(w, "Loaded config:")
	fmt.Fprintf(
		w,
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.Admin.Email,
		maskSecret(c.Advisory.APIKey),
		c.Advisory.TextModel,
		c.Advisory.ImageModel,
		c.Advisory.MaxAttempts,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.Orders,
		c.Broker.Topics.ClientEvents,
		c.Broker.TLS.CAFile,
		c.Broker.TLS.CertFile,
		c.Broker.TLS.KeyFile,
	)
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return "******"
}

package config

import (
	"bytes"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	DSN         string
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type MQQueueName struct {
	Notification string
	Reminder     string
}

type MQCfg struct {
	URL       string
	QueueName MQQueueName
	Prefetch  int
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
}

type AuthCfg struct {
	JWTSecret         string
	TokenTTL          time.Duration
	PrincipalCacheTTL time.Duration
}

type DispatcherCfg struct {
	Workers          int
	ReminderInterval time.Duration
	ReminderLead     time.Duration
}

type MailCfg struct {
	Endpoint  string
	APIKey    string
	FromEmail string
	Timeout   time.Duration
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type Config struct {
	App        AppCfg
	Log        LogCfg
	Database   DBCfg
	Redis      RedisCfg
	RabbitMQ   MQCfg
	S3         S3Cfg
	Auth       AuthCfg
	Dispatcher DispatcherCfg
	Mail       MailCfg
	Telemetry  TelemetryCfg
}

func Load() (*Config, error) {
	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("APP") // e.g. APP_APP_PORT -> app.port

	// defaults apply with or without a config file
	setDefaults(base)

	if err := base.ReadInConfig(); err == nil {
		// expand ${ENV} references once before parsing
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parse(os.ExpandEnv(string(raw)))
	}

	// env + defaults only
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(expanded string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, err
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	setDefaults(v)

	cfg := new(Config)
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "company-sys")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("rabbitmq.queueName.notification", "notifications.send")
	v.SetDefault("rabbitmq.queueName.reminder", "notifications.reminder")
	v.SetDefault("rabbitmq.prefetch", 10)
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("auth.tokenTTL", "168h")
	v.SetDefault("auth.principalCacheTTL", "5m")
	v.SetDefault("dispatcher.workers", 4)
	v.SetDefault("dispatcher.reminderInterval", "24h")
	v.SetDefault("dispatcher.reminderLead", "24h")
	v.SetDefault("mail.fromEmail", "no-reply@company-sys.local")
	v.SetDefault("mail.timeout", "10s")
	v.SetDefault("telemetry.sampleRatio", 1.0)
}

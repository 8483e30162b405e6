package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Postgres struct {
		DSN        string
		Migrations string
	} `mapstructure:"postgres"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	// Контакты бизнеса: номер WhatsApp для ссылок wa.me и то, что показываем клиенту.
	Business struct {
		Name          string
		Phone         string
		WhatsAppPhone string `mapstructure:"whatsapp_phone"`
		Email         string
	} `mapstructure:"business"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Asia/Kolkata")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("postgres.migrations", "migrations")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("business.name", "Elegance Events")
	v.SetDefault("business.phone", "+91 7016686728")
	v.SetDefault("business.whatsapp_phone", "917016686728")
	v.SetDefault("business.email", "hello@eleganceevents.com")
}

// Load читает .env (если есть), затем yaml; APP_* из окружения перекрывают файл
// (APP_TELEGRAM_TOKEN → telegram.token).
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	return c, nil
}

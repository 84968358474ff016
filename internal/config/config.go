package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env  string `yaml:"env" env:"ENV" env-default:"local"`
	Site struct {
		Name   string `yaml:"name" env-default:"Heleno Alves"`
		WebURL string `yaml:"web_url" env-default:"https://helenoalves.com.br"`
	} `yaml:"site"`
	Telegram struct {
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AdminId int64  `yaml:"admin_id" env-default:"0"`
		BotName string `yaml:"bot_name" env-default:"LeadDeskBot"`
		Enabled bool   `yaml:"enabled" env-default:"false"`
	} `yaml:"telegram"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env-default:"false"`
		Host     string `yaml:"host" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env-default:"27017"`
		User     string `yaml:"user" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env-default:""`
	} `yaml:"mongo"`
	LeadWebhook struct {
		URL      string `yaml:"url" env:"LEAD_WEBHOOK_URL" env-default:""`
		TenantId string `yaml:"tenant_id" env-default:""`
		Source   string `yaml:"source" env-default:"contact_page"`
	} `yaml:"lead-webhook"`
	Automation struct {
		BaseURL  string `yaml:"base_url" env:"AUTOMATION_BASE_URL" env-default:""`
		TenantId string `yaml:"tenant_id" env-default:""`
	} `yaml:"automation"`
	WhatsApp struct {
		Recipient string `yaml:"recipient" env-default:""`
	} `yaml:"whatsapp"`
	CRM struct {
		Enabled      bool   `yaml:"enabled" env-default:"false"`
		BaseURL      string `yaml:"base_url" env-default:""`
		TokenURL     string `yaml:"token_url" env-default:""`
		ClientId     string `yaml:"client_id" env:"CRM_CLIENT_ID" env-default:""`
		ClientSecret string `yaml:"client_secret" env:"CRM_CLIENT_SECRET" env-default:""`
	} `yaml:"crm"`
	Sheets struct {
		Enabled         bool   `yaml:"enabled" env-default:"false"`
		CredentialsFile string `yaml:"credentials_file" env-default:""`
		SpreadsheetId   string `yaml:"spreadsheet_id" env-default:""`
		Range           string `yaml:"range" env-default:"Leads!A:F"`
	} `yaml:"sheets"`
	Chat struct {
		TypingDelay    time.Duration `yaml:"typing_delay" env-default:"2s"`
		DeliveredDelay time.Duration `yaml:"delivered_delay" env-default:"300ms"`
		ReadDelay      time.Duration `yaml:"read_delay" env-default:"600ms"`
		RedirectDelay  time.Duration `yaml:"redirect_delay" env-default:"2500ms"`
		SessionTTL     time.Duration `yaml:"session_ttl" env-default:"24h"`
	} `yaml:"chat"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env-default:"127.0.0.1"`
		Port   string `yaml:"port" env-default:"9100"`
		ApiKey string `yaml:"key" env:"API_KEY" env-default:""`
	} `yaml:"listen"`
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("%s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}

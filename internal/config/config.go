package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"./storage/attendance.db"`
	HTTPServer  `yaml:"http_server"`
	Auth        `yaml:"auth"`
	Portal      `yaml:"portal"`
	Browser     `yaml:"browser"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

// Auth is optional. An empty secret leaves the routes public.
type Auth struct {
	Secret   string        `yaml:"secret" env:"AUTH_SECRET"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"720h"`
}

type Portal struct {
	URL            string        `yaml:"url" env:"PORTAL_URL" env-default:"https://invigo-software.greythr.com"`
	Selectors      Selectors     `yaml:"selectors"`
	PageLoadDelay  time.Duration `yaml:"page_load_delay" env-default:"2s"`
	LoginDelay     time.Duration `yaml:"login_delay" env-default:"5s"`
	ActionDelay    time.Duration `yaml:"action_delay" env-default:"5s"`
	ElementTimeout time.Duration `yaml:"element_timeout" env-default:"10s"`
}

// Selectors starting with "/" or "(" are XPath, the rest are CSS.
type Selectors struct {
	Username string `yaml:"username" env-default:"[name=\"username\"]"`
	Password string `yaml:"password" env-default:"[name=\"password\"]"`
	Submit   string `yaml:"submit" env-default:"//button[@type='submit' and contains(@class, 'bg-primary')]"`
	SignIn   string `yaml:"sign_in" env-default:"//div[contains(@class, 'p-1.5x h-18x widget-border bg-white')]//div[contains(@class, 'btn-container')]/gt-button[contains(@shade, 'primary')]"`
	SignOut  string `yaml:"sign_out" env-default:"//div[contains(@class, 'btn-container mt-3x flex flex-row-reverse justify-between ng-star-inserted')]/gt-button[contains(@shade, 'primary')]"`
}

// Browser flags default to false: a headless, unsandboxed, stealth page.
type Browser struct {
	Bin           string `yaml:"bin" env:"BROWSER_BIN"`
	Headful       bool   `yaml:"headful" env:"BROWSER_HEADFUL"`
	Sandbox       bool   `yaml:"sandbox"`
	NoStealth     bool   `yaml:"no_stealth"`
	WindowSize    string `yaml:"window_size" env-default:"1920,1080"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

func MustLoad() *Config {
	cfg, err := Load(fetchConfigPath())
	if err != nil {
		log.Panicf("error loading config: %v", err)
	}

	return cfg
}

// Load reads the config file at path. An empty path reads the
// environment and defaults only.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: error opening config file: %w", op, err)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: error reading config file: %w", op, err)
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "sets path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}

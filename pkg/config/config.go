package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Reqs struct {
		CreateModuleRequestType   string `yaml:"create_module_req_type"`
		UpdateModuleRequestType   string `yaml:"update_module_req_type"`
		DeleteModuleRequestType   string `yaml:"delete_module_req_type"`
		CreateContentRequestType  string `yaml:"create_content_req_type"`
		UpdateContentRequestType  string `yaml:"update_content_req_type"`
		DeleteContentRequestType  string `yaml:"delete_content_req_type"`
		SaveQuestionsRequestType  string `yaml:"save_questions_req_type"`
		CreatePlaylistRequestType string `yaml:"create_playlist_req_type"`
		UpdatePlaylistRequestType string `yaml:"update_playlist_req_type"`
		InviteUserRequestType     string `yaml:"invite_user_req_type"`
		UpdateUserRequestType     string `yaml:"update_user_req_type"`
	} `yaml:"reqs"`
	Urls struct {
		Redis    string `yaml:"redis"    env:"REDIS_URL"`
		Rabbitmq string `yaml:"rabbitmq" env:"RABBITMQ_URL"`
		Database string `yaml:"database" env:"DATABASE_DSN"`
	} `yaml:"urls"`
	Database struct {
		Driver string `yaml:"driver" env:"DATABASE_DRIVER"` // sqlite or mysql
	} `yaml:"database"`
	Exchange struct {
		Request string `yaml:"request"`
		Output  string `yaml:"output"`
	} `yaml:"exchange"`
	Queue struct {
		Request string `yaml:"request"`
		Output  string `yaml:"output"`
	} `yaml:"queue"`
	Pagination struct {
		ListPageSize   int    `yaml:"list_page_size"   env:"LIST_PAGE_SIZE"`
		PickerPageSize int    `yaml:"picker_page_size" env:"PICKER_PAGE_SIZE"`
		Order          string `yaml:"order"            env:"LIST_ORDER"`
	} `yaml:"pagination"`
	HealthPort string `yaml:"health_port" env:"HEALTH_PORT"`
}

// Init loads the yaml config at path, then applies overrides from the
// environment (an optional .env file is read first).
func Init(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error open file: %v", err)
	}

	defer file.Close()

	if err = yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode error: %v", err)
	}

	// missing .env is fine, the environment itself still applies
	_ = godotenv.Load()

	if err = env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env override error: %v", err)
	}

	if cfg.Pagination.ListPageSize == 0 {
		cfg.Pagination.ListPageSize = 10
	}
	if cfg.Pagination.PickerPageSize == 0 {
		cfg.Pagination.PickerPageSize = 20
	}
	if cfg.Pagination.Order == "" {
		cfg.Pagination.Order = "DESC"
	}

	return &cfg, nil
}

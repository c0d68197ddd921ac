package config

import (
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      App
	Server   Server
	Store    Store
	Pipeline Pipeline
	Trends   Trends
	Video    Video
	Narrator Narrator
	TikTok   TikTok
}

type App struct {
	Environment string
}

type Server struct {
	HttpPort string
}

type Store struct {
	Path string
}

type Pipeline struct {
	StageTimeout time.Duration
}

type Trends struct {
	URL    string
	APIKey string
}

type VideoModel struct {
	APIKey string
}

// A video model is enabled by the presence of its key; mock needs none.
func (m VideoModel) Enabled() bool {
	return m.APIKey != ""
}

type Video struct {
	Sora   VideoModel
	Runway VideoModel
}

type Narrator struct {
	APIKey string
}

type TikTok struct {
	AccessToken  string
	ClientKey    string
	ClientSecret string
	RedirectURI  string
}

func Load(path string) (*Config, error) {
	// A missing .env is fine, the environment itself may carry the values.
	_ = godotenv.Load(filepath.Join(path, ".env"))

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "develop")
	viper.SetDefault("HTTP_PORT", "3001")
	viper.SetDefault("DATA_PATH", filepath.Join(path, "data.json"))
	viper.SetDefault("STAGE_TIMEOUT", "30s")

	return &Config{
		App: App{
			Environment: viper.GetString("APP_ENV"),
		},
		Server: Server{
			HttpPort: viper.GetString("HTTP_PORT"),
		},
		Store: Store{
			Path: viper.GetString("DATA_PATH"),
		},
		Pipeline: Pipeline{
			StageTimeout: viper.GetDuration("STAGE_TIMEOUT"),
		},
		Trends: Trends{
			URL:    viper.GetString("TRENDS_PROVIDER_URL"),
			APIKey: viper.GetString("TRENDS_PROVIDER_API_KEY"),
		},
		Video: Video{
			Sora:   VideoModel{APIKey: viper.GetString("SORA_API_KEY")},
			Runway: VideoModel{APIKey: viper.GetString("RUNWAY_API_KEY")},
		},
		Narrator: Narrator{
			APIKey: viper.GetString("NARRATOR_API_KEY"),
		},
		TikTok: TikTok{
			AccessToken:  viper.GetString("TIKTOK_ACCESS_TOKEN"),
			ClientKey:    viper.GetString("TIKTOK_CLIENT_KEY"),
			ClientSecret: viper.GetString("TIKTOK_CLIENT_SECRET"),
			RedirectURI:  viper.GetString("TIKTOK_REDIRECT_URI"),
		},
	}, nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvInfo service names, ports and paths from .env
type EnvInfo struct {
	// image name
	MemberService    string
	RecommendService string
	ChannelService   string

	// service ports
	MemberServicePort    string
	RecommendServicePort string
	ChannelServicePort   string

	// service yaml path
	MemberServiceYAMLPath    string
	RecommendServiceYAMLPath string
	ChannelServiceYAMLPath   string

	// service log path
	MemberServiceLogPath    string
	RecommendServiceLogPath string
	ChannelServiceLogPath   string
}

// EnvConfig shared env settings, loaded once
var (
	EnvConfig = initEnv()
	envConfig EnvInfo
	once      sync.Once
	env       string
)

func initEnv() EnvInfo {
	once.Do(func() {

		path, err := GetPath(".env", 5)
		if err != nil {
			log.Printf("Warning: Could not get .env path: %v", err)
		}

		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: Could not load .env file: %v", err)
		}

		env = os.Getenv("ENV")

		envConfig = EnvInfo{
			MemberService:    os.Getenv("MEMBER_SERVICE"),
			RecommendService: os.Getenv("RECOMMEND_SERVICE"),
			ChannelService:   os.Getenv("CHANNEL_SERVICE"),

			MemberServicePort:    os.Getenv("MEMBER_SERVICE_PORT"),
			RecommendServicePort: os.Getenv("RECOMMEND_SERVICE_PORT"),
			ChannelServicePort:   os.Getenv("CHANNEL_SERVICE_PORT"),

			MemberServiceYAMLPath:    os.Getenv("MEMBER_SERVICE_YAML"),
			RecommendServiceYAMLPath: os.Getenv("RECOMMEND_SERVICE_YAML"),
			ChannelServiceYAMLPath:   os.Getenv("CHANNEL_SERVICE_YAML"),

			MemberServiceLogPath:    os.Getenv("MEMBER_SERVICE_LOG"),
			RecommendServiceLogPath: os.Getenv("RECOMMEND_SERVICE_LOG"),
			ChannelServiceLogPath:   os.Getenv("CHANNEL_SERVICE_LOG"),
		}
	})

	return envConfig
}

// IsProduction check run env
func IsProduction() bool {
	return env == "production"
}

// IsLocal check run env
func IsLocal() bool {
	return env == "local"
}

// LoadConfig read the service YAML, expand ${} placeholders from env, unmarshal into T
func LoadConfig[T any](serviceName string, configPath string) T {
	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error loading config file: %v", err)
	}

	rawConfig, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		log.Fatalf("Error reading raw config file: %v", err)
	}

	expandedConfig := os.ExpandEnv(string(rawConfig))

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expandedConfig))); err != nil {
		log.Fatalf("Error reading expanded config: %v", err)
	}

	var cfg T
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("Error unmarshaling config: %v", err)
	}
	return cfg
}

// GetRedisSetting get redis sentinel setting from .env
func GetRedisSetting() (string, []string) {
	path, err := GetPath(".env", 5)
	if err != nil {
		log.Printf("Warning: Could not get .env path: %v", err)
	}

	if err := godotenv.Load(path); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	envs := os.Environ()

	var (
		masterName    string
		sentinelAddrs []string
	)

	// collect REDIS_SENTINEL*_IP / _PORT pairs
	for _, env := range envs {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]

		if strings.HasPrefix(key, "REDIS_SENTINEL") && strings.HasSuffix(key, "_IP") {
			portKey := strings.Replace(key, "_IP", "_PORT", 1)
			port := os.Getenv(portKey)
			if port != "" {
				sentinelAddrs = append(sentinelAddrs, fmt.Sprintf("%s:%s", value, port))
			}
		}
	}

	masterName = os.Getenv("REDIS_MASTER_NAME")
	if masterName == "" {
		masterName = "mymaster"
	}

	return masterName, sentinelAddrs
}

// GetPath use fileName loop maxCount find file path
func GetPath(fileName string, maxCount int) (string, error) {
	path := "./" + fileName

	for i := 0; i < maxCount; i++ {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		path = "../" + path
	}
	return "", errors.New(fileName + "can't find path ")
}

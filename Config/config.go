package Config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	SecretKey    string `mapstructure:"SECRET_KEY"`
	TokenExpiry  int    `mapstructure:"TOKEN_EXPIRY_MINUTES"`
	UploadDir    string `mapstructure:"UPLOAD_DIR"`
	RedisAddr    string `mapstructure:"REDIS_ADDR"`
	RedisPass    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB      int    `mapstructure:"REDIS_DB"`
}

var Cfg Config

func InitConfig() error {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// 没有默认值的键要显式绑定，否则 Unmarshal 取不到纯环境变量
	if err := viper.BindEnv("SECRET_KEY"); err != nil {
		return fmt.Errorf("绑定环境变量失败: %w", err)
	}

	// 设置默认值
	viper.SetDefault("SERVER_PORT", "3001")
	viper.SetDefault("DATABASE_PATH", "notas.db")
	viper.SetDefault("TOKEN_EXPIRY_MINUTES", 1440) // 24小时
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件未找到，使用环境变量
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		return fmt.Errorf("解析配置失败: %w", err)
	}

	// 必须配置项验证
	if Cfg.SecretKey == "" {
		return errors.New("SECRET_KEY 必须配置")
	}
	return nil
}

package Config

import (
	"testing"

	"github.com/LJCaballero/Diario/Config"
)

// TestInitConfigSecretKeyFromEnv 测试仅通过环境变量提供密钥
func TestInitConfigSecretKeyFromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "env-secret")

	if err := Config.InitConfig(); err != nil {
		t.Fatalf("InitConfig() 意外返回错误: %v", err)
	}
	if Config.Cfg.SecretKey != "env-secret" {
		t.Errorf("SECRET_KEY 不匹配: 得到 %v, 期望 env-secret", Config.Cfg.SecretKey)
	}

	// 未显式配置的键取默认值
	if Config.Cfg.ServerPort != "3001" {
		t.Errorf("SERVER_PORT 默认值不匹配: 得到 %v, 期望 3001", Config.Cfg.ServerPort)
	}
}

// TestInitConfigMissingSecretKey 测试缺少密钥时拒绝启动
func TestInitConfigMissingSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	// 清掉上一次 InitConfig 留在全局配置里的值
	Config.Cfg = Config.Config{}

	if err := Config.InitConfig(); err == nil {
		t.Error("缺少 SECRET_KEY 时应返回错误")
	}
}

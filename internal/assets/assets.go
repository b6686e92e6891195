package assets

import (
	"embed"
	"fmt"
)

//go:embed config/*.toml
var configFS embed.FS

// DefaultConfigName 内置配置文件名（不含扩展名）
const DefaultConfigName = "default"

// LoadConfig 读取嵌入的 TOML 配置
func LoadConfig(name string) ([]byte, error) {
	data, err := configFS.ReadFile("config/" + name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("读取嵌入配置 %s 失败: %w", name, err)
	}
	return data, nil
}

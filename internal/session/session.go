package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 登录令牌的本地保存。
// 令牌由外部会话机制签发，这里只负责落盘与读取，不做解析、校验或续期。

const tokenFile = "token"

func dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("定位用户配置目录失败: %w", err)
	}
	return filepath.Join(base, "repoprovas"), nil
}

// Save 保存令牌
func Save(token string) error {
	d, err := dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0o700); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("保存令牌失败: %w", err)
	}
	return nil
}

// Load 读取令牌；尚未登录时返回空串而非错误
func Load() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	raw, err := os.ReadFile(filepath.Join(d, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("读取令牌失败: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Clear 删除令牌（退出登录）
func Clear() error {
	d, err := dir()
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(d, tokenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除令牌失败: %w", err)
	}
	return nil
}

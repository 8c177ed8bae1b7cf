package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewObjectID 生成 24 字符的十六进制文档 id（12 个随机字节）
func NewObjectID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand 失败说明运行环境已不可用
		panic("utils: failed to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

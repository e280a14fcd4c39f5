// 包 netinfo：本机网络环境识别（企业网络判定、VPN 隧道检测、连接签名）
package netinfo

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"netstatus-bar/internal/logger"
)

// Network 为三态：配置文件缺失（Unknown）与存在但不含企业域（Other）必须区分
type Network int

const (
	Other Network = iota
	Corporate
	Unknown
)

func (n Network) String() string {
	switch n {
	case Corporate:
		return "corporate"
	case Unknown:
		return "unknown"
	default:
		return "other"
	}
}

// Classifier 依据解析器配置中的搜索域判定是否处于企业网络
type Classifier struct {
	Path  string
	Token string
}

func NewClassifier(path, token string) *Classifier {
	return &Classifier{Path: path, Token: token}
}

// Classify：文件不存在 → Unknown；包含 Token → Corporate；其余 → Other
// 约束：除“不存在”外的读取错误按 Other 处理，不视为失败。
func (c *Classifier) Classify() Network {
	data, err := os.ReadFile(c.Path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.L().Debug("resolv_conf_missing", "path", c.Path)
		return Unknown
	}
	if err != nil {
		logger.L().Debug("resolv_conf_read_error", "path", c.Path, "err", err)
		return Other
	}
	if c.Token != "" && bytes.Contains(data, []byte(c.Token)) {
		return Corporate
	}
	return Other
}

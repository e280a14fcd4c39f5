package netinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/shell"
)

// Signer 将若干接口的 ifconfig 输出拼接后哈希，作为网络变化检测令牌
// 约束：输出只参与哈希，不做结构化解析；接口不存在时的报错文本同样计入。
type Signer struct {
	Ifaces   []string
	executor shell.Executor
}

func NewSigner(ifaces []string, executor shell.Executor) *Signer {
	if executor == nil {
		executor = shell.Default()
	}
	return &Signer{Ifaces: ifaces, executor: executor}
}

func (s *Signer) Signature(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, ifaceTimeout)
	defer cancel()
	var b strings.Builder
	for _, iface := range s.Ifaces {
		res, err := s.executor.Exec(ctx, "ifconfig", iface)
		if err != nil {
			logger.L().Debug("signature_exec_error", "iface", iface, "err", err)
			b.WriteString("error:" + iface + "\n")
			continue
		}
		b.WriteString(res.Output)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

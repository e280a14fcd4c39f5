package netinfo

import (
	"context"
	"time"

	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/shell"
)

const ifaceTimeout = 4 * time.Second

// VPNDetector 通过能否查询到隧道接口判断 VPN 是否在线
// 约束：睡眠唤醒后接口可能残留而隧道已断开，此时仍报告在线；不做额外校正。
type VPNDetector struct {
	Iface    string
	executor shell.Executor
}

func NewVPNDetector(iface string, executor shell.Executor) *VPNDetector {
	if executor == nil {
		executor = shell.Default()
	}
	return &VPNDetector{Iface: iface, executor: executor}
}

func (d *VPNDetector) Active(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ifaceTimeout)
	defer cancel()
	res, err := d.executor.Exec(ctx, "ifconfig", d.Iface)
	if err != nil {
		logger.L().Debug("vpn_iface_exec_error", "iface", d.Iface, "err", err)
		return false
	}
	return res.ExitCode == 0
}

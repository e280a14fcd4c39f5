// 包 probe：互联网连通性探测，结果为三态标签
package probe

// Result 由外部辅助程序的退出码或 HTTP+DNS 兜底探测得出
type Result int

const (
	Reachable Result = iota
	WebBlocked
	Unreachable
)

// String 为状态行使用的文本
func (r Result) String() string {
	switch r {
	case Reachable:
		return "OK"
	case WebBlocked:
		return "www:xx dns:ok"
	default:
		return "www:xx dns:xx"
	}
}

// FromExitCode：0 → Reachable，1 → WebBlocked，其余 → Unreachable
func FromExitCode(code int) Result {
	switch code {
	case 0:
		return Reachable
	case 1:
		return WebBlocked
	default:
		return Unreachable
	}
}

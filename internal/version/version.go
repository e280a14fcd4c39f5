// 包 version：构建元数据，发布时通过 -ldflags "-X netstatus-bar/internal/version.Version=..." 注入
package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, BuildDate)
}

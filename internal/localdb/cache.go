// 包 localdb：离线归属地库的统一抽象；供本地查询插件在在线服务全部失败后使用
package localdb

import "io"

type Location struct{ Country, Region, Province, City, ISP string }

// Lookuper 以文本 IP 查询归属地；解析失败或未命中返回 false
type Lookuper interface {
	Lookup(ip string) (Location, bool)
}

// Closer 为持有文件句柄的查询实现
type Closer interface {
	Lookuper
	io.Closer
}

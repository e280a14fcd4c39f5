package probe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"os"
	"strings"
	"time"

	"golang.org/x/net/dns/dnsmessage"
)

var (
	ErrNoAnswer = errors.New("dns: no answer")
	ErrBadReply = errors.New("dns: mismatched reply")
)

// 文档注释：单次 DNS 查询
// 约束：向一个名称服务器发送一次 A 查询，不重试、不轮换服务器；
// Server 为空时退回系统解析器（其自身可能重试）。
type Resolver struct {
	Server  string
	Timeout time.Duration
}

func NewResolver(server string, timeout time.Duration) *Resolver {
	return &Resolver{Server: server, Timeout: timeout}
}

func (r *Resolver) Check(ctx context.Context, host string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	if r.Server == "" {
		addrs, err := net.DefaultResolver.LookupHost(ctx, host)
		if err != nil {
			return err
		}
		if len(addrs) == 0 {
			return ErrNoAnswer
		}
		return nil
	}
	return r.query(ctx, host)
}

func (r *Resolver) query(ctx context.Context, host string) error {
	fqdn := host
	if !strings.HasSuffix(fqdn, ".") {
		fqdn += "."
	}
	name, err := dnsmessage.NewName(fqdn)
	if err != nil {
		return fmt.Errorf("dns name %q: %w", host, err)
	}
	id := uint16(rand.Intn(1 << 16))
	b := dnsmessage.NewBuilder(make([]byte, 0, 512), dnsmessage.Header{ID: id, RecursionDesired: true})
	b.EnableCompression()
	if err := b.StartQuestions(); err != nil {
		return err
	}
	if err := b.Question(dnsmessage.Question{Name: name, Type: dnsmessage.TypeA, Class: dnsmessage.ClassINET}); err != nil {
		return err
	}
	msg, err := b.Finish()
	if err != nil {
		return err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", serverAddr(r.Server))
	if err != nil {
		return fmt.Errorf("dns dial: %w", err)
	}
	defer conn.Close()
	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}
	if _, err := conn.Write(msg); err != nil {
		return fmt.Errorf("dns write: %w", err)
	}
	buf := make([]byte, 1232)
	n, err := conn.Read(buf)
	if err != nil {
		return fmt.Errorf("dns read: %w", err)
	}

	var p dnsmessage.Parser
	h, err := p.Start(buf[:n])
	if err != nil {
		return fmt.Errorf("dns parse: %w", err)
	}
	if h.ID != id || !h.Response {
		return ErrBadReply
	}
	if h.RCode != dnsmessage.RCodeSuccess {
		return fmt.Errorf("dns rcode %s", h.RCode)
	}
	if err := p.SkipAllQuestions(); err != nil {
		return fmt.Errorf("dns parse: %w", err)
	}
	answers, err := p.AllAnswers()
	if err != nil {
		return fmt.Errorf("dns parse: %w", err)
	}
	if len(answers) == 0 {
		return ErrNoAnswer
	}
	return nil
}

func serverAddr(s string) string {
	if _, _, err := net.SplitHostPort(s); err == nil {
		return s
	}
	return net.JoinHostPort(s, "53")
}

// SystemNameserver 返回解析器配置中的第一个 nameserver；找不到时返回空串
func SystemNameserver(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "nameserver" {
			return fields[1]
		}
	}
	return ""
}

// 缓存维护工具：查看、强制写入或清除当前后端中的连接签名与国家
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"netstatus-bar/internal/config"
	"netstatus-bar/internal/logger"
	"netstatus-bar/internal/netinfo"
	"netstatus-bar/internal/shell"
	"netstatus-bar/internal/store"
)

const opTimeout = 10 * time.Second

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  get                       show cached signature and country")
	fmt.Fprintln(w, "  set <signature> <country> overwrite cache ('-' as signature uses the current one)")
	fmt.Fprintln(w, "  del                       remove cached values")
	fmt.Fprintln(w, "  sig                       print the current connection signature")
	fmt.Fprintln(w, "  help")
	fmt.Fprintln(w, "  exit")
}

type cli struct {
	st     store.Store
	signer *netinfo.Signer
	out    io.Writer
}

// run 执行一条命令；返回 false 表示退出交互
func (c *cli) run(ctx context.Context, parts []string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	switch strings.ToLower(parts[0]) {
	case "exit", "quit":
		return false, nil
	case "help":
		printHelp(c.out)
	case "get":
		e, err := c.st.Get(ctx)
		if errors.Is(err, store.ErrMiss) {
			fmt.Fprintln(c.out, "none")
			return true, nil
		}
		if err != nil {
			return true, err
		}
		cur := c.signer.Signature(ctx)
		fmt.Fprintf(c.out, "signature: %s\ncountry:   %q\nmatches current: %v\n", e.Signature, e.Country, e.Signature == cur)
	case "set":
		if len(parts) < 3 {
			return true, errors.New("usage: set <signature> <country>")
		}
		sig := parts[1]
		if sig == "-" {
			sig = c.signer.Signature(ctx)
		}
		if err := c.st.Set(ctx, store.Entry{Signature: sig, Country: strings.Join(parts[2:], " ")}); err != nil {
			return true, err
		}
		fmt.Fprintln(c.out, "ok")
	case "del":
		cl, ok := c.st.(store.Clearer)
		if !ok {
			return true, errors.New("backend does not support del")
		}
		if err := cl.Clear(ctx); err != nil {
			return true, err
		}
		fmt.Fprintln(c.out, "ok")
	case "sig":
		fmt.Fprintln(c.out, c.signer.Signature(ctx))
	default:
		return true, fmt.Errorf("unknown command %q", parts[0])
	}
	return true, nil
}

func main() {
	var envFile string
	var args []string
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--env" && i+1 < len(os.Args) {
			envFile = os.Args[i+1]
			i++
		} else {
			args = append(args, os.Args[i])
		}
	}
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	config.LoadDotenv()
	logger.Setup()
	cfg := config.FromEnv()

	ctx := context.Background()
	st, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "store error:", err)
		os.Exit(1)
	}
	defer closeStore()
	c := &cli{st: st, signer: netinfo.NewSigner(cfg.SignatureIfaces, shell.Default()), out: os.Stdout}

	if len(args) > 0 {
		if _, err := c.run(ctx, args); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			closeStore()
			os.Exit(1)
		}
		return
	}

	fmt.Printf("cache kv cli ready (backend: %s)\n", cfg.CacheBackend)
	printHelp(os.Stdout)
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		parts := strings.Fields(in.Text())
		if len(parts) == 0 {
			continue
		}
		more, err := c.run(ctx, parts)
		if err != nil {
			fmt.Println("error:", err)
		}
		if !more {
			return
		}
	}
}

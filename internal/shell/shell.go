// 包 shell：外部命令执行；非零退出码作为结果返回而非错误
package shell

import (
	"context"
	"errors"
	"os/exec"
)

type Result struct {
	Output   string
	ExitCode int
}

// Executor 抽象命令执行，便于在测试中替换
type Executor interface {
	Exec(ctx context.Context, name string, args ...string) (*Result, error)
}

type defaultExecutor struct{}

func (defaultExecutor) Exec(ctx context.Context, name string, args ...string) (*Result, error) {
	return Exec(ctx, name, args...)
}

func Default() Executor { return defaultExecutor{} }

// Exec 运行命令并合并 stdout/stderr
// 约束：命令无法启动或被 ctx 终止时返回 error；正常退出（含非零）时 error 为 nil。
func Exec(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	exitCode := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctx.Err() != nil {
			return &Result{Output: string(output), ExitCode: -1}, ctx.Err()
		}
		exitCode = exitErr.ExitCode()
		err = nil
	}

	return &Result{
		Output:   string(output),
		ExitCode: exitCode,
	}, err
}

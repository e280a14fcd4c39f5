package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	SignatureFile = "bitbar.cisconetwork.connection_hash.txt"
	CountryFile   = "bitbar.cisconetwork.last_country.txt"
)

// 文档注释：临时目录下的双文件缓存
// 约束：不加锁；并发调用可能互相覆盖。每个文件整体替换（tmp + rename），读者不会看到半写内容。
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) SignaturePath() string { return filepath.Join(s.dir, SignatureFile) }
func (s *FileStore) CountryPath() string   { return filepath.Join(s.dir, CountryFile) }

// Get：国家文件不存在 → ErrMiss；签名文件缺失时签名为空串（必然不匹配）
func (s *FileStore) Get(ctx context.Context) (Entry, error) {
	country, err := readLine(s.CountryPath())
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, err
	}
	sig, err := readLine(s.SignaturePath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Entry{}, err
	}
	return Entry{Signature: strings.TrimSpace(sig), Country: country}, nil
}

func (s *FileStore) Set(ctx context.Context, e Entry) error {
	if err := writeLine(s.SignaturePath(), e.Signature); err != nil {
		return err
	}
	return writeLine(s.CountryPath(), e.Country)
}

func (s *FileStore) Clear(ctx context.Context) error {
	var errs []error
	for _, p := range []string{s.SignaturePath(), s.CountryPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readLine 只去掉行尾换行，保留其他空白
func readLine(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func writeLine(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value+"\n"), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

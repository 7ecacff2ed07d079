package memo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Storage 抽象语音备忘录的对象存储。
// 核心逻辑不依赖具体托管实现，本地磁盘实现见 DiskStorage。
type Storage interface {
	Upload(name string, r io.Reader) error
	List() ([]string, error)
	Delete(name string) error
	Open(name string) (io.ReadCloser, error)
	PublicURL(name string) string
}

// DiskStorage 把备忘录对象保存在本地目录，
// 并以静态路径映射提供下载地址。
type DiskStorage struct {
	dir     string
	urlPath string
}

// NewDiskStorage 构造 DiskStorage。
func NewDiskStorage(dir, urlPath string) *DiskStorage {
	return &DiskStorage{dir: dir, urlPath: strings.TrimRight(urlPath, "/")}
}

// Dir 返回对象目录路径。
func (s *DiskStorage) Dir() string {
	return s.dir
}

// Upload 写入一个对象。对象名必须是裸文件名。
func (s *DiskStorage) Upload(name string, r io.Reader) error {
	if !validObjectName(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create memo directory: %w", err)
	}

	target := filepath.Join(s.dir, name)
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create memo object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return fmt.Errorf("write memo object: %w", err)
	}
	return nil
}

// List 返回全部对象名，按名称排序。
func (s *DiskStorage) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read memo directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete 删除一个对象，对象不存在时静默成功。
func (s *DiskStorage) Delete(name string) error {
	if !validObjectName(name) {
		return fmt.Errorf("invalid object name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete memo object: %w", err)
	}
	return nil
}

// Open 打开一个对象供读取。
func (s *DiskStorage) Open(name string) (io.ReadCloser, error) {
	if !validObjectName(name) {
		return nil, fmt.Errorf("invalid object name %q", name)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open memo object: %w", err)
	}
	return f, nil
}

// PublicURL 返回对象的下载地址。
func (s *DiskStorage) PublicURL(name string) string {
	return s.urlPath + "/" + name
}

func validObjectName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.ContainsAny(name, `/\`)
}

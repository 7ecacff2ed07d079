package sound

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed assets/default.wav
var bundledAssets embed.FS

// 支持的铃声扩展名。m4a 无法在本地解码，入库时即拒绝。
var supportedExtensions = []string{".wav", ".mp3"}

// Library 管理本地铃声目录：列出可用铃声、把键解析为具体文件、
// 以及从外部导入音频文件。
type Library struct {
	dir    string
	logger *zap.Logger
}

// NewLibrary 构造 Library。
func NewLibrary(dir string, logger *zap.Logger) *Library {
	return &Library{dir: dir, logger: logger}
}

// Dir 返回铃声目录路径。
func (l *Library) Dir() string {
	return l.dir
}

// EnsureDir 创建铃声目录并在目录为空时安装打包的默认铃声。
func (l *Library) EnsureDir() error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create sound directory: %w", err)
	}

	names, err := l.List()
	if err != nil || len(names) > 0 {
		return err
	}

	data, err := bundledAssets.ReadFile("assets/default.wav")
	if err != nil {
		return fmt.Errorf("read bundled sound: %w", err)
	}
	target := filepath.Join(l.dir, "default.wav")
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("install bundled sound: %w", err)
	}

	l.logger.Info("bundled default sound installed", zap.String("path", target))
	return nil
}

// List 返回目录中全部可用铃声文件名，按名称排序。
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read sound directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSupported(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Resolve 把铃声键解析为带扩展名的实际文件名。
// 键已带受支持扩展名时校验文件存在；否则依次尝试各扩展名。
func (l *Library) Resolve(key string) (string, bool) {
	key = strings.TrimSpace(key)
	if key == "" || !bareName(key) {
		return "", false
	}

	if isSupported(key) {
		if l.exists(key) {
			return key, true
		}
		return "", false
	}

	for _, ext := range supportedExtensions {
		candidate := key + ext
		if l.exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Path 返回铃声文件的完整路径。文件名带路径分隔符时返回错误。
func (l *Library) Path(name string) (string, error) {
	if !bareName(name) {
		return "", fmt.Errorf("invalid sound name %q", name)
	}
	return filepath.Join(l.dir, name), nil
}

// Import 把一段音频写入铃声目录，使其可被选为闹钟铃声。
func (l *Library) Import(name string, r io.Reader) error {
	if !bareName(name) || !isSupported(name) {
		return fmt.Errorf("unsupported sound file %q", name)
	}
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create sound directory: %w", err)
	}

	target := filepath.Join(l.dir, name)
	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create sound file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(target)
		return fmt.Errorf("write sound file: %w", err)
	}

	l.logger.Info("sound imported", zap.String("name", name))
	return nil
}

func (l *Library) exists(name string) bool {
	info, err := os.Stat(filepath.Join(l.dir, name))
	return err == nil && !info.IsDir()
}

func isSupported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

// bareName 拒绝包含路径成分的文件名，铃声键永远是裸文件名。
func bareName(name string) bool {
	return name != "" && name == filepath.Base(name) && !strings.ContainsAny(name, `/\`)
}

package sound

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

// Global audio context singleton: oto only supports one context per process.
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	globalAudioCtxRate int
)

// PreviewDuration 是试听的播放时长。
const PreviewDuration = 3 * time.Second

// Manager 按需加载并播放铃声。实例由调用方持有，
// 任意时刻至多一个正在播放的句柄；手动停止必须先清掉
// 自动停止定时器，避免迟到的第二次停止调用。
type Manager struct {
	mu        sync.Mutex
	library   *Library
	logger    *zap.Logger
	cache     map[string][]byte
	current   *oto.Player
	stopTimer *time.Timer
}

// NewManager 构造 Manager。
func NewManager(library *Library, logger *zap.Logger) *Manager {
	return &Manager{
		library: library,
		logger:  logger,
		cache:   make(map[string][]byte),
	}
}

// PlayLooping 循环播放指定铃声，ringFor 非零时到时自动停止。
// 已有播放时先停止旧的再开始新的。
func (m *Manager) PlayLooping(key string, ringFor time.Duration) error {
	pcm, err := m.load(key)
	if err != nil {
		return err
	}

	if err := m.Stop(); err != nil {
		m.logger.Warn("stop previous playback failed", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if globalAudioCtx == nil {
		return fmt.Errorf("audio context not ready")
	}

	player := globalAudioCtx.NewPlayer(newLoopReader(pcm))
	player.Play()
	m.current = player

	if ringFor > 0 {
		m.stopTimer = time.AfterFunc(ringFor, func() {
			m.logger.Info("alarm sound auto-stop", zap.String("key", key))
			if err := m.Stop(); err != nil {
				m.logger.Warn("auto-stop failed", zap.Error(err))
			}
		})
	}

	m.logger.Info("alarm sound playing", zap.String("key", key))
	return nil
}

// Preview 短暂试听一段铃声，自动在 PreviewDuration 后停止。
func (m *Manager) Preview(key string) error {
	pcm, err := m.load(key)
	if err != nil {
		return err
	}

	if err := m.Stop(); err != nil {
		m.logger.Warn("stop previous playback failed", zap.Error(err))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if globalAudioCtx == nil {
		return fmt.Errorf("audio context not ready")
	}

	player := globalAudioCtx.NewPlayer(newLoopReader(pcm))
	player.SetVolume(0.7)
	player.Play()
	m.current = player
	m.stopTimer = time.AfterFunc(PreviewDuration, func() {
		if err := m.Stop(); err != nil {
			m.logger.Warn("preview stop failed", zap.Error(err))
		}
	})

	return nil
}

// Stop 停止当前播放。没有播放进行中时为空操作。
// 先清定时器再关播放器，保证用户手动停止总是赢过自动停止。
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopTimer != nil {
		m.stopTimer.Stop()
		m.stopTimer = nil
	}

	if m.current == nil {
		return nil
	}
	player := m.current
	m.current = nil

	if err := player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return nil
}

// load 解析铃声键、读文件并解码为 PCM，命中缓存时直接返回。
func (m *Manager) load(key string) ([]byte, error) {
	name, ok := m.library.Resolve(key)
	if !ok {
		return nil, fmt.Errorf("sound %q not found", key)
	}

	m.mu.Lock()
	if pcm, ok := m.cache[name]; ok {
		m.mu.Unlock()
		return pcm, nil
	}
	m.mu.Unlock()

	path, err := m.library.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound file: %w", err)
	}

	format, pcm, err := decodeFile(name, data)
	if err != nil {
		return nil, err
	}

	initAudioContext(format)
	if globalAudioCtxRate != 0 && globalAudioCtxRate != format.SampleRate {
		m.logger.Warn("sample rate differs from audio context, playback speed may be off",
			zap.String("name", name),
			zap.Int("file_rate", format.SampleRate),
			zap.Int("context_rate", globalAudioCtxRate))
	}

	m.mu.Lock()
	m.cache[name] = pcm
	m.mu.Unlock()
	return pcm, nil
}

// initAudioContext 以首个解码出的格式初始化全局音频上下文。
func initAudioContext(format *pcmFormat) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		globalAudioCtxRate = format.SampleRate
	})
}

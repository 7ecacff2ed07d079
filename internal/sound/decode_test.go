package sound

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildWAV 构造一个最小的 16 位 PCM WAV 文件。
func buildWAV(t *testing.T, sampleRate, channels int, pcm []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes()
}

func TestDecodeWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	data := buildWAV(t, 44100, 2, pcm)

	format, got, err := decodeWAV(data)
	if err != nil {
		t.Fatalf("decodeWAV returned error: %v", err)
	}
	if format.SampleRate != 44100 || format.Channels != 2 {
		t.Fatalf("unexpected format: %+v", format)
	}
	if !bytes.Equal(got, pcm) {
		t.Fatalf("unexpected pcm data: %v", got)
	}
}

func TestDecodeWAVSkipsUnknownChunks(t *testing.T) {
	pcm := []byte{0x01, 0x02}
	data := buildWAV(t, 8000, 1, pcm)

	// 在 fmt 与 data 之间插入 LIST 块
	extra := append([]byte("LIST"), 0x04, 0x00, 0x00, 0x00, 'I', 'N', 'F', 'O')
	patched := append([]byte{}, data[:36]...)
	patched = append(patched, extra...)
	patched = append(patched, data[36:]...)
	binary.LittleEndian.PutUint32(patched[4:8], uint32(len(patched)-8))

	format, got, err := decodeWAV(patched)
	if err != nil {
		t.Fatalf("decodeWAV returned error: %v", err)
	}
	if format.SampleRate != 8000 || format.Channels != 1 {
		t.Fatalf("unexpected format: %+v", format)
	}
	if !bytes.Equal(got, pcm) {
		t.Fatalf("unexpected pcm data: %v", got)
	}
}

func TestDecodeWAVRejectsBadInput(t *testing.T) {
	if _, _, err := decodeWAV([]byte("not a wave file")); err == nil {
		t.Fatal("expected error for non-RIFF input")
	}

	// 8 位深度不支持
	data := buildWAV(t, 8000, 1, []byte{0x01})
	binary.LittleEndian.PutUint16(data[34:36], 8)
	if _, _, err := decodeWAV(data); err == nil {
		t.Fatal("expected error for 8-bit samples")
	}

	// 压缩编码不支持
	data = buildWAV(t, 8000, 1, []byte{0x01})
	binary.LittleEndian.PutUint16(data[20:22], 7)
	if _, _, err := decodeWAV(data); err == nil {
		t.Fatal("expected error for non-PCM encoding")
	}
}

func TestDecodeFileDispatch(t *testing.T) {
	data := buildWAV(t, 8000, 1, []byte{0x01, 0x02})

	format, _, err := decodeFile("ring.wav", data)
	if err != nil {
		t.Fatalf("decodeFile returned error: %v", err)
	}
	if format.SampleRate != 8000 {
		t.Fatalf("unexpected format: %+v", format)
	}

	if _, _, err := decodeFile("voice.m4a", nil); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoopReaderCycles(t *testing.T) {
	r := newLoopReader([]byte{1, 2, 3})

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	if err != nil || n != 8 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	want := []byte{1, 2, 3, 1, 2, 3, 1, 2}
	if !bytes.Equal(buf, want) {
		t.Fatalf("looped read = %v, want %v", buf, want)
	}

	// 继续读取从上次位置接续
	n, err = r.Read(buf[:3])
	if err != nil || n != 3 {
		t.Fatalf("Read = %d, %v", n, err)
	}
	if !bytes.Equal(buf[:3], []byte{3, 1, 2}) {
		t.Fatalf("continued read = %v", buf[:3])
	}
}

func TestLoopReaderEmpty(t *testing.T) {
	r := newLoopReader(nil)
	if _, err := r.Read(make([]byte, 4)); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

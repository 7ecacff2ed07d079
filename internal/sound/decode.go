package sound

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
)

// pcmFormat holds the decoded audio stream parameters.
type pcmFormat struct {
	SampleRate int
	Channels   int
}

// decodeFile decodes a sound file into signed 16-bit little-endian PCM.
func decodeFile(name string, data []byte) (*pcmFormat, []byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		return decodeWAV(data)
	case ".mp3":
		return decodeMP3(data)
	default:
		return nil, nil, fmt.Errorf("unsupported sound file %q", name)
	}
}

// decodeMP3 decodes an MP3 stream. go-mp3 always outputs 16-bit stereo.
func decodeMP3(data []byte) (*pcmFormat, []byte, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(decoder)
	if err != nil {
		return nil, nil, fmt.Errorf("decode mp3: %w", err)
	}

	return &pcmFormat{SampleRate: decoder.SampleRate(), Channels: 2}, pcm, nil
}

// decodeWAV parses a RIFF/WAVE container and returns its raw PCM data.
func decodeWAV(data []byte) (*pcmFormat, []byte, error) {
	reader := bytes.NewReader(data)

	header := make([]byte, 12)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, nil, fmt.Errorf("decode wav: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, nil, errors.New("decode wav: not a RIFF/WAVE file")
	}

	var format pcmFormat
	haveFormat := false

	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(reader, chunkHeader); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return nil, nil, fmt.Errorf("decode wav: %w", err)
		}

		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			chunk := make([]byte, chunkSize)
			if _, err := io.ReadFull(reader, chunk); err != nil {
				return nil, nil, fmt.Errorf("decode wav: %w", err)
			}
			if len(chunk) < 16 {
				return nil, nil, errors.New("decode wav: short fmt chunk")
			}
			if audioFormat := binary.LittleEndian.Uint16(chunk[0:2]); audioFormat != 1 {
				return nil, nil, fmt.Errorf("decode wav: unsupported audio format %d", audioFormat)
			}
			if bits := binary.LittleEndian.Uint16(chunk[14:16]); bits != 16 {
				return nil, nil, fmt.Errorf("decode wav: unsupported bit depth %d", bits)
			}
			format.Channels = int(binary.LittleEndian.Uint16(chunk[2:4]))
			format.SampleRate = int(binary.LittleEndian.Uint32(chunk[4:8]))
			haveFormat = true
		case "data":
			if !haveFormat {
				return nil, nil, errors.New("decode wav: data chunk before fmt chunk")
			}
			pcm := make([]byte, chunkSize)
			if _, err := io.ReadFull(reader, pcm); err != nil {
				return nil, nil, fmt.Errorf("decode wav: %w", err)
			}
			return &format, pcm, nil
		default:
			if _, err := reader.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return nil, nil, fmt.Errorf("decode wav: %w", err)
			}
		}
	}

	return nil, nil, errors.New("decode wav: no data chunk")
}

// loopReader 无限循环地重复一段 PCM 数据，供循环响铃使用。
type loopReader struct {
	data []byte
	pos  int
}

func newLoopReader(data []byte) *loopReader {
	return &loopReader{data: data}
}

func (r *loopReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}

	total := 0
	for total < len(p) {
		n := copy(p[total:], r.data[r.pos:])
		total += n
		r.pos += n
		if r.pos >= len(r.data) {
			r.pos = 0
		}
	}
	return total, nil
}

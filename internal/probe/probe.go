// Package probe extracts media metadata through ffprobe.
package probe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Metadata describes a media file as reported by ffprobe.
type Metadata struct {
	Filename      string
	Format        string
	Duration      float64 // seconds
	SizeBytes     int64
	BitRate       int64
	Width         int
	Height        int
	VideoCodec    string
	FrameRate     float64
	AudioCodec    string
	AudioChannels int
	SampleRate    int
}

// HasVideo reports whether a video stream was found.
func (m Metadata) HasVideo() bool {
	return m.Width > 0 && m.Height > 0
}

// AspectRatio returns the reduced aspect ratio, e.g. "16:9".
func (m Metadata) AspectRatio() string {
	if m.Width == 0 || m.Height == 0 {
		return "unknown"
	}
	g := gcd(m.Width, m.Height)
	return fmt.Sprintf("%d:%d", m.Width/g, m.Height/g)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// File probes the media file at path.
func File(path string) (Metadata, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("probing %s: %w", path, err)
	}
	return parse([]byte(out))
}

type probeData struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	Channels   int    `json:"channels"`
	SampleRate string `json:"sample_rate"`
}

type probeFormat struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

func parse(data []byte) (Metadata, error) {
	var pd probeData
	if err := json.Unmarshal(data, &pd); err != nil {
		return Metadata{}, fmt.Errorf("parsing probe output: %w", err)
	}

	m := Metadata{
		Filename: pd.Format.Filename,
		Format:   pd.Format.FormatName,
	}
	m.Duration, _ = strconv.ParseFloat(pd.Format.Duration, 64)
	m.SizeBytes, _ = strconv.ParseInt(pd.Format.Size, 10, 64)
	m.BitRate, _ = strconv.ParseInt(pd.Format.BitRate, 10, 64)

	for _, s := range pd.Streams {
		switch s.CodecType {
		case "video":
			if m.VideoCodec != "" {
				continue // first video stream wins
			}
			m.VideoCodec = s.CodecName
			m.Width = s.Width
			m.Height = s.Height
			m.FrameRate = parseRational(s.RFrameRate)
		case "audio":
			if m.AudioCodec != "" {
				continue
			}
			m.AudioCodec = s.CodecName
			m.AudioChannels = s.Channels
			m.SampleRate, _ = strconv.Atoi(s.SampleRate)
		}
	}

	if m.Duration <= 0 {
		return m, fmt.Errorf("probe reported no duration for %s", m.Filename)
	}
	return m, nil
}

// parseRational evaluates ffprobe rate strings like "30000/1001" or "25".
func parseRational(r string) float64 {
	if r == "" {
		return 0
	}
	num, den, ok := strings.Cut(r, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

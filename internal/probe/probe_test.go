package probe

import (
	"math"
	"testing"
)

const sampleProbeOutput = `{
	"streams": [
		{
			"codec_type": "video",
			"codec_name": "h264",
			"width": 1920,
			"height": 1080,
			"r_frame_rate": "30000/1001"
		},
		{
			"codec_type": "audio",
			"codec_name": "aac",
			"channels": 2,
			"sample_rate": "48000",
			"r_frame_rate": "0/0"
		}
	],
	"format": {
		"filename": "movie.mp4",
		"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
		"duration": "634.533333",
		"size": "349556843",
		"bit_rate": "4407038"
	}
}`

func TestParse(t *testing.T) {
	m, err := parse([]byte(sampleProbeOutput))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if m.Filename != "movie.mp4" {
		t.Errorf("Filename = %q, want movie.mp4", m.Filename)
	}
	if math.Abs(m.Duration-634.533333) > 1e-6 {
		t.Errorf("Duration = %v, want 634.533333", m.Duration)
	}
	if m.Width != 1920 || m.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", m.Width, m.Height)
	}
	if m.VideoCodec != "h264" {
		t.Errorf("VideoCodec = %q, want h264", m.VideoCodec)
	}
	if math.Abs(m.FrameRate-29.97) > 0.001 {
		t.Errorf("FrameRate = %v, want ~29.97", m.FrameRate)
	}
	if m.AudioCodec != "aac" || m.AudioChannels != 2 || m.SampleRate != 48000 {
		t.Errorf("audio = %q/%d/%d, want aac/2/48000", m.AudioCodec, m.AudioChannels, m.SampleRate)
	}
	if m.SizeBytes != 349556843 {
		t.Errorf("SizeBytes = %d, want 349556843", m.SizeBytes)
	}
	if !m.HasVideo() {
		t.Error("HasVideo() = false, want true")
	}
}

func TestParseNoDuration(t *testing.T) {
	if _, err := parse([]byte(`{"streams": [], "format": {}}`)); err == nil {
		t.Error("parse() expected error for missing duration")
	}
}

func TestAspectRatio(t *testing.T) {
	tests := []struct {
		w, h int
		want string
	}{
		{1920, 1080, "16:9"},
		{1440, 1080, "4:3"},
		{1080, 1920, "9:16"},
		{0, 1080, "unknown"},
	}

	for _, tt := range tests {
		m := Metadata{Width: tt.w, Height: tt.h}
		if got := m.AspectRatio(); got != tt.want {
			t.Errorf("AspectRatio(%dx%d) = %q, want %q", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestParseRational(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"25", 25},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		if got := parseRational(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseRational(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

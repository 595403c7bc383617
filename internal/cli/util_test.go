package cli

import (
	"path/filepath"
	"testing"
)

func TestParseGrid(t *testing.T) {
	tests := []struct {
		name    string
		grid    string
		want    GridSize
		wantErr bool
	}{
		{
			name:    "valid grid",
			grid:    "3x5",
			want:    GridSize{Cols: 3, Rows: 5},
			wantErr: false,
		},
		{
			name:    "uppercase separator",
			grid:    "4X3",
			want:    GridSize{Cols: 4, Rows: 3},
			wantErr: false,
		},
		{
			name:    "missing rows",
			grid:    "3",
			want:    GridSize{},
			wantErr: true,
		},
		{
			name:    "invalid columns",
			grid:    "abcx5",
			want:    GridSize{},
			wantErr: true,
		},
		{
			name:    "invalid rows",
			grid:    "3xabc",
			want:    GridSize{},
			wantErr: true,
		},
		{
			name:    "zero columns",
			grid:    "0x5",
			want:    GridSize{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGrid(tt.grid)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseGrid() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseGrid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultOutputs(t *testing.T) {
	raw, compressed := defaultOutputs(filepath.Join("videos", "movie.mp4"))
	if raw != filepath.Join("videos", "movie.gif") {
		t.Errorf("raw output = %s", raw)
	}
	if compressed != filepath.Join("videos", "movie_compressed.gif") {
		t.Errorf("compressed output = %s", compressed)
	}
}

package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/vidpreview/internal/source"
)

// GridSize is a parsed COLSxROWS flag value.
type GridSize struct {
	Cols int
	Rows int
}

// parseGrid parses grid size strings like "3x5".
func parseGrid(s string) (GridSize, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return GridSize{}, fmt.Errorf("invalid grid format: %s", s)
	}
	cols, err := strconv.Atoi(parts[0])
	if err != nil {
		return GridSize{}, fmt.Errorf("invalid columns: %s", parts[0])
	}
	rows, err := strconv.Atoi(parts[1])
	if err != nil {
		return GridSize{}, fmt.Errorf("invalid rows: %s", parts[1])
	}
	if cols < 1 || rows < 1 {
		return GridSize{}, fmt.Errorf("grid %s needs at least one column and one row", s)
	}
	return GridSize{Cols: cols, Rows: rows}, nil
}

// defaultOutputs derives output paths next to the input video:
// movie.mp4 -> movie.gif, movie_compressed.gif.
func defaultOutputs(videoPath string) (string, string) {
	dir := filepath.Dir(videoPath)
	key := source.Key(videoPath)
	raw := filepath.Join(dir, key+".gif")
	compressed := filepath.Join(dir, key+"_compressed.gif")
	return raw, compressed
}

package render

import (
	"fmt"
	"path/filepath"
)

// Recorder saves every Nth frame of an ImageCanvas as a numbered PNG in Dir.
type Recorder struct {
	*ImageCanvas
	Dir   string
	Every int

	saved []string
}

// NewRecorder returns a recorder with its own w × h canvas. every <= 0 records only frame 0.
func NewRecorder(dir string, every, w, h int) *Recorder {
	return &Recorder{ImageCanvas: NewImageCanvas(w, h), Dir: dir, Every: every}
}

// Capture saves the canvas if frame is due. Frame 0 is always due.
func (r *Recorder) Capture(frame uint64) error {
	if frame != 0 && (r.Every <= 0 || frame%uint64(r.Every) != 0) {
		return nil
	}
	path := filepath.Join(r.Dir, fmt.Sprintf("frame_%06d.png", frame))
	if err := r.Save(path); err != nil {
		return err
	}
	r.saved = append(r.saved, path)
	return nil
}

// Saved returns the paths written so far.
func (r *Recorder) Saved() []string {
	return append([]string(nil), r.saved...)
}

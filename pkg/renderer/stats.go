package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Hits        int           // Pixels whose ray struck the sphere
	Misses      int           // Pixels resolved from the background gradient
	Duration    time.Duration // Wall time of the pass
}

func (s *RenderStats) record(hit bool) {
	if hit {
		s.Hits++
	} else {
		s.Misses++
	}
}

// HitRatio returns the fraction of pixels that hit the sphere
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

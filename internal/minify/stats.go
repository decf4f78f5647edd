package minify

// Stats describes the size reduction of one minification
type Stats struct {
	Original int
	Minified int
}

// Measure returns the byte sizes before and after minification
func Measure(original, minified string) Stats {
	return Stats{Original: len(original), Minified: len(minified)}
}

// Add accumulates other into s
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Original: s.Original + other.Original,
		Minified: s.Minified + other.Minified,
	}
}

// Saved returns the number of bytes removed
func (s Stats) Saved() int {
	return s.Original - s.Minified
}

// Ratio returns the fraction of the original size that was removed
func (s Stats) Ratio() float64 {
	if s.Original == 0 {
		return 0
	}
	return float64(s.Saved()) / float64(s.Original)
}

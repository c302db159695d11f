package stamp

// HeightFunc measures a string's height at a font size.
type HeightFunc func(size int) (int, error)

// FindMaxFittingSize binary searches sizes in [1, maxSize] for the largest one
// whose height is at most boxHeight. Size 1 is returned when nothing fits.
func FindMaxFittingSize(maxSize int, boxHeight int, heightAt HeightFunc) (int, error) {
	best := 1
	lo, hi := 1, maxSize
	for lo <= hi {
		mid := (lo + hi) / 2
		h, err := heightAt(mid)
		if err != nil {
			return 0, err
		}
		if h <= boxHeight {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best, nil
}

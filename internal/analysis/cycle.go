package analysis

import (
	"fmt"
	"hash/fnv"

	"github.com/san-kum/bakermap/internal/baker"
	"github.com/san-kum/bakermap/internal/frame"
)

// Cycle describes where a frame sequence starts repeating. Frame
// Transient+Period equals frame Transient.
type Cycle struct {
	Found     bool
	Transient int
	Period    int
	Steps     int
}

func (c Cycle) String() string {
	if !c.Found {
		return fmt.Sprintf("no cycle within %d steps", c.Steps)
	}
	return fmt.Sprintf("transient %d, period %d", c.Transient, c.Period)
}

// DetectCycle iterates the map from initial for at most maxSteps transforms
// and reports the first repeated frame.
func DetectCycle(initial frame.Frame, v baker.Variant, maxSteps int) (Cycle, error) {
	if initial.Empty() {
		return Cycle{}, ErrInvalidDimension
	}
	if maxSteps <= 0 {
		return Cycle{}, fmt.Errorf("%w: got %d", ErrInvalidSteps, maxSteps)
	}
	if !v.Valid() {
		return Cycle{}, fmt.Errorf("%w: %d", baker.ErrUnknownVariant, int(v))
	}

	seen := make(map[uint64][]int)
	frames := []frame.Frame{initial}
	seen[hashFrame(initial)] = []int{0}

	cur := initial
	for step := 1; step <= maxSteps; step++ {
		cur = baker.Transform(cur, v)
		h := hashFrame(cur)
		for _, i := range seen[h] {
			if frames[i].Equal(cur) {
				return Cycle{Found: true, Transient: i, Period: step - i, Steps: step}, nil
			}
		}
		seen[h] = append(seen[h], step)
		frames = append(frames, cur)
	}
	return Cycle{Steps: maxSteps}, nil
}

func hashFrame(f frame.Frame) uint64 {
	h := fnv.New64a()
	h.Write(f.Bytes())
	return h.Sum64()
}

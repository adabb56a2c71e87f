package engine

import (
	"sync"

	"github.com/san-kum/ballistics/internal/shot"
	"github.com/san-kum/ballistics/internal/traj"
)

// RunMany computes independent trajectories concurrently, one engine
// instance per shot. Runs share no state, so no coordination is needed
// beyond waiting for completion. Results line up with the input shots.
func (e *Engine) RunMany(shots []shot.Shot, rangeLimit, rangeStep, timeStep float64, filter traj.Flag) ([]*Result, error) {
	results := make([]*Result, len(shots))
	errs := make([]error, len(shots))

	var wg sync.WaitGroup
	for i := range shots {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			eng, err := New(e.cfg, e.stepper)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = eng.Run(&shots[idx], rangeLimit, rangeStep, timeStep, filter)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

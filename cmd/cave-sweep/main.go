package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"isle-sim/internal/cave"
)

type paramSet struct {
	initialFill float64
	birthLimit  int
	deathLimit  int
	iterations  int
}

func (p paramSet) String() string {
	return fmt.Sprintf("fill=%.2f birth=%d death=%d iter=%d",
		p.initialFill, p.birthLimit, p.deathLimit, p.iterations)
}

type scenarioResult struct {
	params paramSet

	meanWallRatio float64
	meanOpenCells float64
	failures      int
	seeds         int
}

// score prefers caves whose wall ratio sits near the half-open sweet spot
// and penalizes seeds the generator could not connect.
func (r scenarioResult) score() float64 {
	penalty := float64(r.failures) / float64(r.seeds)
	return math.Abs(r.meanWallRatio-0.5) + penalty
}

func main() {
	width := flag.Int("width", 64, "cave width in tiles")
	height := flag.Int("height", 64, "cave height in tiles")
	seeds := flag.Int("seeds", 8, "seeds to average per parameter set")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	fillOptions := []float64{0.38, 0.42, 0.45, 0.48, 0.52}
	birthOptions := []int{4, 5}
	deathOptions := []int{2, 3, 4}
	iterationOptions := []int{3, 4, 5, 6}

	var sets []paramSet
	for _, fill := range fillOptions {
		for _, birth := range birthOptions {
			for _, death := range deathOptions {
				for _, iter := range iterationOptions {
					sets = append(sets, paramSet{
						initialFill: fill,
						birthLimit:  birth,
						deathLimit:  death,
						iterations:  iter,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d seeds each, %dx%d)\n",
		len(sets), *workers, *seeds, *width, *height)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(params, *width, *height, *seeds)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].score() < all[j].score() })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 10 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 10; i++ {
		res := all[i]
		fmt.Printf("%2d) walls=%.3f open=%.0f fail=%d/%d params=%s\n",
			i+1, res.meanWallRatio, res.meanOpenCells, res.failures, res.seeds, res.params)
	}
}

func runScenario(params paramSet, width, height, seeds int) scenarioResult {
	cfg := cave.DefaultParams()
	cfg.InitialFill = params.initialFill
	cfg.BirthLimit = params.birthLimit
	cfg.DeathLimit = params.deathLimit
	cfg.Iterations = params.iterations

	res := scenarioResult{params: params, seeds: seeds}

	gen, err := cave.New(cfg)
	if err != nil {
		res.failures = seeds
		return res
	}

	total := float64(width * height)
	for seed := 0; seed < seeds; seed++ {
		walls, err := gen.Generate(width, height, int64(seed)*7919+1)
		if err != nil {
			res.failures++
			continue
		}
		wallCount := walls.Count()
		res.meanWallRatio += float64(wallCount) / total
		res.meanOpenCells += total - float64(wallCount)
	}

	generated := seeds - res.failures
	if generated > 0 {
		res.meanWallRatio /= float64(generated)
		res.meanOpenCells /= float64(generated)
	}
	return res
}

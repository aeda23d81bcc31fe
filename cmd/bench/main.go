package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/viniciusth/suffixindex"
)

type variant struct {
	name   string
	config func(*suffixindex.Builder[byte], int) *suffixindex.Builder[byte]
}

var variants = map[string]variant{
	"full": {name: "full", config: func(b *suffixindex.Builder[byte], _ int) *suffixindex.Builder[byte] { return b }},
	"no_rmq": {name: "no_rmq", config: func(b *suffixindex.Builder[byte], _ int) *suffixindex.Builder[byte] {
		return b.SkipRMQ()
	}},
	"parallel": {name: "parallel", config: func(b *suffixindex.Builder[byte], workers int) *suffixindex.Builder[byte] {
		return b.Parallel(workers)
	}},
}

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(b *suffixindex.Builder[byte]) (time.Duration, uint64, uint64, *suffixindex.Index[byte]) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	x, err := b.Build()
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, x
}

func measureQuery(x *suffixindex.Index[byte], patterns [][]byte) (time.Duration, int) {
	start := time.Now()
	found := 0
	for _, p := range patterns {
		found += x.Count(p)
	}
	return time.Since(start), found
}

func runBenchmark(v variant, n, sigma, p, q, workers, runs int, logger *slog.Logger) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := make([]byte, n)
		for i := range text {
			text[i] = byte(r.Intn(sigma) + 'a')
		}

		b := v.config(suffixindex.NewBuilder(text), workers).Logger(logger)
		bt, bp, ba, x := measureBuild(b)

		patterns := make([][]byte, q)
		for i := range patterns {
			start := r.Intn(n - p + 1)
			patterns[i] = text[start : start+p]
		}
		qt, found := measureQuery(x, patterns)
		_, longest := x.LongestRepeat()

		fmt.Printf("%s,%d,%d,%d,%d,%d,%.0f,%d,%d,%.0f,%d,%d\n",
			v.name, n, sigma, p, q, workers,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), found, longest)
	}
}

func main() {
	variantName := flag.String("variant", "", "Variant to benchmark")
	n := flag.Int("n", 0, "Text length")
	sigma := flag.Int("sigma", 4, "Alphabet size (1-26)")
	p := flag.Int("p", 8, "Pattern length")
	q := flag.Int("q", 1000, "Number of queries")
	workers := flag.Int("workers", runtime.NumCPU(), "Sort workers for the parallel variant")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	verbose := flag.Bool("v", false, "Log every doubling round to stderr")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *variantName == "" || *n <= 0 || *sigma < 1 || *sigma > 26 || *p <= 0 || *p > *n || *q < 0 {
		fmt.Println("Usage: go run main.go -variant=<variant> -n=<N> [-sigma=<S>] [-p=<P>] [-q=<Q>] [-workers=<W>] [-runs=<runs>] [-v]")
		fmt.Println("Available variants: full, no_rmq, parallel")
		os.Exit(1)
	}

	v, ok := variants[*variantName]
	if !ok {
		fmt.Println("Invalid variant:", *variantName)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runBenchmark(v, *n, *sigma, *p, *q, *workers, *runs, logger)
}

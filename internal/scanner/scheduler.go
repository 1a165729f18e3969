package scanner

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

// Options is the fixed, validated configuration one Scheduler run needs.
type Options struct {
	Hosts         []string
	Words         []string
	Prefixes      []string
	Extensions    []string
	ExtSubst      bool
	MaxThreads    int
	WordlistSplit int
	Worker        WorkerConfig
}

// Scheduler is the single goroutine that owns the scan queue: it
// bootstraps one root directory per host, dispatches Request Workers while
// fewer than MaxThreads are busy, and detects run termination. Its
// busy-worker count and pending queue are touched by exactly this
// goroutine, so they are plain, unsynchronized values rather than a mutex
// or a channel of their own.
type Scheduler struct {
	opts   Options
	client *http.Client
	log    Logger

	toScan     chan DirectoryInfo
	findings   chan Finding
	toValidate chan Finding
	workerDone chan struct{}
	interrupt  *atomic.Bool

	busy       int
	shardCount int
	queue      []*UriGenerator
	dirs       []DirectoryInfo
}

// NewScheduler wires a Scheduler to the channels a Validator and the
// Output Sink also share: toScan is read here and written by the
// Validator; findings and toValidate are written here (bootstrap and
// shutdown sentinels) and by every Request Worker.
func NewScheduler(opts Options, client *http.Client, toScan chan DirectoryInfo, findings chan Finding, toValidate chan Finding, interrupt *atomic.Bool, log Logger) *Scheduler {
	if log == nil {
		log = noopLogger{}
	}
	return &Scheduler{
		opts:       opts,
		client:     client,
		log:        log,
		toScan:     toScan,
		findings:   findings,
		toValidate: toValidate,
		workerDone: make(chan struct{}),
		interrupt:  interrupt,
	}
}

// Run executes the full scan: bootstrap, dispatch loop, and shutdown. It
// blocks until every host's wordlist has been exhausted and every worker
// has finished, or the interrupt flag is observed set.
func (s *Scheduler) Run() {
	s.bootstrap()

	for {
		if s.interrupt != nil && s.interrupt.Load() {
			s.log.Warnf("interrupt received, winding down without cancelling in-flight requests")
			break
		}

		s.drainDone()
		s.drainToScan()

		for s.busy < s.opts.MaxThreads && len(s.queue) > 0 {
			gen := s.queue[0]
			s.queue = s.queue[1:]
			s.busy++
			go RunWorker(gen, s.findings, s.toValidate, s.workerDone, s.client, s.opts.Worker)
		}

		if s.busy == 0 && len(s.queue) == 0 {
			break
		}

		time.Sleep(time.Millisecond)
	}

	for s.busy > 0 {
		<-s.workerDone
		s.busy--
	}

	s.findings <- EndMarker()
	s.toValidate <- EndMarker()
}

// bootstrap seeds one root directory Finding per configured host and
// blocks for each host's calibration result before the dispatch loop
// starts. The shard-boost policy applies only to this initial enqueue:
// s.shardCount is widened for the duration of the host expansion below,
// then reset to the configured split so every directory discovered for
// the rest of the run (via drainToScan) uses it verbatim, matching
// dirble's add_dir_to_scan_queue(first_run=false) after bootstrap.
func (s *Scheduler) bootstrap() {
	s.shardCount = effectiveShardCount(s.opts.WordlistSplit, s.opts.MaxThreads, len(s.opts.Hosts))
	if s.shardCount < 1 {
		s.shardCount = 1
	}

	for _, host := range s.opts.Hosts {
		hostURL := host
		if !strings.HasSuffix(hostURL, "/") {
			hostURL += "/"
		}
		s.toValidate <- Finding{URL: hostURL, IsDirectory: true, ParentIndex: -1, ParentDepth: -1}
	}

	for range s.opts.Hosts {
		info := <-s.toScan
		s.queue = append(s.queue, s.expandDirectory(info)...)
	}

	s.shardCount = s.opts.WordlistSplit
	if s.shardCount < 1 {
		s.shardCount = 1
	}
}

// drainDone empties the worker-completion channel without blocking,
// decrementing busy once per signal.
func (s *Scheduler) drainDone() {
	for {
		select {
		case <-s.workerDone:
			s.busy--
		default:
			return
		}
	}
}

// drainToScan empties the Validator's confirmed-directory channel without
// blocking, expanding each into its generators and appending them to the
// pending queue.
func (s *Scheduler) drainToScan() {
	for {
		select {
		case info, ok := <-s.toScan:
			if !ok {
				return
			}
			s.queue = append(s.queue, s.expandDirectory(info)...)
		default:
			return
		}
	}
}

// expandDirectory registers a confirmed directory in the scan registry
// (its index becomes the ParentIndex every Finding discovered beneath it
// carries) and, unless its ValidatorProfile forbids descent, builds one
// UriGenerator per prefix/extension/shard combination for it.
func (s *Scheduler) expandDirectory(info DirectoryInfo) []*UriGenerator {
	idx := len(s.dirs)
	s.dirs = append(s.dirs, info)

	if info.Validator != nil && !info.Validator.ScanFolder {
		s.log.Infof("skipping %s: calibration unreliable%s", info.URL, info.Validator.Alert)
		return nil
	}

	depth := Depth(info.URL, info.ParentDepth)

	extensions := s.opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{""}
	}
	prefixes := s.opts.Prefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	var gens []*UriGenerator
	for _, prefix := range prefixes {
		for _, ext := range extensions {
			for shard := 0; shard < s.shardCount; shard++ {
				gens = append(gens, NewUriGenerator(
					info.URL, prefix, ext, s.opts.Words,
					shard, s.shardCount,
					idx, depth,
					info.Validator, s.opts.ExtSubst,
				))
			}
		}
	}
	return gens
}

// effectiveShardCount applies the first-run shard-boost policy: when
// threads would otherwise sit idle because the configured split is too
// coarse for the number of hosts being scanned, widen it to use the spare
// capacity instead.
func effectiveShardCount(configured, maxThreads, hostCount int) int {
	if hostCount == 0 {
		return configured
	}
	if maxThreads >= 3 && configured*hostCount < maxThreads-2 {
		boosted := (maxThreads - 2) / hostCount
		if boosted > configured {
			return boosted
		}
	}
	return configured
}

package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jlower/internal/arrays"
	"jlower/internal/diag"
	"jlower/internal/ir"
	"jlower/internal/observ"
	"jlower/internal/symbols"
	"jlower/internal/trace"
)

// UnitExt is the file extension of encoded units.
const UnitExt = ".jlu"

// Options configures a lowering run.
type Options struct {
	Runtime        arrays.Runtime
	Oracle         symbols.Oracle
	Jobs           int    // 0 means GOMAXPROCS
	OutDir         string // lowered units are written here; empty skips writing
	Cache          *DiskCache
	MaxDiagnostics int
	Timer          *observ.Timer
	Progress       ProgressSink
}

// SignatureInfo describes one synthesized runtime constructor.
type SignatureInfo struct {
	Class       string
	Selector    string
	Shape       string
	Kind        string
	Declaration string
}

// UnitResult is the outcome of lowering one input file.
type UnitResult struct {
	Path       string
	Unit       *ir.Unit
	Signatures []SignatureInfo
	Stats      arrays.Stats
	OutPath    string
	Cached     bool
}

// Result collects every unit of a run. Units keep input order.
type Result struct {
	Units []UnitResult
	Bag   *diag.Bag
}

// ListUnits expands args into a sorted list of unit files; directories are
// walked for *.jlu files.
func ListUnits(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, UnitExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// LowerFiles decodes, lowers and optionally writes every file concurrently.
// Each unit gets its own pass and signature cache. The first failure cancels
// the remaining units; diagnostics gathered so far are still returned.
func LowerFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	if opts.Runtime.Prefix == "" {
		opts.Runtime = arrays.DefaultRuntime
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	res := &Result{Bag: diag.NewBag(opts.MaxDiagnostics)}
	if len(files) == 0 {
		ReportError(res.Bag, "", diag.ProjNoInputs, "no unit files to lower")
		return res, errors.New("no input units")
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "lower", trace.CurrentSpan(ctx)).
		WithExtra("units", strconv.Itoa(len(files)))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	if err := checkOutputClashes(files, opts.OutDir, res.Bag); err != nil {
		res.Bag.Sort()
		return res, err
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Every goroutine writes only its own slot.
	results := make([]UnitResult, len(files))
	bags := make([]*diag.Bag, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bags[i] = diag.NewBag(opts.MaxDiagnostics)
			start := time.Now()
			ur, err := lowerFile(gctx, path, opts, bags[i])
			if err != nil {
				emit(opts.Progress, Event{File: path, Status: StatusError, Err: err, Elapsed: time.Since(start)})
				return err
			}
			status := StatusDone
			if ur.Cached {
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Status: status, Elapsed: time.Since(start)})
			results[i] = *ur
			return nil
		})
	}
	err := g.Wait()

	for _, b := range bags {
		res.Bag.Merge(b)
	}
	res.Bag.Sort()
	if err != nil {
		return res, err
	}
	res.Units = results
	return res, nil
}

func lowerFile(ctx context.Context, path string, opts Options, bag *diag.Bag) (*UnitResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit", trace.CurrentSpan(ctx)).WithExtra("path", path)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	idx := opts.Timer.BeginUnit("load", path)
	data, err := os.ReadFile(path)
	opts.Timer.End(idx, "")
	if err != nil {
		ReportError(bag, path, diag.IOLoadFileError, err.Error())
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	key := CacheKey(data, opts.Runtime)
	if ur, ok := loadCached(opts.Cache, key, path, bag); ok {
		span.WithExtra("cache", "hit")
		if err := writeOutput(ur, opts.OutDir, bag); err != nil {
			return nil, err
		}
		return ur, nil
	}

	emit(opts.Progress, Event{File: path, Stage: StageDecode, Status: StatusWorking})
	idx = opts.Timer.BeginUnit("decode", path)
	u, err := ir.UnmarshalUnit(data)
	opts.Timer.End(idx, "")
	if err != nil {
		ReportError(bag, path, diag.IODecodeError, err.Error())
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	emit(opts.Progress, Event{File: path, Stage: StageLower, Status: StatusWorking})
	ur, err := LowerUnit(ctx, u, opts)
	if err != nil {
		reportLowerError(bag, path, err)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ur.Path = path

	if opts.Cache != nil {
		encoded, err := ir.MarshalUnit(u)
		if err == nil {
			err = opts.Cache.Put(key, &DiskPayload{Name: u.Name, Unit: encoded, Signatures: ur.Signatures, Stats: ur.Stats})
		}
		if err != nil {
			// A broken cache only costs speed.
			ReportWarning(bag, path, diag.IOCacheError, err.Error())
		}
	}
	if opts.OutDir != "" {
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	}
	if err := writeOutput(ur, opts.OutDir, bag); err != nil {
		return nil, err
	}
	return ur, nil
}

// LowerUnit runs the array lowering over u in place.
func LowerUnit(ctx context.Context, u *ir.Unit, opts Options) (*UnitResult, error) {
	rt := opts.Runtime
	if rt.Prefix == "" {
		rt = arrays.DefaultRuntime
	}
	idx := opts.Timer.BeginUnit("lower", u.Name)
	pass := arrays.NewPass(u.Interner, arrays.Options{Runtime: rt, Oracle: opts.Oracle})
	err := pass.Run(ctx, u)
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, err
	}
	return &UnitResult{
		Unit:       u,
		Signatures: describeSignatures(u, pass.Signatures()),
		Stats:      pass.Stats(),
	}, nil
}

func describeSignatures(u *ir.Unit, sigs []*arrays.Signature) []SignatureInfo {
	out := make([]SignatureInfo, len(sigs))
	for i, sig := range sigs {
		out[i] = SignatureInfo{
			Class:       sig.Class(u.Interner),
			Selector:    sig.Method.Selector,
			Shape:       sig.Shape.String(),
			Kind:        sig.Kind.String(),
			Declaration: sig.Declare(),
		}
	}
	return out
}

func loadCached(cache *DiskCache, key Digest, path string, bag *diag.Bag) (*UnitResult, bool) {
	if cache == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		ReportWarning(bag, path, diag.IOCacheError, err.Error())
		return nil, false
	}
	if !ok {
		return nil, false
	}
	u, err := ir.UnmarshalUnit(payload.Unit)
	if err != nil {
		ReportWarning(bag, path, diag.IOCacheError, err.Error())
		return nil, false
	}
	return &UnitResult{Path: path, Unit: u, Signatures: payload.Signatures, Stats: payload.Stats, Cached: true}, true
}

func writeOutput(ur *UnitResult, outDir string, bag *diag.Bag) error {
	if outDir == "" {
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		ReportError(bag, ur.Path, diag.IOWriteError, err.Error())
		return err
	}
	data, err := ir.MarshalUnit(ur.Unit)
	if err != nil {
		ReportError(bag, ur.Path, diag.IOWriteError, err.Error())
		return err
	}
	out := outputPath(outDir, ur.Path)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		ReportError(bag, ur.Path, diag.IOWriteError, err.Error())
		return err
	}
	ur.OutPath = out
	return nil
}

// outputPath is where the lowered form of the unit at path is written.
func outputPath(outDir, path string) string {
	return filepath.Join(outDir, strings.TrimSuffix(filepath.Base(path), UnitExt)+UnitExt)
}

// checkOutputClashes reports inputs that would be written to the same output
// file. Units are written concurrently, so a clash would lose one of them.
func checkOutputClashes(files []string, outDir string, bag *diag.Bag) error {
	if outDir == "" {
		return nil
	}
	first := make(map[string]string, len(files))
	clashes := 0
	for _, path := range files {
		out := outputPath(outDir, path)
		if prev, ok := first[out]; ok {
			ReportError(bag, path, diag.ProjOutputClash,
				fmt.Sprintf("output %s is also produced by %s", out, prev))
			clashes++
			continue
		}
		first[out] = path
	}
	if clashes > 0 {
		return fmt.Errorf("%d unit(s) clash on output paths in %s", clashes, outDir)
	}
	return nil
}

// SignatureUse is one distinct constructor across a run.
type SignatureUse struct {
	SignatureInfo
	Units int
}

// SignatureUsage lists distinct constructors by declaration, with the number
// of units that needed each.
func (r *Result) SignatureUsage() []SignatureUse {
	index := make(map[string]int)
	var out []SignatureUse
	for _, ur := range r.Units {
		for _, sig := range ur.Signatures {
			key := sig.Class + " " + sig.Selector
			if i, ok := index[key]; ok {
				out[i].Units++
				continue
			}
			index[key] = len(out)
			out = append(out, SignatureUse{SignatureInfo: sig, Units: 1})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].Selector < out[j].Selector
	})
	return out
}

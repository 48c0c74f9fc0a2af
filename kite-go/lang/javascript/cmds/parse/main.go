package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/ast"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser"
	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser/errors"
	kerrors "github.com/kiteco/jsparse/kite-golib/errors"
	"github.com/kiteco/jsparse/kite-golib/kitelog"
	"github.com/kiteco/jsparse/kite-golib/linenumber"
	"github.com/kiteco/jsparse/kite-golib/status"
	"github.com/kiteco/jsparse/kite-golib/workerpool"
	"github.com/kr/pretty"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

type args struct {
	Files     []string `arg:"positional,required"`
	Config    string   `arg:"help:YAML file with parser options"`
	Repeat    uint64   `arg:"help:parse each file repeatedly (for performance)"`
	Print     bool     `arg:"help:print the AST"`
	Positions bool     `arg:"help:include node spans when printing"`
	Dump      bool     `arg:"help:dump the hoisted declarations"`
	Time      bool     `arg:"help:print the parse duration"`
	Watch     bool     `arg:"help:parse again whenever a file changes"`
	Status    bool     `arg:"help:print parser metrics before exiting"`
	Profile   string   `arg:"help:filename to write cpu profile"`
	Debug     bool     `arg:"help:log at debug level"`
	Workers   int      `arg:"help:number of files parsed concurrently"`
	DialectFlags
}

func main() {
	a := args{
		Repeat:  1,
		Print:   true,
		Time:    true,
		Workers: runtime.NumCPU(),
	}
	arg.MustParse(&a)

	logger := kitelog.New(a.Debug)
	defer logger.Sync()

	cfg, err := loadConfig(a.Config)
	if err != nil {
		logger.Fatalw("bad config", "error", err)
	}
	cfg.override(a.DialectFlags)
	parser.SetDurationSampleRate(cfg.SampleRate)

	if a.Profile != "" {
		if !strings.HasSuffix(a.Profile, ".prof") {
			a.Profile = a.Profile + ".prof"
		}
		f, err := os.Create(a.Profile)
		if err != nil {
			logger.Fatalw("error creating profile", "error", err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cache, err := parser.NewCache(cfg.CacheSize)
	if err != nil {
		logger.Fatalw("error creating cache", "error", err)
	}

	r := runner{
		args:   a,
		opts:   cfg.options(),
		cache:  cache,
		logger: logger,
	}

	failed := r.parseAll(a.Files, a.Workers, os.Stdout)

	if a.Watch {
		err := watch(logger, a.Files, func(path string) {
			r.parseFile(path, os.Stdout)
		})
		if err != nil {
			logger.Errorw("watch stopped", "error", err)
		}
	}

	if a.Status {
		if err := status.Render(os.Stdout); err != nil {
			logger.Errorw("error rendering status", "error", err)
		}
	}

	if failed > 0 {
		logger.Errorw("some files failed to parse", "failed", failed, "files", len(a.Files))
		os.Exit(1)
	}
}

type runner struct {
	args   args
	opts   parser.Options
	cache  *parser.Cache
	logger *zap.SugaredLogger
}

// parseAll parses paths on the given number of workers and writes the
// reports to w in the order of paths. It returns the number of failures.
func (r *runner) parseAll(paths []string, workers int, w io.Writer) int {
	outputs := make([]bytes.Buffer, len(paths))
	var jobs []workerpool.Job
	for i, path := range paths {
		out, path := &outputs[i], path
		jobs = append(jobs, func() error {
			return r.parseFile(path, out)
		})
	}

	pool := workerpool.New(workers)
	defer pool.Stop()
	pool.Add(jobs)
	err := pool.Wait()

	for i := range outputs {
		w.Write(outputs[i].Bytes())
	}
	if errs, ok := err.(kerrors.List); ok {
		r.logger.Debugw("first failure", "error", errs.First())
		return len(errs)
	}
	return 0
}

// parseFile parses one file and writes its report to out. Syntax errors are
// printed with the offending line and returned.
func (r *runner) parseFile(path string, out io.Writer) error {
	src, err := ioutil.ReadFile(path)
	if err != nil {
		err = kerrors.Wrapf(err, "error reading %s", path)
		r.logger.Errorw("read failed", "error", err)
		return err
	}

	opts := r.opts
	opts.TraceWriter = out

	var script *ast.Script
	var times []float64
	if r.args.Repeat > 1 {
		// the cache would answer every repetition after the first
		for i := uint64(0); i < r.args.Repeat; i++ {
			begin := time.Now()
			script, err = parser.Parse(src, path, 1, opts)
			times = append(times, float64(time.Since(begin)))
		}
	} else {
		begin := time.Now()
		script, err = r.cache.Parse(src, path, 1, opts)
		times = append(times, float64(time.Since(begin)))
	}

	if err != nil {
		r.reportError(src, err, out)
		return err
	}

	r.logger.Infow("parsed", "path", path, "size", humanize.Bytes(uint64(len(src))),
		"nodes", ast.CountNodes(script), "cached", r.cache.Len())

	if r.args.Print {
		if r.args.Positions {
			ast.PrintPositions(script, out, "  ")
		} else {
			ast.Print(script, out, "  ")
		}
	}
	if r.args.Dump {
		pretty.Fprintf(out, "%# v\n", declarations(script))
	}
	if r.args.Time {
		printTimes(out, times)
	}
	return nil
}

func (r *runner) reportError(src []byte, err error, out io.Writer) {
	se, ok := errors.AsSyntaxError(err)
	if !ok {
		r.logger.Errorw("parse failed", "error", err)
		return
	}
	r.logger.Errorw("syntax error", "file", se.Filename, "line", se.Line, "kind", se.Kind.String(), "msg", se.Msg)
	fmt.Fprintf(out, "%v\n%s\n", se, linenumber.NewMap(src).Excerpt(int(se.Pos)))
}

// declSummary is what --dump shows: the names a script hoists.
type declSummary struct {
	Functions []string
	Variables []string
	Nested    map[string]declSummary
}

func declarations(script *ast.Script) declSummary {
	var d declSummary
	for _, f := range script.FunDecls {
		d.Functions = append(d.Functions, f.Name)
		if body, ok := f.Body.(*ast.Script); ok {
			if d.Nested == nil {
				d.Nested = make(map[string]declSummary)
			}
			d.Nested[f.Name] = declarations(body)
		}
	}
	for _, v := range script.VarDecls {
		d.Variables = append(d.Variables, v.Name)
	}
	return d
}

func printTimes(w io.Writer, times []float64) {
	fmt.Fprintf(w, "Parse time:\n")
	f, _ := stats.Median(times)
	fmt.Fprintf(w, "  Median: %v\n", time.Duration(f))
	f, _ = stats.Mean(times)
	fmt.Fprintf(w, "  Mean: %v\n", time.Duration(f))
	if len(times) > 1 {
		f, _ = stats.StdDevS(times)
		fmt.Fprintf(w, "  StdDev: %v\n", time.Duration(f))
	}
	f, _ = stats.Min(times)
	fmt.Fprintf(w, "  Min: %v\n", time.Duration(f))
	f, _ = stats.Max(times)
	fmt.Fprintf(w, "  Max: %v\n", time.Duration(f))
}

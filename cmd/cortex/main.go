package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Travinkel/CortexCLI-sub002/internal/config"
	"github.com/Travinkel/CortexCLI-sub002/internal/generate"
	"github.com/Travinkel/CortexCLI-sub002/internal/ingest"
	"github.com/Travinkel/CortexCLI-sub002/internal/quality"
	"github.com/Travinkel/CortexCLI-sub002/internal/store"
	"github.com/Travinkel/CortexCLI-sub002/internal/study"
	"github.com/Travinkel/CortexCLI-sub002/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFile)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbh, err := store.Open(ctx, store.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer dbh.Close()
	st := store.NewSQLStore(dbh)

	var runErr error
	switch os.Args[1] {
	case "ingest":
		runErr = runIngest(cfg, log, st, os.Args[2:])
	case "grade":
		runErr = runGrade(cfg, st, os.Args[2:])
	case "report":
		runErr = runReport(st, os.Args[2:])
	case "study":
		runErr = runStudy(cfg, log, st, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		log.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(runErr))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: cortex <command> [flags]

commands:
  ingest  parse a module file and generate atoms into the store
  grade   re-run the quality engine over stored atoms
  report  print quality grades for stored atoms
  study   review due atoms at the terminal`)
}

func runIngest(cfg config.Config, log *zap.Logger, st store.Store, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	file := fs.String("file", "", "module text file to ingest")
	minScore := fs.Float64("min-score", cfg.MinScore, "quality score an atom needs to be stored")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("ingest: -file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	engine := quality.NewEngine(quality.WithAccuracyThreshold(cfg.AccuracyThreshold))
	pipe := generate.NewPipeline(generate.StaticGenerator{}, engine, st,
		generate.WithMinScore(*minScore), generate.WithLogger(log))

	ctx := context.Background()
	total := generate.Outcome{Reports: map[string]quality.Report{}}
	for _, sec := range ingest.Parse(string(raw)) {
		out, err := pipe.Run(ctx, sec)
		if err != nil {
			return err
		}
		total.Candidates += out.Candidates
		total.Stored += out.Stored
		total.Rejected += out.Rejected
		total.Invalid += out.Invalid
	}
	fmt.Printf("candidates %d  stored %d  rejected %d  invalid %d\n",
		total.Candidates, total.Stored, total.Rejected, total.Invalid)
	return nil
}

func runGrade(cfg config.Config, st store.Store, args []string) error {
	fs := flag.NewFlagSet("grade", flag.ExitOnError)
	section := fs.String("section", "", "restrict to one section id")
	fs.Parse(args)

	engine := quality.NewEngine(quality.WithAccuracyThreshold(cfg.AccuracyThreshold))
	ctx := context.Background()
	atoms, err := st.ListAtoms(ctx, store.Filter{SectionID: *section})
	if err != nil {
		return err
	}
	for _, a := range atoms {
		rep := engine.AnalyzeAtom(a, "")
		if err := st.PutReport(ctx, a.ID, rep); err != nil {
			return err
		}
		fmt.Printf("%s  %3.0f %s  %s\n", a.ID, rep.Score, rep.Grade, a.Front)
	}
	return nil
}

func runReport(st store.Store, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	worst := fs.Bool("worst", false, "only atoms that need a rewrite")
	fs.Parse(args)

	ctx := context.Background()
	atoms, err := st.ListAtoms(ctx, store.Filter{})
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, a := range atoms {
		rep, err := st.GetReport(ctx, a.ID)
		if err != nil {
			continue // never graded
		}
		counts[rep.Grade]++
		if *worst && !rep.NeedsRewrite {
			continue
		}
		fmt.Printf("%s  %3.0f %s", a.ID, rep.Score, rep.Grade)
		for _, iss := range rep.Issues {
			fmt.Printf("  %s", iss)
		}
		fmt.Println()
	}
	for _, g := range []string{"A", "B", "C", "D", "F"} {
		if counts[g] > 0 {
			fmt.Printf("%s:%d ", g, counts[g])
		}
	}
	fmt.Println()
	return nil
}

func runStudy(cfg config.Config, log *zap.Logger, st store.Store, args []string) error {
	fs := flag.NewFlagSet("study", flag.ExitOnError)
	limit := fs.Int("limit", cfg.SessionLimit, "max atoms per session")
	section := fs.String("section", "", "enroll atoms from one section only")
	fs.Parse(args)

	sess := study.NewSession(st, newTermRenderer(), study.WithSessionLogger(log))
	ctx := context.Background()
	enrolled, err := sess.Enroll(ctx, store.Filter{SectionID: *section})
	if err != nil {
		return err
	}
	if enrolled > 0 {
		fmt.Printf("enrolled %d new atom(s)\n", enrolled)
	}
	sum, err := sess.Run(ctx, *limit)
	if err != nil {
		return err
	}
	fmt.Printf("reviewed %d  correct %d  partial %d  don't-know %d  skipped %d\n",
		sum.Reviewed, sum.Correct, sum.Partial, sum.DontKnow, sum.Skipped)
	return nil
}

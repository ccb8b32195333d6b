// Command ipsolver solves the minimum-cost test-selection problem: given a
// set of diagnostic tests, each with a cost, and a disease-differentiation
// matrix, it finds the cheapest subset of tests that distinguishes every
// pair of diseases.
//
// Usage: ipsolver <filename>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/costela/ipsolver/internal/lpsolver"
	"github.com/costela/ipsolver/internal/problem"
	"github.com/costela/ipsolver/internal/result"
	"github.com/costela/ipsolver/internal/search"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("ipsolver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "trace branch-and-bound decisions to stderr")
	workers := fs.Int("workers", 0, "number of worker goroutines (defaults to cores-1)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: ipsolver <filename>")
		return 2
	}
	filename := fs.Arg(0)

	start := time.Now()

	found, cost, err := solve(filename, *verbose, *workers, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ipsolver: %v\n", err)
		return 1
	}

	elapsed := time.Since(start).Seconds()
	var record result.Record
	if found {
		record = result.NewFound(filename, elapsed, cost)
	} else {
		record = result.NewNotFound(filename, elapsed)
	}

	line, err := record.MarshalLine()
	if err != nil {
		fmt.Fprintf(stderr, "ipsolver: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, line)
	return 0
}

// solve parses and solves the instance at filename, reporting whether a
// feasible integer solution was found and, if so, its cost.
func solve(filename string, verbose bool, workerCount int, stderr *os.File) (found bool, cost float64, err error) {
	inst, err := problem.ParseFile(filename)
	if err != nil {
		return false, 0, err
	}

	model := problem.NewModel(inst)

	newSession := func() (*lpsolver.Session, error) {
		return lpsolver.New(model.Instance.Cost, model.Table.Table)
	}

	if workerCount <= 0 {
		workerCount = search.DefaultWorkerCount()
	}

	var instr search.Instrumentation
	if verbose {
		instr = search.LogInstrumentation{Logger: log.New(stderr, "", log.LstdFlags)}
	}

	coord := search.NewCoordinator(inst.NumTests, search.DefaultTolerance, workerCount, newSession, instr)

	res, err := coord.Run(context.Background())
	if err != nil {
		if err == search.ErrNoFeasibleSolution {
			return false, 0, nil
		}
		return false, 0, err
	}

	return true, res.Objective, nil
}

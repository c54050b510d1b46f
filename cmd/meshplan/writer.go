package main

import (
	"fmt"
	"os"

	"meshplan/internal/config"
	"meshplan/internal/plan"
)

// newWriters sets up coverage and link writers based on the output mode, an
// optional JSONL log file, and the GREPTIMEDB_ENDPOINT environment variable.
// It returns the writers and a cleanup function to close any resources.
func newWriters(cfg *config.PlanConfig, output, logFile string) (plan.CoverageWriter, plan.LinkWriter, func(), error) {
	cleanup := func() {}

	var base plan.CoverageWriter
	var baseLinks plan.LinkWriter
	switch output {
	case "json":
		w := &plan.StdoutWriter{}
		base, baseLinks = w, w
	case "table":
		w := plan.NewColorStdoutWriter(cfg)
		base, baseLinks = w, w
	default:
		return nil, nil, nil, fmt.Errorf("unknown output mode %q", output)
	}

	cws := []plan.CoverageWriter{base}
	lws := []plan.LinkWriter{baseLinks}

	if endpoint := os.Getenv("GREPTIMEDB_ENDPOINT"); endpoint != "" {
		database := os.Getenv("GREPTIMEDB_DATABASE")
		if database == "" {
			database = "public"
		}
		gw, err := plan.NewGreptimeWriter(endpoint, database)
		if err != nil {
			return nil, nil, nil, err
		}
		cws = append(cws, gw)
		lws = append(lws, gw)
	}

	if logFile != "" {
		fw, err := plan.NewFileWriter(logFile, logFile+".links")
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup = func() { fw.Close() }
		cws = append(cws, fw)
		lws = append(lws, fw)
	}

	if len(cws) == 1 {
		return base, baseLinks, cleanup, nil
	}
	mw := plan.NewMultiWriter(cws, lws)
	return mw, mw, cleanup, nil
}

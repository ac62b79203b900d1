package main

import (
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/akmistry/rangemap/internal/app/rangemapctl"
)

var (
	scriptFlag  = flag.String("script", "", "Script file to run (default stdin)")
	checkFlag   = flag.Bool("check", false, "Check every mutation against a bitmap reference")
	verboseFlag = flag.Bool("verbose", false, "Verbose logging")

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if flag.NArg() != 0 {
		log.Print("Usage: rangemapctl [-script <FILE>] [-check] [-verbose]")
		os.Exit(1)
	}

	if *verboseFlag {
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var in io.Reader = os.Stdin
	if *scriptFlag != "" {
		f, err := os.Open(*scriptFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	cmds, err := rangemapctl.ParseScript(in)
	if err != nil {
		log.Printf("Error parsing script: %v", err)
		os.Exit(1)
	}
	slog.Debug("Parsed script", "commands", len(cmds))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	runner := rangemapctl.NewRunner(os.Stdout, *checkFlag)
	err = runner.Run(cmds)
	if err != nil {
		log.Println("Run error: ", err)
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

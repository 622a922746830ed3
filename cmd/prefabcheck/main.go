package main

import (
	"bytes"
	"flag"
	"log"
	"os"

	"github.com/milk9111/gunplay/logging"
	"github.com/milk9111/gunplay/prefabs"
	"golang.design/x/clipboard"
)

func main() {
	dir := flag.String("dir", "prefabs", "prefab directory checked before the embedded copies")
	cycles := flag.Int("cycles", 0, "reload cycles to simulate per firearm (0 runs until the reserve is spent)")
	copyReport := flag.Bool("copy", false, "copy the report to the clipboard")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	logger, err := logging.New(os.Stderr, *level)
	if err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = *dir

	names := flag.Args()
	if len(names) == 0 {
		names, err = prefabs.Names()
		if err != nil {
			logger.Fatal().Err(err).Msg("list prefabs")
		}
	}

	results := make([]result, 0, len(names))
	for _, name := range names {
		r := check(name, *cycles)
		logger.Debug().Str("prefab", name).Int("reloads", len(r.Steps)).Err(r.Err).Msg("checked")
		results = append(results, r)
	}

	var buf bytes.Buffer
	failed := writeReport(&buf, results)
	_, _ = os.Stdout.Write(buf.Bytes())

	if *copyReport {
		if err := clipboard.Init(); err != nil {
			logger.Warn().Err(err).Msg("clipboard unavailable")
		} else {
			clipboard.Write(clipboard.FmtText, buf.Bytes())
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

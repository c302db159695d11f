package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nilapparel/nilgen/gen"
	"github.com/nilapparel/nilgen/gen/common"
	"github.com/nilapparel/nilgen/gen/roster"
)

type cliArgs struct {
	debugMode  bool
	configFile string
	csvFile    string
	outputDir  string
	testFiles  []string
}

func main() {
	log := common.NewLog()
	args := parseCliArgs()
	config, err := common.LoadConfig(args.configFile)
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if args.debugMode {
		config.DebugOutput = true
	}
	if len(args.outputDir) > 0 {
		config.OutputDir = args.outputDir
	}
	if config.DebugOutput {
		log.Dbg("%s", common.YamlObjectAsString(config, "Config"))
	}

	if len(args.csvFile) > 0 {
		if failed := runBatch(args.csvFile, config, log); failed > 0 {
			os.Exit(1)
		}
		return
	}

	router, port := gen.GetServer(args.debugMode, config, args.testFiles)
	if err := router.Run(port); err != nil {
		log.Fatal("%v", err)
	}
}

// runBatch generates every row of csvFile and returns the number of failed rows.
func runBatch(csvFile string, config *common.Config, log *common.Logger) int {
	f, err := os.Open(csvFile)
	if err != nil {
		log.Err("Error opening orders - %s", err)
		return 1
	}
	defer f.Close()
	orders, err := roster.Parse(f)
	if err != nil {
		log.Err("Error parsing orders - %s", err)
		return 1
	}

	results, _ := gen.SaveImages(orders, config, log)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Msg("Generated %d of %d styles", len(results)-failed, len(results))
	return failed
}

func parseCliArgs() cliArgs {
	var args cliArgs
	flag.Usage = func() {
		fmt.Printf("Usage: %s [flags]\n\n", filepath.Base(os.Args[0]))
		fmt.Printf("Without -csv, serves the web UI.\n")
		flag.PrintDefaults()
	}
	flag.BoolVar(&args.debugMode, "d", false, "Enable debug mode & deploy GET handlers.")
	flag.StringVar(&args.configFile, "c", "config/config.yaml", "Config file.")
	flag.StringVar(&args.csvFile, "csv", "", "Orders sheet to generate in batch mode.")
	flag.StringVar(&args.outputDir, "o", "", "Output directory. Defaults to each bundle folder.")
	var testFile string
	flag.StringVar(&testFile, "t", "", "Orders sheet served on /test. Only used if debug mode is enabled.")
	flag.Parse()
	if args.debugMode && len(testFile) > 0 {
		args.testFiles = []string{testFile}
	}
	return args
}

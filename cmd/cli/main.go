//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vedicmetrics/ChandasDNA/pkg/chandasdna"
	"github.com/vedicmetrics/ChandasDNA/pkg/logger"
	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// Global flags
var (
	dbPath string
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// createService creates a new ChandasDNA service with configured options
func createService() (chandasdna.Service, error) {
	return chandasdna.NewService(
		chandasdna.WithDBPath(dbPath),
	)
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	log := logger.GetLogger()

	printBanner()

	globals := flag.NewFlagSet("chandasDNA", flag.ExitOnError)
	globals.StringVar(&dbPath, "db", getEnvOrDefault("CHANDAS_DB_PATH", "chandasdna.sqlite3"), "Path to the SQLite database file")
	globals.Parse(argv)

	args := globals.Args()
	if len(args) == 0 {
		printUsage()
		return 1
	}

	command := args[0]
	log.Infof("Executing command: %s", command)

	switch command {
	case "identify":
		handleIdentify(args[1:])
	case "list":
		handleList()
	case "show":
		handleShow(args[1:])
	case "context":
		handleContext(args[1:])
	case "add":
		handleAdd(args[1:])
	case "delete":
		handleDelete(args[1:])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		return 1
	}
	return 0
}

func printBanner() {
	banner := `
  ____ _                     _           ____  _   _    _
 / ___| |__   __ _ _ __   __| | __ _ ___|  _ \| \ | |  / \
| |   | '_ \ / _' | '_ \ / _' |/ _' / __| | | |  \| | / _ \
| |___| | | | (_| | | | | (_| | (_| \__ \ |_| | |\  |/ ___ \
 \____|_| |_|\__,_|_| |_|\__,_|\__,_|___/____/|_| \_/_/   \_\

           Sanskrit Meter Identification CLI Tool
`
	fmt.Println(banner)
}

func handleIdentify(args []string) {
	log := logger.GetLogger()

	// Separate the verse text from flags
	var shloka string
	var flagArgs []string
	for i, arg := range args {
		if !strings.HasPrefix(arg, "-") && shloka == "" {
			shloka = arg
		} else {
			flagArgs = append(flagArgs, args[i:]...)
			break
		}
	}

	identifyCmd := flag.NewFlagSet("identify", flag.ExitOnError)
	hint := identifyCmd.String("hint", "", "Expected meter name (boosts matching candidates)")
	file := identifyCmd.String("file", "", "Read the verse from a file ('-' for stdin)")
	identifyCmd.Parse(flagArgs)

	if *file != "" {
		if shloka != "" {
			fmt.Println("Error: cannot specify both verse text and --file")
			os.Exit(1)
		}
		var data []byte
		var err error
		if *file == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(*file)
		}
		if err != nil {
			fmt.Printf("❌ Failed to read verse: %v\n", err)
			log.Errorf("Reading verse failed: %v", err)
			os.Exit(1)
		}
		shloka = string(data)
	}

	if strings.TrimSpace(shloka) == "" {
		fmt.Println("Usage: chandasDNA identify \"<verse>\" [--hint <meter>]")
		fmt.Println("   OR: chandasDNA identify --file <path|->")
		os.Exit(1)
	}

	fmt.Println("🔧 Initializing service...")
	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	fmt.Println("🔍 Scanning verse...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := svc.Identify(ctx, shloka, *hint)
	if err != nil {
		fmt.Printf("\n❌ Identification failed: %v\n", err)
		log.Errorf("Identify failed: %v", err)
		os.Exit(1)
	}

	printIdentification(result)
	log.Infof("Identification complete: verdict=%s name=%q", result.Verdict, result.ChandasName)
}

func printIdentification(result *models.Identification) {
	if result.Detected {
		fmt.Printf("\n✅ %s (%s, confidence %.0f%%)\n", result.ChandasName, result.Verdict, result.Confidence*100)
	} else {
		fmt.Println("\n❌ No confident match")
	}
	if result.LaghuGuruPattern != "" {
		fmt.Printf("   Pattern:   %s\n", result.LaghuGuruPattern)
	}
	if result.GanaPattern != "" {
		fmt.Printf("   Gana:      %s\n", result.GanaPattern)
	}
	if len(result.SyllableCount) > 0 {
		counts := make([]string, len(result.SyllableCount))
		for i, n := range result.SyllableCount {
			counts[i] = strconv.Itoa(n)
		}
		fmt.Printf("   Syllables: %s per quarter\n", strings.Join(counts, ", "))
	}
	fmt.Printf("\n%s\n", result.Explanation)
	if len(result.Nearest) > 0 {
		fmt.Println("\nNearest candidates:")
		for i, c := range result.Nearest {
			fmt.Printf("%d. %s (%.2f)\n", i+1, c.Name, c.Score)
		}
	}
}

func handleList() {
	log := logger.GetLogger()

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	meters, err := svc.ListMeters()
	if err != nil {
		fmt.Printf("❌ Failed to list meters: %v\n", err)
		log.Errorf("ListMeters failed: %v", err)
		os.Exit(1)
	}

	if len(meters) == 0 {
		fmt.Println("\n📭 No meters in catalogue")
		return
	}

	fmt.Printf("\n📚 Catalogue holds %d meter(s):\n\n", len(meters))
	for i, m := range meters {
		fmt.Printf("%d. %s (%s, %d syllables per quarter)\n", i+1, m.Name, m.Family, m.SyllablesPerQuarter)
		fmt.Printf("   Pattern: %s", m.Pattern)
		if m.EvenPattern != "" {
			fmt.Printf(" / %s", m.EvenPattern)
		}
		fmt.Println()
	}
	log.Infof("Listed %d meters", len(meters))
}

func handleShow(args []string) {
	log := logger.GetLogger()

	if len(args) < 1 {
		fmt.Println("Usage: chandasDNA show <meter_name>")
		os.Exit(1)
	}
	name := args[0]

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	m, err := svc.GetMeter(name)
	if err != nil {
		fmt.Printf("❌ Meter not found: %s\n", name)
		log.Warnf("Meter %q not found: %v", name, err)
		os.Exit(1)
	}

	fmt.Printf("\n%s (%s)\n", m.Name, m.Family)
	if len(m.Aliases) > 0 {
		fmt.Printf("   Aliases:   %s\n", strings.Join(m.Aliases, ", "))
	}
	fmt.Printf("   Syllables: %d per quarter\n", m.SyllablesPerQuarter)
	fmt.Printf("   Pattern:   %s\n", m.Pattern)
	if m.EvenPattern != "" {
		fmt.Printf("   Even:      %s\n", m.EvenPattern)
	}
	fmt.Printf("   Gana:      %s\n", m.GanaPattern)
	if len(m.FreePositions) > 0 {
		free := make([]string, len(m.FreePositions))
		for i, p := range m.FreePositions {
			free[i] = strconv.Itoa(p)
		}
		fmt.Printf("   Free:      positions %s\n", strings.Join(free, ", "))
	}
}

func handleContext(args []string) {
	log := logger.GetLogger()

	if len(args) < 1 {
		fmt.Println("Usage: chandasDNA context <meter_name>")
		os.Exit(1)
	}
	name := args[0]

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	info, err := svc.MeterContext(name)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		log.Warnf("MeterContext failed for %q: %v", name, err)
		os.Exit(1)
	}

	fmt.Printf("\n🕉️  %s\n\n", info.Name)
	printField := func(label, value string) {
		if value != "" {
			fmt.Printf("   %-13s %s\n", label+":", value)
		}
	}
	printField("Structure", info.Structure)
	printField("Symbolism", info.Symbolism)
	printField("Deity", info.Deity)
	printField("Meaning", info.Meaning)
	printField("Significance", info.Significance)
}

func handleAdd(args []string) {
	log := logger.GetLogger()

	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	name := addCmd.String("name", "", "Meter name (required)")
	pattern := addCmd.String("pattern", "", "L/G pattern per quarter (required)")
	evenPattern := addCmd.String("even-pattern", "", "Even-quarter pattern for ardha-sama meters")
	family := addCmd.String("family", "sama-vritta", "Meter family: sama-vritta or ardha-sama-vritta")
	aliases := addCmd.String("aliases", "", "Comma-separated alternate names")
	free := addCmd.String("free", "", "Comma-separated 1-based free positions")
	addCmd.Parse(args)

	if *name == "" || *pattern == "" {
		fmt.Println("Usage: chandasDNA add --name <name> --pattern <LGLG...> [--even-pattern <...>] [--family <f>] [--aliases a,b] [--free 1,2]")
		os.Exit(1)
	}

	def := models.MeterDefinition{
		Name:        *name,
		Family:      *family,
		Pattern:     *pattern,
		EvenPattern: *evenPattern,
	}
	if *aliases != "" {
		def.Aliases = strings.Split(*aliases, ",")
	}
	for _, p := range strings.Split(*free, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			fmt.Printf("❌ Invalid free position %q\n", p)
			os.Exit(1)
		}
		def.FreePositions = append(def.FreePositions, n)
	}

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	id, err := svc.AddMeter(def)
	if err != nil {
		fmt.Printf("❌ Failed to add meter: %v\n", err)
		log.Errorf("AddMeter failed: %v", err)
		os.Exit(1)
	}

	fmt.Println("\n✅ Successfully registered meter!")
	fmt.Printf("   ID:      %s\n", id)
	fmt.Printf("   Name:    %s\n", *name)
	fmt.Printf("   Pattern: %s\n", *pattern)
	log.Infof("Registered meter %q (ID=%s)", *name, id)
}

func handleDelete(args []string) {
	log := logger.GetLogger()

	if len(args) < 1 {
		fmt.Println("Usage: chandasDNA delete <meter_name>")
		os.Exit(1)
	}
	name := args[0]

	svc, err := createService()
	if err != nil {
		fmt.Printf("❌ Failed to create service: %v\n", err)
		log.Errorf("Service initialization failed: %v", err)
		os.Exit(1)
	}
	defer svc.Close()

	if err := svc.DeleteMeter(name); err != nil {
		fmt.Printf("❌ Failed to delete meter: %v\n", err)
		log.Errorf("DeleteMeter failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Successfully deleted meter %q\n", name)
	log.Infof("Deleted meter %q", name)
}

func printUsage() {
	fmt.Println("ChandasDNA - Sanskrit Meter Identification CLI")
	fmt.Println("\nGlobal Options:")
	fmt.Println("  --db <path>        Path to SQLite database (env: CHANDAS_DB_PATH, default: chandasdna.sqlite3)")
	fmt.Println("\nUsage:")
	fmt.Println("  chandasDNA [global-options] identify \"<verse>\" [--hint <meter>]")
	fmt.Println("  chandasDNA [global-options] identify --file <path|->")
	fmt.Println("  chandasDNA [global-options] list")
	fmt.Println("  chandasDNA [global-options] show <meter_name>")
	fmt.Println("  chandasDNA [global-options] context <meter_name>")
	fmt.Println("  chandasDNA [global-options] add --name <name> --pattern <LGLG...> [options]")
	fmt.Println("  chandasDNA [global-options] delete <meter_name>")
	fmt.Println("\nExamples:")
	fmt.Println("  # Identify a verse given inline")
	fmt.Println("  chandasDNA identify \"vasudevasutaṃ devaṃ kaṃsacāṇūramardanam |\"")
	fmt.Println()
	fmt.Println("  # Identify from a file, expecting Anushtup")
	fmt.Println("  chandasDNA identify --file verse.txt --hint Anushtup")
	fmt.Println()
	fmt.Println("  # Register a custom meter")
	fmt.Println("  chandasDNA add --name Vidyunmala --pattern GGGGGGGG")
	fmt.Println()
	fmt.Println("  # Cultural context of a meter")
	fmt.Println("  chandasDNA context Gayatri")
}

// Command dirhunt is a concurrent HTTP directory and file brute-forcer.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcauet/dirhunt/internal/config"
	"github.com/mcauet/dirhunt/internal/httpclient"
	"github.com/mcauet/dirhunt/internal/logx"
	"github.com/mcauet/dirhunt/internal/output"
	"github.com/mcauet/dirhunt/internal/scanner"
	"github.com/mcauet/dirhunt/internal/ui"
	"github.com/mcauet/dirhunt/internal/wordlist"
)

// Exit codes for fatal startup failures. A missing wordlist shares the
// generic 1 used for ordinary run failures; only the executable-path
// lookup failure gets a distinct code.
const (
	exitWordlistMissing  = 1
	exitExecutableLookup = 2
)

var (
	hosts             []string
	wordlistFiles     []string
	extensions        []string
	extensionSubst    bool
	prefixes          []string
	maxThreads        int
	wordlistSplit     int
	verb              string
	timeoutSeconds    int
	userAgent         string
	proxyAddress      string
	ignoreCert        bool
	username          string
	password          string
	cookies           string
	headers           []string
	scrapeListable    bool
	maxRecursionDepth int
	forceScan         bool
	outputFile        string
	jsonFile          string
	xmlFile           string
	statusCodesRaw    string
	showNotFound      bool
	verbosity         string
	quiet             bool
)

var rootCmd = &cobra.Command{
	Use:   "dirhunt",
	Short: "Concurrent HTTP directory and file discovery",
	Long: `dirhunt brute-forces directories and files on one or more HTTP(S)
hosts, calibrating each host's responses to suppress soft-404 noise and
descending recursively into every directory it confirms.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&hosts, "host", "u", nil, "target host URL (repeatable)")
	rootCmd.Flags().StringArrayVarP(&wordlistFiles, "wordlist", "w", nil, "wordlist file (repeatable; default: search standard paths)")
	rootCmd.Flags().StringArrayVarP(&extensions, "extension", "x", nil, "extension to append to each word (repeatable)")
	rootCmd.Flags().BoolVar(&extensionSubst, "extension-subst", false, "replace a word's existing extension instead of appending")
	rootCmd.Flags().StringArrayVar(&prefixes, "prefix", nil, "prefix to prepend to each word (repeatable)")
	rootCmd.Flags().IntVarP(&maxThreads, "threads", "t", 10, "maximum concurrent request workers")
	rootCmd.Flags().IntVar(&wordlistSplit, "wordlist-split", 3, "shards to split each host's wordlist into")
	rootCmd.Flags().StringVar(&verb, "verb", "GET", "HTTP method to use: GET, HEAD, or POST")
	rootCmd.Flags().IntVar(&timeoutSeconds, "timeout", 10, "per-request timeout in seconds")
	rootCmd.Flags().StringVar(&userAgent, "user-agent", "dirhunt/1.0", "User-Agent header value")
	rootCmd.Flags().StringVar(&proxyAddress, "proxy", "", "HTTP proxy URL")
	rootCmd.Flags().BoolVarP(&ignoreCert, "insecure", "k", false, "skip TLS certificate verification")
	rootCmd.Flags().StringVar(&username, "username", "", "HTTP basic auth username")
	rootCmd.Flags().StringVar(&password, "password", "", "HTTP basic auth password")
	rootCmd.Flags().StringVar(&cookies, "cookies", "", "Cookie header value")
	rootCmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra \"Name: Value\" header (repeatable)")
	rootCmd.Flags().BoolVar(&scrapeListable, "scrape-listable", true, "recursively scrape links from listable directories")
	rootCmd.Flags().IntVar(&maxRecursionDepth, "max-recursion-depth", -1, "bound scrape recursion depth (-1 for unbounded)")
	rootCmd.Flags().BoolVar(&forceScan, "force-scan", false, "descend into directories even when host calibration is unreliable")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "plain-text report file")
	rootCmd.Flags().StringVar(&jsonFile, "json", "", "JSON report file")
	rootCmd.Flags().StringVar(&xmlFile, "xml", "", "XML report file")
	rootCmd.Flags().StringVar(&statusCodesRaw, "status-codes", "", "comma-separated status codes to show (default: all but bare 404)")
	rootCmd.Flags().BoolVar(&showNotFound, "show-404", false, "include bare 404 responses in terminal output")
	rootCmd.Flags().StringVar(&verbosity, "log-level", "notice", "log verbosity: debug, info, notice, warning, error")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the startup banner")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if !quiet {
		ui.Banner()
	}

	cfg, err := config.New(config.Params{
		Hosts:             hosts,
		WordlistFiles:     wordlistFiles,
		Extensions:        extensions,
		ExtensionSubst:    extensionSubst,
		Prefixes:          prefixes,
		MaxThreads:        maxThreads,
		WordlistSplit:     wordlistSplit,
		Verb:              verb,
		Timeout:           time.Duration(timeoutSeconds) * time.Second,
		UserAgent:         userAgent,
		ProxyAddress:      proxyAddress,
		IgnoreCert:        ignoreCert,
		Username:          username,
		Password:          password,
		Cookies:           cookies,
		Headers:           headers,
		ScrapeListable:    scrapeListable,
		MaxRecursionDepth: maxRecursionDepth,
		ForceScan:         forceScan,
		OutputFile:        outputFile,
		JSONFile:          jsonFile,
		XMLFile:           xmlFile,
		StatusCodes:       parseStatusCodes(statusCodesRaw),
		ShowNotFound:      showNotFound,
		Verbosity:         verbosity,
	})
	if err != nil {
		return err
	}

	log := logx.New("dirhunt", parseVerbosity(cfg.Verbosity()))

	paths, err := wordlist.Resolve(cfg.WordlistFiles())
	if err != nil {
		switch err {
		case wordlist.ErrExecutableLookupFailed:
			ui.PrintErrorMsg("%s", err)
			os.Exit(exitExecutableLookup)
		default:
			ui.PrintErrorMsg("%s", err)
			os.Exit(exitWordlistMissing)
		}
	}

	words, err := wordlist.Load(paths)
	if err != nil {
		ui.PrintErrorMsg("%s", err)
		os.Exit(exitWordlistMissing)
	}
	ui.PrintInfo("wordlist: %d entries from %s", len(words), strings.Join(paths, ", "))

	client, err := httpclient.NewClient(cfg.HTTPClientConfig())
	if err != nil {
		return fmt.Errorf("building HTTP client: %w", err)
	}

	toScan := make(chan scanner.DirectoryInfo, 64)
	findings := make(chan scanner.Finding, 256)
	toValidate := make(chan scanner.Finding, 256)

	v := scanner.NewValidator(toValidate, toScan, client, cfg.ScannerOptions(words).Extensions, cfg.ScanOpts(), log)

	var interrupt atomic.Bool
	sched := scanner.NewScheduler(cfg.ScannerOptions(words), client, toScan, findings, toValidate, &interrupt, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println()
		ui.PrintWarning("stopping...")
		interrupt.Store(true)
	}()

	printer := output.NewTermPrinter(os.Stdout, cfg.StatusCodes(), cfg.ShowNotFound())
	fileWriter, err := output.NewFileWriter(cfg.OutputFile())
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer fileWriter.Close()

	var jsonOut *os.File
	if cfg.JSONFile() != "" {
		jsonOut, err = os.Create(cfg.JSONFile())
		if err != nil {
			return fmt.Errorf("opening JSON report file: %w", err)
		}
		defer jsonOut.Close()
	}
	jsonWriter := output.NewJSONWriter(jsonOut, jsonOut != nil)

	var xmlOut *os.File
	if cfg.XMLFile() != "" {
		xmlOut, err = os.Create(cfg.XMLFile())
		if err != nil {
			return fmt.Errorf("opening XML report file: %w", err)
		}
		defer xmlOut.Close()
	}
	xmlWriter := output.NewXMLWriter(xmlOut, xmlOut != nil)

	validatorDone := make(chan struct{})
	go func() {
		v.Run()
		close(validatorDone)
	}()

	sinkDone := make(chan struct{})
	go func() {
		for f := range findings {
			if f.URL == scanner.EndMarkerURL {
				break
			}
			printer.Print(f)
			if err := fileWriter.Write(f); err != nil {
				log.Warnf("writing report file: %s", err)
			}
			if err := jsonWriter.Write(f); err != nil {
				log.Warnf("buffering JSON report: %s", err)
			}
			if err := xmlWriter.Write(f); err != nil {
				log.Warnf("buffering XML report: %s", err)
			}
		}
		close(sinkDone)
	}()

	sched.Run()

	<-sinkDone
	<-validatorDone

	if err := jsonWriter.Close(); err != nil {
		ui.PrintWarning("writing JSON report: %s", err)
	}
	if err := xmlWriter.Close(); err != nil {
		ui.PrintWarning("writing XML report: %s", err)
	}

	ui.PrintSuccess("scan complete")
	return nil
}

func parseStatusCodes(raw string) []int {
	if raw == "" {
		return nil
	}
	var codes []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		codes = append(codes, n)
	}
	return codes
}

func parseVerbosity(level string) logx.Verbosity {
	switch strings.ToLower(level) {
	case "debug":
		return logx.VerbosityDebug
	case "info":
		return logx.VerbosityInfo
	case "notice":
		return logx.VerbosityNotice
	case "warning", "warn":
		return logx.VerbosityWarning
	case "error":
		return logx.VerbosityError
	default:
		return logx.VerbosityNotice
	}
}

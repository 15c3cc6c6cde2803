package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/czerwonk/cloudping/catalog"
	"github.com/czerwonk/cloudping/config"
	"github.com/czerwonk/cloudping/monitor"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const version string = "0.1.0"

var (
	showVersion    = kingpin.Flag("version", "Print version information").Default().Bool()
	configFile     = kingpin.Flag("config.path", "Path to config file").Envar("CLOUDPING_CONFIG").Default("").String()
	catalogURL     = kingpin.Flag("catalog.url", "URL of the region directory").Envar("CLOUDPING_CATALOG_URL").Default(catalog.DefaultURL).String()
	catalogTimeout = kingpin.Flag("catalog.timeout", "Timeout for fetching the region directory").Default("5s").Duration()
	probeInterval  = kingpin.Flag("interval", "Time to wait between two probe cycles").Short('i').Default("1s").Duration()
	probeTimeout   = kingpin.Flag("timeout", "Timeout for a single probe").Default("5s").Duration()
	probeCount     = kingpin.Flag("count", "Number of probe cycles, 0 keeps probing until interrupted").Short('c').Default("0").Int()
	probeProtocol  = kingpin.Flag("probe.protocol", "HTTP protocol version used for probes. Valid choices: [http1, http2, http3]").Envar("CLOUDPING_PROBE_PROTOCOL").Default("http1").String()
	csvOutput      = kingpin.Flag("csv", "Write results as CSV instead of a table").Bool()
	sortOutput     = kingpin.Flag("sort", "Sort results by average RTT, lowest first").Short('s').Bool()
	listRegions    = kingpin.Flag("list", "List the regions of the directory without probing them").Short('l').Bool()
	listenAddress  = kingpin.Flag("web.listen-address", "Address on which to expose metrics while probing, empty disables the listener").Envar("CLOUDPING_WEB_LISTEN_ADDRESS").Default("").String()
	metricsPath    = kingpin.Flag("web.telemetry-path", "Path under which to expose metrics").Default("/metrics").String()
	rttMode        = kingpin.Flag("metrics.rttunit", "Export RTT metrics as either millis (default), or seconds, or both. Valid choices: [ms, s, both]").Default("ms").String()
	logLevel       = kingpin.Flag("log.level", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error, fatal]").Default("info").String()
	regionArgs     = kingpin.Arg("regions", "Region ids to probe, defaults to the whole directory").Strings()
)

func main() {
	_ = godotenv.Load()
	kingpin.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	setLogLevel(*logLevel)

	scale := rttUnitFromString(*rttMode)
	if scale == rttInvalid {
		kingpin.FatalUsage("metrics.rttunit must be `ms` for millis, or `s` for seconds, or `both`")
	}

	cfg, err := loadConfig()
	if err != nil {
		kingpin.FatalUsage("could not load config.path: %v", err)
	}

	if cfg.Probe.Interval.Duration() <= 0 {
		kingpin.FatalUsage("interval must be greater than 0")
	}
	if cfg.Probe.Timeout.Duration() <= 0 {
		kingpin.FatalUsage("timeout must be greater than 0")
	}
	if cfg.Probe.Count < 0 {
		kingpin.FatalUsage("count must not be negative")
	}

	if mpath := cfg.Web.TelemetryPath; mpath == "" {
		log.Warnln("web.telemetry-path is empty, correcting to `/metrics`")
		cfg.Web.TelemetryPath = "/metrics"
	} else if mpath[0] != '/' {
		cfg.Web.TelemetryPath = "/" + mpath
	}

	client, err := newProbeClient(cfg.Probe.Protocol, cfg.Probe.Timeout.Duration())
	if err != nil {
		kingpin.FatalUsage("probe.protocol must be one of `http1`, `http2` or `http3`")
	}

	entries, err := catalog.Fetch(&http.Client{Timeout: cfg.Catalog.Timeout.Duration()}, cfg.Catalog.URL)
	if err != nil {
		log.Fatalf("could not load region directory: %v", err)
	}

	entries = catalog.Filter(entries, cfg.Regions)
	if len(entries) == 0 {
		log.Fatalln("no region matches the requested ids")
	}

	if *listRegions {
		if err := writeRegionList(os.Stdout, entries, cfg.Report.CSV); err != nil {
			log.Fatalln(err)
		}
		return
	}

	regions := make([]*monitor.Region, len(entries))
	for i, e := range entries {
		regions[i] = monitor.NewRegion(e.Region, e.RegionName, e.URL)
	}

	if cfg.Web.ListenAddress != "" {
		go startServer(cfg, regions, scale)
	}

	m := monitor.New(monitor.NewHTTPProber(client), newReporter(cfg, os.Stdout), regions, cfg.Probe.Interval.Duration())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("probing %d regions every %s", len(regions), cfg.Probe.Interval.Duration())
	m.Run(ctx, cfg.Probe.Count)

	if ctx.Err() != nil {
		log.Infoln("user stopped the program")
	}
}

func printVersion() {
	fmt.Println("cloudping")
	fmt.Printf("Version: %s\n", version)
	fmt.Println("Latency prober for cloud region endpoints")
}

func setLogLevel(l string) {
	switch l {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// startServer exposes the collector for the probed regions. Scrapes see the
// samples recorded up to that point, a probing run does not depend on the
// listener in any way.
func startServer(cfg *config.Config, regions []*monitor.Region, scale rttUnit) {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, indexHTML, cfg.Web.TelemetryPath)
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(newRegionCollector(regions, scale))

	l := log.New()
	l.Level = log.ErrorLevel

	h := promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		ErrorLog:      l,
		ErrorHandling: promhttp.ContinueOnError,
	})
	http.Handle(cfg.Web.TelemetryPath, h)

	log.Infof("Listening for %s on %s", cfg.Web.TelemetryPath, cfg.Web.ListenAddress)
	if err := http.ListenAndServe(cfg.Web.ListenAddress, nil); err != nil {
		log.Errorln(err)
	}
}

func loadConfig() (*config.Config, error) {
	if *configFile == "" {
		cfg := config.Config{}
		addFlagToConfig(&cfg)

		return &cfg, nil
	}

	f, err := os.Open(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load config file: %w", err)
	}
	defer f.Close()

	cfg, err := config.FromYAML(f)
	if err == nil {
		addFlagToConfig(cfg)
	}

	return cfg, err
}

// addFlagToConfig updates cfg with command line flag values, unless the
// config has non-zero values.
func addFlagToConfig(cfg *config.Config) {
	if len(cfg.Regions) == 0 {
		cfg.Regions = *regionArgs
	}
	if cfg.Catalog.URL == "" {
		cfg.Catalog.URL = *catalogURL
	}
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout.Set(*catalogTimeout)
	}
	if cfg.Probe.Interval == 0 {
		cfg.Probe.Interval.Set(*probeInterval)
	}
	if cfg.Probe.Timeout == 0 {
		cfg.Probe.Timeout.Set(*probeTimeout)
	}
	if cfg.Probe.Count == 0 {
		cfg.Probe.Count = *probeCount
	}
	if cfg.Probe.Protocol == "" {
		cfg.Probe.Protocol = *probeProtocol
	}
	if !cfg.Report.CSV {
		cfg.Report.CSV = *csvOutput
	}
	if !cfg.Report.Sort {
		cfg.Report.Sort = *sortOutput
	}
	if cfg.Web.ListenAddress == "" {
		cfg.Web.ListenAddress = *listenAddress
	}
	if cfg.Web.TelemetryPath == "" {
		cfg.Web.TelemetryPath = *metricsPath
	}
}

const indexHTML = `<!doctype html>
<html>
<head>
	<meta charset="UTF-8">
	<title>cloudping (Version ` + version + `)</title>
</head>
<body>
	<h1>cloudping</h1>
	<p><a href="%s">Metrics</a></p>
	<h2>More information:</h2>
	<p><a href="https://github.com/czerwonk/cloudping">github.com/czerwonk/cloudping</a></p>
</body>
</html>
`

// Command aeolus-osc bridges OSC control surfaces to the Aeolus organ.
//
// OSC messages received over UDP are translated into the controller
// events Aeolus understands and sent to it over the ALSA sequencer. The
// organ is found by client name unless an endpoint is given.
//
// Usage:
//
//	aeolus-osc [flags]
//
// Flags:
//
//	-port int              OSC listen port (default 8080)
//	-aeolus string         Aeolus sequencer endpoint, client:port
//	-source string         Sequencer endpoint recorded as event source
//	-control-channel int   Aeolus control channel, 1-16 (default 1)
//	-v                     Verbose logging
//	-config string         YAML configuration file
//	-protocol-log string   File path for protocol event logging (CBOR format)
//	-advertise             Advertise the bridge over mDNS
//	-name string           Advertised service name (default "Aeolus OSC")
//	-interface string      Network interface for mDNS (default all)
//	-interactive           Start the interactive console
//	-probe                 Look for Aeolus in the background (default true)
//	-browse                List bridges on the network and exit
//	-version               Print the version and exit
//
// Examples:
//
//	# Find Aeolus automatically and listen on port 8080
//	aeolus-osc
//
//	# Talk to a fixed endpoint on channel 3, advertising the service
//	aeolus-osc -aeolus 128:0 -control-channel 3 -advertise
//
//	# Record protocol events while trying the console
//	aeolus-osc -interactive -protocol-log session.alog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aeolus-osc/aeolus-go/cmd/aeolus-osc/interactive"
	"github.com/aeolus-osc/aeolus-go/pkg/bridge"
	"github.com/aeolus-osc/aeolus-go/pkg/discovery"
	aeoluslog "github.com/aeolus-osc/aeolus-go/pkg/log"
	"github.com/aeolus-osc/aeolus-go/pkg/seq/rtmidi"
	"github.com/aeolus-osc/aeolus-go/pkg/version"
)

var (
	flagConfig  = defaultConfig()
	browseOnly  bool
	showVersion bool
)

func init() {
	flag.IntVar(&flagConfig.Port, "port", flagConfig.Port, "OSC listen port")
	flag.StringVar(&flagConfig.Aeolus, "aeolus", "", "Aeolus sequencer endpoint, client:port")
	flag.StringVar(&flagConfig.Source, "source", "", "Sequencer endpoint recorded as event source")
	flag.IntVar(&flagConfig.ControlChannel, "control-channel", flagConfig.ControlChannel, "Aeolus control channel, 1-16")
	flag.BoolVar(&flagConfig.Verbose, "v", false, "Verbose logging")
	flag.StringVar(&flagConfig.ConfigFile, "config", "", "YAML configuration file")
	flag.StringVar(&flagConfig.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flag.BoolVar(&flagConfig.Advertise, "advertise", false, "Advertise the bridge over mDNS")
	flag.StringVar(&flagConfig.Name, "name", flagConfig.Name, "Advertised service name")
	flag.StringVar(&flagConfig.Interface, "interface", "", "Network interface for mDNS (default all)")
	flag.BoolVar(&flagConfig.Interactive, "interactive", false, "Start the interactive console")
	flag.BoolVar(&flagConfig.Probe, "probe", flagConfig.Probe, "Look for Aeolus in the background")
	flag.BoolVar(&browseOnly, "browse", false, "List bridges on the network and exit")
	flag.BoolVar(&showVersion, "version", false, "Print the version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version.Product("aeolus-osc"))
		return
	}

	cfg := defaultConfig()
	if flagConfig.ConfigFile != "" {
		if err := loadConfigFile(flagConfig.ConfigFile, &cfg); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg = mergeConfig(cfg, flagConfig, set)

	setupLogging(cfg.Verbose)

	if browseOnly {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := browse(ctx, &discovery.MDNSBrowser{Interface: cfg.Interface}, os.Stdout); err != nil {
			log.Fatalf("Browse failed: %v", err)
		}
		return
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg Config) error {
	log.Println(version.Product("aeolus-osc"))
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Control channel: %d", cfg.ControlChannel)
	if cfg.Aeolus != "" {
		log.Printf("Aeolus: %s", cfg.Aeolus)
	}

	bc, err := bridgeConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	bc.Logger = newLogger(cfg.Verbose)

	// Set up protocol logging if requested
	var fileLogger *aeoluslog.FileLogger
	if cfg.ProtocolLog != "" {
		fileLogger, err = aeoluslog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("failed to create protocol logger: %w", err)
		}
		defer fileLogger.Close()
		log.Printf("Protocol logging to: %s", cfg.ProtocolLog)
	}
	bc.ProtocolLogger = protocolLogger(fileLogger, bc.Logger, cfg.Verbose)

	transport, err := rtmidi.New(sourceEndpoint(cfg))
	if err != nil {
		return fmt.Errorf("failed to open sequencer: %w", err)
	}
	defer transport.Close()

	session, err := bridge.NewSession(transport, bc)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	server := bridge.NewServer(session)
	if err := server.Listen(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errCh <- session.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		errCh <- server.ListenAndServe(ctx)
	}()
	log.Printf("Listening on %s", server.Addr())

	if cfg.Advertise {
		adv := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{
			Interface: cfg.Interface,
			TTL:       discovery.DefaultTTL,
		})
		host, _ := os.Hostname()
		if startAdvertising(ctx, adv, serviceInfo(cfg, udpPort(server.Addr()), host)) {
			defer adv.Stop()
		}
	}

	if cfg.Interactive {
		console, err := interactive.New(session)
		if err != nil {
			return err
		}
		log.SetOutput(console.Stderr())
		go console.Run(ctx, cancel)
	}

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Printf("Error: %v", err)
		}
	}

	log.Println("Shutting down...")
	cancel()
	wg.Wait()

	st := session.Stats()
	log.Printf("Messages: %d received, %d events sent, %d dropped, %d unrecognized, %d errors",
		st.Received, st.Sent, st.Dropped, st.Unrecognized, st.Errors)
	if fileLogger != nil && fileLogger.Dropped() > 0 {
		log.Printf("Warning: %d protocol events could not be written", fileLogger.Dropped())
	}
	log.Println("Goodbye!")
	return nil
}

func setupLogging(verbose bool) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	if verbose {
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}
}

// stdLogWriter forwards to the current output of the standard logger, so
// slog output follows log.SetOutput.
type stdLogWriter struct{}

func (stdLogWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(p)
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stdLogWriter{}, &slog.HandlerOptions{Level: level}))
}

// protocolLogger combines the protocol log file with a verbose slog echo.
// It returns nil when neither is wanted.
func protocolLogger(file *aeoluslog.FileLogger, logger *slog.Logger, verbose bool) aeoluslog.Logger {
	var loggers []aeoluslog.Logger
	// Only add the file logger when non-nil to avoid typed-nil interface issue.
	if file != nil {
		loggers = append(loggers, file)
	}
	if verbose && logger != nil {
		loggers = append(loggers, aeoluslog.NewSlogAdapter(logger))
	}
	switch len(loggers) {
	case 0:
		return nil
	case 1:
		return loggers[0]
	}
	return aeoluslog.NewMultiLogger(loggers...)
}

// serviceInfo describes the bridge for mDNS.
func serviceInfo(cfg Config, port int, host string) *discovery.ServiceInfo {
	info := &discovery.ServiceInfo{
		InstanceName: discovery.InstanceName(cfg.Name, host),
		Port:         uint16(port),
		Protocol:     version.Current,
		Channel:      cfg.ControlChannel,
	}
	if len(cfg.Instruments) > 0 {
		info.Instrument = cfg.Instruments[0]
	} else {
		info.Instrument = bridge.DefaultConfig().InstrumentNames[0]
	}
	return info
}

// startAdvertising publishes info. Failure is logged, not fatal.
func startAdvertising(ctx context.Context, adv discovery.Advertiser, info *discovery.ServiceInfo) bool {
	if err := adv.Advertise(ctx, info); err != nil {
		log.Printf("Warning: mDNS advertisement failed: %v", err)
		return false
	}
	log.Printf("Advertising %q as %s", info.InstanceName, discovery.ServiceType)
	return true
}

func udpPort(addr net.Addr) int {
	if ua, ok := addr.(*net.UDPAddr); ok {
		return ua.Port
	}
	return 0
}

// browse prints the bridges found until ctx is done.
func browse(ctx context.Context, b discovery.Browser, w io.Writer) error {
	services, err := b.Browse(ctx)
	if err != nil {
		return err
	}
	n := 0
	for svc := range services {
		n++
		fmt.Fprintf(w, "%s\n", svc.InstanceName)
		fmt.Fprintf(w, "  host: %s port: %d\n", svc.Host, svc.Port)
		fmt.Fprintf(w, "  addresses: %v\n", svc.Addresses)
		fmt.Fprintf(w, "  protocol: %s channel: %d instrument: %s\n", svc.Protocol, svc.Channel, svc.Instrument)
	}
	if n == 0 {
		fmt.Fprintln(w, "No bridges found")
	}
	return nil
}

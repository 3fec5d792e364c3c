package main

import (
	"bufio"
	"flag"
	"log"
	"time"

	"github.com/tarm/serial"

	"pulsetime/host/monitor"
)

var (
	configPath = flag.String("config", "", "YAML config file")
	device     = flag.String("device", "", "serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "baud rate (overrides config)")
	verbose    = flag.Bool("verbose", false, "log every parsed sample")
)

func main() {
	log.SetPrefix("pulsetime-monitor: ")
	log.SetFlags(0)
	flag.Parse()

	cfg, err := monitor.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *device != "" {
		cfg.Device = *device
	}
	if *baud != 0 {
		cfg.Baud = *baud
	}

	port, err := serial.OpenPort(&serial.Config{Name: cfg.Device, Baud: cfg.Baud})
	if err != nil {
		log.Fatalf("open %s: %v", cfg.Device, err)
	}
	defer port.Close()
	log.Printf("listening on %s", cfg.Device)

	var stats monitor.OffsetStats
	interval := time.Duration(cfg.ReportInterval)
	nextReport := time.Now().Add(interval)

	scanner := bufio.NewScanner(port)
	for scanner.Scan() {
		sample, err := monitor.ParseLine(scanner.Text())
		if err != nil {
			log.Printf("skip: %v", err)
			continue
		}

		// Positive offset means the device clock is behind the host.
		offset := time.Since(time.UnixMilli(int64(sample.EpochMillis)))
		stats.Add(offset)
		if *verbose {
			log.Printf("%s offset=%v edge=%v",
				sample.Timestamp.Format("2006-01-02 15:04:05.000"), offset, sample.EdgeSynced)
		}

		if time.Now().After(nextReport) {
			nextReport = time.Now().Add(interval)
			log.Printf("samples=%d offset min=%v max=%v mean=%v",
				stats.Count(), stats.Min(), stats.Max(), stats.Mean())
			stats.Reset()
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read %s: %v", cfg.Device, err)
	}
}

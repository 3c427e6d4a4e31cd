package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jinchangsung/safetyspeak2/internal/extract"
	"github.com/jinchangsung/safetyspeak2/internal/models"
)

func main() {
	var (
		url        = flag.String("url", "", "Target URL (web page or YouTube video)")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
		stealth    = flag.Bool("stealth", true, "Enable stealth mode (bot detection evasion)")
		verbose    = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -url https://example.com\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -url https://youtu.be/abc123 -o captions.txt\n", os.Args[0])
	}

	flag.Parse()

	if *url == "" {
		fmt.Fprintf(os.Stderr, "Error: URL is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Fetching: %s\n", *url)
	}

	web, err := extract.NewWebExtractor(&extract.WebOptions{Stealth: *stealth})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to start browser: %v\n", err)
		os.Exit(1)
	}
	defer web.Close()

	service := extract.NewService(web)
	source := models.Source{Type: models.SourceTypeURL, URL: *url}
	if isYouTube(*url) {
		source.Type = models.SourceTypeYouTube
	}

	text, err := service.Extract(context.Background(), source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to write output: %v\n", err)
			os.Exit(1)
		}
		if *verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", *outputFile)
		}
		return
	}

	fmt.Println(text)
}

func isYouTube(url string) bool {
	return strings.Contains(url, "youtube.com/") || strings.Contains(url, "youtu.be/")
}

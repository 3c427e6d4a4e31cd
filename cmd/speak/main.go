package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jinchangsung/safetyspeak2/internal/speech"
)

func main() {
	var (
		inputFile  = flag.String("i", "", "Input text file (UTF-8)")
		outputFile = flag.String("o", "output.wav", "Output WAV file")
		modelDir   = flag.String("model", "models/vits-mimic3-ko_KO-kss_low", "TTS model directory path")
		numThreads = flag.Int("threads", 2, "Number of threads for inference")
		speed      = flag.Float64("speed", 1.0, "Speech speed (1.0 = normal)")
		verbose    = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -i notice.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i notice.txt -o notice.wav -speed 0.9\n", os.Args[0])
	}

	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: Input file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	text, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to read input: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Loading model from: %s\n", *modelDir)
	}

	config, err := speech.NewConfig(*modelDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.NumThreads = *numThreads
	config.Speed = float32(*speed)

	synthesizer, err := speech.NewSynthesizer(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to create synthesizer: %v\n", err)
		os.Exit(1)
	}
	defer synthesizer.Close()

	audio, err := synthesizer.Synthesize(context.Background(), string(text))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Synthesis failed: %v\n", err)
		os.Exit(1)
	}

	if err := speech.WriteWAV(*outputFile, audio); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to write WAV: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%.1fs)\n", *outputFile, audio.Duration().Seconds())
	}
}

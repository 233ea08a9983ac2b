// Command textstat reports how the textpack codecs handle a set of files.
//
// For every file it prints the Huffman code size and the window compressor's
// token count and archive size, and verifies that both round trip.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/op/go-logging"

	"github.com/seiflotfy/textpack"
	"github.com/seiflotfy/textpack/huffman"
)

const progName = "textstat"

var log = logging.MustGetLogger(progName)

func startLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatter := logging.MustStringFormatter("%{level:-7s} %{module:-18s} | %{message}")
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, formatter))
	leveled.SetLevel(logging.INFO, "")
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	}
	logging.SetBackend(leveled)
}

func main() {
	window := flag.Int("window", 100, "sliding window size in symbols")
	showCodes := flag.Bool("codes", false, "print the Huffman code table")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file...\n", progName)
		flag.PrintDefaults()
	}
	flag.Parse()
	startLogging(*verbose)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := textpack.NewCompressor(textpack.WithWindowSize(*window))
	if err != nil {
		log.Error(err)
		os.Exit(2)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := report(c, path, *showCodes); err != nil {
			log.Errorf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func report(c *textpack.Compressor, path string, showCodes bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := string(data)
	symbols := len([]rune(text))

	fmt.Printf("%s: %d bytes, %d symbols\n", filepath.Base(path), len(data), symbols)

	codec := huffman.New(text)
	bits, err := codec.Encode(text)
	if err != nil {
		return err
	}
	if decoded, err := codec.Decode(bits); err != nil {
		return err
	} else if decoded != text {
		return fmt.Errorf("huffman round trip mismatch")
	}
	fmt.Printf("  Huffman: %d distinct symbols, depth %d, %d bits (%d bytes packed)\n",
		codec.Frequencies().Len(), codec.Tree().Depth(), len(bits), (len(bits)+7)/8)
	if symbols > 0 {
		fmt.Printf("  Huffman: %.3f bits/symbol\n", float64(len(bits))/float64(symbols))
	}
	if showCodes {
		fmt.Print(codec)
	}

	a := c.Archive(text)
	encoded, err := a.MarshalBinary()
	if err != nil {
		return err
	}
	if decoded, err := a.Text(); err != nil {
		return err
	} else if decoded != text {
		return fmt.Errorf("window round trip mismatch")
	}

	literals := 0
	copied := 0
	for _, tok := range a.Tokens {
		if tok.IsLiteral() {
			literals++
		}
		copied += tok.Length
	}
	fmt.Printf("  Window %d: %d tokens (%d literals), %d symbols copied, %d archive bytes\n",
		c.WindowSize(), len(a.Tokens), literals, copied, len(encoded))
	if len(data) > 0 {
		fmt.Printf("  Window %d: ratio %.2fx\n", c.WindowSize(), float64(len(data))/float64(len(encoded)))
	}
	return nil
}

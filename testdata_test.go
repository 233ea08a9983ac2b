package textpack

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/seiflotfy/textpack/huffman"
)

// TestAllTestdataFiles runs both codecs over every file in testdata/
func TestAllTestdataFiles(t *testing.T) {
	testdataDir := "testdata"

	files, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("Failed to read testdata directory: %v", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		filename := file.Name()
		t.Run(filename, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(testdataDir, filename))
			if err != nil {
				t.Fatalf("Failed to read %s: %v", filename, err)
			}
			text := string(data)

			t.Run("Huffman", func(t *testing.T) {
				testHuffmanCompression(t, text)
			})

			for _, window := range []int{1, 16, 100} {
				c := mustCompressor(t, WithWindowSize(window))
				t.Run(fmt.Sprintf("Window%d", window), func(t *testing.T) {
					testWindowCompression(t, c, text)
				})
			}
		})
	}
}

func testHuffmanCompression(t *testing.T, text string) {
	codec := huffman.New(text)
	bits, err := codec.Encode(text)
	if err != nil {
		t.Fatal(err)
	}
	got, err := codec.Decode(bits)
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Fatal("Huffman round trip mismatch")
	}

	symbols := len([]rune(text))
	// A fixed-width code needs ceil(log2(alphabet)) bits per symbol.
	fixed := 0
	for 1<<fixed < codec.Frequencies().Len() {
		fixed++
	}
	fixed = max(fixed, 1)
	if len(bits) > symbols*fixed {
		t.Errorf("Huffman used %d bits, fixed-width code needs %d", len(bits), symbols*fixed)
	}
	t.Logf("Huffman: %d symbols, %d bits (%.2f bits/symbol)", symbols, len(bits), float64(len(bits))/float64(symbols))
}

func testWindowCompression(t *testing.T, c *Compressor, text string) {
	a := c.Archive(text)
	data, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var loaded Archive
	if err := loaded.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	got, err := loaded.Text()
	if err != nil {
		t.Fatal(err)
	}
	if got != text {
		t.Fatalf("window %d: round trip mismatch", c.WindowSize())
	}
	t.Logf("Window %d: %d symbols, %d tokens, %d archive bytes",
		c.WindowSize(), len([]rune(text)), len(a.Tokens), len(data))
}

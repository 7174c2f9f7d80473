package definition

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Rank file header layout.
const (
	rankLabelOffset    = 32
	rankLabelSize      = 32
	rankMnemonicOffset = 32 + 32 + 56
	rankMnemonicSize   = 8
)

// RankHeader holds the display strings of a rank file.
type RankHeader struct {
	Label    string
	Mnemonic string
}

// ReadRankHeader reads the label and mnemonic fields. Both are
// NUL-terminated; '$' marks a line break.
func ReadRankHeader(r io.ReaderAt) (RankHeader, error) {
	label, err := readField(r, rankLabelOffset, rankLabelSize)
	if err != nil {
		return RankHeader{}, fmt.Errorf("label: %w", err)
	}
	mnemonic, err := readField(r, rankMnemonicOffset, rankMnemonicSize)
	if err != nil {
		return RankHeader{}, fmt.Errorf("mnemonic: %w", err)
	}
	return RankHeader{Label: label, Mnemonic: mnemonic}, nil
}

// ReadRankFile reads the header of the rank file at path.
func ReadRankFile(path string) (RankHeader, error) {
	f, err := os.Open(path)
	if err != nil {
		return RankHeader{}, err
	}
	defer f.Close()
	return ReadRankHeader(f)
}

func readField(r io.ReaderAt, off int64, size int) (string, error) {
	buf := make([]byte, size)
	n, err := r.ReadAt(buf, off)
	if n < size {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.ReplaceAll(string(buf), "$", "\n"), nil
}

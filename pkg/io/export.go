package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/coalition/pkg/ballot"
)

// WriteProfile writes p to w, one ballot per line.
func WriteProfile(p ballot.Profile, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, b := range p {
		if _, err := fmt.Fprintln(bw, b.String()); err != nil {
			return fmt.Errorf("write ballot: %w", err)
		}
	}
	return bw.Flush()
}

// ExportProfile writes p to a file at path, creating parent directories.
func ExportProfile(p ballot.Profile, path string) error {
	return create(path, func(w io.Writer) error { return WriteProfile(p, w) })
}

// WriteOrders writes one order per line.
func WriteOrders(orders []ballot.Order, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, o := range orders {
		if _, err := fmt.Fprintln(bw, o.String()); err != nil {
			return fmt.Errorf("write order: %w", err)
		}
	}
	return bw.Flush()
}

// ExportOrders writes orders to a file at path.
func ExportOrders(orders []ballot.Order, path string) error {
	return create(path, func(w io.Writer) error { return WriteOrders(orders, w) })
}

func create(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

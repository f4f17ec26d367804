/*
 * compressed.go, part of goimodfit.
 *
 *
 * Copyright 2024 The goimodfit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package chem

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression returns the compression extension of fname (".gz" or ".zst"),
//or the empty string if the file is not compressed.
func Compression(fname string) string {
	ext := strings.ToLower(filepath.Ext(fname))
	switch ext {
	case ".gz", ".zst":
		return ext
	}
	return ""
}

//TrimCompression returns fname without its compression extension, if any.
func TrimCompression(fname string) string {
	if Compression(fname) == "" {
		return fname
	}
	return fname[:len(fname)-len(filepath.Ext(fname))]
}

//Ext returns the lower-case extension of fname, ignoring compression extensions,
//so "1oel.cif.gz" gives ".cif".
func Ext(fname string) string {
	return strings.ToLower(filepath.Ext(TrimCompression(fname)))
}

//zstd.Decoder doesn't implement io.ReadCloser, and its IOReadCloser
//doesn't close the underlying file.
type zstdFile struct {
	*zstd.Decoder
	f *os.File
}

func (Z zstdFile) Close() error {
	Z.Decoder.Close()
	return Z.f.Close()
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (G gzipFile) Close() error {
	G.Reader.Close()
	return G.f.Close()
}

//OpenAny opens fname and returns a reader for its contents, decompressing them
//first if the file extension is .gz (gzip) or .zst (zstd). Any other file
//is returned as is.
func OpenAny(fname string) (io.ReadCloser, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, Error{err.Error(), fname, []string{"os.Open", "OpenAny"}, true}
	}
	switch Compression(fname) {
	case ".gz":
		r, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), fname, []string{"gzip.NewReader", "OpenAny"}, true}
		}
		return gzipFile{r, f}, nil
	case ".zst":
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), fname, []string{"zstd.NewReader", "OpenAny"}, true}
		}
		return zstdFile{r, f}, nil
	}
	return f, nil
}

//Decompress writes the uncompressed contents of fname to target.
func Decompress(fname, target string) error {
	in, err := OpenAny(fname)
	if err != nil {
		return errDecorate(err, "Decompress")
	}
	defer in.Close()
	out, err := os.Create(target)
	if err != nil {
		return Error{err.Error(), target, []string{"os.Create", "Decompress"}, true}
	}
	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return Error{err.Error(), fname, []string{"io.Copy", "Decompress"}, true}
	}
	return out.Close()
}

/*
 * fetch.go, part of goLigPrep.
 *
 * Copyright 2025 Raul Mera A. (rmeraaatacademicosdotutadotcl)
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

//Package fetch downloads ligand structures from the PDB chemical
//component dictionary by their short code.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	chem "github.com/rmera/goligprep"
)

// DefaultBaseURL serves one PDB file per chemical component, named
// <CODE>_<variant>.pdb, some mirrors gzip them as <CODE>_<variant>.pdb.gz.
const DefaultBaseURL = "https://files.rcsb.org/ligands/download"

// Coordinate variants offered by the dictionary. Ideal coordinates are
// computed; Model coordinates come from a representative crystal
// structure.
const (
	Ideal = "ideal"
	Model = "model"
)

// A Fetcher downloads ligand structures. The zero value is not usable;
// get one with NewFetcher.
type Fetcher struct {
	BaseURL string
	Variant string //Ideal or Model
	Client  *http.Client
}

// NewFetcher returns a Fetcher with the default source (the RCSB
// component dictionary, ideal coordinates) and a 30 s timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		BaseURL: DefaultBaseURL,
		Variant: Ideal,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Structure downloads the structure for the ligand code and writes it,
// PDB-formatted, to path. An unknown code is an error; there is no retry,
// a failed download halts the pipeline run.
func (F *Fetcher) Structure(ctx context.Context, code chem.Code, path string) error {
	body, err := F.get(ctx, fmt.Sprintf("%s/%s_%s.pdb", F.BaseURL, code, F.Variant))
	if err != nil {
		return chem.DecorateErr(err, "fetch.Structure")
	}
	//cheap sanity check before anything downstream trusts this file.
	if !bytes.Contains(body, []byte("ATOM")) && !bytes.Contains(body, []byte("HETATM")) {
		return chem.Errorf("fetch.Structure", "downloaded file for %s has no atom records", code)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return chem.DecorateErr(err, "fetch.Structure")
	}
	return nil
}

func (F *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := F.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, chem.Errorf("fetch.get", "structure not found at %s: is the ligand code right?", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, chem.Errorf("fetch.get", "GET %s: %s", url, resp.Status)
	}
	var r io.Reader = resp.Body
	//Some mirrors serve the files gzipped without setting Content-Encoding,
	//so we also sniff the magic bytes.
	if resp.Header.Get("Content-Encoding") == "gzip" ||
		strings.HasSuffix(url, ".gz") ||
		resp.Header.Get("Content-Type") == "application/gzip" {
		gz, err2 := gzip.NewReader(resp.Body)
		if err2 != nil {
			return nil, chem.DecorateErr(err2, "fetch.get")
		}
		defer gz.Close()
		r = gz
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b {
		gz, err2 := gzip.NewReader(bytes.NewReader(body))
		if err2 != nil {
			return nil, chem.DecorateErr(err2, "fetch.get")
		}
		defer gz.Close()
		return io.ReadAll(gz)
	}
	return body, nil
}

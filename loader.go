/*
 * loader.go, part of goff.
 *
 * Copyright 2022 Raul Mera <rmera{at}usachDOTcl>
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
 * goff is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package ff

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//Loader loads forcefield XML files and caches the parsed result by name, so
//repeated lookups of one forcefield pay the parse only once. Forcefield files
//can be plain .xml or zstd-compressed .xml.zst. A Loader is not safe for
//concurrent use; give each goroutine its own.
type Loader struct {
	loaded      map[string]*ForceField
	custom      map[string]string
	overwritten map[string]bool
}

//NewLoader returns an empty Loader.
func NewLoader() *Loader {
	L := new(Loader)
	L.loaded = make(map[string]*ForceField)
	L.custom = make(map[string]string)
	L.overwritten = make(map[string]bool)
	return L
}

//Load returns the forcefield for ffname, which is either a path to a
//forcefield XML file or the name of a forcefield previously registered with
//RegisterCustom. Results are cached under the base name of the file, without
//extension; use ClearCache (or RegisterCustom with overwrite) if the file
//changed on disk.
func (L *Loader) Load(ffname string) (*ForceField, error) {
	key := stem(ffname)
	if F, ok := L.loaded[key]; ok && !L.overwritten[key] {
		return F, nil
	}
	path := ffname
	if custom, ok := L.custom[ffname]; ok {
		path = custom
		key = ffname
		delete(L.overwritten, ffname)
	} else if !isForceFieldFile(ffname) {
		return nil, fmt.Errorf("Forcefield %q not found: neither a registered name nor an XML file", ffname)
	}
	F, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	L.loaded[key] = F
	return F, nil
}

//Get returns the cached forcefield for the given name, if there is one.
func (L *Loader) Get(name string) (*ForceField, bool) {
	F, ok := L.loaded[name]
	return F, ok
}

//RegisterCustom registers a name for a forcefield XML path, so the file can be
//loaded by name. Re-registering an existing name requires overwrite to be
//given and true; the next Load of that name re-reads the file.
func (L *Loader) RegisterCustom(name, path string, overwrite ...bool) error {
	ow := len(overwrite) > 0 && overwrite[0]
	if prev, taken := L.custom[name]; taken {
		if !ow {
			return fmt.Errorf("Forcefield %q is already registered to %q. Use overwrite if you mean to replace it", name, prev)
		}
		L.overwritten[name] = true
	}
	L.custom[name] = path
	return nil
}

//ClearCache drops all cached forcefields. Registered names are kept.
func (L *Loader) ClearCache() {
	L.loaded = make(map[string]*ForceField)
	L.overwritten = make(map[string]bool)
}

func loadFile(path string) (*ForceField, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to open forcefield file: %w", err)
	}
	defer file.Close()
	var in io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("Unable to read compressed forcefield file %s: %w", path, err)
		}
		defer dec.Close()
		in = dec
	}
	F, err := ParseXML(in)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse forcefield file %s: %w", path, err)
	}
	return F, nil
}

func isForceFieldFile(path string) bool {
	return strings.HasSuffix(path, ".xml") || strings.HasSuffix(path, ".xml.zst")
}

func stem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".zst")
	return strings.TrimSuffix(base, ".xml")
}

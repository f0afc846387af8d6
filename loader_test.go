/*
 * loader_test.go, part of goff.
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
	"io"
	"os"
	"reflect"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLoaderCache(Te *testing.T) {
	L := NewLoader()
	F1, err := L.Load("test/propanol.xml")
	if err != nil {
		Te.Fatal(err)
	}
	F2, err := L.Load("test/propanol.xml")
	if err != nil {
		Te.Fatal(err)
	}
	if F1 != F2 {
		Te.Error("The second load should come from the cache")
	}
	if F, ok := L.Get("propanol"); !ok || F != F1 {
		Te.Error("The cache key should be the base name without extension")
	}
	L.ClearCache()
	if _, ok := L.Get("propanol"); ok {
		Te.Error("ClearCache should drop cached forcefields")
	}
	F3, err := L.Load("test/propanol.xml")
	if err != nil {
		Te.Fatal(err)
	}
	if F3 == F1 {
		Te.Error("After ClearCache the file should be read again")
	}
}

func TestLoaderCustom(Te *testing.T) {
	L := NewLoader()
	if err := L.RegisterCustom("trappe", "test/propanol.xml"); err != nil {
		Te.Fatal(err)
	}
	F, err := L.Load("trappe")
	if err != nil {
		Te.Fatal(err)
	}
	if F.Name() != "TraPPE-UA-2-propanol" {
		Te.Errorf("Loaded the wrong file: %s", F.Name())
	}
	//a taken name needs an explicit overwrite
	if err := L.RegisterCustom("trappe", "test/ethylene.xml"); err == nil {
		Te.Error("Re-registering a taken name should fail without overwrite")
	}
	if err := L.RegisterCustom("trappe", "test/ethylene.xml", true); err != nil {
		Te.Fatal(err)
	}
	F2, err := L.Load("trappe")
	if err != nil {
		Te.Fatal(err)
	}
	if F2.Name() != "ethylene-example" {
		Te.Errorf("The overwritten name should load the new file, got %s", F2.Name())
	}
}

func TestLoaderZst(Te *testing.T) {
	//build a compressed copy and check it loads to the same forcefield
	plain, err := os.Open("test/propanol.xml")
	if err != nil {
		Te.Fatal(err)
	}
	defer plain.Close()
	comp, err := os.Create("test/propanol-compressed.xml.zst")
	if err != nil {
		Te.Fatal(err)
	}
	enc, err := zstd.NewWriter(comp)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := io.Copy(enc, plain); err != nil {
		Te.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		Te.Fatal(err)
	}
	if err := comp.Close(); err != nil {
		Te.Fatal(err)
	}
	L := NewLoader()
	Fz, err := L.Load("test/propanol-compressed.xml.zst")
	if err != nil {
		Te.Fatal(err)
	}
	F := parseTestFile(Te, "test/propanol.xml")
	if !reflect.DeepEqual(F, Fz) {
		Te.Error("The compressed copy should parse to the same forcefield")
	}
	if _, ok := L.Get("propanol-compressed"); !ok {
		Te.Error("The cache key should drop both extensions")
	}
}

func TestLoaderNotFound(Te *testing.T) {
	L := NewLoader()
	if _, err := L.Load("nosuchforcefield"); err == nil {
		Te.Error("An unregistered, non-XML name should fail")
	}
	if _, err := L.Load("test/nosuchfile.xml"); err == nil {
		Te.Error("A missing file should fail")
	}
}

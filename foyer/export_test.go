/*
 * export_test.go, part of goff.
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

package foyer

import (
	"os"
	"strings"
	"testing"

	ff "github.com/rmera/goff"
)

func parseSource(Te *testing.T, name string) *ff.ForceField {
	f, err := os.Open(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	F, err := ff.ParseXML(f)
	if err != nil {
		Te.Fatal(err)
	}
	return F
}

func TestExportPropanol(Te *testing.T) {
	src := parseSource(Te, "../test/propanol.xml")
	out, err := Export(src)
	if err != nil {
		Te.Fatal(err)
	}
	if out.Name != "TraPPE-UA-2-propanol" || out.Version != "0.0.2" {
		Te.Errorf("Bad identity: %s %s", out.Name, out.Version)
	}
	if out.CombiningRule != "geometric" {
		Te.Errorf("Bad combining rule: %q", out.CombiningRule)
	}
	if out.Coulomb14Scale != 0.0 || out.LJ14Scale != 0.0 {
		Te.Errorf("Bad scalings: %v %v", out.Coulomb14Scale, out.LJ14Scale)
	}
	if len(out.AtomTypes) != 4 || len(out.NonBonded) != 4 {
		Te.Fatalf("Expected 4 atom types and 4 nonbonded records, got %d and %d", len(out.AtomTypes), len(out.NonBonded))
	}
	//atom types keep declaration order, so O is the third
	o := out.NonBonded[2]
	if o.AtomType != "O" {
		Te.Fatalf("Atom types out of order: %s", o.AtomType)
	}
	if o.Epsilon.Value != 0.184809996053596 || o.Epsilon.Unit.String() != "kcal/mol" {
		Te.Errorf("Epsilon should be carried through unconverted, got %v", o.Epsilon)
	}
	if o.Charge.Value != -0.7 {
		Te.Errorf("Bad charge: %v", o.Charge)
	}
	if len(o.Extra) != 0 {
		Te.Errorf("Nothing here beyond sigma and epsilon, got %v", o.Extra)
	}
	if len(out.HarmonicBonds) != 3 || len(out.HarmonicAngles) != 3 {
		Te.Errorf("Expected 3 bonds and 3 angles, got %d and %d", len(out.HarmonicBonds), len(out.HarmonicAngles))
	}
	b := out.HarmonicBonds[0]
	if b.Class1 != "CH3" || b.Class2 != "CH" || b.Type1 != "" {
		Te.Errorf("Bad bond members: %+v", b)
	}
	if b.Length.Value != 0.154 || b.Length.Unit.String() != "nm" {
		Te.Errorf("r_eq should become the length field, got %v", b.Length)
	}
	a := out.HarmonicAngles[0]
	if a.Angle.Value != 109.47 || a.Angle.Unit.String() != "degree" {
		Te.Errorf("theta_eq should become the angle field, got %v", a.Angle)
	}
	//both dihedral orientations export as separate periodic torsions
	if len(out.PeriodicTorsions) != 2 || len(out.RBTorsions) != 0 {
		Te.Fatalf("Expected 2 periodic torsions, got %d periodic and %d RB", len(out.PeriodicTorsions), len(out.RBTorsions))
	}
	p := out.PeriodicTorsions[0]
	if p.Class1 != "CH3" || p.Class4 != "H" {
		Te.Errorf("Member order must be preserved: %+v", p)
	}
	if p.K.Value != 3.4075 || p.Periodicity.Value != 3.0 || p.Phase.Value != 0.0 {
		Te.Errorf("Bad torsion parameters: %+v", p)
	}
	//the source must not have been touched
	if src.AtomType("O").Parameters["epsilon"].Value != 0.184809996053596 {
		Te.Error("The source forcefield changed during export")
	}
}

func TestExportEthylene(Te *testing.T) {
	src := parseSource(Te, "../test/ethylene.xml")
	out, err := Export(src)
	if err != nil {
		Te.Fatal(err)
	}
	if out.CombiningRule != "lorentz" {
		Te.Errorf("Bad combining rule: %q", out.CombiningRule)
	}
	h := out.AtomTypes[1]
	if h.Name != "opls_144" || h.Def != "[H][C;X3]" {
		Te.Errorf("Bad atom type: %+v", h)
	}
	if len(h.Overrides) != 1 || h.Overrides[0] != "opls_140" {
		Te.Errorf("Bad overrides: %v", h.Overrides)
	}
	//a parameter with no Foyer field rides along in Extra
	if _, ok := out.NonBonded[0].Extra["e0"]; !ok {
		Te.Errorf("Missing extra parameter: %v", out.NonBonded[0].Extra)
	}
	b := out.HarmonicBonds[1]
	if b.Type1 != "opls_143" || b.Type2 != "opls_144" || b.Class1 != "" {
		Te.Errorf("By-type members should land in the type fields: %+v", b)
	}
	if len(out.RBTorsions) != 1 {
		Te.Fatalf("Expected one RB torsion, got %d", len(out.RBTorsions))
	}
	rb := out.RBTorsions[0]
	if rb.Type1 != "*" || rb.Type2 != "opls_143" {
		Te.Errorf("Bad RB members: %+v", rb)
	}
	if rb.C0.Value != 58.576 || rb.C2.Value != -58.576 || rb.C5.Value != 0.0 {
		Te.Errorf("Bad RB coefficients: %+v", rb)
	}
	if len(out.PeriodicImpropers) != 1 {
		Te.Fatalf("Expected one periodic improper, got %d", len(out.PeriodicImpropers))
	}
	imp := out.PeriodicImpropers[0]
	if imp.Class1 != "CM" || imp.Phase.Value != 180.0 || imp.Phase.Unit.String() != "degree" {
		Te.Errorf("Bad improper: %+v", imp)
	}
}

func TestExportUnsupportedRule(Te *testing.T) {
	doc := `<ForceField><FFMetaData combiningRule="explicit"/></ForceField>`
	src, err := ff.ParseXML(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	out, err := Export(src)
	if err == nil {
		Te.Fatal("The explicit combining rule has no Foyer equivalent and should fail")
	}
	ce, ok := err.(*UnsupportedCombiningRuleError)
	if !ok {
		Te.Fatalf("Wrong error type: %T %v", err, err)
	}
	if ce.Rule != "explicit" {
		Te.Errorf("Bad error detail: %v", ce)
	}
	if out != nil {
		Te.Error("A failed export must not return a partial result")
	}
}

func TestExportNoTransformation(Te *testing.T) {
	//a Mie-style atom type has no sigma/epsilon pair to put in the
	//nonbonded record
	doc := `<ForceField><FFMetaData electrostatics14Scale="0.5" nonBonded14Scale="0.5"/>` +
		`<AtomTypes expression="(n/(n-m))*(n/m)**(m/(n-m))*eps*((sig/r)**n - (sig/r)**m)">` +
		`<ParametersUnitDef parameter="eps" unit="kJ/mol"/><ParametersUnitDef parameter="sig" unit="nm"/>` +
		`<ParametersUnitDef parameter="n" unit="dimensionless"/><ParametersUnitDef parameter="m" unit="dimensionless"/>` +
		`<AtomType name="mie_1"><Parameters><Parameter name="eps" value="0.6"/><Parameter name="sig" value="0.4"/>` +
		`<Parameter name="n" value="12.0"/><Parameter name="m" value="6.0"/></Parameters></AtomType>` +
		`</AtomTypes></ForceField>`
	src, err := ff.ParseXML(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	out, err := Export(src)
	if err == nil {
		Te.Fatal("A functional form with no Foyer counterpart should fail")
	}
	tr, ok := err.(*TransformationError)
	if !ok {
		Te.Fatalf("Wrong error type: %T %v", err, err)
	}
	if tr.Collection != "AtomTypes" || tr.Key != "mie_1" {
		Te.Errorf("Bad error detail: %v", tr)
	}
	if out != nil {
		Te.Error("A failed export must not return a partial result")
	}
}

func TestExportMassFill(Te *testing.T) {
	//no mass attribute, but a known element: the reference mass fills in
	doc := `<ForceField><AtomTypes expression="4*epsilon*((sigma/r)**12 - (sigma/r)**6)">` +
		`<ParametersUnitDef parameter="epsilon" unit="kJ/mol"/><ParametersUnitDef parameter="sigma" unit="nm"/>` +
		`<AtomType name="c_generic" element="C"><Parameters><Parameter name="epsilon" value="0.3"/><Parameter name="sigma" value="0.35"/></Parameters></AtomType>` +
		`</AtomTypes></ForceField>`
	src, err := ff.ParseXML(strings.NewReader(doc))
	if err != nil {
		Te.Fatal(err)
	}
	out, err := Export(src)
	if err != nil {
		Te.Fatal(err)
	}
	m := out.AtomTypes[0].Mass
	if m.Value != 12.01 || m.Unit.String() != "amu" {
		Te.Errorf("The element reference mass should fill in, got %v", m)
	}
}

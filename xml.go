/*
 * xml.go, part of goff.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package ff

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/goff/units"
)

//The raw shapes of the GMSO forcefield XML dialect, as encoding/xml sees them.
//Numeric attributes are kept as strings here so that bad values can be
//reported with the right error instead of failing inside the decoder.

type xmlParameter struct {
	Name   string   `xml:"name,attr"`
	Value  string   `xml:"value,attr,omitempty"`
	Values []string `xml:"Value,omitempty"` //sequence form, for array-valued parameters
}

type xmlParameters struct {
	Parameters []xmlParameter `xml:"Parameter"`
}

type xmlUnitDef struct {
	Parameter string `xml:"parameter,attr"`
	Unit      string `xml:"unit,attr"`
}

type xmlAtomType struct {
	Name        string         `xml:"name,attr"`
	AtomClass   string         `xml:"atomclass,attr,omitempty"`
	Element     string         `xml:"element,attr,omitempty"`
	Charge      string         `xml:"charge,attr,omitempty"`
	Mass        string         `xml:"mass,attr,omitempty"`
	Expression  string         `xml:"expression,attr,omitempty"`
	IndepVars   string         `xml:"independent_variables,attr,omitempty"`
	Definition  string         `xml:"definition,attr,omitempty"`
	Description string         `xml:"description,attr,omitempty"`
	DOI         string         `xml:"doi,attr,omitempty"`
	Overrides   string         `xml:"overrides,attr,omitempty"`
	Extra       []xml.Attr     `xml:",any,attr"`
	Parameters  *xmlParameters `xml:"Parameters"`
}

type xmlBondedType struct {
	Name       string         `xml:"name,attr,omitempty"`
	Class1     string         `xml:"class1,attr,omitempty"`
	Class2     string         `xml:"class2,attr,omitempty"`
	Class3     string         `xml:"class3,attr,omitempty"`
	Class4     string         `xml:"class4,attr,omitempty"`
	Type1      string         `xml:"type1,attr,omitempty"`
	Type2      string         `xml:"type2,attr,omitempty"`
	Type3      string         `xml:"type3,attr,omitempty"`
	Type4      string         `xml:"type4,attr,omitempty"`
	Extra      []xml.Attr     `xml:",any,attr"`
	Parameters *xmlParameters `xml:"Parameters"`
}

//Every kind of type section shares this shape. Which child tags it actually
//holds depends on the section: DihedralTypes sections may mix DihedralType
//and ImproperType children, following the dialect.
type xmlSection struct {
	Name          string          `xml:"name,attr,omitempty"`
	Expression    string          `xml:"expression,attr"`
	UnitDefs      []xmlUnitDef    `xml:"ParametersUnitDef"`
	AtomTypes     []xmlAtomType   `xml:"AtomType"`
	BondTypes     []xmlBondedType `xml:"BondType"`
	AngleTypes    []xmlBondedType `xml:"AngleType"`
	DihedralTypes []xmlBondedType `xml:"DihedralType"`
	ImproperTypes []xmlBondedType `xml:"ImproperType"`
	PairTypes     []xmlBondedType `xml:"PairPotentialType"`
}

type xmlUnits struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type xmlMetaData struct {
	Electrostatics14 string     `xml:"electrostatics14Scale,attr"`
	NonBonded14      string     `xml:"nonBonded14Scale,attr"`
	CombiningRule    string     `xml:"combiningRule,attr"`
	Units            []xmlUnits `xml:"Units"`
}

type xmlForceField struct {
	XMLName       xml.Name     `xml:"ForceField"`
	Name          string       `xml:"name,attr"`
	Version       string       `xml:"version,attr"`
	MetaData      *xmlMetaData `xml:"FFMetaData"`
	AtomTypes     []xmlSection `xml:"AtomTypes"`
	BondTypes     []xmlSection `xml:"BondTypes"`
	AngleTypes    []xmlSection `xml:"AngleTypes"`
	DihedralTypes []xmlSection `xml:"DihedralTypes"`
	ImproperTypes []xmlSection `xml:"ImproperTypes"`
	PairTypes     []xmlSection `xml:"PairPotentialTypes"`
}

//ParseXML reads a forcefield in the GMSO XML dialect from r and returns the
//assembled ForceField. Parsing is all-or-nothing: on any error, structural or
//semantic, it returns nil and the error, never a partial forcefield.
func ParseXML(r io.Reader) (*ForceField, error) {
	var raw xmlForceField
	if err := xml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("Failed to read forcefield XML: %w", err)
	}
	name := raw.Name
	if name == "" {
		name = "ForceField"
	}
	version := raw.Version
	if version == "" {
		version = "1.0.0"
	}
	combining := Geometric
	scaling := ScalingFactors{Electrostatics14: 0.5, NonBonded14: 0.5}
	defaultUnits := make(map[string]units.Unit)
	if raw.MetaData != nil {
		m := raw.MetaData
		if m.CombiningRule != "" {
			combining = m.CombiningRule
		}
		var err error
		if m.Electrostatics14 != "" {
			scaling.Electrostatics14, err = strconv.ParseFloat(m.Electrostatics14, 64)
			if err != nil {
				return nil, fmt.Errorf("FFMetaData: non-numeric electrostatics14Scale %q", m.Electrostatics14)
			}
		}
		if m.NonBonded14 != "" {
			scaling.NonBonded14, err = strconv.ParseFloat(m.NonBonded14, 64)
			if err != nil {
				return nil, fmt.Errorf("FFMetaData: non-numeric nonBonded14Scale %q", m.NonBonded14)
			}
		}
		for _, uel := range m.Units {
			for _, attr := range uel.Attrs {
				u, err := units.Parse(attr.Value)
				if err != nil {
					return nil, fmt.Errorf("FFMetaData Units, dimension %q: %w", attr.Name.Local, err)
				}
				defaultUnits[attr.Name.Local] = u
			}
		}
	}

	p := &parser{defaultUnits: defaultUnits, atomTypes: make(map[string]*AtomType)}
	p.bonds = newTypeRegistry("BondTypes", true)
	p.angles = newTypeRegistry("AngleTypes", true)
	p.dihedrals = newTypeRegistry("DihedralTypes", false)
	p.impropers = newTypeRegistry("ImproperTypes", false)
	p.pairs = newTypeRegistry("PairPotentialTypes", true)

	for _, sec := range raw.AtomTypes {
		if err := p.atomSection(sec); err != nil {
			return nil, err
		}
	}
	for _, sec := range raw.BondTypes {
		if err := p.bondedSection(sec, "BondTypes"); err != nil {
			return nil, err
		}
	}
	for _, sec := range raw.AngleTypes {
		if err := p.bondedSection(sec, "AngleTypes"); err != nil {
			return nil, err
		}
	}
	for _, sec := range raw.DihedralTypes {
		if err := p.bondedSection(sec, "DihedralTypes"); err != nil {
			return nil, err
		}
	}
	for _, sec := range raw.ImproperTypes {
		if err := p.bondedSection(sec, "ImproperTypes"); err != nil {
			return nil, err
		}
	}
	for _, sec := range raw.PairTypes {
		if err := p.bondedSection(sec, "PairPotentialTypes"); err != nil {
			return nil, err
		}
	}
	return assemble(name, version, combining, scaling, defaultUnits, p.atomNames, p.atomTypes, p.bonds, p.angles, p.dihedrals, p.impropers, p.pairs), nil
}

//parser carries the registries being filled during one parse. Nothing here
//outlives the ParseXML call that created it.
type parser struct {
	defaultUnits map[string]units.Unit
	atomNames    []string
	atomTypes    map[string]*AtomType
	bonds        *typeRegistry
	angles       *typeRegistry
	dihedrals    *typeRegistry
	impropers    *typeRegistry
	pairs        *typeRegistry
}

//sectionUnits reads a section's ParametersUnitDef children into its local
//unit table.
func sectionUnits(sec xmlSection, kind string) (map[string]units.Unit, error) {
	table := make(map[string]units.Unit)
	for _, def := range sec.UnitDefs {
		u, err := units.Parse(def.Unit)
		if err != nil {
			return nil, fmt.Errorf("%s ParametersUnitDef for %q: %w", kind, def.Parameter, err)
		}
		table[def.Parameter] = u
	}
	return table, nil
}

//resolveParameters builds the parameter->quantity mapping of one entry. The
//unit of each parameter comes from the nearest scope: the section table
//first, the global unit system as fallback; a parameter with no declaration
//at either scope is a UnitResolutionError. The section's declared symbol set
//must be matched exactly: a declared parameter with no value is an error too.
func (p *parser) resolveParameters(section, key string, table map[string]units.Unit, params *xmlParameters) (map[string]units.Quantity, error) {
	ret := make(map[string]units.Quantity)
	if params != nil {
		for _, par := range params.Parameters {
			unit, ok := table[par.Name]
			if !ok {
				unit, ok = p.defaultUnits[par.Name]
			}
			if !ok {
				return nil, &UnitResolutionError{Section: section, Key: key, Parameter: par.Name}
			}
			if len(par.Values) > 0 {
				arr := make([]float64, len(par.Values))
				for i, s := range par.Values {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return nil, &MalformedParameterError{Section: section, Key: key, Parameter: par.Name, Raw: s}
					}
					arr[i] = v
				}
				ret[par.Name] = units.NewArrayQuantity(arr, unit)
				continue
			}
			if par.Value == "" {
				return nil, &MalformedParameterError{Section: section, Key: key, Parameter: par.Name}
			}
			v, err := strconv.ParseFloat(par.Value, 64)
			if err != nil {
				return nil, &MalformedParameterError{Section: section, Key: key, Parameter: par.Name, Raw: par.Value}
			}
			ret[par.Name] = units.NewQuantity(v, unit)
		}
	}
	for name := range table {
		if _, ok := ret[name]; !ok {
			return nil, &MalformedParameterError{Section: section, Key: key, Parameter: name}
		}
	}
	return ret, nil
}

func (p *parser) atomSection(sec xmlSection) error {
	if sec.Expression == "" {
		return fmt.Errorf("AtomTypes section %q has no expression", sec.Name)
	}
	table, err := sectionUnits(sec, "AtomTypes")
	if err != nil {
		return err
	}
	for _, at := range sec.AtomTypes {
		if at.Name == "" {
			return fmt.Errorf("AtomTypes section %q: AtomType with no name", sec.Name)
		}
		if prev, taken := p.atomTypes[at.Name]; taken {
			return &DuplicateTypeError{Collection: "AtomTypes", Key: at.Name, First: prev.Name, Second: at.Name}
		}
		rec := &AtomType{
			Name:        at.Name,
			AtomClass:   at.AtomClass,
			Element:     at.Element,
			Definition:  at.Definition,
			Description: at.Description,
			DOI:         at.DOI,
			Overrides:   splitOverrides(at.Overrides),
			Extra:       attrMap(at.Extra),
		}
		rec.Mass, err = p.scalarAttr("AtomTypes", at.Name, "mass", at.Mass)
		if err != nil {
			return err
		}
		rec.Charge, err = p.scalarAttr("AtomTypes", at.Name, "charge", at.Charge)
		if err != nil {
			return err
		}
		rec.Expression = at.Expression
		if rec.Expression == "" {
			rec.Expression = sec.Expression
		}
		rec.Parameters, err = p.resolveParameters("AtomTypes", at.Name, table, at.Parameters)
		if err != nil {
			return err
		}
		if at.IndepVars != "" {
			rec.IndependentVariables = strings.Fields(at.IndepVars)
		} else {
			rec.IndependentVariables = independentVars(rec.Expression, rec.Parameters)
		}
		p.atomTypes[at.Name] = rec
		p.atomNames = append(p.atomNames, at.Name)
	}
	return nil
}

//scalarAttr resolves a numeric attribute of an atom type (mass, charge) into
//a quantity, using the global unit declared for the dimension of the same
//name. An absent attribute becomes zero, never a failure.
func (p *parser) scalarAttr(section, key, dimension, raw string) (units.Quantity, error) {
	unit, ok := p.defaultUnits[dimension]
	if !ok {
		unit = units.Dimensionless()
	}
	if raw == "" {
		return units.NewQuantity(0, unit), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return units.Quantity{}, &MalformedParameterError{Section: section, Key: key, Parameter: dimension, Raw: raw}
	}
	return units.NewQuantity(v, unit), nil
}

func (p *parser) bondedSection(sec xmlSection, kind string) error {
	if sec.Expression == "" {
		return fmt.Errorf("%s section %q has no expression", kind, sec.Name)
	}
	table, err := sectionUnits(sec, kind)
	if err != nil {
		return err
	}
	var batches = []struct {
		entries []xmlBondedType
		n       int
		reg     *typeRegistry
	}{
		{sec.BondTypes, 2, p.bonds},
		{sec.AngleTypes, 3, p.angles},
		{sec.DihedralTypes, 4, p.dihedrals},
		{sec.ImproperTypes, 4, p.impropers},
		{sec.PairTypes, 2, p.pairs},
	}
	for _, b := range batches {
		for _, bt := range b.entries {
			rec, err := p.bondedType(bt, b.n, b.reg.collection, sec.Expression, table)
			if err != nil {
				return err
			}
			if err := b.reg.register(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *parser) bondedType(bt xmlBondedType, n int, collection, expression string, table map[string]units.Unit) (*BondedType, error) {
	members, byType := memberTuple(bt, n)
	key := bt.Name
	if key == "" {
		key = strings.Join(members, keySeparator)
	}
	rec := &BondedType{
		Name:       bt.Name,
		Members:    members,
		ByType:     byType,
		Expression: expression,
		Extra:      attrMap(bt.Extra),
	}
	var err error
	rec.Parameters, err = p.resolveParameters(collection, key, table, bt.Parameters)
	if err != nil {
		return nil, err
	}
	rec.IndependentVariables = independentVars(expression, rec.Parameters)
	return rec, nil
}

//memberTuple builds the n-tuple of atom-class or atom-type references of an
//entry. Atom-type references take precedence when any is given; missing
//positions are padded with the "*" wildcard. Classes are free-form labels:
//nothing requires them to have been declared in AtomTypes.
func memberTuple(bt xmlBondedType, n int) (members []string, byType bool) {
	classes := []string{bt.Class1, bt.Class2, bt.Class3, bt.Class4}[:n]
	types := []string{bt.Type1, bt.Type2, bt.Type3, bt.Type4}[:n]
	src := classes
	for _, t := range types {
		if t != "" {
			src = types
			byType = true
			break
		}
	}
	members = make([]string, n)
	for i, m := range src {
		if m == "" {
			m = Wildcard
		}
		members[i] = m
	}
	return members, byType
}

//Wildcard is the atom-class/atom-type reference that matches anything.
const Wildcard = "*"

func splitOverrides(s string) map[string]bool {
	set := make(map[string]bool)
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			set[o] = true
		}
	}
	return set
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string)
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

/*
 * write.go, part of goff.
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
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/goff/units"
)

//WriteXML serializes the forcefield back to the GMSO XML dialect, such that
//parsing the output again yields a forcefield equal, field by field, to F.
//Records are regrouped into sections by their expression and parameter units:
//consecutive records that share both go into one section, so section
//boundaries may differ from the original file while the object graph does not.
func WriteXML(F *ForceField, out io.Writer) error {
	raw := xmlForceField{
		Name:    F.name,
		Version: F.version,
	}
	meta := &xmlMetaData{
		Electrostatics14: fm(F.scaling.Electrostatics14),
		NonBonded14:      fm(F.scaling.NonBonded14),
		CombiningRule:    F.combiningRule,
	}
	if len(F.defaultUnits) > 0 {
		var uel xmlUnits
		for _, dim := range sortedKeys(F.defaultUnits) {
			uel.Attrs = append(uel.Attrs, xml.Attr{Name: xml.Name{Local: dim}, Value: F.defaultUnits[dim].String()})
		}
		meta.Units = []xmlUnits{uel}
	}
	raw.MetaData = meta
	raw.AtomTypes = atomSectionsXML(F.AtomTypes())
	raw.BondTypes = bondedSectionsXML(F.BondTypes(), 2)
	raw.AngleTypes = bondedSectionsXML(F.AngleTypes(), 3)
	raw.DihedralTypes = bondedSectionsXML(F.DihedralTypes(), 4)
	raw.ImproperTypes = improperSectionsXML(F.ImproperTypes())
	raw.PairTypes = pairSectionsXML(F.PairPotentialTypes())

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("Failed to write forcefield XML: %w", err)
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("Failed to write forcefield XML: %w", err)
	}
	return nil
}

//fm formats a float with enough digits to round-trip exactly.
func fm(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

//signature identifies the section scope a record belongs to: its expression
//plus the units of its parameters. Consecutive records with one signature are
//written into one section.
func signature(expression string, params map[string]paramUnit) string {
	parts := []string{expression}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+params[name].unit)
	}
	return strings.Join(parts, "\x00")
}

type paramUnit struct {
	unit string
}

func unitTableOf(rec map[string]paramUnit) []xmlUnitDef {
	defs := make([]xmlUnitDef, 0, len(rec))
	names := make([]string, 0, len(rec))
	for name := range rec {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		defs = append(defs, xmlUnitDef{Parameter: name, Unit: rec[name].unit})
	}
	return defs
}

func atomSectionsXML(records []*AtomType) []xmlSection {
	var sections []xmlSection
	var sig string
	for _, rec := range records {
		pu := make(map[string]paramUnit, len(rec.Parameters))
		for name, q := range rec.Parameters {
			pu[name] = paramUnit{unit: q.Unit.String()}
		}
		s := signature(rec.Expression, pu)
		if len(sections) == 0 || s != sig {
			sections = append(sections, xmlSection{Expression: rec.Expression, UnitDefs: unitTableOf(pu)})
			sig = s
		}
		sec := &sections[len(sections)-1]
		sec.AtomTypes = append(sec.AtomTypes, atomTypeXML(rec))
	}
	return sections
}

func atomTypeXML(rec *AtomType) xmlAtomType {
	at := xmlAtomType{
		Name:        rec.Name,
		AtomClass:   rec.AtomClass,
		Element:     rec.Element,
		Charge:      fm(rec.Charge.Value),
		Mass:        fm(rec.Mass.Value),
		Definition:  rec.Definition,
		Description: rec.Description,
		DOI:         rec.DOI,
		IndepVars:   strings.Join(rec.IndependentVariables, " "),
		Extra:       extraAttrs(rec.Extra),
		Parameters:  parametersXML(rec.Parameters),
	}
	if len(rec.Overrides) > 0 {
		at.Overrides = strings.Join(sortedKeys(rec.Overrides), ",")
	}
	return at
}

func bondedSectionsXML(records []*BondedType, n int) []xmlSection {
	var sections []xmlSection
	var sig string
	for _, rec := range records {
		pu := make(map[string]paramUnit, len(rec.Parameters))
		for name, q := range rec.Parameters {
			pu[name] = paramUnit{unit: q.Unit.String()}
		}
		s := signature(rec.Expression, pu)
		if len(sections) == 0 || s != sig {
			sections = append(sections, xmlSection{Expression: rec.Expression, UnitDefs: unitTableOf(pu)})
			sig = s
		}
		sec := &sections[len(sections)-1]
		bx := bondedTypeXML(rec, n)
		switch n {
		case 2:
			sec.BondTypes = append(sec.BondTypes, bx)
		case 3:
			sec.AngleTypes = append(sec.AngleTypes, bx)
		default:
			sec.DihedralTypes = append(sec.DihedralTypes, bx)
		}
	}
	return sections
}

func improperSectionsXML(records []*BondedType) []xmlSection {
	sections := bondedSectionsXML(records, 4)
	for i := range sections {
		sections[i].ImproperTypes = sections[i].DihedralTypes
		sections[i].DihedralTypes = nil
	}
	return sections
}

func pairSectionsXML(records []*BondedType) []xmlSection {
	sections := bondedSectionsXML(records, 2)
	for i := range sections {
		sections[i].PairTypes = sections[i].BondTypes
		sections[i].BondTypes = nil
	}
	return sections
}

func bondedTypeXML(rec *BondedType, n int) xmlBondedType {
	bx := xmlBondedType{
		Name:       rec.Name,
		Extra:      extraAttrs(rec.Extra),
		Parameters: parametersXML(rec.Parameters),
	}
	fields := [4]*string{&bx.Class1, &bx.Class2, &bx.Class3, &bx.Class4}
	if rec.ByType {
		fields = [4]*string{&bx.Type1, &bx.Type2, &bx.Type3, &bx.Type4}
	}
	for i := 0; i < n && i < len(rec.Members); i++ {
		*fields[i] = rec.Members[i]
	}
	return bx
}

func parametersXML(params map[string]units.Quantity) *xmlParameters {
	if len(params) == 0 {
		return nil
	}
	px := new(xmlParameters)
	for _, name := range sortedKeys(params) {
		q := params[name]
		p := xmlParameter{Name: name}
		if q.IsArray() {
			p.Values = make([]string, len(q.Array))
			for i, v := range q.Array {
				p.Values[i] = fm(v)
			}
		} else {
			p.Value = fm(q.Value)
		}
		px.Parameters = append(px.Parameters, p)
	}
	return px
}

func extraAttrs(extra map[string]string) []xml.Attr {
	if len(extra) == 0 {
		return nil
	}
	attrs := make([]xml.Attr, 0, len(extra))
	for _, name := range sortedKeys(extra) {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: extra[name]})
	}
	return attrs
}

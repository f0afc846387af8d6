/*
 * export.go, part of goff.
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
	"fmt"
	"sort"

	ff "github.com/rmera/goff"
	"github.com/rmera/goff/units"
)

//UnsupportedCombiningRuleError reports a combining rule with no Foyer
//equivalent. Nothing is exported when this happens.
type UnsupportedCombiningRuleError struct {
	Rule string
}

func (err *UnsupportedCombiningRuleError) Error() string {
	return fmt.Sprintf("Combining rule %q has no Foyer equivalent", err.Rule)
}

//TransformationError reports a type entry whose functional form the exporter
//does not know how to express in the Foyer model.
type TransformationError struct {
	Collection string
	Key        string
	Expression string
}

func (err *TransformationError) Error() string {
	return fmt.Sprintf("No transformation is defined for %s entry %q (expression %q)", err.Collection, err.Key, err.Expression)
}

//The explicit combining-rule translation table. The "explicit" rule (pairwise
//parameters spelled out per pair) has no Foyer counterpart, so it is absent
//here on purpose and fails the export.
var combiningRules = map[string]string{
	ff.Geometric:        "geometric",
	ff.Lorentz:          "lorentz",
	"lorentz-berthelot": "lorentz",
}

var amu units.Unit

func init() {
	amu, _ = units.Parse("amu")
}

//Export translates a parsed forcefield into the Foyer object model. The
//source forcefield is not modified, and on error no partial result is
//returned. Units are carried through as parsed; no conversion happens here.
func Export(src *ff.ForceField) (*ForceField, error) {
	rule, ok := combiningRules[src.CombiningRule()]
	if !ok {
		return nil, &UnsupportedCombiningRuleError{Rule: src.CombiningRule()}
	}
	scaling := src.ScalingFactors()
	out := &ForceField{
		Name:           src.Name(),
		Version:        src.Version(),
		CombiningRule:  rule,
		Coulomb14Scale: scaling.Electrostatics14,
		LJ14Scale:      scaling.NonBonded14,
	}
	for _, at := range src.AtomTypes() {
		t, nb, err := exportAtomType(at)
		if err != nil {
			return nil, err
		}
		out.AtomTypes = append(out.AtomTypes, t)
		out.NonBonded = append(out.NonBonded, nb)
	}
	for _, bt := range src.BondTypes() {
		b, err := exportBond(bt)
		if err != nil {
			return nil, err
		}
		out.HarmonicBonds = append(out.HarmonicBonds, b)
	}
	for _, at := range src.AngleTypes() {
		a, err := exportAngle(at)
		if err != nil {
			return nil, err
		}
		out.HarmonicAngles = append(out.HarmonicAngles, a)
	}
	for _, dt := range src.DihedralTypes() {
		rb, per, err := exportTorsion(dt, "DihedralTypes")
		if err != nil {
			return nil, err
		}
		if rb != nil {
			out.RBTorsions = append(out.RBTorsions, rb)
		} else {
			out.PeriodicTorsions = append(out.PeriodicTorsions, per)
		}
	}
	for _, it := range src.ImproperTypes() {
		rb, per, err := exportTorsion(it, "ImproperTypes")
		if err != nil {
			return nil, err
		}
		if rb != nil {
			//Foyer has no RB impropers; nobody writes them either
			return nil, &TransformationError{Collection: "ImproperTypes", Key: memberKey(it), Expression: it.Expression}
		}
		out.PeriodicImpropers = append(out.PeriodicImpropers, per)
	}
	return out, nil
}

func exportAtomType(at *ff.AtomType) (*Type, *NonBonded, error) {
	t := &Type{
		Name:      at.Name,
		Class:     at.AtomClass,
		Element:   at.Element,
		Mass:      at.Mass,
		Def:       at.Definition,
		Desc:      at.Description,
		DOI:       at.DOI,
		Overrides: setToSlice(at.Overrides),
	}
	//an atom type that declares an element but no mass gets the reference
	//mass of the element, since the Foyer model requires one
	if t.Mass.Value == 0 && at.Element != "" {
		if m, known := ff.ElementMass(at.Element); known {
			t.Mass = units.NewQuantity(m, amu)
		}
	}
	nb := &NonBonded{AtomType: at.Name, Charge: at.Charge, Extra: make(map[string]units.Quantity)}
	var haveSigma, haveEpsilon bool
	for name, q := range at.Parameters {
		switch name {
		case "sigma":
			nb.Sigma = q
			haveSigma = true
		case "epsilon":
			nb.Epsilon = q
			haveEpsilon = true
		default:
			nb.Extra[name] = q
		}
	}
	if !haveSigma || !haveEpsilon {
		return nil, nil, &TransformationError{Collection: "AtomTypes", Key: at.Name, Expression: at.Expression}
	}
	return t, nb, nil
}

func exportBond(bt *ff.BondedType) (*Bond, error) {
	b := new(Bond)
	assignMembers(bt, []*string{&b.Class1, &b.Class2}, []*string{&b.Type1, &b.Type2})
	var haveK, haveLen bool
	b.Extra = make(map[string]units.Quantity)
	for name, q := range bt.Parameters {
		switch name {
		case "k":
			b.K = q
			haveK = true
		case "r_eq":
			b.Length = q
			haveLen = true
		default:
			b.Extra[name] = q
		}
	}
	if !haveK || !haveLen {
		return nil, &TransformationError{Collection: "BondTypes", Key: memberKey(bt), Expression: bt.Expression}
	}
	return b, nil
}

func exportAngle(at *ff.BondedType) (*Angle, error) {
	a := new(Angle)
	assignMembers(at, []*string{&a.Class1, &a.Class2, &a.Class3}, []*string{&a.Type1, &a.Type2, &a.Type3})
	var haveK, haveTheta bool
	a.Extra = make(map[string]units.Quantity)
	for name, q := range at.Parameters {
		switch name {
		case "k":
			a.K = q
			haveK = true
		case "theta_eq":
			a.Angle = q
			haveTheta = true
		default:
			a.Extra[name] = q
		}
	}
	if !haveK || !haveTheta {
		return nil, &TransformationError{Collection: "AngleTypes", Key: memberKey(at), Expression: at.Expression}
	}
	return a, nil
}

//exportTorsion translates one dihedral/improper entry as either a
//Ryckaert-Bellemans or a periodic torsion, deciding by the parameter symbols.
//Exactly one of the two results is non-nil on success.
func exportTorsion(tt *ff.BondedType, collection string) (*RBTorsion, *PeriodicTorsion, error) {
	if _, isRB := tt.Parameters["c0"]; isRB {
		rb := new(RBTorsion)
		assignMembers(tt, []*string{&rb.Class1, &rb.Class2, &rb.Class3, &rb.Class4}, []*string{&rb.Type1, &rb.Type2, &rb.Type3, &rb.Type4})
		rb.Extra = make(map[string]units.Quantity)
		coeffs := map[string]*units.Quantity{
			"c0": &rb.C0, "c1": &rb.C1, "c2": &rb.C2,
			"c3": &rb.C3, "c4": &rb.C4, "c5": &rb.C5,
		}
		seen := 0
		for name, q := range tt.Parameters {
			if dst, ok := coeffs[name]; ok {
				*dst = q
				seen++
			} else {
				rb.Extra[name] = q
			}
		}
		if seen != len(coeffs) {
			return nil, nil, &TransformationError{Collection: collection, Key: memberKey(tt), Expression: tt.Expression}
		}
		return rb, nil, nil
	}
	per := new(PeriodicTorsion)
	assignMembers(tt, []*string{&per.Class1, &per.Class2, &per.Class3, &per.Class4}, []*string{&per.Type1, &per.Type2, &per.Type3, &per.Type4})
	per.Extra = make(map[string]units.Quantity)
	var haveK, havePhase, havePeriod bool
	for name, q := range tt.Parameters {
		switch name {
		case "k":
			per.K = q
			haveK = true
		case "phi_eq":
			per.Phase = q
			havePhase = true
		case "n":
			per.Periodicity = q
			havePeriod = true
		default:
			per.Extra[name] = q
		}
	}
	if !haveK || !havePhase || !havePeriod {
		return nil, nil, &TransformationError{Collection: collection, Key: memberKey(tt), Expression: tt.Expression}
	}
	return nil, per, nil
}

//assignMembers copies the member tuple into the class or type fields of the
//target record, verbatim: class keys were canonicalized at parse time and are
//not touched here.
func assignMembers(src *ff.BondedType, classes, types []*string) {
	dst := classes
	if src.ByType {
		dst = types
	}
	for i, m := range src.Members {
		if i < len(dst) {
			*dst[i] = m
		}
	}
}

func memberKey(bt *ff.BondedType) string {
	if bt.Name != "" {
		return bt.Name
	}
	key := ""
	for i, m := range bt.Members {
		if i > 0 {
			key += "~"
		}
		key += m
	}
	return key
}

func setToSlice(set map[string]bool) []string {
	ret := make([]string, 0, len(set))
	for name := range set {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

/*
 * model.go, part of goff.
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
	"github.com/rmera/goff/units"
)

//Combining rules for deriving cross-interaction nonbonded parameters.
const (
	Geometric = "geometric"
	Lorentz   = "lorentz"
	Explicit  = "explicit"
)

//ScalingFactors are the 1-4 interaction scalings of a forcefield.
type ScalingFactors struct {
	Electrostatics14 float64
	NonBonded14      float64
}

//AtomType is a parsed AtomType entry. Overrides is kept as declared data: which
//override wins against candidate structural matches is decided downstream, not
//here.
type AtomType struct {
	Name                 string
	AtomClass            string
	Element              string
	Mass                 units.Quantity
	Charge               units.Quantity
	Definition           string //SMARTS-like structural definition
	Description          string
	DOI                  string
	Overrides            map[string]bool
	Expression           string
	IndependentVariables []string
	Parameters           map[string]units.Quantity
	Extra                map[string]string //attributes this dialect doesn't know about, preserved verbatim
}

//BondedType is a parsed bonded interaction entry: a bond, angle, dihedral,
//improper or pair-potential type. Members holds the 2-4 atom-class or
//atom-type references, in declaration order, with "*" for wildcards.
type BondedType struct {
	Name                 string
	Members              []string
	ByType               bool //Members are atom-type names rather than atom classes
	Expression           string
	IndependentVariables []string
	Parameters           map[string]units.Quantity
	Extra                map[string]string
}

//ForceField is a fully parsed, resolved forcefield. It is read-only once
//assembled: the accessors hand out the internal records, which callers must
//not modify. Producing a changed forcefield means parsing (or building)
//a new one.
type ForceField struct {
	name          string
	version       string
	combiningRule string
	scaling       ScalingFactors
	defaultUnits  map[string]units.Unit //physical dimension name -> unit
	atomNames     []string
	atomTypes     map[string]*AtomType
	bonds         *typeRegistry
	angles        *typeRegistry
	dihedrals     *typeRegistry
	impropers     *typeRegistry
	pairs         *typeRegistry
}

//assemble wraps the parsed sections into the final ForceField value. Pure
//aggregation; it exists so the exporter (and any future consumer) has one
//stable input shape regardless of how parsing is organized.
func assemble(name, version, combiningRule string, scaling ScalingFactors, defaultUnits map[string]units.Unit, atomNames []string, atomTypes map[string]*AtomType, bonds, angles, dihedrals, impropers, pairs *typeRegistry) *ForceField {
	return &ForceField{
		name:          name,
		version:       version,
		combiningRule: combiningRule,
		scaling:       scaling,
		defaultUnits:  defaultUnits,
		atomNames:     atomNames,
		atomTypes:     atomTypes,
		bonds:         bonds,
		angles:        angles,
		dihedrals:     dihedrals,
		impropers:     impropers,
		pairs:         pairs,
	}
}

//Name returns the name of the forcefield.
func (F *ForceField) Name() string { return F.name }

//Version returns the version string of the forcefield.
func (F *ForceField) Version() string { return F.version }

//CombiningRule returns the combining rule declared in the forcefield
//metadata ("geometric" if none was declared).
func (F *ForceField) CombiningRule() string { return F.combiningRule }

//ScalingFactors returns the 1-4 scaling factors of the forcefield.
func (F *ForceField) ScalingFactors() ScalingFactors { return F.scaling }

//DefaultUnit returns the global unit declared for the given physical
//dimension name ("energy", "mass", "charge"...), and whether one was declared.
func (F *ForceField) DefaultUnit(dimension string) (units.Unit, bool) {
	u, ok := F.defaultUnits[dimension]
	return u, ok
}

//DefaultUnitDimensions returns the dimension names with a global unit
//declaration, sorted.
func (F *ForceField) DefaultUnitDimensions() []string {
	return sortedKeys(F.defaultUnits)
}

//AtomType returns the atom type with the given name, or nil if there is none.
func (F *ForceField) AtomType(name string) *AtomType {
	return F.atomTypes[name]
}

//AtomTypes returns all atom types, in declaration order.
func (F *ForceField) AtomTypes() []*AtomType {
	ret := make([]*AtomType, len(F.atomNames))
	for i, name := range F.atomNames {
		ret[i] = F.atomTypes[name]
	}
	return ret
}

//BondType returns the bond type for the given pair of atom-class (or
//atom-type) references. The key is symmetric: (A,B) and (B,A) return the same
//record. nil if not found.
func (F *ForceField) BondType(a, b string) *BondedType {
	return F.bonds.lookup([]string{a, b})
}

//AngleType returns the angle type for the given triplet. The key is
//symmetric under reversal. nil if not found.
func (F *ForceField) AngleType(a, b, c string) *BondedType {
	return F.angles.lookup([]string{a, b, c})
}

//DihedralType returns the dihedral type for the given quadruplet. Dihedral
//keys are directional: the reversed tuple answers only if no entry was
//explicitly declared for it. nil if not found.
func (F *ForceField) DihedralType(a, b, c, d string) *BondedType {
	return F.dihedrals.lookup([]string{a, b, c, d})
}

//ImproperType returns the improper type for the given quadruplet, with the
//same directionality rules as DihedralType. nil if not found.
func (F *ForceField) ImproperType(a, b, c, d string) *BondedType {
	return F.impropers.lookup([]string{a, b, c, d})
}

//PairPotentialType returns the explicit pair potential for the given pair.
//The key is symmetric. nil if not found.
func (F *ForceField) PairPotentialType(a, b string) *BondedType {
	return F.pairs.lookup([]string{a, b})
}

//BondTypes returns all bond types in declaration order.
func (F *ForceField) BondTypes() []*BondedType { return F.bonds.records() }

//AngleTypes returns all angle types in declaration order.
func (F *ForceField) AngleTypes() []*BondedType { return F.angles.records() }

//DihedralTypes returns all dihedral types in declaration order.
func (F *ForceField) DihedralTypes() []*BondedType { return F.dihedrals.records() }

//ImproperTypes returns all improper types in declaration order.
func (F *ForceField) ImproperTypes() []*BondedType { return F.impropers.records() }

//PairPotentialTypes returns all explicit pair potentials in declaration order.
func (F *ForceField) PairPotentialTypes() []*BondedType { return F.pairs.records() }
